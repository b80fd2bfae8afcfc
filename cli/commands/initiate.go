package commands

import (
	"fmt"

	"github.com/quackswap/quack/daemon/types"
	"github.com/quackswap/quack/rpcclient"
	"github.com/spf13/cobra"
)

func Initiate(rpcClient rpcclient.Client) *cobra.Command {
	var (
		account      uint32
		recipient    string
		finishHeight int64
		offers       []string
		expects      []string
		message      string
	)
	var cmd = &cobra.Command{
		Use:   "initiate",
		Short: "starts a new swap by announcing it to the counterparty",
		Run: func(c *cobra.Command, args []string) {
			offered, err := parseAssets(offers)
			if err != nil {
				cobra.CheckErr(err)
			}
			expected, err := parseAssets(expects)
			if err != nil {
				cobra.CheckErr(err)
			}

			resp, err := rpcClient.Initiate(types.RequestInitiate{
				UserAccount:    account,
				Recipient:      recipient,
				FinishHeight:   finishHeight,
				Assets:         offered,
				ExpectedAssets: expected,
				PrivateMessage: message,
			})
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to send request: %w", err))
			}

			fmt.Println(string(resp))
		}}
	cmd.Flags().Uint32Var(&account, "account", 0, "account to be used (default: 0)")
	cmd.Flags().StringVar(&recipient, "recipient", "", "counterparty RS address")
	cmd.MarkFlagRequired("recipient")
	cmd.Flags().Int64Var(&finishHeight, "finish-height", 0, "absolute block height the swap must finish by")
	cmd.MarkFlagRequired("finish-height")
	cmd.Flags().StringArrayVar(&offers, "offer", nil, "asset to offer as KIND:ID:QUANTITY (repeatable)")
	cmd.MarkFlagRequired("offer")
	cmd.Flags().StringArrayVar(&expects, "expect", nil, "asset expected in return as KIND:ID:QUANTITY (repeatable)")
	cmd.Flags().StringVar(&message, "message", "", "private message for the counterparty")
	return cmd
}
