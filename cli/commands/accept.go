package commands

import (
	"fmt"

	"github.com/quackswap/quack/daemon/types"
	"github.com/quackswap/quack/rpcclient"
	"github.com/spf13/cobra"
)

func Accept(rpcClient rpcclient.Client) *cobra.Command {
	var (
		account      uint32
		recipient    string
		finishHeight int64
		offers       []string
		triggerHash  string
	)
	var cmd = &cobra.Command{
		Use:   "accept",
		Short: "joins an announced swap by submitting the counter legs",
		Run: func(c *cobra.Command, args []string) {
			offered, err := parseAssets(offers)
			if err != nil {
				cobra.CheckErr(err)
			}

			resp, err := rpcClient.Accept(types.RequestAccept{
				UserAccount:  account,
				Recipient:    recipient,
				FinishHeight: finishHeight,
				Assets:       offered,
				TriggerHash:  triggerHash,
			})
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to send request: %w", err))
			}

			fmt.Println(string(resp))
		}}
	cmd.Flags().Uint32Var(&account, "account", 0, "account to be used (default: 0)")
	cmd.Flags().StringVar(&recipient, "recipient", "", "initiator RS address")
	cmd.MarkFlagRequired("recipient")
	cmd.Flags().Int64Var(&finishHeight, "finish-height", 0, "absolute block height the swap must finish by")
	cmd.MarkFlagRequired("finish-height")
	cmd.Flags().StringArrayVar(&offers, "offer", nil, "asset to offer as KIND:ID:QUANTITY (repeatable)")
	cmd.MarkFlagRequired("offer")
	cmd.Flags().StringVar(&triggerHash, "trigger-hash", "", "full hash of the swap's trigger transaction")
	cmd.MarkFlagRequired("trigger-hash")
	return cmd
}
