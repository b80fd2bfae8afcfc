package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/quackswap/quack/daemon/types"
	"github.com/quackswap/quack/rpcclient"
	"github.com/spf13/cobra"
)

func Scan(rpcClient rpcclient.Client) *cobra.Command {
	var (
		account   uint32
		address   string
		timestamp int64
	)
	var cmd = &cobra.Command{
		Use:   "scan",
		Short: "rebuilds swap state from on-ledger history",
		Run: func(c *cobra.Command, args []string) {
			resp, err := rpcClient.Scan(types.RequestScan{
				UserAccount: account,
				Account:     address,
				Timestamp:   timestamp,
			})
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to send request: %w", err))
			}

			color.Green("%s", string(resp))
		}}
	cmd.Flags().Uint32Var(&account, "account", 0, "account to be used (default: 0)")
	cmd.Flags().StringVar(&address, "address", "", "RS address to scan (default: own address)")
	cmd.Flags().Int64Var(&timestamp, "timestamp", 0, "epoch timestamp lower bound for the history window")
	return cmd
}
