package commands

import (
	"fmt"

	"github.com/quackswap/quack/daemon/types"
	"github.com/quackswap/quack/rpcclient"
	"github.com/spf13/cobra"
)

func List(rpcClient rpcclient.Client) *cobra.Command {
	var account uint32
	var cmd = &cobra.Command{
		Use:   "list",
		Short: "lists swaps submitted through this daemon",
		Run: func(c *cobra.Command, args []string) {
			resp, err := rpcClient.List(types.RequestList{
				UserAccount: account,
			})
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to send request: %w", err))
			}

			fmt.Println(string(resp))
		}}
	cmd.Flags().Uint32Var(&account, "account", 0, "account to be used (default: 0)")
	return cmd
}
