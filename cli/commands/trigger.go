package commands

import (
	"fmt"

	"github.com/quackswap/quack/daemon/types"
	"github.com/quackswap/quack/rpcclient"
	"github.com/spf13/cobra"
)

func Trigger(rpcClient rpcclient.Client) *cobra.Command {
	var (
		account      uint32
		triggerHash  string
		triggerBytes string
	)
	var cmd = &cobra.Command{
		Use:   "trigger",
		Short: "commits a swap by broadcasting its trigger transaction",
		Run: func(c *cobra.Command, args []string) {
			if triggerHash == "" && triggerBytes == "" {
				cobra.CheckErr(fmt.Errorf("either --trigger-hash or --trigger-bytes is required"))
			}

			resp, err := rpcClient.Trigger(types.RequestTrigger{
				UserAccount:  account,
				TriggerHash:  triggerHash,
				TriggerBytes: triggerBytes,
			})
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to send request: %w", err))
			}

			fmt.Println(string(resp))
		}}
	cmd.Flags().Uint32Var(&account, "account", 0, "account to be used (default: 0)")
	cmd.Flags().StringVar(&triggerHash, "trigger-hash", "", "full hash of a locally initiated swap")
	cmd.Flags().StringVar(&triggerBytes, "trigger-bytes", "", "unsigned trigger bytes (overrides the stored ones)")
	return cmd
}
