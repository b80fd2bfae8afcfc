package cli

import (
	"github.com/quackswap/quack/cli/commands"
	"github.com/quackswap/quack/rpcclient"
	"github.com/quackswap/quack/utils"
	"github.com/spf13/cobra"
)

func Run(version string) error {
	var cmd = &cobra.Command{
		Use: "quack - atomic swaps on phased transactions",
		Run: func(c *cobra.Command, args []string) {
			c.HelpFunc()(c, args)
		},
		Version:           version,
		DisableAutoGenTag: true,
	}

	envConfig, err := utils.LoadConfig(utils.DefaultConfigPath())
	if err != nil {
		return err
	}

	protocol := "https"
	if envConfig.NoTLS {
		protocol = "http"
	}

	rpcClient := rpcclient.NewClient(envConfig.RpcUserName, envConfig.RpcPassword, protocol, envConfig.RPCServer)

	cmd.AddCommand(commands.Initiate(rpcClient))
	cmd.AddCommand(commands.Accept(rpcClient))
	cmd.AddCommand(commands.Trigger(rpcClient))
	cmd.AddCommand(commands.Scan(rpcClient))
	cmd.AddCommand(commands.List(rpcClient))

	return cmd.Execute()
}
