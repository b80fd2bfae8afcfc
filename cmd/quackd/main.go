package main

import (
	"time"

	jsonrpc "github.com/quackswap/quack/daemon/rpc"
	"github.com/quackswap/quack/nxt"
	"github.com/quackswap/quack/store"
	"github.com/quackswap/quack/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	envConfig, err := utils.LoadConfig(utils.DefaultConfigPath())
	if err != nil {
		panic(err)
	}

	storePath := envConfig.DB
	if storePath == "" {
		storePath = utils.DefaultStorePath()
	}
	str, err := store.NewStore(sqlite.Open(storePath), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		panic(err)
	}

	keys, err := utils.NewKeys(envConfig.Mnemonic)
	if err != nil {
		panic(err)
	}

	logger, err := utils.NewLogger(envConfig.Sentry)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	node := nxt.NewClient(envConfig.Node, logger)

	server := jsonrpc.NewRpcServer(str, envConfig, keys, node, logger)
	if err := server.Run(); err != nil {
		panic(err)
	}
}
