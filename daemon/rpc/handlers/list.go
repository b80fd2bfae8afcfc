package handlers

import (
	"github.com/quackswap/quack/daemon/types"
	"github.com/quackswap/quack/store"
)

func List(cfg types.CoreConfig, params types.RequestList) ([]store.Swap, error) {
	return cfg.Storage.UserStore(params.UserAccount).Swaps()
}
