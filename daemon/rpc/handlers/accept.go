package handlers

import (
	"context"
	"fmt"

	"github.com/quackswap/quack/daemon/types"
	"github.com/quackswap/quack/swap"
	"go.uber.org/zap"
)

func Accept(cfg types.CoreConfig, params types.RequestAccept) (types.ResponseAccept, error) {
	if err := types.CheckStrings(params.Recipient, params.TriggerHash); err != nil {
		return types.ResponseAccept{}, err
	}
	if len(params.Assets) == 0 {
		return types.ResponseAccept{}, fmt.Errorf("no assets to offer")
	}

	secret := cfg.Keys.SecretPhrase(params.UserAccount)
	engine := swap.NewEngine(cfg.Node, cfg.Protocol(), cfg.Logger)

	if err := engine.Accept(context.Background(), secret, params.Recipient, params.FinishHeight, params.Assets, params.TriggerHash); err != nil {
		return types.ResponseAccept{}, fmt.Errorf("failed to accept swap: %w", err)
	}

	userStore := cfg.Storage.UserStore(params.UserAccount)
	if err := userStore.PutAccepted(params.TriggerHash, params.Recipient, params.FinishHeight); err != nil {
		cfg.Logger.Error("failed to record accepted swap", zap.Error(err))
	}

	return types.ResponseAccept{Status: "good"}, nil
}
