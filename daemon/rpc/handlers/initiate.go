package handlers

import (
	"context"
	"fmt"

	"github.com/quackswap/quack/daemon/types"
	"github.com/quackswap/quack/swap"
	"go.uber.org/zap"
)

func Initiate(cfg types.CoreConfig, params types.RequestInitiate) (types.ResponseInitiate, error) {
	if err := types.CheckStrings(params.Recipient); err != nil {
		return types.ResponseInitiate{}, err
	}
	if len(params.Assets) == 0 {
		return types.ResponseInitiate{}, fmt.Errorf("no assets to offer")
	}

	secret := cfg.Keys.SecretPhrase(params.UserAccount)
	engine := swap.NewEngine(cfg.Node, cfg.Protocol(), cfg.Logger)

	result, err := engine.Initiate(context.Background(), secret, params.Recipient, params.FinishHeight, params.Assets, params.ExpectedAssets, params.PrivateMessage)
	if err != nil {
		return types.ResponseInitiate{}, fmt.Errorf("failed to initiate swap: %w", err)
	}

	userStore := cfg.Storage.UserStore(params.UserAccount)
	if err := userStore.PutInitiated(result.TriggerHash, result.TriggerBytes, params.Recipient, params.FinishHeight); err != nil {
		cfg.Logger.Error("failed to record initiated swap", zap.Error(err))
	}

	return types.ResponseInitiate{
		Status:       "good",
		TriggerHash:  result.TriggerHash,
		TriggerBytes: result.TriggerBytes,
	}, nil
}
