package handlers

import (
	"context"
	"fmt"

	"github.com/quackswap/quack/daemon/types"
	"github.com/quackswap/quack/store"
	"github.com/quackswap/quack/swap"
	"go.uber.org/zap"
)

func Trigger(cfg types.CoreConfig, params types.RequestTrigger) (types.ResponseTrigger, error) {
	userStore := cfg.Storage.UserStore(params.UserAccount)

	triggerBytes := params.TriggerBytes
	if triggerBytes == "" {
		if params.TriggerHash == "" {
			return types.ResponseTrigger{}, fmt.Errorf("either triggerBytes or triggerHash is required")
		}
		record, err := userStore.Swap(params.TriggerHash)
		if err != nil {
			return types.ResponseTrigger{}, fmt.Errorf("swap not found in local storage: %w", err)
		}
		if record.TriggerBytes == "" {
			return types.ResponseTrigger{}, fmt.Errorf("stored swap carries no trigger bytes; only the initiator can trigger")
		}
		triggerBytes = record.TriggerBytes
	}

	secret := cfg.Keys.SecretPhrase(params.UserAccount)
	engine := swap.NewEngine(cfg.Node, cfg.Protocol(), cfg.Logger)

	txid, err := engine.Trigger(context.Background(), secret, triggerBytes)
	if err != nil {
		if params.TriggerHash != "" {
			if serr := userStore.PutError(params.TriggerHash, err.Error()); serr != nil {
				cfg.Logger.Error("failed to record trigger failure", zap.Error(serr))
			}
		}
		return types.ResponseTrigger{}, fmt.Errorf("failed to trigger swap: %w", err)
	}

	if params.TriggerHash != "" {
		if err := userStore.PutStatus(params.TriggerHash, store.Triggered); err != nil {
			cfg.Logger.Error("failed to record triggered swap", zap.Error(err))
		}
	}

	return types.ResponseTrigger{Status: "good", Txid: txid}, nil
}
