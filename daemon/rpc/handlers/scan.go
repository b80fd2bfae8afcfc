package handlers

import (
	"context"
	"fmt"

	"github.com/quackswap/quack/daemon/types"
	"github.com/quackswap/quack/swap"
)

func Scan(cfg types.CoreConfig, params types.RequestScan) ([]*swap.Record, error) {
	account := params.Account
	if account == "" {
		secret := cfg.Keys.SecretPhrase(params.UserAccount)
		derived, err := cfg.Node.AccountID(context.Background(), secret)
		if err != nil {
			return nil, fmt.Errorf("failed to derive account address: %w", err)
		}
		account = derived
	}

	scanner := swap.NewScanner(cfg.Node, cfg.Protocol(), cfg.Logger)
	records, err := scanner.Scan(context.Background(), account, params.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to scan swaps: %w", err)
	}
	return records, nil
}
