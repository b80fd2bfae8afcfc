package utils

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// Keys derives per-account node passphrases from the configured mnemonic.
// Account 0 is the bare mnemonic; higher accounts suffix the index so one
// mnemonic controls a family of addresses.
type Keys struct {
	mnemonic string
}

func NewKeys(mnemonic string) (*Keys, error) {
	if mnemonic == "" {
		return nil, ErrMnemonicMissing
	}
	if _, err := bip39.EntropyFromMnemonic(mnemonic); err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	return &Keys{mnemonic: mnemonic}, nil
}

func (k *Keys) SecretPhrase(account uint32) string {
	if account == 0 {
		return k.mnemonic
	}
	return fmt.Sprintf("%s %d", k.mnemonic, account)
}
