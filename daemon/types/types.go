package types

import (
	"errors"
	"strings"

	"github.com/quackswap/quack/store"
	"github.com/quackswap/quack/swap"
	"github.com/quackswap/quack/utils"
	"go.uber.org/zap"
)

type RequestInitiate struct {
	UserAccount    uint32       `json:"userAccount"`
	Recipient      string       `json:"recipient" binding:"required"`
	FinishHeight   int64        `json:"finishHeight" binding:"required"`
	Assets         []swap.Asset `json:"assets" binding:"required"`
	ExpectedAssets []swap.Asset `json:"expectedAssets"`
	PrivateMessage string       `json:"privateMessage"`
}

type RequestAccept struct {
	UserAccount  uint32       `json:"userAccount"`
	Recipient    string       `json:"recipient" binding:"required"`
	FinishHeight int64        `json:"finishHeight" binding:"required"`
	Assets       []swap.Asset `json:"assets" binding:"required"`
	TriggerHash  string       `json:"triggerHash" binding:"required"`
}

// RequestTrigger commits a swap. TriggerBytes may be omitted when the swap
// was initiated through this daemon; the bytes are then recovered from the
// local store by trigger hash.
type RequestTrigger struct {
	UserAccount  uint32 `json:"userAccount"`
	TriggerHash  string `json:"triggerHash"`
	TriggerBytes string `json:"triggerBytes"`
}

// RequestScan reconstructs swaps from history. Account defaults to the
// daemon account's own address when empty.
type RequestScan struct {
	UserAccount uint32 `json:"userAccount"`
	Account     string `json:"account"`
	Timestamp   int64  `json:"timestamp"`
}

type RequestList struct {
	UserAccount uint32 `json:"userAccount"`
}

type ResponseInitiate struct {
	Status       string `json:"status"`
	TriggerHash  string `json:"triggerHash"`
	TriggerBytes string `json:"triggerBytes"`
}

type ResponseAccept struct {
	Status string `json:"status"`
}

type ResponseTrigger struct {
	Status string `json:"status"`
	Txid   string `json:"txid"`
}

type CoreConfig struct {
	Storage   store.Store
	EnvConfig utils.Config
	Keys      *utils.Keys
	Node      swap.Ledger
	Logger    *zap.Logger
}

// Protocol builds the immutable protocol configuration shared by the engine
// and the scanner.
func (c CoreConfig) Protocol() swap.Config {
	return swap.Config{
		TriggerAccount:  c.EnvConfig.TriggerAccount,
		TriggerFeeNQT:   c.EnvConfig.TriggerFeeNQT,
		TriggerDeadline: c.EnvConfig.TriggerDeadline,
	}
}

func CheckStrings(elements ...string) error {
	for _, elem := range elements {
		if strings.TrimSpace(elem) == "" {
			return errors.New("invalid arguments passed")
		}
	}
	return nil
}
