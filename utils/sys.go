package utils

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/quackswap/quack/nxt"
	"github.com/tyler-smith/go-bip39"
)

var HomeDir string

var ErrMnemonicMissing = errors.New("mnemonic missing")

// Protocol defaults. The trigger account is the shared fee collector every
// trigger transaction pays into; scanners reject announcements whose trigger
// pays anyone else. Testnets override both via config.json.
const (
	DefaultTriggerAccount  = "NXT-G885-AKDX-5G2B-BLUCG"
	DefaultTriggerFeeNQT   = nxt.OneNXT
	DefaultTriggerDeadline = 1440
	DefaultNode            = "http://localhost:7876"
	DefaultListen          = ":8087"
)

func init() {
	var err error
	HomeDir, err = os.UserHomeDir()
	if err != nil {
		log.Fatal("failed to get $HOME value")
	}
}

func DefaultQuackDirectory() string {
	return filepath.Join(HomeDir, ".quack")
}

func DefaultConfigPath() string {
	return filepath.Join(HomeDir, ".quack", "config.json")
}

func DefaultStorePath() string {
	return filepath.Join(HomeDir, ".quack", "data.db")
}

type Config struct {
	Node            string
	TriggerAccount  string
	TriggerFeeNQT   int64
	TriggerDeadline int64

	RpcUserName string
	RpcPassword string
	RPCServer   string
	Listen      string
	NoTLS       bool

	Mnemonic string
	DB       string
	Sentry   string
}

// LoadConfig reads config.json, fills protocol defaults, and generates a
// mnemonic on first run. The mnemonic doubles as the account-0 passphrase, so
// it is persisted immediately.
func LoadConfig(path string) (Config, error) {
	config := Config{}
	configFile, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(configFile, &config); err != nil {
			return Config{}, err
		}
	}

	if config.Node == "" {
		config.Node = DefaultNode
	}
	if config.TriggerAccount == "" {
		config.TriggerAccount = DefaultTriggerAccount
	}
	if config.TriggerFeeNQT == 0 {
		config.TriggerFeeNQT = DefaultTriggerFeeNQT
	}
	if config.TriggerDeadline == 0 {
		config.TriggerDeadline = DefaultTriggerDeadline
	}
	if config.Listen == "" {
		config.Listen = DefaultListen
	}
	if config.RPCServer == "" {
		config.RPCServer = "localhost" + DefaultListen
	}

	if config.Mnemonic == "" {
		mnemonic, err := NewMnemonic()
		if err != nil {
			return Config{}, err
		}
		config.Mnemonic = mnemonic
		if err := SaveConfig(path, config); err != nil {
			return Config{}, err
		}
	}
	return config, nil
}

func SaveConfig(path string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func NewMnemonic() (string, error) {
	entropy := make([]byte, 32)
	if _, err := rand.Read(entropy[:]); err != nil {
		return "", err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", err
	}
	color.Green("Generating new mnemonic:\n[ %v ]", mnemonic)
	return mnemonic, nil
}
