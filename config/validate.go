package config

import (
	"fmt"
	"strings"

	"github.com/Klingon-tech/klingnet-hdkey/internal/wallet"
)

// MaxDeriveCount caps derive.count.
const MaxDeriveCount = 1000

// Validate checks the config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if _, err := cfg.WalletNetwork(); err != nil {
		return fmt.Errorf("network must be %q, %q, %q or %q", Mainnet, Testnet, Regtest, Simnet)
	}
	if !wallet.ValidWordCount(cfg.Mnemonic.Words) {
		return fmt.Errorf("mnemonic.words must be 12, 15, 18, 21 or 24, got %d", cfg.Mnemonic.Words)
	}
	if _, err := cfg.DerivationPath(); err != nil {
		return fmt.Errorf("derive.path: %w", err)
	}
	if cfg.Derive.Count < 1 || cfg.Derive.Count > MaxDeriveCount {
		return fmt.Errorf("derive.count must be in range [1, %d]", MaxDeriveCount)
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}
