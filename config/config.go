// Package config handles klingnet-hdkey configuration.
//
// Settings are layered: built-in defaults, then the conf file, then
// command-line flags. Secrets (mnemonics, passphrases, keys) are never
// read from the conf file.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Klingon-tech/klingnet-hdkey/internal/wallet"
)

// NetworkType names the network whose version bytes tag exported keys.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
	Regtest NetworkType = "regtest"
	Simnet  NetworkType = "simnet"
)

// Config holds the tool's runtime configuration.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// Mnemonic generation
	Mnemonic MnemonicConfig

	// Key derivation
	Derive DeriveConfig

	// WIF export
	WIF WIFConfig

	// Logging
	Log LogConfig
}

// MnemonicConfig holds mnemonic and seed settings.
type MnemonicConfig struct {
	Words      int  `conf:"mnemonic.words"`      // 12, 15, 18, 21 or 24
	Passphrase bool `conf:"mnemonic.passphrase"` // Prompt for a BIP-39 passphrase
}

// DeriveConfig holds derivation settings.
type DeriveConfig struct {
	Path  string `conf:"derive.path"`  // Empty selects m/44'/coin'/0'/0/0 for the network
	Count int    `conf:"derive.count"` // Consecutive keys to derive from the last path index
}

// WIFConfig holds WIF export settings.
type WIFConfig struct {
	Compressed bool `conf:"wif.compressed"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// WalletNetwork resolves the configured network.
func (c *Config) WalletNetwork() (*wallet.Network, error) {
	return wallet.NetworkByName(string(c.Network))
}

// DerivationPath returns the configured path, or the first BIP-44 receive
// path for the network when none is set.
func (c *Config) DerivationPath() (wallet.Path, error) {
	if c.Derive.Path != "" {
		return wallet.ParsePath(c.Derive.Path)
	}
	net, err := c.WalletNetwork()
	if err != nil {
		return nil, err
	}
	return wallet.BIP44Path(net.CoinType, 0, wallet.ChangeExternal, 0), nil
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.klingnet-hdkey
//	macOS:   ~/Library/Application Support/Klingnet-HDKey
//	Windows: %APPDATA%\Klingnet-HDKey
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingnet-hdkey"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Klingnet-HDKey")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Klingnet-HDKey")
		}
		return filepath.Join(home, "AppData", "Roaming", "Klingnet-HDKey")
	default:
		return filepath.Join(home, ".klingnet-hdkey")
	}
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "klingnet-hdkey.conf")
}
