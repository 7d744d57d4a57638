package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadFile loads configuration from a .conf file.
// Format: key = value (one per line, # for comments)
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse key = value
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setConfigValue sets a config value by key.
func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	// Core
	case "network":
		cfg.Network = NetworkType(strings.ToLower(value))
	case "datadir":
		cfg.DataDir = value

	// Mnemonic
	case "mnemonic.words", "words":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Mnemonic.Words = n
	case "mnemonic.passphrase":
		cfg.Mnemonic.Passphrase = parseBool(value)

	// Derivation
	case "derive.path", "path":
		cfg.Derive.Path = value
	case "derive.count":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Derive.Count = n

	// WIF
	case "wif.compressed":
		cfg.WIF.Compressed = parseBool(value)

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	// Secrets have no conf key.
	case "mnemonic", "seed", "passphrase", "xprv", "wif":
		return fmt.Errorf("secrets cannot be stored in the config file")

	default:
		// Unknown keys are ignored
	}
	return nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// WriteDefaultConfig writes a default configuration file.
func WriteDefaultConfig(path string, network NetworkType) error {
	content := `# Klingnet HD Key Tool Configuration
#
# This file contains tool settings only. Mnemonics, passphrases and keys
# are never read from it.

# Network: mainnet, testnet, regtest or simnet
network = ` + string(network) + `

# Data directory (default: ~/.klingnet-hdkey)
# datadir = ~/.klingnet-hdkey

# ============================================================================
# Mnemonic
# ============================================================================

# Words in generated mnemonics: 12, 15, 18, 21 or 24
mnemonic.words = 24

# Prompt for a BIP-39 passphrase when turning a mnemonic into a seed
mnemonic.passphrase = false

# ============================================================================
# Derivation
# ============================================================================

# Derivation path (default: m/44'/<coin>'/0'/0/0 for the network)
# derive.path = m/44'/0'/0'/0/0

# Number of consecutive keys to derive
derive.count = 1

# ============================================================================
# WIF Export
# ============================================================================

wif.compressed = true

# ============================================================================
# Logging
# ============================================================================

log.level = info
# log.file =
log.json = false
`
	return os.WriteFile(path, []byte(content), 0644)
}
