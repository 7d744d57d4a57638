package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// Flags holds parsed command-line flags.
type Flags struct {
	// Commands
	Help    bool
	Version bool

	// Core
	Network string
	Testnet bool
	DataDir string
	Config  string

	// Mnemonic
	Words      int
	Passphrase bool

	// Derivation
	Path  string
	Count int

	// WIF
	Compressed bool

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Remaining args: the subcommand and its arguments.
	Args []string

	// Explicitly-set bool flags (for true/false overrides).
	SetPassphrase bool
	SetCompressed bool
	SetLogJSON    bool
}

// ParseFlags parses the global command-line flags. Parsing stops at the
// first positional argument, which names the subcommand.
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet("klingnet-hdkey", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Commands
	fs.BoolVar(&f.Help, "help", false, "Show help message")
	fs.BoolVar(&f.Help, "h", false, "Show help message (shorthand)")
	fs.BoolVar(&f.Version, "version", false, "Show version information")
	fs.BoolVar(&f.Version, "v", false, "Show version (shorthand)")

	// Core
	fs.StringVar(&f.Network, "network", "", "Network (mainnet, testnet, regtest, simnet)")
	fs.BoolVar(&f.Testnet, "testnet", false, "Use testnet (shorthand for --network=testnet)")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory path")
	fs.StringVar(&f.Config, "config", "", "Config file path")
	fs.StringVar(&f.Config, "c", "", "Config file path (shorthand)")

	// Mnemonic
	fs.IntVar(&f.Words, "words", 0, "Words in generated mnemonics")
	fs.BoolVar(&f.Passphrase, "passphrase", false, "Prompt for a BIP-39 passphrase")

	// Derivation
	fs.StringVar(&f.Path, "path", "", "Derivation path")
	fs.IntVar(&f.Count, "count", 0, "Number of consecutive keys to derive")

	// WIF
	fs.BoolVar(&f.Compressed, "compressed", true, "Export WIF for a compressed public key")

	// Logging
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if f.Testnet {
		f.Network = string(Testnet)
	}
	f.SetPassphrase = isFlagSet(fs, "passphrase")
	f.SetCompressed = isFlagSet(fs, "compressed")
	f.SetLogJSON = isFlagSet(fs, "log-json")

	f.Args = fs.Args()
	return f, nil
}

// ApplyFlags applies command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) {
	// Core
	if f.Network != "" {
		cfg.Network = NetworkType(strings.ToLower(f.Network))
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}

	// Mnemonic
	if f.Words != 0 {
		cfg.Mnemonic.Words = f.Words
	}
	if f.SetPassphrase {
		cfg.Mnemonic.Passphrase = f.Passphrase
	}

	// Derivation
	if f.Path != "" {
		cfg.Derive.Path = f.Path
	}
	if f.Count != 0 {
		cfg.Derive.Count = f.Count
	}

	// WIF
	if f.SetCompressed {
		cfg.WIF.Compressed = f.Compressed
	}

	// Logging
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
}

// isFlagSet checks if a flag was explicitly set.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// PrintUsage writes the command-line help to w.
func PrintUsage(w io.Writer) {
	usage := `Klingnet HD Key Tool - BIP-39 mnemonics and BIP-32 key derivation

Usage:
  klingnet-hdkey [options] <command> [arguments]

Commands:
  mnemonic [entropy-hex]   Generate a mnemonic (random, or from given entropy)
  seed                     Print the BIP-39 seed for a mnemonic
  derive                   Derive extended keys and WIFs from a mnemonic
  wif <hex-key | wif>      Encode a raw private key, or decode a WIF
  inspect <xprv | xpub>    Show the fields of an extended key
  init                     Write a default config file

Core Options:
  --help, -h      Show this help message
  --version, -v   Show version information
  --network       Network: mainnet (default), testnet, regtest, simnet
  --testnet       Shorthand for --network=testnet
  --datadir       Data directory (default: ~/.klingnet-hdkey)
  --config, -c    Config file path (default: <datadir>/klingnet-hdkey.conf)

Mnemonic Options:
  --words         Words in generated mnemonics (default: 24)
  --passphrase    Prompt for a BIP-39 passphrase

Derivation Options:
  --path          Derivation path (default: m/44'/<coin>'/0'/0/0)
  --count         Consecutive keys to derive (default: 1)
  --compressed    WIF for a compressed public key (default: true)

Logging Options:
  --log-level     Log level: debug, info, warn, error (default: info)
  --log-file      Log file path (default: stderr only)
  --log-json      Output logs as JSON

Examples:
  # New 12-word mnemonic
  klingnet-hdkey --words=12 mnemonic

  # First five testnet receive keys
  klingnet-hdkey --testnet --count=5 derive

  # Child of an extended public key
  klingnet-hdkey --path=m/0/7 inspect xpub661MyMwAqRbc...

The mnemonic is read from the terminal (or stdin when piped), never
from flags or the config file.
`
	fmt.Fprint(w, usage)
}

// Load loads configuration with the following precedence:
// 1. Default values
// 2. Config file
// 3. Command-line flags
func Load(args []string) (*Config, *Flags, error) {
	flags, err := ParseFlags(args)
	if err != nil {
		return nil, nil, err
	}
	if flags.Help || flags.Version {
		return nil, flags, nil
	}

	// Determine network first (needed for defaults)
	cfg := Default(NetworkType(strings.ToLower(flags.Network)))

	// Override datadir if specified
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}

	// Determine config file path
	configPath := flags.Config
	if configPath == "" {
		configPath = cfg.ConfigFile()
	}

	// Load config file
	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config file: %w", err)
	}

	// Apply file config
	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, nil, fmt.Errorf("applying config file: %w", err)
	}

	// Apply flags (highest precedence)
	ApplyFlags(cfg, flags)
	if err := Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, flags, nil
}

// EnsureDataDirs creates the data directory structure and a default config
// file if they don't already exist. It is idempotent.
func EnsureDataDirs(cfg *Config) error {
	for _, dir := range []string{cfg.DataDir, cfg.LogsDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	configPath := cfg.ConfigFile()
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := WriteDefaultConfig(configPath, cfg.Network); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
	}

	return nil
}
