package config

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		Mnemonic: MnemonicConfig{
			Words:      24,
			Passphrase: false,
		},
		Derive: DeriveConfig{
			Count: 1,
		},
		WIF: WIFConfig{
			Compressed: true,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Mainnet, "":
		return DefaultMainnet()
	case Testnet:
		return DefaultTestnet()
	default:
		cfg := DefaultMainnet()
		cfg.Network = network
		return cfg
	}
}
