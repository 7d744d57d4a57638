package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/Klingon-tech/klingnet-hdkey/config"
	"github.com/Klingon-tech/klingnet-hdkey/internal/log"
	"github.com/Klingon-tech/klingnet-hdkey/internal/wallet"
)

// app runs one subcommand against a loaded config.
type app struct {
	cfg     *config.Config
	net     *wallet.Network
	out     io.Writer
	secrets secretReader
}

func newApp(cfg *config.Config, out io.Writer, secrets secretReader) (*app, error) {
	net, err := cfg.WalletNetwork()
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, net: net, out: out, secrets: secrets}, nil
}

func (a *app) run(cmd string, args []string) error {
	log.CLI.Debug().Str("command", cmd).Str("network", a.net.Name).Msg("running command")

	switch cmd {
	case "mnemonic":
		return a.cmdMnemonic(args)
	case "seed":
		return a.cmdSeed()
	case "derive":
		return a.cmdDerive()
	case "wif":
		return a.cmdWIF(args)
	case "inspect":
		return a.cmdInspect(args)
	case "init":
		return a.cmdInit()
	case "help":
		config.PrintUsage(a.out)
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// ── mnemonic ────────────────────────────────────────────────────────────

func (a *app) cmdMnemonic(args []string) error {
	var (
		m   wallet.Mnemonic
		err error
	)
	if len(args) > 0 {
		entropy, decErr := hex.DecodeString(args[0])
		if decErr != nil {
			return fmt.Errorf("entropy must be hex: %w", decErr)
		}
		m, err = wallet.EncodeMnemonic(entropy)
		clear(entropy)
	} else {
		m, err = wallet.GenerateMnemonic(a.cfg.Mnemonic.Words)
	}
	if err != nil {
		return fmt.Errorf("generate mnemonic: %w", err)
	}

	fmt.Fprintln(a.out, m.String())
	return nil
}

// ── seed ────────────────────────────────────────────────────────────────

func (a *app) cmdSeed() error {
	seed, err := a.readSeed()
	if err != nil {
		return err
	}
	defer clear(seed)

	fmt.Fprintln(a.out, hex.EncodeToString(seed))
	return nil
}

// readSeed prompts for a mnemonic (and a passphrase when configured) and
// derives the BIP-39 seed.
func (a *app) readSeed() ([]byte, error) {
	phrase, err := a.secrets.ReadSecret("Mnemonic: ")
	if err != nil {
		return nil, fmt.Errorf("read mnemonic: %w", err)
	}
	m, err := wallet.ParseMnemonic(phrase)
	if err != nil {
		return nil, fmt.Errorf("parse mnemonic: %w", err)
	}

	var passphrase string
	if a.cfg.Mnemonic.Passphrase {
		passphrase, err = a.secrets.ReadSecret("Passphrase: ")
		if err != nil {
			return nil, fmt.Errorf("read passphrase: %w", err)
		}
		confirm, err := a.secrets.ReadSecret("Confirm passphrase: ")
		if err != nil {
			return nil, fmt.Errorf("read passphrase: %w", err)
		}
		if passphrase != confirm {
			return nil, fmt.Errorf("passphrases do not match")
		}
	}

	done := log.Benchmark("seed")
	seed := m.Seed(passphrase)
	done()

	log.Wallet.Debug().Int("words", m.Len()).Bool("passphrase", passphrase != "").Msg("derived seed")
	return seed, nil
}

// ── derive ──────────────────────────────────────────────────────────────

func (a *app) cmdDerive() error {
	path, err := a.cfg.DerivationPath()
	if err != nil {
		return err
	}

	seed, err := a.readSeed()
	if err != nil {
		return err
	}
	master, err := wallet.NewMasterKey(seed, a.net)
	clear(seed)
	if err != nil {
		return fmt.Errorf("derive master key: %w", err)
	}
	defer master.Zero()

	if len(path) == 0 {
		return a.printKey(path, master)
	}

	parentPath, last := path[:len(path)-1], path[len(path)-1]
	parent, err := master.DerivePath(parentPath)
	if err != nil {
		return err
	}

	next := last.Index
	for n := 0; n < a.cfg.Derive.Count; n++ {
		child, used, err := wallet.NextValidChild(parent, next, last.Hardened)
		if err != nil {
			return fmt.Errorf("derive %s: %w", parentPath, err)
		}
		if used != next {
			log.Wallet.Warn().Uint32("index", next).Uint32("used", used).Msg("skipped unusable child index")
		}

		childPath := append(append(wallet.Path{}, parentPath...), wallet.PathSegment{Index: used, Hardened: last.Hardened})
		if err := a.printKey(childPath, child); err != nil {
			return err
		}
		child.Zero()
		next = used + 1
	}
	return nil
}

func (a *app) printKey(path wallet.Path, key *wallet.ExtendedKey) error {
	wif, err := key.WIF(a.cfg.WIF.Compressed)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Path:       %s\n", path)
	fmt.Fprintf(a.out, "Extended:   %s\n", key)
	fmt.Fprintf(a.out, "Public:     %s\n", key.Neuter())
	fmt.Fprintf(a.out, "WIF:        %s\n", wif)
	fmt.Fprintf(a.out, "Public key: %x\n", key.PublicKeyBytes())
	fmt.Fprintln(a.out)
	return nil
}

// ── wif ─────────────────────────────────────────────────────────────────

func (a *app) cmdWIF(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: klingnet-hdkey wif <hex-key | wif>")
	}

	if raw, err := hex.DecodeString(args[0]); err == nil {
		defer clear(raw)
		s, err := wallet.EncodeWIF(raw, a.cfg.WIF.Compressed, a.net)
		if err != nil {
			return fmt.Errorf("encode wif: %w", err)
		}
		fmt.Fprintln(a.out, s)
		return nil
	}

	w, err := wallet.DecodeWIF(args[0])
	if err != nil {
		return err
	}
	defer clear(w.PrivateKey)
	pub, err := w.PublicKey()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Network:     %s\n", w.Network)
	fmt.Fprintf(a.out, "Compressed:  %t\n", w.Compressed)
	fmt.Fprintf(a.out, "Private key: %x\n", w.PrivateKey)
	fmt.Fprintf(a.out, "Public key:  %x\n", pub)
	return nil
}

// ── inspect ─────────────────────────────────────────────────────────────

func (a *app) cmdInspect(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: klingnet-hdkey inspect <xprv | xpub>")
	}

	key, err := wallet.ParseExtendedKey(strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}
	defer key.Zero()

	if a.cfg.Derive.Path != "" {
		key, err = key.DerivePathString(a.cfg.Derive.Path)
		if err != nil {
			return err
		}
		defer key.Zero()
	}

	kind := "public"
	if key.IsPrivate() {
		kind = "private"
	}
	parentFP := key.ParentFingerprint()
	fp := key.Fingerprint()

	fmt.Fprintf(a.out, "Network:      %s\n", key.Network())
	fmt.Fprintf(a.out, "Type:         %s\n", kind)
	fmt.Fprintf(a.out, "Depth:        %d\n", key.Depth())
	fmt.Fprintf(a.out, "Parent FP:    %x\n", parentFP[:])
	fmt.Fprintf(a.out, "Child number: %s\n", childNumberString(key.ChildNumber()))
	fmt.Fprintf(a.out, "Chain code:   %x\n", key.ChainCode())
	fmt.Fprintf(a.out, "Public key:   %x\n", key.PublicKeyBytes())
	fmt.Fprintf(a.out, "Fingerprint:  %x\n", fp[:])
	if a.cfg.Derive.Path != "" {
		fmt.Fprintf(a.out, "Derived:      %s\n", key)
	}
	return nil
}

func childNumberString(n uint32) string {
	seg := wallet.PathSegment{Index: n &^ wallet.HardenedKeyStart, Hardened: n >= wallet.HardenedKeyStart}
	return seg.String()
}

// ── init ────────────────────────────────────────────────────────────────

func (a *app) cmdInit() error {
	if err := config.EnsureDataDirs(a.cfg); err != nil {
		return err
	}
	log.Config.Info().Str("file", a.cfg.ConfigFile()).Msg("config ready")
	fmt.Fprintln(a.out, a.cfg.ConfigFile())
	return nil
}
