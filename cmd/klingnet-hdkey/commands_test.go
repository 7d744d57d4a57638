package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Klingon-tech/klingnet-hdkey/config"
	"github.com/Klingon-tech/klingnet-hdkey/internal/wallet"
)

const abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// fakeSecrets returns queued answers in order.
type fakeSecrets struct {
	answers []string
	prompts []string
}

func (f *fakeSecrets) ReadSecret(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.answers) == 0 {
		return "", errors.New("no more input")
	}
	s := f.answers[0]
	f.answers = f.answers[1:]
	return s, nil
}

func newTestApp(t *testing.T, cfg *config.Config, answers ...string) (*app, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a, err := newApp(cfg, &out, &fakeSecrets{answers: answers})
	if err != nil {
		t.Fatalf("newApp() error: %v", err)
	}
	return a, &out
}

func TestCmdMnemonic_FromEntropy(t *testing.T) {
	a, out := newTestApp(t, config.Default(config.Mainnet))
	if err := a.run("mnemonic", []string{"00000000000000000000000000000000"}); err != nil {
		t.Fatalf("mnemonic error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != abandonMnemonic {
		t.Errorf("mnemonic = %q, want %q", got, abandonMnemonic)
	}
}

func TestCmdMnemonic_Random(t *testing.T) {
	cfg := config.Default(config.Mainnet)
	cfg.Mnemonic.Words = 15
	a, out := newTestApp(t, cfg)
	if err := a.run("mnemonic", nil); err != nil {
		t.Fatalf("mnemonic error: %v", err)
	}
	phrase := strings.TrimSpace(out.String())
	if n := len(strings.Fields(phrase)); n != 15 {
		t.Errorf("got %d words, want 15", n)
	}
	if !wallet.ValidateMnemonic(phrase) {
		t.Error("generated mnemonic should validate")
	}
}

func TestCmdMnemonic_BadEntropy(t *testing.T) {
	a, _ := newTestApp(t, config.Default(config.Mainnet))
	if err := a.run("mnemonic", []string{"zz"}); err == nil {
		t.Error("non-hex entropy should fail")
	}
	if err := a.run("mnemonic", []string{"0011"}); !errors.Is(err, wallet.ErrInvalidLength) {
		t.Errorf("error = %v, want ErrInvalidLength", err)
	}
}

func TestCmdSeed(t *testing.T) {
	cfg := config.Default(config.Mainnet)
	cfg.Mnemonic.Passphrase = true
	a, out := newTestApp(t, cfg, abandonMnemonic, "TREZOR", "TREZOR")

	if err := a.run("seed", nil); err != nil {
		t.Fatalf("seed error: %v", err)
	}
	want := "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04"
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("seed = %s, want %s", got, want)
	}
}

func TestCmdSeed_Errors(t *testing.T) {
	cfg := config.Default(config.Mainnet)
	cfg.Mnemonic.Passphrase = true

	a, _ := newTestApp(t, cfg, abandonMnemonic, "one", "two")
	if err := a.run("seed", nil); err == nil || !strings.Contains(err.Error(), "do not match") {
		t.Errorf("error = %v, want passphrase mismatch", err)
	}

	a, _ = newTestApp(t, cfg, "abandon abandon abandon")
	if err := a.run("seed", nil); !errors.Is(err, wallet.ErrInvalidWordCount) {
		t.Errorf("error = %v, want ErrInvalidWordCount", err)
	}

	a, _ = newTestApp(t, cfg)
	if err := a.run("seed", nil); err == nil {
		t.Error("missing input should fail")
	}
}

func TestCmdDerive(t *testing.T) {
	cfg := config.Default(config.Mainnet)
	cfg.Derive.Count = 3
	a, out := newTestApp(t, cfg, abandonMnemonic)

	if err := a.run("derive", nil); err != nil {
		t.Fatalf("derive error: %v", err)
	}

	seed, err := wallet.SeedFromMnemonic(abandonMnemonic, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	master, err := wallet.NewMasterKey(seed, wallet.MainNet)
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}

	got := out.String()
	for i := uint32(0); i < 3; i++ {
		key, err := master.DeriveBIP44(0, wallet.ChangeExternal, i)
		if err != nil {
			t.Fatalf("DeriveBIP44() error: %v", err)
		}
		wif, _ := key.WIF(true)
		path := wallet.BIP44Path(0, 0, wallet.ChangeExternal, i).String()
		for _, want := range []string{path, key.String(), key.Neuter().String(), wif} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %s", want)
			}
		}
	}
}

func TestCmdDerive_Master(t *testing.T) {
	cfg := config.Default(config.Testnet)
	cfg.Derive.Path = "m"
	a, out := newTestApp(t, cfg, abandonMnemonic)

	if err := a.run("derive", nil); err != nil {
		t.Fatalf("derive error: %v", err)
	}
	if !strings.Contains(out.String(), "tprv") || !strings.Contains(out.String(), "Path:       m\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCmdWIF(t *testing.T) {
	a, out := newTestApp(t, config.Default(config.Mainnet))
	a.cfg.WIF.Compressed = false

	if err := a.run("wif", []string{"0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d"}); err != nil {
		t.Fatalf("wif encode error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ" {
		t.Errorf("wif = %s", got)
	}

	out.Reset()
	if err := a.run("wif", []string{"5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ"}); err != nil {
		t.Fatalf("wif decode error: %v", err)
	}
	for _, want := range []string{"mainnet", "false", "0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}

	if err := a.run("wif", nil); err == nil {
		t.Error("missing argument should fail")
	}
	if err := a.run("wif", []string{"5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTK"}); !errors.Is(err, wallet.ErrInvalidChecksum) {
		t.Errorf("error = %v, want ErrInvalidChecksum", err)
	}
}

func TestCmdInspect(t *testing.T) {
	const xpub = "xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw"

	a, out := newTestApp(t, config.Default(config.Mainnet))
	if err := a.run("inspect", []string{xpub}); err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	for _, want := range []string{"public", "Depth:        1", "3442193e", "0'"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out.Reset()
	a.cfg.Derive.Path = "m/1"
	if err := a.run("inspect", []string{xpub}); err != nil {
		t.Fatalf("inspect with path error: %v", err)
	}
	want := "xpub6ASuArnXKPbfEwhqN6e3mwBcDTgzisQN1wXN9BJcM47sSikHjJf3UFHKkNAWbWMiGj7Wf5uMash7SyYq527Hqck2AxYysAA7xmALppuCkwQ"
	if !strings.Contains(out.String(), want) {
		t.Errorf("derived key missing:\n%s", out)
	}

	a.cfg.Derive.Path = "m/1'"
	if err := a.run("inspect", []string{xpub}); !errors.Is(err, wallet.ErrDeriveHardenedFromPublic) {
		t.Errorf("error = %v, want ErrDeriveHardenedFromPublic", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	a, _ := newTestApp(t, config.Default(config.Mainnet))
	if err := a.run("frobnicate", nil); err == nil {
		t.Error("unknown command should fail")
	}
}

func TestCmdInit(t *testing.T) {
	cfg := config.Default(config.Mainnet)
	cfg.DataDir = t.TempDir()
	a, out := newTestApp(t, cfg)

	if err := a.run("init", nil); err != nil {
		t.Fatalf("init error: %v", err)
	}
	if strings.TrimSpace(out.String()) != cfg.ConfigFile() {
		t.Errorf("init printed %q, want %q", out, cfg.ConfigFile())
	}
}
