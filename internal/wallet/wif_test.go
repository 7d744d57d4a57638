package wallet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Klingon-tech/klingnet-hdkey/pkg/base58"
	"github.com/Klingon-tech/klingnet-hdkey/pkg/crypto"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

const (
	wifTestKey          = "0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d"
	wifTestUncompressed = "5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ"
)

func TestEncodeWIF_KnownVector(t *testing.T) {
	got, err := EncodeWIF(mustHex(t, wifTestKey), false, MainNet)
	if err != nil {
		t.Fatalf("EncodeWIF() error: %v", err)
	}
	if got != wifTestUncompressed {
		t.Errorf("EncodeWIF() = %s, want %s", got, wifTestUncompressed)
	}

	w, err := DecodeWIF(wifTestUncompressed)
	if err != nil {
		t.Fatalf("DecodeWIF() error: %v", err)
	}
	if !bytes.Equal(w.PrivateKey, mustHex(t, wifTestKey)) {
		t.Errorf("private key = %x", w.PrivateKey)
	}
	if w.Compressed {
		t.Error("uncompressed WIF decoded as compressed")
	}
	if w.Network != MainNet {
		t.Errorf("network = %v, want mainnet", w.Network)
	}
}

func TestEncodeWIF_Prefixes(t *testing.T) {
	key := mustHex(t, wifTestKey)
	tests := []struct {
		net        *Network
		compressed bool
		prefixes   string
	}{
		{MainNet, false, "5"},
		{MainNet, true, "KL"},
		{TestNet, false, "9"},
		{TestNet, true, "c"},
	}

	for _, tt := range tests {
		s, err := EncodeWIF(key, tt.compressed, tt.net)
		if err != nil {
			t.Fatalf("EncodeWIF() error: %v", err)
		}
		if !strings.ContainsRune(tt.prefixes, rune(s[0])) {
			t.Errorf("%s compressed=%v: %s should start with one of %q", tt.net, tt.compressed, s, tt.prefixes)
		}
	}
}

func TestEncodeWIF_MatchesBtcutil(t *testing.T) {
	key := mustHex(t, wifTestKey)
	nets := map[*Network]*chaincfg.Params{
		MainNet: &chaincfg.MainNetParams,
		TestNet: &chaincfg.TestNet3Params,
		SimNet:  &chaincfg.SimNetParams,
	}

	for net, params := range nets {
		for _, compressed := range []bool{false, true} {
			s, err := EncodeWIF(key, compressed, net)
			if err != nil {
				t.Fatalf("EncodeWIF() error: %v", err)
			}
			ref, err := btcutil.DecodeWIF(s)
			if err != nil {
				t.Fatalf("btcutil.DecodeWIF(%s) error: %v", s, err)
			}
			if !bytes.Equal(ref.PrivKey.Serialize(), key) {
				t.Errorf("%s: btcutil decoded key %x", net, ref.PrivKey.Serialize())
			}
			if ref.CompressPubKey != compressed {
				t.Errorf("%s: btcutil compressed = %v, want %v", net, ref.CompressPubKey, compressed)
			}
			if !ref.IsForNet(params) {
				t.Errorf("%s: btcutil reports a different network", net)
			}
			if ref.String() != s {
				t.Errorf("%s: btcutil re-encoded %s, want %s", net, ref.String(), s)
			}
		}
	}
}

func TestDecodeWIF_RoundTrip(t *testing.T) {
	key := mustHex(t, wifTestKey)
	for _, net := range []*Network{MainNet, TestNet, SimNet} {
		for _, compressed := range []bool{false, true} {
			s, err := EncodeWIF(key, compressed, net)
			if err != nil {
				t.Fatalf("EncodeWIF() error: %v", err)
			}
			w, err := DecodeWIF(s)
			if err != nil {
				t.Fatalf("DecodeWIF() error: %v", err)
			}
			if !bytes.Equal(w.PrivateKey, key) || w.Compressed != compressed || w.Network != net {
				t.Errorf("round trip mismatch for %s compressed=%v", net, compressed)
			}
			if w.String() != s {
				t.Errorf("String() = %s, want %s", w.String(), s)
			}
		}
	}
}

func TestDecodeWIF_Errors(t *testing.T) {
	key := mustHex(t, wifTestKey)
	payload := func(version byte, k []byte, suffix ...byte) string {
		p := append([]byte{version}, k...)
		return base58.CheckEncode(append(p, suffix...))
	}
	badChecksum := []byte(wifTestUncompressed)
	badChecksum[len(badChecksum)-1] = 'K'

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"bad character", "5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvy0J", ErrInvalidCharacter},
		{"bad checksum", string(badChecksum), ErrInvalidChecksum},
		{"too short", payload(0x80, key[:31]), ErrInvalidLength},
		{"too long", payload(0x80, key, 0x01, 0x00), ErrInvalidLength},
		{"bad compression flag", payload(0x80, key, 0x02), ErrInvalidLength},
		{"unknown version", payload(0x01, key), ErrUnknownNetwork},
		{"zero key", payload(0x80, make([]byte, 32)), ErrInvalidKeyData},
		{"key above order", payload(0x80, crypto.CurveOrder().Bytes(), 0x01), ErrInvalidKeyData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeWIF(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("DecodeWIF() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEncodeWIF_InvalidLength(t *testing.T) {
	if _, err := EncodeWIF(make([]byte, 31), true, MainNet); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("error = %v, want ErrInvalidLength", err)
	}
}

func TestEncodeWIF_InvalidScalar(t *testing.T) {
	tests := []struct {
		name string
		key  []byte
	}{
		{"zero", make([]byte, 32)},
		{"curve order", crypto.CurveOrder().Bytes()},
		{"all ones", bytes.Repeat([]byte{0xff}, 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, compressed := range []bool{false, true} {
				s, err := EncodeWIF(tt.key, compressed, MainNet)
				if !errors.Is(err, ErrInvalidKeyData) {
					t.Errorf("EncodeWIF() = %q, %v, want ErrInvalidKeyData", s, err)
				}
			}
		})
	}
}

func TestWIF_PublicKey(t *testing.T) {
	w, err := DecodeWIF(wifTestUncompressed)
	if err != nil {
		t.Fatalf("DecodeWIF() error: %v", err)
	}
	pub, err := w.PublicKey()
	if err != nil {
		t.Fatalf("PublicKey() error: %v", err)
	}
	want, _ := crypto.PublicKeyFromPrivate(w.PrivateKey)
	if !bytes.Equal(pub, want) {
		t.Errorf("PublicKey() = %x, want %x", pub, want)
	}
}

func TestExtendedKey_WIF(t *testing.T) {
	master := vector1Master(t)

	s, err := master.WIF(true)
	if err != nil {
		t.Fatalf("WIF() error: %v", err)
	}
	w, err := DecodeWIF(s)
	if err != nil {
		t.Fatalf("DecodeWIF() error: %v", err)
	}
	if !bytes.Equal(w.PrivateKey, master.PrivateKeyBytes()) || !w.Compressed {
		t.Error("extended key WIF should carry the compressed private key")
	}

	if _, err := master.Neuter().WIF(true); !errors.Is(err, ErrNotPrivate) {
		t.Errorf("error = %v, want ErrNotPrivate", err)
	}
}
