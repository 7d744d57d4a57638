package wallet

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-hdkey/pkg/base58"
	"github.com/Klingon-tech/klingnet-hdkey/pkg/crypto"
)

// compressedFlag follows the key in a WIF payload when the matching public
// key is compressed.
const compressedFlag = 0x01

// WIF is a private key in Wallet Import Format.
type WIF struct {
	PrivateKey []byte
	Compressed bool
	Network    *Network
}

// EncodeWIF encodes a 32-byte private key as
// Base58Check(version | key | [0x01 if compressed]).
func EncodeWIF(priv []byte, compressed bool, net *Network) (string, error) {
	if len(priv) != crypto.PrivateKeySize {
		return "", fmt.Errorf("%w: private key must be %d bytes, got %d", ErrInvalidLength, crypto.PrivateKeySize, len(priv))
	}
	if !crypto.ValidPrivateKey(priv) {
		return "", fmt.Errorf("%w: private key out of range", ErrInvalidKeyData)
	}
	if net == nil {
		net = MainNet
	}
	payload := make([]byte, 0, 1+crypto.PrivateKeySize+1)
	payload = append(payload, net.WIFVersion)
	payload = append(payload, priv...)
	if compressed {
		payload = append(payload, compressedFlag)
	}
	s := base58.CheckEncode(payload)
	clear(payload)
	return s, nil
}

// DecodeWIF parses a WIF string.
func DecodeWIF(s string) (*WIF, error) {
	payload, err := base58.CheckDecode(s)
	if err != nil {
		return nil, fmt.Errorf("decode wif: %w", err)
	}

	var compressed bool
	switch len(payload) {
	case 1 + crypto.PrivateKeySize:
	case 1 + crypto.PrivateKeySize + 1:
		if payload[len(payload)-1] != compressedFlag {
			return nil, fmt.Errorf("%w: bad compression flag %#02x", ErrInvalidLength, payload[len(payload)-1])
		}
		compressed = true
	default:
		return nil, fmt.Errorf("%w: wif payload is %d bytes", ErrInvalidLength, len(payload))
	}

	net, err := networkByWIFVersion(payload[0])
	if err != nil {
		return nil, err
	}
	key := payload[1 : 1+crypto.PrivateKeySize]
	if !crypto.ValidPrivateKey(key) {
		return nil, fmt.Errorf("%w: private key out of range", ErrInvalidKeyData)
	}
	return &WIF{
		PrivateKey: append([]byte(nil), key...),
		Compressed: compressed,
		Network:    net,
	}, nil
}

// String re-encodes the WIF.
func (w *WIF) String() string {
	s, err := EncodeWIF(w.PrivateKey, w.Compressed, w.Network)
	if err != nil {
		return ""
	}
	return s
}

// PublicKey returns the compressed public key for the WIF's private key.
func (w *WIF) PublicKey() ([]byte, error) {
	return crypto.PublicKeyFromPrivate(w.PrivateKey)
}

// WIF exports the key's private scalar in Wallet Import Format.
func (k *ExtendedKey) WIF(compressed bool) (string, error) {
	if !k.IsPrivate() {
		return "", ErrNotPrivate
	}
	return EncodeWIF(k.privateKey, compressed, k.net)
}
