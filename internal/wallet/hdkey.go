package wallet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Klingon-tech/klingnet-hdkey/pkg/crypto"
)

// HardenedKeyStart is the first hardened child number (2^31).
const HardenedKeyStart uint32 = 0x80000000

// Seed length bounds accepted by NewMasterKey (BIP-32).
const (
	MinSeedSize = 16
	MaxSeedSize = 64
)

// ChainCodeSize is the length of a BIP-32 chain code.
const ChainCodeSize = 32

// masterHMACKey keys the HMAC that turns a seed into the master key.
var masterHMACKey = []byte("Bitcoin seed")

// BIP-44 derivation path constants.
// Full path: m/44'/coin_type'/account'/change/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = HardenedKeyStart + 44

	// ChangeExternal is for receiving addresses.
	ChangeExternal = 0

	// ChangeInternal is for change addresses.
	ChangeInternal = 1
)

// ExtendedKey is a BIP-32 extended key: a private scalar or compressed
// public key plus the chain code and metadata needed to derive children.
// Values are immutable; derivation returns new keys.
type ExtendedKey struct {
	net        *Network
	depth      uint8
	parentFP   [4]byte
	childNum   uint32
	chainCode  [ChainCodeSize]byte
	privateKey []byte // 32-byte scalar, nil for public keys
	publicKey  []byte // 33-byte compressed point
}

func newExtendedKey(net *Network, depth uint8, parentFP [4]byte, childNum uint32, chainCode, priv, pub []byte) (*ExtendedKey, error) {
	k := &ExtendedKey{
		net:      net,
		depth:    depth,
		parentFP: parentFP,
		childNum: childNum,
	}
	copy(k.chainCode[:], chainCode)
	if priv != nil {
		var err error
		pub, err = crypto.PublicKeyFromPrivate(priv)
		if err != nil {
			return nil, err
		}
		k.privateKey = append([]byte(nil), priv...)
	}
	k.publicKey = append([]byte(nil), pub...)
	return k, nil
}

// NewMasterKey creates a master HD key from a seed. A nil network selects
// MainNet.
func NewMasterKey(seed []byte, net *Network) (*ExtendedKey, error) {
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, fmt.Errorf("%w: seed must be %d to %d bytes, got %d", ErrInvalidLength, MinSeedSize, MaxSeedSize, len(seed))
	}
	if net == nil {
		net = MainNet
	}

	I := crypto.HMACSHA512(masterHMACKey, seed)
	il, ir := I[:32], I[32:]
	if !crypto.ValidPrivateKey(il) {
		return nil, ErrInvalidMasterKey
	}

	master, err := newExtendedKey(net, 0, [4]byte{}, 0, ir, il, nil)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return master, nil
}

// Child derives the child at index, hardened or not. index must be below
// 2^31; hardening is selected by the flag, not by the top bit.
func (k *ExtendedKey) Child(index uint32, hardened bool) (*ExtendedKey, error) {
	if index >= HardenedKeyStart {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if hardened {
		index |= HardenedKeyStart
	}
	return k.DeriveChild(index)
}

// DeriveChild derives a child key at the given child number.
// For hardened derivation, add HardenedKeyStart to the index.
//
// ErrInvalidChildKey is returned for the rare child numbers whose key is
// unusable; the caller should continue with the next index.
func (k *ExtendedKey) DeriveChild(childNum uint32) (*ExtendedKey, error) {
	hardened := childNum >= HardenedKeyStart
	if hardened && !k.IsPrivate() {
		return nil, ErrDeriveHardenedFromPublic
	}
	if k.depth == 255 {
		return nil, fmt.Errorf("derive child %d: maximum depth reached", childNum)
	}

	data := make([]byte, 0, 1+crypto.PublicKeySize+4)
	if hardened {
		data = append(data, 0x00)
		data = append(data, k.privateKey...)
	} else {
		data = append(data, k.publicKey...)
	}
	data = binary.BigEndian.AppendUint32(data, childNum)

	I := crypto.HMACSHA512(k.chainCode[:], data)
	clear(data)
	il, ir := I[:32], I[32:]
	fp := k.Fingerprint()

	if k.IsPrivate() {
		childKey, err := crypto.AddPrivateKeys(il, k.privateKey)
		if err != nil {
			return nil, fmt.Errorf("%w: child %d: %v", ErrInvalidChildKey, childNum, err)
		}
		return newExtendedKey(k.net, k.depth+1, fp, childNum, ir, childKey, nil)
	}

	childPub, err := crypto.AddPublicKeyTweak(il, k.publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: child %d: %v", ErrInvalidChildKey, childNum, err)
	}
	return newExtendedKey(k.net, k.depth+1, fp, childNum, ir, nil, childPub)
}

// childAt is the derivation NextValidChild steps through.
var childAt = (*ExtendedKey).Child

// NextValidChild derives the first usable child at or after index, skipping
// indices that fail with ErrInvalidChildKey. It returns the index used.
func NextValidChild(parent *ExtendedKey, index uint32, hardened bool) (*ExtendedKey, uint32, error) {
	for i := index; i < HardenedKeyStart; i++ {
		child, err := childAt(parent, i, hardened)
		if errors.Is(err, ErrInvalidChildKey) {
			continue
		}
		if err != nil {
			return nil, 0, err
		}
		return child, i, nil
	}
	return nil, 0, fmt.Errorf("%w: no usable child at or after %d", ErrIndexOutOfRange, index)
}

// DeriveBIP44 derives the key at m/44'/coin'/account'/change/index from a
// master key, using the coin type of the key's network.
func (k *ExtendedKey) DeriveBIP44(account, change, index uint32) (*ExtendedKey, error) {
	return k.DerivePath(BIP44Path(k.net.CoinType, account, change, index))
}

// Neuter returns a public-key-only copy (for watch-only wallets).
func (k *ExtendedKey) Neuter() *ExtendedKey {
	if !k.IsPrivate() {
		return k
	}
	pub := *k
	pub.privateKey = nil
	pub.publicKey = append([]byte(nil), k.publicKey...)
	return &pub
}

// WithNetwork returns a copy of k tagged for another network. A nil network
// selects MainNet.
func (k *ExtendedKey) WithNetwork(net *Network) *ExtendedKey {
	if net == nil {
		net = MainNet
	}
	c := *k
	c.net = net
	c.publicKey = append([]byte(nil), k.publicKey...)
	if k.privateKey != nil {
		c.privateKey = append([]byte(nil), k.privateKey...)
	}
	return &c
}

// PrivateKeyBytes returns the raw 32-byte private key.
// Returns nil if this is a public-only key.
func (k *ExtendedKey) PrivateKeyBytes() []byte {
	if !k.IsPrivate() {
		return nil
	}
	return append([]byte(nil), k.privateKey...)
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *ExtendedKey) PublicKeyBytes() []byte {
	return append([]byte(nil), k.publicKey...)
}

// Identifier returns HASH160 of the public key.
func (k *ExtendedKey) Identifier() []byte {
	return crypto.Hash160(k.publicKey)
}

// Fingerprint returns the first four bytes of the identifier.
func (k *ExtendedKey) Fingerprint() [4]byte {
	var fp [4]byte
	copy(fp[:], k.Identifier())
	return fp
}

// ParentFingerprint returns the fingerprint of the parent key (zero for master).
func (k *ExtendedKey) ParentFingerprint() [4]byte {
	return k.parentFP
}

// ChainCode returns a copy of the chain code.
func (k *ExtendedKey) ChainCode() []byte {
	return append([]byte(nil), k.chainCode[:]...)
}

// ChildNumber returns the child number, hardened bit included.
func (k *ExtendedKey) ChildNumber() uint32 {
	return k.childNum
}

// IsHardened reports whether the key was derived with hardened derivation.
func (k *ExtendedKey) IsHardened() bool {
	return k.childNum >= HardenedKeyStart
}

// IsPrivate returns true if this key contains a private key.
func (k *ExtendedKey) IsPrivate() bool {
	return k.privateKey != nil
}

// Depth returns the derivation depth (0 for master).
func (k *ExtendedKey) Depth() uint8 {
	return k.depth
}

// Network returns the network the key serializes for.
func (k *ExtendedKey) Network() *Network {
	return k.net
}

// Equal reports whether two keys serialize identically.
func (k *ExtendedKey) Equal(o *ExtendedKey) bool {
	if k == nil || o == nil {
		return k == o
	}
	return bytes.Equal(k.Serialize(), o.Serialize())
}

// Zero wipes the private key material, leaving a public-only key.
func (k *ExtendedKey) Zero() {
	clear(k.privateKey)
	k.privateKey = nil
}
