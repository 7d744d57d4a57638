package crypto

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Sizes of serialized secp256k1 values.
const (
	PrivateKeySize = 32
	PublicKeySize  = 33
)

// ErrPointAtInfinity is returned when a point addition yields the identity.
var ErrPointAtInfinity = errors.New("point at infinity")

// CurveOrder returns a copy of the secp256k1 group order n.
func CurveOrder() *big.Int {
	return new(big.Int).Set(secp256k1.Params().N)
}

// ValidPrivateKey reports whether b is a 32-byte big-endian scalar in [1, n-1].
func ValidPrivateKey(b []byte) bool {
	if len(b) != PrivateKeySize {
		return false
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow {
		return false
	}
	return !s.IsZero()
}

// PublicKeyFromPrivate returns the compressed 33-byte public key for a
// 32-byte private scalar.
func PublicKeyFromPrivate(priv []byte) ([]byte, error) {
	if !ValidPrivateKey(priv) {
		return nil, fmt.Errorf("private key must be a non-zero scalar below the curve order")
	}
	key := secp256k1.PrivKeyFromBytes(priv)
	defer key.Zero()
	return key.PubKey().SerializeCompressed(), nil
}

// ValidPublicKey reports whether b is a compressed point on the curve.
func ValidPublicKey(b []byte) bool {
	if len(b) != PublicKeySize {
		return false
	}
	_, err := secp256k1.ParsePubKey(b)
	return err == nil
}

// AddPrivateKeys returns (tweak + priv) mod n as a 32-byte scalar.
// The tweak must be below n; a zero result is reported as an error.
func AddPrivateKeys(tweak, priv []byte) ([]byte, error) {
	if len(tweak) != PrivateKeySize || len(priv) != PrivateKeySize {
		return nil, fmt.Errorf("scalars must be %d bytes", PrivateKeySize)
	}
	var t, k secp256k1.ModNScalar
	if overflow := t.SetByteSlice(tweak); overflow {
		return nil, fmt.Errorf("tweak is not below the curve order")
	}
	if overflow := k.SetByteSlice(priv); overflow {
		return nil, fmt.Errorf("private key is not below the curve order")
	}
	t.Add(&k)
	if t.IsZero() {
		return nil, fmt.Errorf("resulting scalar is zero")
	}
	out := t.Bytes()
	t.Zero()
	k.Zero()
	return out[:], nil
}

// AddPublicKeyTweak returns point(tweak) + pub as a compressed public key.
func AddPublicKeyTweak(tweak, pub []byte) ([]byte, error) {
	if len(tweak) != PrivateKeySize {
		return nil, fmt.Errorf("tweak must be %d bytes, got %d", PrivateKeySize, len(tweak))
	}
	var t secp256k1.ModNScalar
	if overflow := t.SetByteSlice(tweak); overflow {
		return nil, fmt.Errorf("tweak is not below the curve order")
	}
	parent, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	var tweakPoint, parentPoint, sum secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&t, &tweakPoint)
	parent.AsJacobian(&parentPoint)
	secp256k1.AddNonConst(&tweakPoint, &parentPoint, &sum)
	if sum.Z.IsZero() || (sum.X.IsZero() && sum.Y.IsZero()) {
		return nil, ErrPointAtInfinity
	}
	sum.ToAffine()
	return secp256k1.NewPublicKey(&sum.X, &sum.Y).SerializeCompressed(), nil
}
