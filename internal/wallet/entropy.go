package wallet

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Entropy sizes accepted by the mnemonic encoder, in bytes.
const (
	MinEntropySize = 16
	MaxEntropySize = 32
)

// ValidEntropySize reports whether n bytes is a legal entropy length:
// 128 to 256 bits in 32-bit steps.
func ValidEntropySize(n int) bool {
	return n >= MinEntropySize && n <= MaxEntropySize && n%4 == 0
}

// NewEntropy returns byteLen bytes from the system CSPRNG.
//
// Every call returns fresh bytes; callers must not feed the same entropy to
// two independent mnemonics.
func NewEntropy(byteLen int) ([]byte, error) {
	return NewEntropyFrom(rand.Reader, byteLen)
}

// NewEntropyBits is NewEntropy with the size given in bits.
func NewEntropyBits(bits int) ([]byte, error) {
	if bits%8 != 0 {
		return nil, fmt.Errorf("%w: %d entropy bits", ErrInvalidLength, bits)
	}
	return NewEntropy(bits / 8)
}

// NewEntropyFrom reads byteLen bytes of entropy from r. r must be a
// cryptographically secure source outside of tests.
func NewEntropyFrom(r io.Reader, byteLen int) ([]byte, error) {
	if !ValidEntropySize(byteLen) {
		return nil, fmt.Errorf("%w: %d entropy bytes, want 16, 20, 24, 28 or 32", ErrInvalidLength, byteLen)
	}
	entropy := make([]byte, byteLen)
	if _, err := io.ReadFull(r, entropy); err != nil {
		return nil, fmt.Errorf("read entropy: %w", err)
	}
	return entropy, nil
}
