// Package base58 implements Base58 and Base58Check encoding with the Bitcoin
// alphabet.
package base58

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Klingon-tech/klingnet-hdkey/pkg/crypto"
	"github.com/mr-tron/base58"
)

// Alphabet is the Bitcoin Base58 alphabet (no 0, O, I or l).
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ChecksumSize is the length of the Base58Check checksum suffix.
const ChecksumSize = 4

var (
	// ErrInvalidCharacter is returned when input contains a character outside the alphabet.
	ErrInvalidCharacter = errors.New("invalid base58 character")

	// ErrInvalidChecksum is returned when the trailing checksum does not match.
	ErrInvalidChecksum = errors.New("invalid checksum")

	// ErrInvalidLength is returned when decoded data has the wrong size.
	ErrInvalidLength = errors.New("invalid length")
)

// Encode encodes b as Base58. Each leading zero byte becomes one leading '1'.
func Encode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return base58.Encode(b)
}

// Decode decodes a Base58 string.
func Decode(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	if i := strings.IndexFunc(s, func(r rune) bool {
		return !strings.ContainsRune(Alphabet, r)
	}); i >= 0 {
		r, _ := utf8.DecodeRuneInString(s[i:])
		return nil, fmt.Errorf("%w %q at position %d", ErrInvalidCharacter, r, i)
	}
	b, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCharacter, err)
	}
	return b, nil
}

// Checksum returns the first four bytes of SHA256(SHA256(b)).
func Checksum(b []byte) [ChecksumSize]byte {
	var out [ChecksumSize]byte
	h := crypto.DoubleSHA256(b)
	copy(out[:], h[:ChecksumSize])
	return out
}

// CheckEncode appends the double-SHA256 checksum to versionAndPayload and
// encodes the result as Base58.
func CheckEncode(versionAndPayload []byte) string {
	sum := Checksum(versionAndPayload)
	buf := make([]byte, 0, len(versionAndPayload)+ChecksumSize)
	buf = append(buf, versionAndPayload...)
	buf = append(buf, sum[:]...)
	return Encode(buf)
}

// CheckDecode decodes a Base58Check string and returns the version and payload
// bytes with the checksum stripped.
func CheckDecode(s string) ([]byte, error) {
	raw, err := Decode(s)
	if err != nil {
		return nil, err
	}
	return verifyChecksum(raw)
}

// CheckDecodeLen is CheckDecode with an exact payload length requirement.
// The length is validated before the checksum.
func CheckDecodeLen(s string, payloadLen int) ([]byte, error) {
	raw, err := Decode(s)
	if err != nil {
		return nil, err
	}
	if len(raw) != payloadLen+ChecksumSize {
		return nil, fmt.Errorf("%w: decoded %d bytes, want %d", ErrInvalidLength, len(raw), payloadLen+ChecksumSize)
	}
	return verifyChecksum(raw)
}

func verifyChecksum(raw []byte) ([]byte, error) {
	if len(raw) < ChecksumSize {
		return nil, fmt.Errorf("%w: decoded %d bytes, need at least %d", ErrInvalidLength, len(raw), ChecksumSize)
	}
	payload := raw[:len(raw)-ChecksumSize]
	want := Checksum(payload)
	if !bytes.Equal(want[:], raw[len(raw)-ChecksumSize:]) {
		return nil, ErrInvalidChecksum
	}
	return payload, nil
}
