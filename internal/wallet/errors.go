package wallet

import (
	"errors"

	"github.com/Klingon-tech/klingnet-hdkey/pkg/base58"
)

// Errors returned by the derivation and encoding functions. Call sites wrap
// them with context; use errors.Is to test for a kind.
var (
	// ErrInvalidLength reports an entropy, seed, key or payload of the wrong
	// size. It is shared with the Base58Check decoder.
	ErrInvalidLength = base58.ErrInvalidLength

	// ErrInvalidWordCount reports a mnemonic that is not 12, 15, 18, 21 or 24 words.
	ErrInvalidWordCount = errors.New("invalid mnemonic word count")

	// ErrUnknownWord reports a mnemonic word missing from the dictionary.
	ErrUnknownWord = errors.New("unknown mnemonic word")

	// ErrChecksumMismatch reports a mnemonic whose embedded checksum is wrong.
	ErrChecksumMismatch = errors.New("mnemonic checksum mismatch")

	// ErrIndexOutOfRange reports a child index with the hardened bit already set.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrInvalidMasterKey reports a seed whose master scalar is zero or not
	// below the curve order. The seed must be discarded.
	ErrInvalidMasterKey = errors.New("invalid master key")

	// ErrInvalidChildKey reports a child index that yields an unusable key.
	// Callers should move on to the next index.
	ErrInvalidChildKey = errors.New("invalid child key")

	// ErrDeriveHardenedFromPublic reports a hardened derivation requested on a
	// public-only extended key.
	ErrDeriveHardenedFromPublic = errors.New("cannot derive a hardened child from a public key")

	// ErrNotPrivate reports an operation that needs private key material.
	ErrNotPrivate = errors.New("extended key is public")

	// ErrUnknownNetwork reports a version byte or prefix with no matching network.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrInvalidKeyData reports serialized key material that fails validation.
	ErrInvalidKeyData = errors.New("invalid key data")

	// ErrInvalidPath reports a derivation path that cannot be parsed.
	ErrInvalidPath = errors.New("invalid derivation path")

	// ErrInvalidCharacter and ErrInvalidChecksum are the remaining Base58Check failures.
	ErrInvalidCharacter = base58.ErrInvalidCharacter
	ErrInvalidChecksum  = base58.ErrInvalidChecksum
)
