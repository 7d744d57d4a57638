package wallet

import (
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// SeedIterations is the PBKDF2 round count fixed by BIP-39.
const SeedIterations = 2048

// seedSaltPrefix is prepended to the passphrase to form the PBKDF2 salt.
const seedSaltPrefix = "mnemonic"

// DeriveSeed runs PBKDF2-HMAC-SHA512 over the normalized mnemonic with salt
// "mnemonic" + passphrase. One 64-byte block is produced, so no truncation
// takes place.
func DeriveSeed(m Mnemonic, passphrase string) []byte {
	password := []byte(norm.NFKD.String(m.String()))
	salt := []byte(seedSaltPrefix + norm.NFKD.String(passphrase))
	return pbkdf2.Key(password, salt, SeedIterations, SeedSize, sha512.New)
}

// SeedFromMnemonic derives a 512-bit seed from a mnemonic and optional passphrase
// using PBKDF2-SHA512 as specified in BIP-39.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	m, err := ParseMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	return DeriveSeed(m, passphrase), nil
}
