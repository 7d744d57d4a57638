// Package wallet implements BIP-39 mnemonics and BIP-32 hierarchical
// deterministic key derivation.
package wallet

import (
	"fmt"
	"strings"

	"github.com/Klingon-tech/klingnet-hdkey/pkg/crypto"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

// MnemonicEntropyBits is the entropy size for 24-word mnemonics.
const MnemonicEntropyBits = 256

// bitsPerWord is the width of a dictionary index.
const bitsPerWord = 11

var (
	// dictionary maps an 11-bit index to its word.
	dictionary = wordlists.English

	// wordIndex is the reverse of dictionary. Built once, never written after init.
	wordIndex map[string]uint32
)

func init() {
	if len(dictionary) != 1<<bitsPerWord {
		panic(fmt.Sprintf("wallet: dictionary has %d words, want %d", len(dictionary), 1<<bitsPerWord))
	}
	wordIndex = make(map[string]uint32, len(dictionary))
	for i, w := range dictionary {
		wordIndex[w] = uint32(i)
	}
}

// Mnemonic is a checksum-validated BIP-39 word sequence.
type Mnemonic struct {
	words []string
}

// ValidWordCount reports whether n is 12, 15, 18, 21 or 24.
func ValidWordCount(n int) bool {
	return n >= 12 && n <= 24 && n%3 == 0
}

// WordCountForEntropy returns the mnemonic length for byteLen bytes of entropy.
func WordCountForEntropy(byteLen int) int {
	bits := byteLen * 8
	return (bits + bits/32) / bitsPerWord
}

// EntropySizeForWords returns the entropy length in bytes behind n words.
func EntropySizeForWords(n int) int {
	total := n * bitsPerWord
	return (total - total/33) / 8
}

// EncodeMnemonic converts entropy into its mnemonic. The final ENT/32 bits of
// the index stream are the leading bits of SHA256(entropy).
func EncodeMnemonic(entropy []byte) (Mnemonic, error) {
	if !ValidEntropySize(len(entropy)) {
		return Mnemonic{}, fmt.Errorf("%w: %d entropy bytes, want 16, 20, 24, 28 or 32", ErrInvalidLength, len(entropy))
	}
	entBits := len(entropy) * 8
	csBits := entBits / 32
	sum := crypto.SHA256(entropy)

	w := newBitWriter(entBits + csBits)
	for _, b := range entropy {
		w.writeBits(uint32(b), 8)
	}
	w.writeBits(uint32(sum[0])>>uint(8-csBits), csBits)

	r := newBitReader(w.bytes())
	words := make([]string, (entBits+csBits)/bitsPerWord)
	for i := range words {
		words[i] = dictionary[r.readBits(bitsPerWord)]
	}
	return Mnemonic{words: words}, nil
}

// DecodeMnemonic validates words and returns the entropy they encode.
func DecodeMnemonic(words []string) ([]byte, error) {
	if !ValidWordCount(len(words)) {
		return nil, fmt.Errorf("%w: got %d words, want 12, 15, 18, 21 or 24", ErrInvalidWordCount, len(words))
	}

	total := len(words) * bitsPerWord
	csBits := total / 33
	w := newBitWriter(total)
	for i, word := range words {
		idx, ok := wordIndex[word]
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownWord, word, i+1)
		}
		w.writeBits(idx, bitsPerWord)
	}

	r := newBitReader(w.bytes())
	entropy := make([]byte, (total-csBits)/8)
	for i := range entropy {
		entropy[i] = byte(r.readBits(8))
	}
	got := r.readBits(csBits)

	sum := crypto.SHA256(entropy)
	if want := uint32(sum[0]) >> uint(8-csBits); got != want {
		return nil, ErrChecksumMismatch
	}
	return entropy, nil
}

// NewMnemonic validates a word sequence and wraps it as a Mnemonic.
func NewMnemonic(words []string) (Mnemonic, error) {
	if _, err := DecodeMnemonic(words); err != nil {
		return Mnemonic{}, err
	}
	return Mnemonic{words: append([]string(nil), words...)}, nil
}

// ParseMnemonic normalizes a phrase (NFKD, lower case, any whitespace as
// separator) and validates it.
func ParseMnemonic(phrase string) (Mnemonic, error) {
	normalized := strings.ToLower(norm.NFKD.String(phrase))
	return NewMnemonic(strings.Fields(normalized))
}

// GenerateMnemonic creates a new random mnemonic with the given word count.
func GenerateMnemonic(wordCount int) (Mnemonic, error) {
	if !ValidWordCount(wordCount) {
		return Mnemonic{}, fmt.Errorf("%w: %d", ErrInvalidWordCount, wordCount)
	}
	entropy, err := NewEntropy(EntropySizeForWords(wordCount))
	if err != nil {
		return Mnemonic{}, fmt.Errorf("generate entropy: %w", err)
	}
	m, err := EncodeMnemonic(entropy)
	if err != nil {
		return Mnemonic{}, fmt.Errorf("generate mnemonic: %w", err)
	}
	return m, nil
}

// ValidateMnemonic checks if a mnemonic is valid per BIP-39
// (correct word count, valid words, valid checksum).
func ValidateMnemonic(mnemonic string) bool {
	_, err := ParseMnemonic(mnemonic)
	return err == nil
}

// Words returns a copy of the word sequence.
func (m Mnemonic) Words() []string {
	return append([]string(nil), m.words...)
}

// Len returns the number of words.
func (m Mnemonic) Len() int {
	return len(m.words)
}

// IsZero reports whether m is the zero Mnemonic.
func (m Mnemonic) IsZero() bool {
	return len(m.words) == 0
}

// String returns the words joined by single spaces.
func (m Mnemonic) String() string {
	return strings.Join(m.words, " ")
}

// Entropy returns the entropy the mnemonic encodes.
func (m Mnemonic) Entropy() []byte {
	entropy, err := DecodeMnemonic(m.words)
	if err != nil {
		// Every constructor validates; a zero Mnemonic has no entropy.
		return nil
	}
	return entropy
}

// Seed derives the 64-byte BIP-39 seed for the given passphrase.
func (m Mnemonic) Seed(passphrase string) []byte {
	return DeriveSeed(m, passphrase)
}
