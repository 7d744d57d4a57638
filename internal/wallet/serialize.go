package wallet

import (
	"encoding/binary"
	"fmt"

	"github.com/Klingon-tech/klingnet-hdkey/pkg/base58"
	"github.com/Klingon-tech/klingnet-hdkey/pkg/crypto"
)

// SerializedKeySize is the length of a serialized extended key:
// version(4) | depth(1) | parent fingerprint(4) | child number(4) |
// chain code(32) | key data(33).
const SerializedKeySize = 78

// Serialize returns the 78-byte BIP-32 serialization.
func (k *ExtendedKey) Serialize() []byte {
	out := make([]byte, 0, SerializedKeySize)
	if k.IsPrivate() {
		out = append(out, k.net.HDPrivateVersion[:]...)
	} else {
		out = append(out, k.net.HDPublicVersion[:]...)
	}
	out = append(out, k.depth)
	out = append(out, k.parentFP[:]...)
	out = binary.BigEndian.AppendUint32(out, k.childNum)
	out = append(out, k.chainCode[:]...)
	if k.IsPrivate() {
		out = append(out, 0x00)
		out = append(out, k.privateKey...)
	} else {
		out = append(out, k.publicKey...)
	}
	return out
}

// String returns the Base58Check encoding (xprv/xpub class).
func (k *ExtendedKey) String() string {
	return base58.CheckEncode(k.Serialize())
}

// ParseExtendedKey decodes an xprv/xpub-class string. The decoded length is
// checked before the checksum.
func ParseExtendedKey(s string) (*ExtendedKey, error) {
	payload, err := base58.CheckDecodeLen(s, SerializedKeySize)
	if err != nil {
		return nil, fmt.Errorf("decode extended key: %w", err)
	}
	return DeserializeExtendedKey(payload)
}

// DeserializeExtendedKey parses the 78-byte serialization.
func DeserializeExtendedKey(payload []byte) (*ExtendedKey, error) {
	if len(payload) != SerializedKeySize {
		return nil, fmt.Errorf("%w: extended key is %d bytes, want %d", ErrInvalidLength, len(payload), SerializedKeySize)
	}

	var version, parentFP [4]byte
	copy(version[:], payload[0:4])
	net, private, err := networkByHDVersion(version)
	if err != nil {
		return nil, err
	}
	depth := payload[4]
	copy(parentFP[:], payload[5:9])
	childNum := binary.BigEndian.Uint32(payload[9:13])
	chainCode := payload[13:45]
	keyData := payload[45:78]

	if depth == 0 && (parentFP != [4]byte{} || childNum != 0) {
		return nil, fmt.Errorf("%w: master key with non-zero parent fingerprint or child number", ErrInvalidKeyData)
	}

	if private {
		if keyData[0] != 0x00 || !crypto.ValidPrivateKey(keyData[1:]) {
			return nil, fmt.Errorf("%w: bad private key", ErrInvalidKeyData)
		}
		return newExtendedKey(net, depth, parentFP, childNum, chainCode, keyData[1:], nil)
	}
	if !crypto.ValidPublicKey(keyData) {
		return nil, fmt.Errorf("%w: bad public key", ErrInvalidKeyData)
	}
	return newExtendedKey(net, depth, parentFP, childNum, chainCode, nil, keyData)
}
