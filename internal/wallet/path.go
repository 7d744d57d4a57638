package wallet

import (
	"fmt"
	"strconv"
	"strings"
)

// PathSegment is one step of a derivation path.
type PathSegment struct {
	Index    uint32
	Hardened bool
}

// ChildNumber returns the BIP-32 child number for the segment.
func (s PathSegment) ChildNumber() uint32 {
	if s.Hardened {
		return s.Index | HardenedKeyStart
	}
	return s.Index
}

// String returns the segment in path notation, e.g. "44'".
func (s PathSegment) String() string {
	if s.Hardened {
		return strconv.FormatUint(uint64(s.Index), 10) + "'"
	}
	return strconv.FormatUint(uint64(s.Index), 10)
}

// Path is an ordered derivation path relative to a master key.
type Path []PathSegment

// BIP44Path returns m/44'/coin'/account'/change/index.
func BIP44Path(coinType, account, change, index uint32) Path {
	return Path{
		{Index: PurposeBIP44 &^ HardenedKeyStart, Hardened: true},
		{Index: coinType, Hardened: true},
		{Index: account, Hardened: true},
		{Index: change},
		{Index: index},
	}
}

// ParsePath parses "m/44'/0'/0'/0/0". A hardened segment is marked with
// ', h or H. "m" on its own is the empty path.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if parts[0] != "m" {
		return nil, fmt.Errorf("%w: %q must start with \"m\"", ErrInvalidPath, s)
	}

	path := make(Path, 0, len(parts)-1)
	for i, part := range parts[1:] {
		seg := PathSegment{}
		if n := len(part); n > 0 {
			switch part[n-1] {
			case '\'', 'h', 'H':
				seg.Hardened = true
				part = part[:n-1]
			}
		}
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return nil, fmt.Errorf("%w: segment %d of %q", ErrInvalidPath, i+1, s)
		}
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil || uint32(v) >= HardenedKeyStart {
			return nil, fmt.Errorf("%w: segment %d of %q: %s", ErrIndexOutOfRange, i+1, s, part)
		}
		seg.Index = uint32(v)
		path = append(path, seg)
	}
	return path, nil
}

// String returns the path in "m/44'/0'" notation.
func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, seg := range p {
		sb.WriteByte('/')
		sb.WriteString(seg.String())
	}
	return sb.String()
}

// ChildNumbers returns the child number of every segment.
func (p Path) ChildNumbers() []uint32 {
	out := make([]uint32, len(p))
	for i, seg := range p {
		out[i] = seg.ChildNumber()
	}
	return out
}

// DerivePath derives a key along a path, one child per segment.
func (k *ExtendedKey) DerivePath(path Path) (*ExtendedKey, error) {
	current := k
	for _, seg := range path {
		if seg.Index >= HardenedKeyStart {
			return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, seg.Index)
		}
		child, err := current.DeriveChild(seg.ChildNumber())
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", seg, err)
		}
		current = child
	}
	return current, nil
}

// DerivePathString parses path and derives along it.
func (k *ExtendedKey) DerivePathString(path string) (*ExtendedKey, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return k.DerivePath(p)
}
