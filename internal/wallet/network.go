package wallet

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network holds the version bytes that tag serialized keys.
type Network struct {
	Name             string
	WIFVersion       byte
	HDPrivateVersion [4]byte
	HDPublicVersion  [4]byte
	CoinType         uint32 // SLIP-44 coin type for BIP-44 paths.
}

func networkFromParams(p *chaincfg.Params) *Network {
	return &Network{
		Name:             p.Name,
		WIFVersion:       p.PrivateKeyID,
		HDPrivateVersion: p.HDPrivateKeyID,
		HDPublicVersion:  p.HDPublicKeyID,
		CoinType:         p.HDCoinType,
	}
}

// Known networks. Testnet and regtest share version bytes; lookups by
// version resolve to TestNet.
var (
	MainNet       = networkFromParams(&chaincfg.MainNetParams)
	TestNet       = networkFromParams(&chaincfg.TestNet3Params)
	RegressionNet = networkFromParams(&chaincfg.RegressionNetParams)
	SimNet        = networkFromParams(&chaincfg.SimNetParams)
)

var networks = []*Network{MainNet, TestNet, RegressionNet, SimNet}

// NetworkByName returns the network with the given name. "testnet" is
// accepted for testnet3.
func NetworkByName(name string) (*Network, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "testnet" {
		return TestNet, nil
	}
	for _, n := range networks {
		if n.Name == name {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
}

func networkByWIFVersion(v byte) (*Network, error) {
	for _, n := range networks {
		if n.WIFVersion == v {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: WIF version %#02x", ErrUnknownNetwork, v)
}

// networkByHDVersion resolves an extended key version and reports whether it
// tags a private key.
func networkByHDVersion(v [4]byte) (*Network, bool, error) {
	for _, n := range networks {
		switch v {
		case n.HDPrivateVersion:
			return n, true, nil
		case n.HDPublicVersion:
			return n, false, nil
		}
	}
	return nil, false, fmt.Errorf("%w: extended key version %x", ErrUnknownNetwork, v[:])
}

// String returns the network name.
func (n *Network) String() string {
	return n.Name
}
