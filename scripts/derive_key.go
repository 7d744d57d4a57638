// derive_key.go prints the pubkey, HASH160 and WIF for a hex-encoded private key file.
// Usage: go run scripts/derive_key.go <keyfile> [network]
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/Klingon-tech/klingnet-hdkey/internal/wallet"
	"github.com/Klingon-tech/klingnet-hdkey/pkg/crypto"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_key <keyfile> [network]")
		os.Exit(1)
	}
	net := wallet.MainNet
	if len(os.Args) > 2 {
		n, err := wallet.NetworkByName(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		net = n
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	keyHex := strings.TrimSpace(string(data))
	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	pub, err := crypto.PublicKeyFromPrivate(keyBytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	wif, err := wallet.EncodeWIF(keyBytes, true, net)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("pubkey=%s\n", hex.EncodeToString(pub))
	fmt.Printf("hash160=%s\n", hex.EncodeToString(crypto.Hash160(pub)))
	fmt.Printf("wif=%s\n", wif)
}
