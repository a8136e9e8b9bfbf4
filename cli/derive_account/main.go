package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"strings"

	. "github.com/alexdcox/radix-go"
	"github.com/alexdcox/radix-go/toolkit"
)

var log = Logger()

var key string
var public bool

func main() {
	flag.StringVar(&key, "key", "", "The ed25519 private key seed or public key as hex")
	flag.BoolVar(&public, "public", false, "Treat the key as a public key rather than a private seed")
	flag.Parse()

	if key == "" {
		fmt.Println("usage: derive_account --key KEY [--public]")
		return
	}

	key = strings.Trim(key, " \"")

	keyBytes, err := hex.DecodeString(key)
	if err != nil || len(keyBytes) != 32 {
		fmt.Println("invalid key: expected 32 bytes of hex")
		return
	}

	fmt.Println("")
	fmt.Println("deriving virtual account addresses from existing key")
	fmt.Println("")

	pub := keyBytes
	if !public {
		private, err2 := toolkit.NewPrivateKeyFromSeed(keyBytes)
		if err2 != nil {
			log.Fatal().Msgf("%+v", err2)
		}
		pub = private.PublicKey()
		fmt.Println("key type:          private seed")
	} else {
		fmt.Println("key type:          public")
	}

	fmt.Printf("public key hex:    %x\n", pub)

	deriveAllNetworks(pub)
}

func deriveAllNetworks(pub []byte) {
	for _, net := range []Network{
		NetworkMainNet,
		NetworkStokenet,
		NetworkLocalNet,
	} {
		params, err := net.Params()
		if err != nil {
			log.Fatal().Msgf("%+v", err)
		}

		addr, err := toolkit.DeriveVirtualAccountAddress(pub, params.AccountHrp)
		if err != nil {
			log.Fatal().Msgf("%+v", err)
		}

		hrp, data, err := toolkit.DecodeAddress(addr)
		if err != nil {
			log.Fatal().Msgf("%+v", err)
		}

		fmt.Println("")
		fmt.Printf("network:           %s\n", net)
		fmt.Printf("addr hrp:          %s\n", hrp)
		fmt.Printf("addr (8-bit):      %x\n", data)
		fmt.Printf("addr (bech32):     %s\n", addr)
	}
}
