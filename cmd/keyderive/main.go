// Command keyderive derives the compressed public key, WIF and P2PKH address
// of a secp256k1 private key read from stdin, and carries the tooling used to
// check other implementations against it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
