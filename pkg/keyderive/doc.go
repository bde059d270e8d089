// Package keyderive derives the public artifacts of a raw secp256k1 private
// key: the compressed public key, the compressed mainnet WIF and the mainnet
// P2PKH address.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/keyderive/pkg/keyderive"
//
//	d, err := keyderive.Derive("0000000000000000000000000000000000000000000000000000000000000001")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Print(d.Format())
//	// Compressed PubKey: 0279BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798
//	// WIF: KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn
//	// Address: 1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH
//
// # Pipeline
//
// Derive walks a fixed sequence of stages and stops at the first error:
//
//	received_input -> validated -> point_computed -> compressed
//	    -> wif_encoded -> address_encoded -> emitted
//
// Input validation (hex, length, scalar range) happens before any curve or
// hash work.  Failures are returned as *StageError wrapping an ErrorKind, so
// callers can test with errors.Is:
//
//	if errors.Is(err, keyderive.ErrKeyOutOfRange) {
//	    ...
//	}
//
// # Building Blocks
//
// Each stage is exported on its own: Multiply, Compress, Hash160,
// Base58CheckEncode/Base58CheckDecode, EncodeWIF/DecodeWIF and
// EncodeAddress/DecodeAddress.  All of them are pure functions and safe for
// concurrent use.
package keyderive
