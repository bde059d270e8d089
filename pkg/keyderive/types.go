package keyderive

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// PrivateKeyLen is the length in bytes of a raw private key scalar.
	PrivateKeyLen = 32

	// PublicKeyLen is the length in bytes of a compressed public key.
	PublicKeyLen = 33

	// Hash160Len is the length in bytes of a Hash160 digest.
	Hash160Len = 20
)

// Secp256k1CurveOrder is the order of the secp256k1 curve
var Secp256k1CurveOrder, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

// PrivateKey is a 32-byte big-endian secp256k1 scalar.
// Valid keys satisfy 1 <= k <= n-1.
type PrivateKey [PrivateKeyLen]byte

// Int returns the scalar as a big integer.
func (k *PrivateKey) Int() *big.Int {
	return new(big.Int).SetBytes(k[:])
}

// String returns the key as 64 uppercase hex characters.
func (k *PrivateKey) String() string {
	return strings.ToUpper(hex.EncodeToString(k[:]))
}

// Zero overwrites the key material.
func (k *PrivateKey) Zero() {
	zeroBytes(k[:])
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// CurvePoint is an affine point on secp256k1.  Both coordinates are
// normalized field elements.
type CurvePoint struct {
	X secp256k1.FieldVal
	Y secp256k1.FieldVal
}

// PublicKey is a 33-byte compressed public key: 0x02 or 0x03 followed by the
// big-endian x coordinate.
type PublicKey [PublicKeyLen]byte

// String returns the key as 66 uppercase hex characters.
func (p PublicKey) String() string {
	return strings.ToUpper(hex.EncodeToString(p[:]))
}

// Derivation holds the three public artifacts derived from a private key.
type Derivation struct {
	PublicKey PublicKey // Compressed public key
	WIF       string    // Compressed mainnet WIF
	Address   string    // Mainnet P2PKH address
}
