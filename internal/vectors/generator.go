// Package vectors produces and loads private key test vectors.
package vectors

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/mahdiidarabi/keyderive/pkg/keyderive"
)

// DefaultSeed is used when no seed is configured.
const DefaultSeed = "default_seed_for_testing"

// orderMinusOne is n-1, the size of the valid scalar range.
var orderMinusOne = new(big.Int).Sub(keyderive.Secp256k1CurveOrder, big.NewInt(1))

// Vector is a single test case.  Expected is nil when the vector only
// carries an input.
type Vector struct {
	Name       string
	PrivateKey keyderive.PrivateKey
	Expected   *Expectation
}

// Expectation holds known-good outputs for a vector.
type Expectation struct {
	PubKey  string
	WIF     string
	Address string
}

// Generate derives the index-th private key for seed.
//
// The key is SHA256(seed + "_test_" + index) reduced into [1, n-1] as
// (h mod (n-1)) + 1.  It is a pure function of its arguments.
func Generate(seed string, index int) keyderive.PrivateKey {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s_test_%d", seed, index)))

	k := new(big.Int).SetBytes(h[:])
	k.Mod(k, orderMinusOne)
	k.Add(k, big.NewInt(1))

	var key keyderive.PrivateKey
	k.FillBytes(key[:])
	return key
}

// GenerateN returns count vectors for seed, named "Test 1", "Test 2", ...
func GenerateN(seed string, count int) []Vector {
	vectors := make([]Vector, 0, count)
	for i := 0; i < count; i++ {
		vectors = append(vectors, Vector{
			Name:       fmt.Sprintf("Test %d", i+1),
			PrivateKey: Generate(seed, i),
		})
	}
	return vectors
}
