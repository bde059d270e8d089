package keyderive

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	keyOneHex      = "0000000000000000000000000000000000000000000000000000000000000001"
	keyOrderHex    = "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"
	keyOrderSubHex = "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364140"

	generatorPubKey = "0279BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"
	generatorWIF    = "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"
	generatorAddr   = "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"
	generatorHash   = "751E76E8199196D454941C45D1B3A323F1433BD6"
)

// mustKey parses a hex private key or fails the test.
func mustKey(t *testing.T, s string) *PrivateKey {
	t.Helper()
	k, err := ParsePrivateKey(s)
	require.NoError(t, err)
	return k
}

// smallKey returns the private key with scalar value v.
func smallKey(v uint64) *PrivateKey {
	var k PrivateKey
	binary.BigEndian.PutUint64(k[PrivateKeyLen-8:], v)
	return &k
}

// sampleKeys returns count pseudo-random but reproducible valid keys.
func sampleKeys(t *testing.T, count int) []*PrivateKey {
	t.Helper()
	keys := make([]*PrivateKey, 0, count)
	for i := 0; i < count; i++ {
		var idx [4]byte
		binary.BigEndian.PutUint32(idx[:], uint32(i))
		sum := sha256.Sum256(append([]byte("keyderive-sample"), idx[:]...))
		keys = append(keys, mustKey(t, hex.EncodeToString(sum[:])))
	}
	return keys
}

// hexDecode decodes a hex string, handling 0x prefix
func hexDecode(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}
