package keyderive

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash160_GeneratorKey(t *testing.T) {
	pub, err := hexDecode(generatorPubKey)
	require.NoError(t, err)

	h := Hash160(pub)
	assert.Equal(t, generatorHash, strings.ToUpper(hex.EncodeToString(h[:])))
}

func TestHash160_Deterministic(t *testing.T) {
	data := []byte("test message")
	assert.Equal(t, Hash160(data), Hash160(data))
	assert.NotEqual(t, Hash160(data), Hash160([]byte("different message")))
}

func TestDoubleSHA256(t *testing.T) {
	data := []byte("hello")
	first := sha256.Sum256(data)
	want := sha256.Sum256(first[:])
	assert.Equal(t, want, DoubleSHA256(data))
}
