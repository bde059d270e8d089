package keyderive

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		key  *PrivateKey
		want string
	}{
		{"k=1", smallKey(1), generatorPubKey},
		{"k=2", smallKey(2), "02C6047F9441ED7D6D3045406E95C07CD85C778E4B8CEF3CA7ABAC09B95C709EE5"},
		{"k=3", smallKey(3), "02F9308A019258C31049344F85F89D5229B531C845836F99B08601F113BCE036F9"},
		{"k=n-1", mustKey(t, keyOrderSubHex), "0379BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			point, err := Multiply(test.key)
			require.NoError(t, err)
			assert.Equal(t, test.want, Compress(point).String())
		})
	}
}

func TestCompress_ShapeAndParity(t *testing.T) {
	for i, k := range sampleKeys(t, 32) {
		point, err := Multiply(k)
		require.NoError(t, err)

		pub := Compress(point)
		require.Len(t, pub.String(), 2*PublicKeyLen)

		if point.Y.IsOdd() {
			assert.Equal(t, byte(0x03), pub[0], "key %d", i)
		} else {
			assert.Equal(t, byte(0x02), pub[0], "key %d", i)
		}

		want := secp256k1.PrivKeyFromBytes(k[:]).PubKey().SerializeCompressed()
		assert.Equal(t, want, pub[:], "key %d", i)
	}
}

func TestCompress_PadsShortX(t *testing.T) {
	var p CurvePoint
	p.X.SetInt(5)
	p.Y.SetInt(2)

	pub := Compress(&p)
	want := PublicKey{0x02}
	want[PublicKeyLen-1] = 5
	assert.Equal(t, want, pub)

	p.Y.SetInt(3)
	assert.Equal(t, byte(0x03), Compress(&p)[0])
}
