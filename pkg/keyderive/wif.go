package keyderive

import "fmt"

const (
	// WIFVersion is the mainnet private key version byte.
	WIFVersion = 0x80

	// CompressedFlag marks a WIF whose public key is used in compressed form.
	CompressedFlag = 0x01

	wifPayloadLen = 1 + PrivateKeyLen + 1
)

// EncodeWIF returns the compressed mainnet Wallet Import Format of k, the
// Base58Check encoding of 0x80 || k || 0x01.
func EncodeWIF(k *PrivateKey) string {
	payload := make([]byte, 0, wifPayloadLen)
	payload = append(payload, WIFVersion)
	payload = append(payload, k[:]...)
	payload = append(payload, CompressedFlag)
	return Base58CheckEncode(payload)
}

// DecodeWIF parses a compressed mainnet WIF string back into its private key.
// Uncompressed WIF strings are rejected with ErrNotCompressed.
func DecodeWIF(s string) (*PrivateKey, error) {
	payload, err := Base58CheckDecodeVersion(s, WIFVersion)
	if err != nil {
		return nil, err
	}

	switch len(payload) {
	case wifPayloadLen:
	case wifPayloadLen - 1:
		return nil, makeError(ErrNotCompressed, "wif payload has no compressed flag")
	default:
		str := fmt.Sprintf("wif payload is %d bytes, want %d", len(payload), wifPayloadLen)
		return nil, makeError(ErrInvalidPayloadLength, str)
	}
	if payload[wifPayloadLen-1] != CompressedFlag {
		str := fmt.Sprintf("wif compressed flag is 0x%02x, want 0x%02x",
			payload[wifPayloadLen-1], CompressedFlag)
		return nil, makeError(ErrNotCompressed, str)
	}

	var k PrivateKey
	copy(k[:], payload[1:1+PrivateKeyLen])
	zeroBytes(payload)
	if _, err := scalarFromKey(&k); err != nil {
		k.Zero()
		return nil, err
	}
	return &k, nil
}
