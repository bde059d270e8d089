package keyderive

import "fmt"

// P2PKHVersion is the mainnet pay-to-pubkey-hash version byte.
const P2PKHVersion = 0x00

// EncodeAddress returns the mainnet P2PKH address of pub, the Base58Check
// encoding of 0x00 || Hash160(pub).
func EncodeAddress(pub PublicKey) string {
	h := Hash160(pub[:])

	payload := make([]byte, 0, 1+Hash160Len)
	payload = append(payload, P2PKHVersion)
	payload = append(payload, h[:]...)
	return Base58CheckEncode(payload)
}

// DecodeAddress parses a mainnet P2PKH address and returns its public key
// hash.
func DecodeAddress(s string) ([Hash160Len]byte, error) {
	var h [Hash160Len]byte

	payload, err := Base58CheckDecodeVersion(s, P2PKHVersion)
	if err != nil {
		return h, err
	}
	if len(payload) != 1+Hash160Len {
		str := fmt.Sprintf("address payload is %d bytes, want %d", len(payload), 1+Hash160Len)
		return h, makeError(ErrInvalidPayloadLength, str)
	}

	copy(h[:], payload[1:])
	return h, nil
}
