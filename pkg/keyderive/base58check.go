package keyderive

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Base58Alphabet is the Bitcoin Base58 alphabet.  It omits 0, O, I and l.
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ChecksumLen is the number of double SHA-256 bytes appended to a payload.
const ChecksumLen = 4

// checksum returns the first four bytes of SHA256(SHA256(payload)).
func checksum(payload []byte) [ChecksumLen]byte {
	var cksum [ChecksumLen]byte
	h := DoubleSHA256(payload)
	copy(cksum[:], h[:ChecksumLen])
	return cksum
}

// Base58CheckEncode appends the checksum to payload and encodes the result as
// a big-endian Base58 number.  Every leading zero byte of payload becomes one
// leading '1'.
func Base58CheckEncode(payload []byte) string {
	cksum := checksum(payload)

	buf := make([]byte, 0, len(payload)+ChecksumLen)
	buf = append(buf, payload...)
	buf = append(buf, cksum[:]...)
	return base58.Encode(buf)
}

// Base58CheckDecode reverses Base58CheckEncode, validating the alphabet and
// the checksum.  The returned slice is the payload without the checksum.
func Base58CheckDecode(s string) ([]byte, error) {
	for i, r := range s {
		if !strings.ContainsRune(Base58Alphabet, r) {
			str := fmt.Sprintf("invalid base58 character %q at offset %d", r, i)
			return nil, makeError(ErrInvalidCharacter, str)
		}
	}

	decoded := base58.Decode(s)
	if len(decoded) < ChecksumLen {
		str := fmt.Sprintf("decoded length %d is shorter than the %d byte checksum",
			len(decoded), ChecksumLen)
		return nil, makeError(ErrEncodingTooShort, str)
	}

	payload := decoded[:len(decoded)-ChecksumLen]
	want := checksum(payload)
	if !bytes.Equal(decoded[len(decoded)-ChecksumLen:], want[:]) {
		return nil, makeError(ErrChecksumMismatch, "base58check checksum mismatch")
	}
	return payload, nil
}

// Base58CheckDecodeVersion decodes s and requires the payload to start with
// version.  The version byte is kept in the returned payload.
func Base58CheckDecodeVersion(s string, version byte) ([]byte, error) {
	payload, err := Base58CheckDecode(s)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 || payload[0] != version {
		str := fmt.Sprintf("payload does not start with version byte 0x%02x", version)
		return nil, makeError(ErrUnexpectedVersion, str)
	}
	return payload, nil
}
