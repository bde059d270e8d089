package keyderive

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Hash160 computes RIPEMD160(SHA256(data)).
func Hash160(data []byte) [Hash160Len]byte {
	sum := sha256.Sum256(data)

	rmd := ripemd160.New()
	rmd.Write(sum[:])

	var out [Hash160Len]byte
	copy(out[:], rmd.Sum(nil))
	return out
}

// DoubleSHA256 computes SHA256(SHA256(data)).
func DoubleSHA256(data []byte) [sha256.Size]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}
