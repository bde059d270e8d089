package harness

import (
	"fmt"
	"strings"

	"github.com/mahdiidarabi/keyderive/pkg/keyderive"
)

// Output is a parsed three-line candidate output.
type Output struct {
	PubKey  string
	WIF     string
	Address string
}

// ShapeError describes why output does not have the required shape.  It
// never includes expected values.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "malformed output: " + e.Reason
}

func shapeError(format string, args ...interface{}) error {
	return &ShapeError{Reason: fmt.Sprintf(format, args...)}
}

// ValidateShape checks line count, prefixes, lengths and character classes
// and returns the parsed values.  Surrounding whitespace of the whole output
// is ignored, as is a trailing carriage return on each line.
func ValidateShape(out []byte) (*Output, error) {
	text := strings.TrimSpace(string(out))
	if text == "" {
		return nil, shapeError("output is empty")
	}

	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		return nil, shapeError("output must have exactly 3 lines, got %d", len(lines))
	}
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	prefixes := [3]string{keyderive.PubKeyPrefix, keyderive.WIFPrefix, keyderive.AddressPrefix}
	for i, prefix := range prefixes {
		if !strings.HasPrefix(lines[i], prefix) {
			return nil, shapeError("line %d must start with %q", i+1, prefix)
		}
	}

	o := &Output{
		PubKey:  strings.TrimPrefix(lines[0], keyderive.PubKeyPrefix),
		WIF:     strings.TrimPrefix(lines[1], keyderive.WIFPrefix),
		Address: strings.TrimPrefix(lines[2], keyderive.AddressPrefix),
	}

	if len(o.PubKey) != 2*keyderive.PublicKeyLen || !isUpperHex(o.PubKey) {
		return nil, shapeError("compressed pubkey must be %d uppercase hex characters", 2*keyderive.PublicKeyLen)
	}
	if !strings.HasPrefix(o.PubKey, "02") && !strings.HasPrefix(o.PubKey, "03") {
		return nil, shapeError("compressed pubkey must start with 02 or 03")
	}

	if o.WIF == "" || !strings.ContainsAny(o.WIF[:1], "KL5") {
		return nil, shapeError("WIF must start with K, L, or 5")
	}
	if !isBase58(o.WIF) {
		return nil, shapeError("WIF contains non-base58 characters")
	}

	if !strings.HasPrefix(o.Address, "1") {
		return nil, shapeError("P2PKH address must start with 1")
	}
	if !isBase58(o.Address) {
		return nil, shapeError("address contains non-base58 characters")
	}

	return o, nil
}

func isUpperHex(s string) bool {
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

func isBase58(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune(keyderive.Base58Alphabet, c) {
			return false
		}
	}
	return true
}

// Mismatch flags which components differ from the reference.
type Mismatch struct {
	PubKey  bool `json:"pubkey,omitempty" yaml:"pubkey,omitempty"`
	WIF     bool `json:"wif,omitempty" yaml:"wif,omitempty"`
	Address bool `json:"address,omitempty" yaml:"address,omitempty"`
}

// Any reports whether any component differs.
func (m Mismatch) Any() bool {
	return m.PubKey || m.WIF || m.Address
}

// Compare does an exact string comparison of each component.
func Compare(got, want *Output) Mismatch {
	return Mismatch{
		PubKey:  got.PubKey != want.PubKey,
		WIF:     got.WIF != want.WIF,
		Address: got.Address != want.Address,
	}
}

// ReferenceOutput computes the expected output for k.
func ReferenceOutput(k *keyderive.PrivateKey) (*Output, error) {
	d, err := keyderive.DeriveKey(k)
	if err != nil {
		return nil, err
	}
	return &Output{
		PubKey:  d.PublicKey.String(),
		WIF:     d.WIF,
		Address: d.Address,
	}, nil
}
