package keyderive

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Stage is a step of the derivation pipeline.  Only input parsing and scalar
// multiplication can fail, so a StageError always carries
// StageReceivedInput or StageValidated.  The later stages name the steps that
// follow and cannot fail for a validated key.
type Stage int

// Pipeline stages in the order they are entered.
const (
	StageReceivedInput Stage = iota
	StageValidated
	StagePointComputed
	StageCompressed
	StageWIFEncoded
	StageAddressEncoded
	StageEmitted
)

var stageNames = [...]string{
	StageReceivedInput:  "received_input",
	StageValidated:      "validated",
	StagePointComputed:  "point_computed",
	StageCompressed:     "compressed",
	StageWIFEncoded:     "wif_encoded",
	StageAddressEncoded: "address_encoded",
	StageEmitted:        "emitted",
}

// String returns the stage name.
func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// StageError reports the transition that failed.  Stage is the last stage
// that was reached successfully.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("derivation failed after %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Output line prefixes.
const (
	PubKeyPrefix  = "Compressed PubKey: "
	WIFPrefix     = "WIF: "
	AddressPrefix = "Address: "
)

// ParsePrivateKey parses 64 hex characters into a private key.  Surrounding
// whitespace is ignored.  The scalar range is checked here so that invalid
// keys never reach the curve or hash code.
func ParsePrivateKey(s string) (*PrivateKey, error) {
	s = strings.TrimSpace(s)

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, makeError(ErrInvalidHexInput, fmt.Sprintf("private key is not valid hex: %v", err))
	}
	if len(raw) != PrivateKeyLen {
		str := fmt.Sprintf("private key must be %d bytes (%d hex chars), got %d bytes",
			PrivateKeyLen, PrivateKeyLen*2, len(raw))
		return nil, makeError(ErrInvalidKeyLength, str)
	}

	var k PrivateKey
	copy(k[:], raw)
	zeroBytes(raw)
	if _, err := scalarFromKey(&k); err != nil {
		k.Zero()
		return nil, err
	}
	return &k, nil
}

// Derive runs the full pipeline on a hex encoded private key.  The parsed
// key is zeroed before returning.
func Derive(hexKey string) (*Derivation, error) {
	k, err := ParsePrivateKey(hexKey)
	if err != nil {
		return nil, &StageError{Stage: StageReceivedInput, Err: err}
	}
	defer k.Zero()
	return DeriveKey(k)
}

// DeriveKey runs the pipeline from an already decoded private key.  k is not
// modified; callers that decoded it zero it when done.
func DeriveKey(k *PrivateKey) (*Derivation, error) {
	if _, err := scalarFromKey(k); err != nil {
		return nil, &StageError{Stage: StageReceivedInput, Err: err}
	}

	point, err := Multiply(k)
	if err != nil {
		return nil, &StageError{Stage: StageValidated, Err: err}
	}

	d := &Derivation{}
	d.PublicKey = Compress(point)
	d.WIF = EncodeWIF(k)
	d.Address = EncodeAddress(d.PublicKey)
	return d, nil
}

// Format renders the three output lines, each terminated by a newline.
func (d *Derivation) Format() string {
	var b strings.Builder
	b.WriteString(PubKeyPrefix)
	b.WriteString(d.PublicKey.String())
	b.WriteByte('\n')
	b.WriteString(WIFPrefix)
	b.WriteString(d.WIF)
	b.WriteByte('\n')
	b.WriteString(AddressPrefix)
	b.WriteString(d.Address)
	b.WriteByte('\n')
	return b.String()
}

// WriteTo writes the formatted output to w in a single write.
func (d *Derivation) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.Format())
	return int64(n), err
}
