package keyderive

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidHexInput is returned when the private key input is not valid
	// hexadecimal.  An odd number of digits is treated as invalid hex.
	ErrInvalidHexInput = ErrorKind("ErrInvalidHexInput")

	// ErrInvalidKeyLength is returned when the decoded private key is not
	// exactly 32 bytes.
	ErrInvalidKeyLength = ErrorKind("ErrInvalidKeyLength")

	// ErrKeyOutOfRange is returned when the private key scalar is zero or is
	// greater than or equal to the group order.
	ErrKeyOutOfRange = ErrorKind("ErrKeyOutOfRange")

	// ErrPointNotOnCurve is returned when a computed point does not satisfy
	// the curve equation.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")

	// ErrInvalidCharacter is returned when a Base58 string contains a
	// character outside of the Bitcoin alphabet.
	ErrInvalidCharacter = ErrorKind("ErrInvalidCharacter")

	// ErrEncodingTooShort is returned when a Base58Check string decodes to
	// fewer bytes than the checksum occupies.
	ErrEncodingTooShort = ErrorKind("ErrEncodingTooShort")

	// ErrChecksumMismatch is returned when the trailing four bytes of a
	// Base58Check string do not match the double SHA-256 of its payload.
	ErrChecksumMismatch = ErrorKind("ErrChecksumMismatch")

	// ErrUnexpectedVersion is returned when a decoded payload does not begin
	// with the expected version byte.
	ErrUnexpectedVersion = ErrorKind("ErrUnexpectedVersion")

	// ErrInvalidPayloadLength is returned when a decoded payload has the
	// right version but the wrong length for its kind.
	ErrInvalidPayloadLength = ErrorKind("ErrInvalidPayloadLength")

	// ErrNotCompressed is returned when a WIF payload lacks the trailing
	// compressed public key flag.
	ErrNotCompressed = ErrorKind("ErrNotCompressed")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to key derivation or encoding.  It has
// full support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
