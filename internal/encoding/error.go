package encoding

import "errors"

var (
	// ErrMalformed is an error that occurs when text is not well-formed in
	// its claimed encoding, such as invalid UTF-8 bytes or unpaired UTF-16
	// surrogates.
	ErrMalformed = errors.New("text is not well-formed")

	// ErrUnrepresentable is an error that occurs when well-formed text
	// cannot be represented at the native boundary, such as a path
	// containing an interior NUL character.
	ErrUnrepresentable = errors.New("text is not representable")
)
