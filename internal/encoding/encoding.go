// Package encoding provides the strict text conversions for the native
// filesystem boundary. All paths and entry names cross the codebase as
// canonical UTF-8; this package converts them to and from the UTF-16 form
// the native Windows layer expects, failing loudly instead of substituting
// replacement characters. A name that cannot be converted is never silently
// altered, it is reported as an error to the caller.
package encoding

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

const (
	surrogateMin = 0xD800
	surrogateMid = 0xDC00
	surrogateMax = 0xE000
)

// EncodeUTF16 converts a canonical UTF-8 string into UTF-16 code units,
// without a terminating NUL. Malformed UTF-8 input fails with [ErrMalformed],
// an interior NUL character fails with [ErrUnrepresentable].
func EncodeUTF16(s string) ([]uint16, error) {
	buf := make([]uint16, 0, len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("(encode-utf16) byte offset %d: %w", i, ErrMalformed)
		}
		if r == 0 {
			return nil, fmt.Errorf("(encode-utf16) byte offset %d: interior NUL: %w", i, ErrUnrepresentable)
		}

		buf = utf16.AppendRune(buf, r)
		i += size
	}

	return buf, nil
}

// DecodeUTF16 converts UTF-16 code units into a canonical UTF-8 string.
// An unpaired or reversed surrogate fails with [ErrMalformed].
func DecodeUTF16(u []uint16) (string, error) {
	buf := make([]byte, 0, len(u)*utf8.UTFMax)

	for i := 0; i < len(u); i++ {
		c := u[i]

		switch {
		case c < surrogateMin || c >= surrogateMax:
			buf = utf8.AppendRune(buf, rune(c))

		case c < surrogateMid:
			if i+1 >= len(u) {
				return "", fmt.Errorf("(decode-utf16) unit offset %d: truncated surrogate pair: %w", i, ErrMalformed)
			}
			c2 := u[i+1]
			if c2 < surrogateMid || c2 >= surrogateMax {
				return "", fmt.Errorf("(decode-utf16) unit offset %d: unpaired high surrogate: %w", i, ErrMalformed)
			}
			buf = utf8.AppendRune(buf, utf16.DecodeRune(rune(c), rune(c2)))
			i++

		default:
			return "", fmt.Errorf("(decode-utf16) unit offset %d: unpaired low surrogate: %w", i, ErrMalformed)
		}
	}

	return string(buf), nil
}

// ValidateUTF8 checks that a string is well-formed UTF-8, as required of all
// paths entering the portable layer. It fails with [ErrMalformed] otherwise.
func ValidateUTF8(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("(validate-utf8) %w", ErrMalformed)
	}

	return nil
}
