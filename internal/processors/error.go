package processors

import "errors"

// ErrUnknownOperation occurs when an operation kind has no handler mapping.
var ErrUnknownOperation = errors.New("unknown operation kind")
