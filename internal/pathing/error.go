package pathing

import "errors"

var (
	// ErrEmptyPath is an error that occurs when an operation receives an
	// empty path where one is required.
	ErrEmptyPath = errors.New("path is empty")
)
