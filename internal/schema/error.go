package schema

import "errors"

var (
	// ErrCallbackAborted is an error that occurs when an [EnumerateCallback]
	// returns [EnumFailure], aborting the enumeration it was driving.
	ErrCallbackAborted = errors.New("enumeration aborted by callback")
)
