package schema

// EnumerationResult is the verdict an [EnumerateCallback] returns for a single
// directory entry. It steers the enumeration loop of a [Backend].
type EnumerationResult int

const (
	// EnumFailure stops the enumeration and fails it with [ErrCallbackAborted].
	EnumFailure EnumerationResult = iota - 1

	// EnumStop stops the enumeration early, with the enumeration still
	// reporting overall success.
	EnumStop

	// EnumContinue continues the enumeration with the next directory entry.
	EnumContinue
)

// EnumerateCallback is a function receiving one directory entry per call
// during an enumeration. The directory argument is the path as given to
// [Backend.Enumerate], the name argument is the bare entry name without any
// path separators. The returned [EnumerationResult] steers the enumeration.
type EnumerateCallback func(directory string, name string) EnumerationResult
