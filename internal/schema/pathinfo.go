package schema

// PathType describes the fundamental kind of a filesystem element, as far as
// the portable contract distinguishes them. Anything that is neither a regular
// file nor a directory (devices, sockets, pipes, drive roots) reports as
// [TypeOther].
type PathType int

const (
	// TypeFile is a regular file.
	TypeFile PathType = iota

	// TypeDirectory is a directory.
	TypeDirectory

	// TypeOther is any filesystem element that is neither a regular file
	// nor a directory.
	TypeOther
)

// String returns a human-readable name for a [PathType].
func (t PathType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	case TypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// PathInfo is the principal structure holding portable metadata of a single
// filesystem element. All timestamps are Unix epoch seconds in UTC; a zero
// timestamp means the underlying platform did not record that time.
//
// PathInfo is meant to be passed by value and carries no platform handles.
type PathInfo struct {
	// Type is the [PathType] of the filesystem element.
	Type PathType

	// Size is the size of the filesystem element in bytes.
	// It is zero for directories and elements without a defined size.
	Size uint64

	// CreateTime is the creation time in Unix epoch seconds,
	// or zero when the platform did not record one.
	CreateTime int64

	// ModifyTime is the last modification time in Unix epoch seconds,
	// or zero when the platform did not record one.
	ModifyTime int64

	// AccessTime is the last access time in Unix epoch seconds,
	// or zero when the platform did not record one.
	AccessTime int64
}

// IsDir reports whether the [PathInfo] describes a directory.
func (i PathInfo) IsDir() bool {
	return i.Type == TypeDirectory
}
