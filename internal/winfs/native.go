package winfs

import "fmt"

// Errno is a native Windows error code, mirrored here so the package core
// can reason about native failures on any platform.
type Errno uint32

const (
	// ErrnoFileNotFound is ERROR_FILE_NOT_FOUND: the element itself is missing.
	ErrnoFileNotFound Errno = 2

	// ErrnoPathNotFound is ERROR_PATH_NOT_FOUND: a parent segment is missing.
	ErrnoPathNotFound Errno = 3

	// ErrnoAccessDenied is ERROR_ACCESS_DENIED.
	ErrnoAccessDenied Errno = 5

	// ErrnoNoMoreFiles is ERROR_NO_MORE_FILES: a directory listing is exhausted.
	ErrnoNoMoreFiles Errno = 18
)

// Error implements the error interface for native Windows error codes.
func (e Errno) Error() string {
	switch e {
	case ErrnoFileNotFound:
		return "the system cannot find the file specified"
	case ErrnoPathNotFound:
		return "the system cannot find the path specified"
	case ErrnoAccessDenied:
		return "access is denied"
	case ErrnoNoMoreFiles:
		return "there are no more files"
	default:
		return fmt.Sprintf("native error code %d", uint32(e))
	}
}

// FindHandle is a native directory search handle.
type FindHandle uintptr

// Filetime mirrors the native FILETIME structure: a count of 100-nanosecond
// ticks since January 1, 1601 (UTC), split into two 32-bit halves. An
// all-zero Filetime marks a timestamp the filesystem did not record.
type Filetime struct {
	LowDateTime  uint32
	HighDateTime uint32
}

// FindData mirrors the per-entry result of a native directory search.
// FileName holds the entry name as UTF-16 units without a terminator.
type FindData struct {
	FileAttributes uint32
	CreationTime   Filetime
	LastAccessTime Filetime
	LastWriteTime  Filetime
	FileSizeHigh   uint32
	FileSizeLow    uint32
	FileName       []uint16
}

// AttributeData mirrors the native attribute metadata of a single path, as
// returned by an attribute query.
type AttributeData struct {
	FileAttributes uint32
	CreationTime   Filetime
	LastAccessTime Filetime
	LastWriteTime  Filetime
	FileSizeHigh   uint32
	FileSizeLow    uint32
}

const (
	attrDirectory = 0x00000010 // FILE_ATTRIBUTE_DIRECTORY
	attrDevice    = 0x00000040 // FILE_ATTRIBUTE_DEVICE
	attrOffline   = 0x00001000 // FILE_ATTRIBUTE_OFFLINE
)

// size returns the 64-bit element size assembled from its 32-bit halves.
func (d AttributeData) size() uint64 {
	return uint64(d.FileSizeHigh)<<32 | uint64(d.FileSizeLow)
}
