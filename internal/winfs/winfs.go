// Package winfs provides the Windows implementation of the portable
// [schema.Backend] contract on top of the Win32 wide-character filesystem
// API. All paths enter as canonical UTF-8 and are converted to UTF-16 at the
// native boundary; entry names returned by the native layer are converted
// back, with any conversion failure reported as an error rather than papered
// over with replacement characters.
//
// The package core is platform-neutral and operates against an injected
// native provider, so its behavior is exercisable anywhere; the provider
// binding to the real Win32 API is only compiled on Windows.
package winfs

import (
	"github.com/HecaiYuan/crossfs/internal/lasterr"
)

type nativeProvider interface {
	GetLogicalDrives() (uint32, error)
	FindFirstFile(pattern []uint16) (FindHandle, FindData, error)
	FindNextFile(handle FindHandle) (FindData, error)
	FindClose(handle FindHandle) error
	GetFileAttributesEx(path []uint16) (AttributeData, error)
	RemoveDirectory(path []uint16) error
	DeleteFile(path []uint16) error
	MoveFileReplacing(oldpath []uint16, newpath []uint16) error
	CreateDirectory(path []uint16) error
}

// Handler is the principal structure implementing [schema.Backend] for
// Windows filesystems.
type Handler struct {
	NativeOps nativeProvider
	LastErr   *lasterr.Sink
}

// NewHandler returns a [Handler] operating on the given native provider,
// recording native failures into the given [lasterr.Sink].
func NewHandler(nativeOps nativeProvider, lastErr *lasterr.Sink) *Handler {
	return &Handler{
		NativeOps: nativeOps,
		LastErr:   lastErr,
	}
}
