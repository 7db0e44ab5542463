//go:build unix

// Package posixfs provides the Unix implementation of the portable
// [schema.Backend] contract on top of POSIX filesystem syscalls. Paths pass
// through byte-for-byte, but both incoming paths and outgoing entry names are
// still held to the canonical UTF-8 contract, so behavior lines up with
// platforms where a real encoding conversion happens at this boundary.
package posixfs

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/HecaiYuan/crossfs/internal/lasterr"
)

type osProvider interface {
	Open(name string) (*os.File, error)
}

type unixProvider interface {
	Lstat(path string, stat *unix.Stat_t) error
	Mkdir(path string, mode uint32) error
	Rmdir(path string) error
	Unlink(path string) error
	Rename(oldpath, newpath string) error
}

// Handler is the principal structure implementing [schema.Backend] for
// POSIX filesystems.
type Handler struct {
	OSOps   osProvider
	UnixOps unixProvider
	LastErr *lasterr.Sink
}

// NewHandler returns a [Handler] operating on the given providers, recording
// native failures into the given [lasterr.Sink].
func NewHandler(osOps osProvider, unixOps unixProvider, lastErr *lasterr.Sink) *Handler {
	return &Handler{
		OSOps:   osOps,
		UnixOps: unixOps,
		LastErr: lastErr,
	}
}
