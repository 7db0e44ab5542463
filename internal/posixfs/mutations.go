//go:build unix

package posixfs

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/HecaiYuan/crossfs/internal/encoding"
)

// mkdirMode is the permission mode for created directories, before umask.
const mkdirMode = 0o755

// Remove implements [schema.Backend] removal. A metadata query decides
// between the distinct native directory and file removal calls; symbolic
// links are never followed, so removing a link removes the link itself. A
// path that is already gone is a success.
func (h *Handler) Remove(path string) error {
	if err := encoding.ValidateUTF8(path); err != nil {
		return h.LastErr.Record(fmt.Errorf("(posixfs-remove) invalid path %q: %w", path, err))
	}

	var stat unix.Stat_t
	if err := h.UnixOps.Lstat(path, &stat); err != nil {
		if errors.Is(err, unix.ENOENT) {
			// Already gone, call it a success.
			return nil
		}

		return h.LastErr.Record(fmt.Errorf("(posixfs-remove) failed to query %q: %w", path, err))
	}

	if stat.Mode&unix.S_IFMT == unix.S_IFDIR {
		if err := h.UnixOps.Rmdir(path); err != nil {
			return h.LastErr.Record(fmt.Errorf("(posixfs-remove) failed to remove directory %q: %w", path, err))
		}

		return nil
	}

	if err := h.UnixOps.Unlink(path); err != nil {
		return h.LastErr.Record(fmt.Errorf("(posixfs-remove) failed to unlink %q: %w", path, err))
	}

	return nil
}

// Rename implements [schema.Backend] renaming. The native call replaces an
// existing destination file by itself.
func (h *Handler) Rename(oldpath string, newpath string) error {
	if err := encoding.ValidateUTF8(oldpath); err != nil {
		return h.LastErr.Record(fmt.Errorf("(posixfs-rename) invalid path %q: %w", oldpath, err))
	}
	if err := encoding.ValidateUTF8(newpath); err != nil {
		return h.LastErr.Record(fmt.Errorf("(posixfs-rename) invalid path %q: %w", newpath, err))
	}

	if err := h.UnixOps.Rename(oldpath, newpath); err != nil {
		return h.LastErr.Record(fmt.Errorf("(posixfs-rename) failed to rename %q to %q: %w", oldpath, newpath, err))
	}

	return nil
}

// Mkdir implements [schema.Backend] directory creation. Missing parents are
// a native failure, never created implicitly.
func (h *Handler) Mkdir(path string) error {
	if err := encoding.ValidateUTF8(path); err != nil {
		return h.LastErr.Record(fmt.Errorf("(posixfs-mkdir) invalid path %q: %w", path, err))
	}

	if err := h.UnixOps.Mkdir(path, mkdirMode); err != nil {
		return h.LastErr.Record(fmt.Errorf("(posixfs-mkdir) failed to create %q: %w", path, err))
	}

	return nil
}
