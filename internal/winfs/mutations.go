package winfs

import (
	"errors"
	"fmt"

	"github.com/HecaiYuan/crossfs/internal/encoding"
)

// Remove implements [schema.Backend] removal. An attribute query decides
// between the distinct native directory and file deletion calls. A path whose
// element is already gone is a success; a path whose parent segment is
// missing is an error.
func (h *Handler) Remove(path string) error {
	encoded, err := encoding.EncodeUTF16(path)
	if err != nil {
		return h.LastErr.Record(fmt.Errorf("(winfs-remove) failed to encode %q: %w", path, err))
	}

	attrs, err := h.NativeOps.GetFileAttributesEx(encoded)
	if err != nil {
		if errors.Is(err, ErrnoFileNotFound) {
			// Already gone, call it a success. A missing parent segment
			// reports a different code and stays an error.
			return nil
		}

		return h.LastErr.Record(fmt.Errorf("(winfs-remove) failed to query %q: %w", path, err))
	}

	if attrs.FileAttributes&attrDirectory != 0 {
		if err := h.NativeOps.RemoveDirectory(encoded); err != nil {
			return h.LastErr.Record(fmt.Errorf("(winfs-remove) failed to remove directory %q: %w", path, err))
		}

		return nil
	}

	if err := h.NativeOps.DeleteFile(encoded); err != nil {
		return h.LastErr.Record(fmt.Errorf("(winfs-remove) failed to delete file %q: %w", path, err))
	}

	return nil
}

// Rename implements [schema.Backend] renaming through the native move call,
// instructed to replace an existing destination. Both paths are converted
// before any native call, so an unencodable path never results in a partial
// operation.
func (h *Handler) Rename(oldpath string, newpath string) error {
	encodedOld, err := encoding.EncodeUTF16(oldpath)
	if err != nil {
		return h.LastErr.Record(fmt.Errorf("(winfs-rename) failed to encode %q: %w", oldpath, err))
	}

	encodedNew, err := encoding.EncodeUTF16(newpath)
	if err != nil {
		return h.LastErr.Record(fmt.Errorf("(winfs-rename) failed to encode %q: %w", newpath, err))
	}

	if err := h.NativeOps.MoveFileReplacing(encodedOld, encodedNew); err != nil {
		return h.LastErr.Record(fmt.Errorf("(winfs-rename) failed to rename %q to %q: %w", oldpath, newpath, err))
	}

	return nil
}

// Mkdir implements [schema.Backend] directory creation. Missing parents are
// a native failure, never created implicitly.
func (h *Handler) Mkdir(path string) error {
	encoded, err := encoding.EncodeUTF16(path)
	if err != nil {
		return h.LastErr.Record(fmt.Errorf("(winfs-mkdir) failed to encode %q: %w", path, err))
	}

	if err := h.NativeOps.CreateDirectory(encoded); err != nil {
		return h.LastErr.Record(fmt.Errorf("(winfs-mkdir) failed to create %q: %w", path, err))
	}

	return nil
}
