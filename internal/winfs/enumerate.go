package winfs

import (
	"context"
	"fmt"

	"github.com/HecaiYuan/crossfs/internal/encoding"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

// Enumerate implements [schema.Backend] directory enumeration. The empty
// path is the virtual root and enumerates the available drive letters, which
// needs no native directory handle at all.
func (h *Handler) Enumerate(ctx context.Context, path string, fn schema.EnumerateCallback) error {
	if path == "" {
		return h.enumerateDrives(ctx, fn)
	}

	// A wildcard is needed to iterate a native directory listing, but it is
	// only interpreted in the final path segment. Always appending "\*"
	// both lists everything and keeps wildcard characters inside the path
	// itself from being interpreted.
	pattern, err := encoding.EncodeUTF16(path + `\*`)
	if err != nil {
		return h.LastErr.Record(fmt.Errorf("(winfs-enumerate) failed to encode %q: %w", path, err))
	}

	handle, entry, err := h.NativeOps.FindFirstFile(pattern)
	if err != nil {
		return h.LastErr.Record(fmt.Errorf("(winfs-enumerate) failed to open listing of %q: %w", path, err))
	}
	defer h.NativeOps.FindClose(handle)

	for {
		if err := ctx.Err(); err != nil {
			return h.LastErr.Record(fmt.Errorf("(winfs-enumerate) %w", err))
		}

		if !isDotEntry(entry.FileName) {
			name, err := encoding.DecodeUTF16(entry.FileName)
			if err != nil {
				return h.LastErr.Record(fmt.Errorf("(winfs-enumerate) failed to decode entry name in %q: %w", path, err))
			}

			result := fn(path, name)
			if result == schema.EnumFailure {
				return h.LastErr.Record(fmt.Errorf("(winfs-enumerate) %w", schema.ErrCallbackAborted))
			}
			if result != schema.EnumContinue {
				return nil
			}
		}

		next, err := h.NativeOps.FindNextFile(handle)
		if err != nil {
			// The native protocol ends a listing with an error code; an
			// exhausted listing and a mid-listing failure both end the
			// enumeration here.
			return nil
		}
		entry = next
	}
}

// enumerateDrives reports each present drive letter as "A:" through "Z:",
// derived from the native drive bitmask.
func (h *Handler) enumerateDrives(ctx context.Context, fn schema.EnumerateCallback) error {
	drives, err := h.NativeOps.GetLogicalDrives()
	if err != nil {
		return h.LastErr.Record(fmt.Errorf("(winfs-enumerate) failed to get drive bitmask: %w", err))
	}

	for letter := byte('A'); letter <= 'Z'; letter++ {
		if drives&(1<<(letter-'A')) == 0 {
			continue
		}

		if err := ctx.Err(); err != nil {
			return h.LastErr.Record(fmt.Errorf("(winfs-enumerate) %w", err))
		}

		result := fn("", string([]byte{letter, ':'}))
		if result == schema.EnumFailure {
			return h.LastErr.Record(fmt.Errorf("(winfs-enumerate) %w", schema.ErrCallbackAborted))
		}
		if result != schema.EnumContinue {
			return nil
		}
	}

	return nil
}

// isDotEntry reports whether a native entry name is "." or "..", which are
// never surfaced.
func isDotEntry(name []uint16) bool {
	switch len(name) {
	case 1:
		return name[0] == '.'
	case 2:
		return name[0] == '.' && name[1] == '.'
	default:
		return false
	}
}
