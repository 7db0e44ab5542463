//go:build unix

package posixfs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/HecaiYuan/crossfs/internal/encoding"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

// enumBatchSize is the number of directory entries read per native call.
const enumBatchSize = 128

// Enumerate implements [schema.Backend] directory enumeration. The empty
// path is the virtual root and reports the single top-level root "/", the
// POSIX counterpart of a platform's drive letters, which needs no native
// directory handle at all.
func (h *Handler) Enumerate(ctx context.Context, path string, fn schema.EnumerateCallback) error {
	if err := encoding.ValidateUTF8(path); err != nil {
		return h.LastErr.Record(fmt.Errorf("(posixfs-enumerate) invalid path %q: %w", path, err))
	}

	if path == "" {
		if err := ctx.Err(); err != nil {
			return h.LastErr.Record(fmt.Errorf("(posixfs-enumerate) %w", err))
		}

		if fn("", "/") == schema.EnumFailure {
			return h.LastErr.Record(fmt.Errorf("(posixfs-enumerate) %w", schema.ErrCallbackAborted))
		}

		return nil
	}

	dir, err := h.OSOps.Open(path)
	if err != nil {
		return h.LastErr.Record(fmt.Errorf("(posixfs-enumerate) failed to open listing of %q: %w", path, err))
	}
	defer dir.Close()

	for {
		names, err := dir.Readdirnames(enumBatchSize)

		for _, name := range names {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return h.LastErr.Record(fmt.Errorf("(posixfs-enumerate) %w", ctxErr))
			}

			if name == "." || name == ".." {
				continue
			}

			if encErr := encoding.ValidateUTF8(name); encErr != nil {
				return h.LastErr.Record(fmt.Errorf("(posixfs-enumerate) failed to decode entry name in %q: %w", path, encErr))
			}

			result := fn(path, name)
			if result == schema.EnumFailure {
				return h.LastErr.Record(fmt.Errorf("(posixfs-enumerate) %w", schema.ErrCallbackAborted))
			}
			if result != schema.EnumContinue {
				return nil
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return h.LastErr.Record(fmt.Errorf("(posixfs-enumerate) failed to read listing of %q: %w", path, err))
		}
	}
}
