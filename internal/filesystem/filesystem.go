// Package filesystem provides the portable query surface over a platform
// [schema.Backend]: direct enumeration and metadata lookups plus the derived
// operations (existence checks, emptiness checks, recursive walks and glob
// matching) that upper layers and tooling build on. Mutating operations live
// in the io package.
package filesystem

import (
	"context"
	"fmt"

	"github.com/HecaiYuan/crossfs/internal/pathing"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

// Handler is the principal structure for querying a filesystem through a
// platform [schema.Backend].
type Handler struct {
	Backend schema.Backend
}

// NewHandler returns a [Handler] querying the given [schema.Backend].
func NewHandler(backend schema.Backend) *Handler {
	return &Handler{
		Backend: backend,
	}
}

// Enumerate calls fn once per entry of the directory at path, in native
// order. The empty path enumerates the filesystem roots. See
// [schema.Backend] for the callback protocol.
func (f *Handler) Enumerate(ctx context.Context, path string, fn schema.EnumerateCallback) error {
	return f.Backend.Enumerate(ctx, path, fn)
}

// GetPathInfo returns portable metadata for the element at path.
func (f *Handler) GetPathInfo(path string) (schema.PathInfo, error) {
	if err := pathing.Validate(path); err != nil {
		return schema.PathInfo{}, fmt.Errorf("(fs-info) %w", err)
	}

	info, err := f.Backend.Stat(path)
	if err != nil {
		return schema.PathInfo{}, fmt.Errorf("(fs-info) %w", err)
	}

	return info, nil
}

// Exists reports whether the element at path exists.
func (f *Handler) Exists(path string) bool {
	if err := pathing.Validate(path); err != nil {
		return false
	}

	_, err := f.Backend.Stat(path)

	return err == nil
}

// IsEmptyDirectory reports whether the directory at path has no entries. It
// stops the underlying enumeration at the first entry seen.
func (f *Handler) IsEmptyDirectory(ctx context.Context, path string) (bool, error) {
	empty := true

	err := f.Backend.Enumerate(ctx, path, func(dir, name string) schema.EnumerationResult {
		empty = false

		return schema.EnumStop
	})
	if err != nil {
		return false, fmt.Errorf("(fs-isempty) %w", err)
	}

	return empty, nil
}
