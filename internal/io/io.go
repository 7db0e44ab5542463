// Package io provides the mutating operations on top of a platform
// [schema.Backend]: removal, renaming and directory creation, plus the
// composite operations (directory trees, verified file copies, recursive
// tree removal) that the queue and tooling layers drive.
package io

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/HecaiYuan/crossfs/internal/filesystem"
	"github.com/HecaiYuan/crossfs/internal/pathing"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

type fsProvider interface {
	IsEmptyDirectory(ctx context.Context, path string) (bool, error)
	Walk(ctx context.Context, root string, fn filesystem.WalkFunc) error
}

type osProvider interface {
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Remove(name string) error
	Stat(name string) (os.FileInfo, error)
}

// Handler is the principal structure for mutating a filesystem through a
// platform [schema.Backend]. Content transfer goes through the operating
// system directly, the backend handles the structural operations.
type Handler struct {
	Backend schema.Backend
	FSOps   fsProvider
	OSOps   osProvider

	// CopyBufferSize sets the transfer buffer for [Handler.CopyFile];
	// zero falls back to the [io.Copy] default.
	CopyBufferSize uint64

	bytesCopied atomic.Uint64
}

// NewHandler returns a [Handler] mutating the given [schema.Backend].
func NewHandler(backend schema.Backend, fsOps fsProvider, osOps osProvider) *Handler {
	return &Handler{
		Backend: backend,
		FSOps:   fsOps,
		OSOps:   osOps,
	}
}

// RemovePath removes the file or empty directory at path. Removing an
// already missing element succeeds.
func (i *Handler) RemovePath(path string) error {
	if err := pathing.Validate(path); err != nil {
		return fmt.Errorf("(io-remove) %w", err)
	}

	if err := i.Backend.Remove(path); err != nil {
		return fmt.Errorf("(io-remove) failed to remove %q: %w", path, err)
	}

	return nil
}

// RenamePath renames the element at oldpath to newpath, replacing an
// existing element at newpath where the platform allows it.
func (i *Handler) RenamePath(oldpath string, newpath string) error {
	if err := pathing.Validate(oldpath); err != nil {
		return fmt.Errorf("(io-rename) %w", err)
	}
	if err := pathing.Validate(newpath); err != nil {
		return fmt.Errorf("(io-rename) %w", err)
	}

	if err := i.Backend.Rename(oldpath, newpath); err != nil {
		return fmt.Errorf("(io-rename) failed to rename %q to %q: %w", oldpath, newpath, err)
	}

	return nil
}

// MakeDirectory creates the directory at path. The parent directory must
// already exist, see [Handler.MakeDirectoryTree] for creating whole chains.
func (i *Handler) MakeDirectory(path string) error {
	if err := pathing.Validate(path); err != nil {
		return fmt.Errorf("(io-mkdir) %w", err)
	}

	if err := i.Backend.Mkdir(path); err != nil {
		return fmt.Errorf("(io-mkdir) failed to create directory %q: %w", path, err)
	}

	return nil
}
