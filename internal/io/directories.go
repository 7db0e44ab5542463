package io

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/HecaiYuan/crossfs/internal/pathing"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

// MakeDirectoryTree creates the directory at path along with any missing
// parents, shallowest first. Segments that already exist as directories are
// kept; a segment existing as anything else fails the operation.
func (i *Handler) MakeDirectoryTree(path string) error {
	if err := pathing.Validate(path); err != nil {
		return fmt.Errorf("(io-tree) %w", err)
	}

	for _, dir := range pathing.ParentChain(path) {
		if info, err := i.Backend.Stat(dir); err == nil {
			if !info.IsDir() {
				return fmt.Errorf("(io-tree) %w: %s", ErrNotADirectory, dir)
			}

			continue
		}

		if err := i.Backend.Mkdir(dir); err != nil {
			// Another writer may have raced the creation; any segment
			// that stats as a directory after the failure is kept.
			if info, statErr := i.Backend.Stat(dir); statErr == nil && info.IsDir() {
				continue
			}

			return fmt.Errorf("(io-tree) failed to create directory %q: %w", dir, err)
		}
	}

	return nil
}

// RemoveTree removes the element at path and, for directories, everything
// below it. Removal happens deepest-first, so every directory is empty by
// the time its own removal comes up.
func (i *Handler) RemoveTree(ctx context.Context, path string) error {
	if err := pathing.Validate(path); err != nil {
		return fmt.Errorf("(io-rmtree) %w", err)
	}

	info, err := i.Backend.Stat(path)
	if err != nil {
		// Nothing to descend into; removal settles whether a missing
		// target still counts as success.
		if err := i.Backend.Remove(path); err != nil {
			return fmt.Errorf("(io-rmtree) failed to remove %q: %w", path, err)
		}

		return nil
	}

	if !info.IsDir() {
		if err := i.Backend.Remove(path); err != nil {
			return fmt.Errorf("(io-rmtree) failed to remove %q: %w", path, err)
		}

		return nil
	}

	var paths []string

	err = i.FSOps.Walk(ctx, path, func(p string, info schema.PathInfo) error {
		paths = append(paths, p)

		return nil
	})
	if err != nil {
		return fmt.Errorf("(io-rmtree) failed to walk %q: %w", path, err)
	}

	// Walking is parents-first; removing in reverse empties every
	// directory before its own removal comes up.
	for idx := len(paths) - 1; idx >= 0; idx-- {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("(io-rmtree) %w", err)
		}

		if err := i.Backend.Remove(paths[idx]); err != nil {
			return fmt.Errorf("(io-rmtree) failed to remove %q: %w", paths[idx], err)
		}
	}

	if err := i.Backend.Remove(path); err != nil {
		return fmt.Errorf("(io-rmtree) failed to remove %q: %w", path, err)
	}

	return nil
}

// PruneEmptyDirectories removes empty directories below path, deepest-first
// so chains of nothing but empty directories collapse in one pass. The root
// itself stays. Directories that fail to check or remove are skipped with a
// warning; the returned count covers the actual removals.
func (i *Handler) PruneEmptyDirectories(ctx context.Context, path string) (int, error) {
	if err := pathing.Validate(path); err != nil {
		return 0, fmt.Errorf("(io-prune) %w", err)
	}

	var dirs []string

	err := i.FSOps.Walk(ctx, path, func(p string, info schema.PathInfo) error {
		if info.IsDir() {
			dirs = append(dirs, p)
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("(io-prune) failed to walk %q: %w", path, err)
	}

	pruned := 0

	for idx := len(dirs) - 1; idx >= 0; idx-- {
		isEmpty, err := i.FSOps.IsEmptyDirectory(ctx, dirs[idx])
		if err != nil {
			slog.Warn("Warning (prune): failure establishing directory emptiness (skipped)",
				"path", dirs[idx],
				"err", err,
			)

			continue
		}

		if isEmpty {
			if err := i.Backend.Remove(dirs[idx]); err != nil {
				slog.Warn("Warning (prune): failure removing empty directory (skipped)",
					"path", dirs[idx],
					"err", err,
				)

				continue
			}
			pruned++
		}
	}

	return pruned, nil
}
