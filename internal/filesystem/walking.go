package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/HecaiYuan/crossfs/internal/pathing"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

// WalkFunc visits one filesystem element during a [Handler.Walk]. Returning
// [fs.SkipDir] for a directory skips its children; any other error aborts
// the walk.
type WalkFunc func(path string, info schema.PathInfo) error

// Walk visits every element below root depth-first, directories before their
// children, in native enumeration order. The root itself is not visited.
func (f *Handler) Walk(ctx context.Context, root string, fn WalkFunc) error {
	return f.walk(ctx, root, fn)
}

func (f *Handler) walk(ctx context.Context, dir string, fn WalkFunc) error {
	// Children are collected up front, so no native listing handle stays
	// open across the recursive descent.
	var children []string

	err := f.Backend.Enumerate(ctx, dir, func(d, name string) schema.EnumerationResult {
		children = append(children, pathing.Join(dir, name))

		return schema.EnumContinue
	})
	if err != nil {
		return fmt.Errorf("(fs-walk) failed to enumerate %q: %w", dir, err)
	}

	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("(fs-walk) %w", err)
		}

		info, err := f.Backend.Stat(child)
		if err != nil {
			return fmt.Errorf("(fs-walk) failed to stat %q: %w", child, err)
		}

		if err := fn(child, info); err != nil {
			if errors.Is(err, fs.SkipDir) {
				continue
			}

			return err
		}

		if info.IsDir() {
			if err := f.walk(ctx, child, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

// Glob walks the tree below root and returns the paths matching pattern,
// relative to root with '/' separators, in walk order. Patterns support
// doublestar syntax ("**" spans directories).
func (f *Handler) Glob(ctx context.Context, root string, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("(fs-glob) %q: %w", pattern, doublestar.ErrBadPattern)
	}

	var matches []string

	err := f.Walk(ctx, root, func(path string, info schema.PathInfo) error {
		rel := relativeTo(root, path)

		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return fmt.Errorf("(fs-glob) %q: %w", pattern, err)
		}
		if ok {
			matches = append(matches, rel)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("(fs-glob) failed to walk %q: %w", root, err)
	}

	return matches, nil
}

// relativeTo strips the walk root from a path produced below it and
// normalizes the separators for matching.
func relativeTo(root string, path string) string {
	rel := strings.TrimPrefix(path, root)
	for len(rel) > 0 && (rel[0] == '/' || rel[0] == '\\') {
		rel = rel[1:]
	}

	return strings.ReplaceAll(rel, `\`, "/")
}
