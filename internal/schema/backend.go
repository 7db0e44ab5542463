package schema

import "context"

// Backend is the principal interface a platform filesystem implementation
// provides. Exactly one Backend is active per platform; everything above it
// operates on canonical UTF-8 paths and portable [PathInfo] metadata, while
// the Backend translates to and from whatever the native layer expects.
//
// Backends are meant to be stateless and safe for concurrent use.
type Backend interface {
	// Enumerate calls fn once per entry of the directory at path, in
	// native enumeration order. The self and parent entries ("." and
	// "..") are never reported. Enumeration ends early when fn returns
	// [EnumStop] (reported as success) or [EnumFailure] (reported as
	// [ErrCallbackAborted]).
	Enumerate(ctx context.Context, path string, fn EnumerateCallback) error

	// Stat returns portable [PathInfo] metadata for the element at path,
	// without following a trailing symbolic link.
	Stat(path string) (PathInfo, error)

	// Remove deletes the file or empty directory at path. Removing a
	// path that does not exist is a success, as the desired outcome
	// already holds. Removing a non-empty directory is an error.
	Remove(path string) error

	// Rename moves the element at oldpath to newpath, replacing an
	// existing file at newpath where the platform allows it.
	Rename(oldpath string, newpath string) error

	// Mkdir creates a single new directory at path. The parent directory
	// must already exist; missing parents are an error, not created.
	Mkdir(path string) error
}
