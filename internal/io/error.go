package io

import "errors"

var (
	// ErrHashMismatch is an error that occurs when a copied file's content
	// does not verify against the source, which usually means underlying
	// transfer or hardware issues.
	ErrHashMismatch = errors.New("hash mismatch between source and destination")

	// ErrDestinationExists is an error that occurs when a verified copy is
	// to be moved to its final name, but that name already exists.
	ErrDestinationExists = errors.New("copy destination already exists")

	// ErrNotADirectory is an error that occurs when a directory tree is to
	// be created over a path segment that exists, but is not a directory.
	ErrNotADirectory = errors.New("existing path segment is not a directory")
)
