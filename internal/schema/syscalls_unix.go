//go:build unix

package schema

import (
	"golang.org/x/sys/unix"
)

// Unix is an implementation wrapping Unix operating system functions.
type Unix struct{}

// Lstat wraps around [unix.Lstat].
func (*Unix) Lstat(path string, stat *unix.Stat_t) error {
	return unix.Lstat(path, stat)
}

// Mkdir wraps around [unix.Mkdir].
func (*Unix) Mkdir(path string, mode uint32) error {
	return unix.Mkdir(path, mode)
}

// Rmdir wraps around [unix.Rmdir].
func (*Unix) Rmdir(path string) error {
	return unix.Rmdir(path)
}

// Unlink wraps around [unix.Unlink].
func (*Unix) Unlink(path string) error {
	return unix.Unlink(path)
}

// Rename wraps around [unix.Rename].
func (*Unix) Rename(oldpath, newpath string) error {
	return unix.Rename(oldpath, newpath)
}
