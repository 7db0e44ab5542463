//go:build unix

package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/HecaiYuan/crossfs/internal/filesystem"
	"github.com/HecaiYuan/crossfs/internal/lasterr"
	"github.com/HecaiYuan/crossfs/internal/pathing"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

// newTestHandler returns a [Handler] over the real platform backend, for
// exercising the mutation surface against a temporary directory.
func newTestHandler() *Handler {
	backend := filesystem.NewDefaultBackend(&lasterr.Sink{})

	return NewHandler(backend, filesystem.NewHandler(backend), &schema.OS{})
}

// writeFile creates a file with content for test setup.
func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestRemovePath_Success tests removing an existing file.
func TestRemovePath_Success(t *testing.T) {
	t.Parallel()

	i := newTestHandler()

	target := filepath.Join(t.TempDir(), "victim.txt")
	writeFile(t, target, "content")

	require.NoError(t, i.RemovePath(target))
	assert.NoFileExists(t, target)
}

// TestRemovePath_Success_Missing tests that removing an already missing
// element succeeds.
func TestRemovePath_Success_Missing(t *testing.T) {
	t.Parallel()

	i := newTestHandler()

	require.NoError(t, i.RemovePath(filepath.Join(t.TempDir(), "missing.txt")))
}

// TestRemovePath_Fail_EmptyPath tests rejection of the empty path.
func TestRemovePath_Fail_EmptyPath(t *testing.T) {
	t.Parallel()

	i := newTestHandler()

	err := i.RemovePath("")

	require.Error(t, err)
	require.ErrorIs(t, err, pathing.ErrEmptyPath)
}

// TestRemovePath_Fail_NonEmptyDirectory tests that removing a non-empty
// directory surfaces the native error.
func TestRemovePath_Fail_NonEmptyDirectory(t *testing.T) {
	t.Parallel()

	i := newTestHandler()

	base := t.TempDir()
	writeFile(t, filepath.Join(base, "occupant.txt"), "content")

	err := i.RemovePath(base)

	require.Error(t, err)
	require.ErrorIs(t, err, unix.ENOTEMPTY)
}

// TestRenamePath_Success tests renaming a file, including over an existing
// destination.
func TestRenamePath_Success(t *testing.T) {
	t.Parallel()

	i := newTestHandler()

	base := t.TempDir()
	oldpath := filepath.Join(base, "fresh.txt")
	newpath := filepath.Join(base, "stale.txt")
	writeFile(t, oldpath, "fresh")
	writeFile(t, newpath, "stale")

	require.NoError(t, i.RenamePath(oldpath, newpath))

	content, err := os.ReadFile(newpath)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(content))
	assert.NoFileExists(t, oldpath)
}

// TestRenamePath_Fail_MissingSource tests renaming a nonexistent element.
func TestRenamePath_Fail_MissingSource(t *testing.T) {
	t.Parallel()

	i := newTestHandler()

	base := t.TempDir()
	err := i.RenamePath(filepath.Join(base, "missing.txt"), filepath.Join(base, "target.txt"))

	require.Error(t, err)
	require.ErrorIs(t, err, unix.ENOENT)
}

// TestMakeDirectory_Success tests creating a single directory.
func TestMakeDirectory_Success(t *testing.T) {
	t.Parallel()

	i := newTestHandler()

	target := filepath.Join(t.TempDir(), "fresh")

	require.NoError(t, i.MakeDirectory(target))
	assert.DirExists(t, target)
}

// TestMakeDirectory_Fail_MissingParent tests that intermediate directories
// are not created implicitly.
func TestMakeDirectory_Fail_MissingParent(t *testing.T) {
	t.Parallel()

	i := newTestHandler()

	err := i.MakeDirectory(filepath.Join(t.TempDir(), "missing", "fresh"))

	require.Error(t, err)
	require.ErrorIs(t, err, unix.ENOENT)
}

// TestMakeDirectory_Fail_Exists tests creating an already existing
// directory.
func TestMakeDirectory_Fail_Exists(t *testing.T) {
	t.Parallel()

	i := newTestHandler()

	err := i.MakeDirectory(t.TempDir())

	require.Error(t, err)
	require.ErrorIs(t, err, unix.EEXIST)
}
