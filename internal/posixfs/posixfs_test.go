//go:build unix

package posixfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HecaiYuan/crossfs/internal/lasterr"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

// newTestHandler returns a [Handler] over the real syscall providers and a
// fresh sink.
func newTestHandler() (*Handler, *lasterr.Sink) {
	sink := &lasterr.Sink{}

	return NewHandler(&schema.OS{}, &schema.Unix{}, sink), sink
}

// writeFile creates a file with the given content below dir and returns its
// path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}
