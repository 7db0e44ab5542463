//go:build windows

package filesystem

import (
	"github.com/HecaiYuan/crossfs/internal/lasterr"
	"github.com/HecaiYuan/crossfs/internal/schema"
	"github.com/HecaiYuan/crossfs/internal/winfs"
)

// NewDefaultBackend returns the [schema.Backend] for the running platform,
// recording native failures into the given [lasterr.Sink].
func NewDefaultBackend(sink *lasterr.Sink) schema.Backend {
	return winfs.NewHandler(&winfs.Native{}, sink)
}
