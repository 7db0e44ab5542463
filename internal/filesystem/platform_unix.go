//go:build unix

package filesystem

import (
	"github.com/HecaiYuan/crossfs/internal/lasterr"
	"github.com/HecaiYuan/crossfs/internal/posixfs"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

// NewDefaultBackend returns the [schema.Backend] for the running platform,
// recording native failures into the given [lasterr.Sink].
func NewDefaultBackend(sink *lasterr.Sink) schema.Backend {
	return posixfs.NewHandler(&schema.OS{}, &schema.Unix{}, sink)
}
