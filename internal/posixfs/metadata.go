//go:build unix

package posixfs

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/HecaiYuan/crossfs/internal/encoding"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

// Stat implements [schema.Backend] metadata queries, without following a
// trailing symbolic link. Anything that is neither a regular file nor a
// directory reports as [schema.TypeOther].
func (h *Handler) Stat(path string) (schema.PathInfo, error) {
	if err := encoding.ValidateUTF8(path); err != nil {
		return schema.PathInfo{}, h.LastErr.Record(fmt.Errorf("(posixfs-stat) invalid path %q: %w", path, err))
	}

	var stat unix.Stat_t
	if err := h.UnixOps.Lstat(path, &stat); err != nil {
		return schema.PathInfo{}, h.LastErr.Record(fmt.Errorf("(posixfs-stat) failed to stat %q: %w", path, err))
	}

	info := schema.PathInfo{
		// POSIX has no true creation time; the inode change time is the
		// closest recorded counterpart.
		CreateTime: stat.Ctim.Sec,
		ModifyTime: stat.Mtim.Sec,
		AccessTime: stat.Atim.Sec,
	}

	switch stat.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		info.Type = schema.TypeDirectory
		info.Size = 0
	case unix.S_IFREG:
		info.Type = schema.TypeFile
		info.Size = uint64(stat.Size)
	default:
		info.Type = schema.TypeOther
		info.Size = uint64(stat.Size)
	}

	return info, nil
}
