package winfs

import (
	"fmt"

	"github.com/HecaiYuan/crossfs/internal/encoding"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

// Stat implements [schema.Backend] metadata queries through a native
// attribute query. The directory attribute takes precedence over the device
// and offline attributes, and directories always report size zero.
func (h *Handler) Stat(path string) (schema.PathInfo, error) {
	encoded, err := encoding.EncodeUTF16(path)
	if err != nil {
		return schema.PathInfo{}, h.LastErr.Record(fmt.Errorf("(winfs-stat) failed to encode %q: %w", path, err))
	}

	attrs, err := h.NativeOps.GetFileAttributesEx(encoded)
	if err != nil {
		return schema.PathInfo{}, h.LastErr.Record(fmt.Errorf("(winfs-stat) failed to stat %q: %w", path, err))
	}

	info := schema.PathInfo{
		CreateTime: filetimeToUnix(attrs.CreationTime),
		ModifyTime: filetimeToUnix(attrs.LastWriteTime),
		AccessTime: filetimeToUnix(attrs.LastAccessTime),
	}

	switch {
	case attrs.FileAttributes&attrDirectory != 0:
		info.Type = schema.TypeDirectory
		info.Size = 0
	case attrs.FileAttributes&(attrOffline|attrDevice) != 0:
		info.Type = schema.TypeOther
		info.Size = attrs.size()
	default:
		info.Type = schema.TypeFile
		info.Size = attrs.size()
	}

	return info, nil
}
