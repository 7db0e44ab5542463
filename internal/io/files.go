package io

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/zeebo/blake3"

	"github.com/HecaiYuan/crossfs/internal/pathing"
)

// tmpSuffix marks an in-flight copy destination until it verifies.
const tmpSuffix = ".crossfs"

// copyMode is the creation mode for copy destinations.
const copyMode = os.FileMode(0o644)

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, context.Canceled
	default:
		return cr.reader.Read(p)
	}
}

type progressWriter struct {
	n *atomic.Uint64
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	pw.n.Add(uint64(len(p)))

	return len(p), nil
}

// BytesCopied returns the total bytes written by [Handler.CopyFile] calls
// over the lifetime of the [Handler].
func (i *Handler) BytesCopied() uint64 {
	return i.bytesCopied.Load()
}

// CopyFile copies the file at src to dst, verifying the transferred content
// against the source with a BLAKE3 checksum before moving it into place. The
// copy lands under a temporary name first, so dst never holds a partial
// file; an existing dst is never replaced.
func (i *Handler) CopyFile(ctx context.Context, src string, dst string) error {
	if err := pathing.Validate(src); err != nil {
		return fmt.Errorf("(io-copy) %w", err)
	}
	if err := pathing.Validate(dst); err != nil {
		return fmt.Errorf("(io-copy) %w", err)
	}

	var transferComplete bool

	srcFile, err := i.OSOps.Open(src)
	if err != nil {
		return fmt.Errorf("(io-copy) failed to open source file: %w", err)
	}
	defer srcFile.Close()

	tmpPath := dst + tmpSuffix
	defer func() {
		if !transferComplete {
			i.OSOps.Remove(tmpPath) //nolint:errcheck
		}
	}()

	dstFile, err := i.OSOps.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, copyMode)
	if err != nil {
		return fmt.Errorf("(io-copy) failed to open destination file %s: %w", tmpPath, err)
	}
	defer dstFile.Close()

	srcHasher := blake3.New()
	dstHasher := blake3.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: io.TeeReader(srcFile, srcHasher),
	}
	multiWriter := io.MultiWriter(dstFile, dstHasher, &progressWriter{n: &i.bytesCopied})

	var copyErr error
	if i.CopyBufferSize > 0 {
		_, copyErr = io.CopyBuffer(multiWriter, ctxReader, make([]byte, i.CopyBufferSize))
	} else {
		_, copyErr = io.Copy(multiWriter, ctxReader)
	}

	if copyErr != nil {
		if errors.Is(copyErr, context.Canceled) {
			return fmt.Errorf("(io-copy) transfer canceled: %w", copyErr)
		}

		return fmt.Errorf("(io-copy) failed to copy file: %w", copyErr)
	}

	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("(io-copy) failed to sync destination fs: %w", err)
	}

	srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))
	dstChecksum := hex.EncodeToString(dstHasher.Sum(nil))

	if srcChecksum != dstChecksum {
		return fmt.Errorf("(io-copy) %w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum)
	}

	if _, err := i.OSOps.Stat(dst); err == nil {
		return fmt.Errorf("(io-copy) %w: %s", ErrDestinationExists, dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("(io-copy) failed to check destination existence: %w", err)
	}

	if err := i.Backend.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("(io-copy) failed to rename temporary file to destination: %w", err)
	}

	transferComplete = true

	return nil
}
