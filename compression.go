package sheetlite

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// newCompressionWriter wraps w with the requested compression. The returned
// writer must be closed before the underlying file to flush compressed data.
// Bzip2 output is rejected: the standard library ships a bzip2 reader only.
func newCompressionWriter(w io.Writer, compression CompressionType) (io.WriteCloser, error) {
	switch compression {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionGZ:
		return gzip.NewWriter(w), nil
	case CompressionBZ2:
		return nil, ErrBzip2WriteUnsupported
	case CompressionXZ:
		xzWriter, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xzWriter, nil
	case CompressionZSTD:
		zstdWriter, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return zstdWriter, nil
	default:
		return nil, fmt.Errorf("sheetlite: unsupported compression type: %v", compression)
	}
}

// newCompressionReader wraps r with the matching decompression, for reading
// exported files back.
func newCompressionReader(r io.Reader, compression CompressionType) (io.ReadCloser, error) {
	switch compression {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGZ:
		gzReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzReader, nil
	case CompressionBZ2:
		return io.NopCloser(bzip2.NewReader(r)), nil
	case CompressionXZ:
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return io.NopCloser(xzReader), nil
	case CompressionZSTD:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return decoder.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("sheetlite: unsupported compression type: %v", compression)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
