package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// sink is a buffered output destination. Close flushes the buffer and
// closes every layer beneath it, innermost first.
type sink struct {
	*bufio.Writer
	closers []io.Closer
}

func (s *sink) Close() error {
	err := s.Flush()
	for _, c := range s.closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// openOutput returns the destination for encoded text. An empty path or
// "-" writes to stdout. Paths ending in .gz or .zst are compressed.
func openOutput(path string, stdout io.Writer) (*sink, error) {
	if path == "" || path == "-" {
		return &sink{Writer: bufio.NewWriter(stdout)}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zw := gzip.NewWriter(f)
		return &sink{Writer: bufio.NewWriter(zw), closers: []io.Closer{zw, f}}, nil
	case ".zst":
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return &sink{Writer: bufio.NewWriter(zw), closers: []io.Closer{zw, f}}, nil
	}
	return &sink{Writer: bufio.NewWriter(f), closers: []io.Closer{f}}, nil
}
