package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/wbrown/i2a"
	"github.com/wbrown/i2a/imageutil"
)

const stdinName = "-"

// converter encodes a batch of files to one sink. A file that cannot be
// read or previewed is reported and skipped; only sink write errors stop
// the batch.
type converter struct {
	enc    *i2a.Encoder
	out    io.Writer
	errOut io.Writer
	stdin  io.Reader
	log    *slog.Logger

	printFilename bool
	printInfo     bool
	termCols      int

	previewDir string
	preview    i2a.PreviewOptions
}

// convertAll converts files in order and returns how many were skipped.
func (c *converter) convertAll(files []string) (failed int, err error) {
	for _, name := range files {
		ok, err := c.convertFile(name)
		if err != nil {
			return failed, err
		}
		if !ok {
			failed++
		}
	}
	return failed, nil
}

func (c *converter) convertFile(name string) (bool, error) {
	if c.printFilename {
		if _, err := fmt.Fprintf(c.out, "%s:\n", name); err != nil {
			return false, fmt.Errorf("failed to write output: %w", err)
		}
	}

	start := time.Now()
	decoded, err := c.load(name)
	if err != nil {
		c.report(name, err)
		return false, nil
	}
	info := decoded.Info

	if c.printInfo {
		_, err := fmt.Fprintf(c.out, "File: %s\nResolution: %dx%d\nFormat: %s\nMode: %s\n\n",
			info.Path, info.Width, info.Height, strings.ToUpper(info.Format), info.Mode)
		if err != nil {
			return false, fmt.Errorf("failed to write output: %w", err)
		}
	}

	grid := i2a.GridFromImage(decoded.Image)
	cols, rows := i2a.Dimensions(grid.Width, grid.Height, c.enc.Mode)
	if c.termCols > 0 && cols > c.termCols {
		c.log.Warn("output is wider than the terminal",
			"file", name, "columns", cols, "terminal", c.termCols)
	}

	n, err := c.enc.EncodeTo(c.out, grid)
	if err != nil {
		return false, err
	}
	if _, err := io.WriteString(c.out, "\n"); err != nil {
		return false, fmt.Errorf("failed to write output: %w", err)
	}
	c.log.Debug("converted",
		"file", name, "format", info.Format, "mode", c.enc.Mode,
		"columns", cols, "rows", rows, "bytes", n, "elapsed", time.Since(start))

	if c.previewDir != "" {
		path := filepath.Join(c.previewDir, previewName(name))
		if err := i2a.SavePreview(i2a.Cells(grid, c.enc.Mode), path, c.preview); err != nil {
			c.report(name, err)
			return false, nil
		}
		c.log.Debug("preview written", "file", name, "path", path)
	}
	return true, nil
}

func (c *converter) load(name string) (*imageutil.Decoded, error) {
	if name == stdinName {
		return imageutil.Decode(c.stdin, "<stdin>")
	}
	return imageutil.Load(name)
}

// report prints a per-file error in the form users of the tool expect.
func (c *converter) report(name string, err error) {
	// Keep stdout and stderr in order on a shared terminal.
	if f, ok := c.out.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
	switch {
	case errors.Is(err, imageutil.ErrNotExist):
		fmt.Fprintf(c.errOut, "ERROR: %q does not exist.\n\n", name)
	case errors.Is(err, imageutil.ErrInvalidImage):
		fmt.Fprintf(c.errOut, "ERROR: %q is not a valid image.\n\n", name)
	default:
		fmt.Fprintf(c.errOut, "ERROR: %q: %v\n\n", name, err)
	}
	c.log.Debug("skipped", "file", name, "err", err)
}

// previewName maps an input name to its preview file name.
func previewName(name string) string {
	if name == stdinName {
		return "stdin.png"
	}
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}
