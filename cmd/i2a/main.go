// Command i2a prints images as truecolor block-glyph text.
//
// Usage:
//
//	i2a [flags] FILE...
//
// Each FILE is decoded (PNG, JPEG, GIF, BMP, TIFF or WebP; "-" reads
// standard input) and written as lines of half blocks (-f 1, default),
// two-column background blanks (-f 2) or two-column solid blocks (-f 3).
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Per-file failures and format errors were already reported.
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
