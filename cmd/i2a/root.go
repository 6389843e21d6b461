package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wbrown/i2a"
	"github.com/wbrown/i2a/internal/config"
)

// errReported marks errors whose message was already shown to the user.
var errReported = errors.New("reported")

type options struct {
	configFile    string
	format        string
	printf        bool
	printFilename bool
	printInfo     bool
	output        string
	previewDir    string
	font          string
	scale         int
	verbose       bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:               "i2a [flags] FILE...",
		Short:             "Convert images to 24-bit ANSI escape codes.",
		Args:              cobra.MinimumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.applyConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configFile, "config", "", "Extra config file, applied after the standard ones")
	f.StringVarP(&opts.format, "format", "f", "1",
		`Output format can be one of: 1: "1:4" (default), 2: "1:1", 3: "1:1_fg"`)
	f.BoolVarP(&opts.printf, "printf", "p", false,
		"Make the output copyable for use with e.g. printf")
	f.BoolVarP(&opts.printFilename, "printfilename", "d", false,
		"Print the filename for each converted image")
	f.BoolVarP(&opts.printInfo, "printinfo", "i", false,
		"Print information about the source image")
	f.StringVarP(&opts.output, "output", "o", "",
		"Write to this file instead of stdout (.gz and .zst are compressed)")
	f.StringVar(&opts.previewDir, "preview", "",
		"Also render each image's output to <dir>/<name>.png")
	f.StringVar(&opts.font, "font", "",
		"TrueType font for preview glyphs (default: geometric blocks)")
	f.IntVar(&opts.scale, "scale", 1, "Preview character cell scale")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug information to stderr")

	return cmd
}

// applyConfig fills every option whose flag was not given on the command
// line from the config files.
func (o *options) applyConfig(cmd *cobra.Command) error {
	var extra []string
	if o.configFile != "" {
		extra = append(extra, o.configFile)
	}
	cfg, err := config.Load(extra...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if !flags.Changed(name) {
			apply()
		}
	}
	set("format", func() { o.format = cfg.Format })
	set("printf", func() { o.printf = cfg.Printf })
	set("printfilename", func() { o.printFilename = cfg.PrintFilename })
	set("printinfo", func() { o.printInfo = cfg.PrintInfo })
	set("output", func() { o.output = cfg.Output })
	set("preview", func() { o.previewDir = cfg.Preview.Dir })
	set("font", func() { o.font = cfg.Preview.Font })
	set("scale", func() { o.scale = cfg.Preview.Scale })

	newLogger(cmd.ErrOrStderr(), o.verbose).Debug("config loaded", "sources", cfg.Sources)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(cmd *cobra.Command, opts *options, files []string) error {
	errOut := cmd.ErrOrStderr()
	log := newLogger(errOut, opts.verbose)

	mode, err := i2a.ParseMode(opts.format)
	if err != nil {
		fmt.Fprintf(errOut,
			"ERROR: Format must be one of: 1: \"1:4\", 2: \"1:1\", 3: \"1:1_fg\". Not %q.\n\n",
			opts.format)
		return errors.Join(errReported, err)
	}

	out, err := openOutput(opts.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	conv := &converter{
		enc:           i2a.NewEncoder(i2a.WithMode(mode), i2a.WithPrefix(i2a.PrefixFor(opts.printf))),
		out:           out,
		errOut:        errOut,
		stdin:         cmd.InOrStdin(),
		log:           log,
		printFilename: opts.printFilename,
		printInfo:     opts.printInfo,
		previewDir:    opts.previewDir,
		preview:       i2a.PreviewOptions{Scale: opts.scale},
	}
	if opts.output == "" {
		conv.termCols = terminalWidth(cmd.OutOrStdout())
	}
	if opts.previewDir != "" {
		if err := os.MkdirAll(opts.previewDir, 0o755); err != nil {
			out.Close()
			return fmt.Errorf("failed to create preview directory: %w", err)
		}
		if opts.font != "" {
			fb, err := i2a.LoadFontBitmaps(opts.font)
			if err != nil {
				out.Close()
				return err
			}
			conv.preview.Font = fb
		}
	}

	failed, err := conv.convertAll(files)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close output: %w", cerr)
	}
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files failed", errReported, failed, len(files))
	}
	return nil
}

// terminalWidth returns the column count of w when it is a terminal,
// and 0 otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return cols
}
