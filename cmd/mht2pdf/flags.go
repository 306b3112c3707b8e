package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// convertFlags holds all flags for the mht2pdf command.
type convertFlags struct {
	out         string
	config      string
	timeout     string
	pageSize    string
	orientation string
	margin      float64
	validate    bool
	quiet       bool
	verbose     bool
	version     bool
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("mht2pdf", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.out, "out", "o", "", "output PDF path")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout (e.g., 30s, 2m)")

	// Page flags
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")

	// Output control
	fs.BoolVar(&f.validate, "validate", false, "structurally validate the produced PDF")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show page count and timing")
	fs.BoolVar(&f.version, "version", false, "show version and exit")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
