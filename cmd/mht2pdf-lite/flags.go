package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// convertFlags holds all flags for the mht2pdf-lite command.
type convertFlags struct {
	out        string
	config     string
	html       bool
	keepAssets bool
	validate   bool
	quiet      bool
	verbose    bool
	version    bool
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("mht2pdf-lite", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.out, "out", "o", "", "output PDF path")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.html, "html", false, "write the rewritten HTML next to the PDF")
	fs.BoolVar(&f.keepAssets, "keep-assets", false, "keep the extracted asset directory")
	fs.BoolVar(&f.validate, "validate", false, "structurally validate the produced PDF")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show asset count, page count and timing")
	fs.BoolVar(&f.version, "version", false, "show version and exit")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
