package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mht2pdf [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert an MHT/MHTML archive to PDF with headless Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Archive file (optional, defaults to the bundled sample)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --out <path>          Output PDF path (default <out-dir>/<stem>.chrome.pdf)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Render timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --validate            Structurally validate the produced PDF")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show page count and timing")
	fmt.Fprintln(w, "      --version             Show version and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MHT2PDF_CONFIG, MHT2PDF_INPUT, MHT2PDF_OUTPUT_DIR, MHT2PDF_PAGE_SIZE,")
	fmt.Fprintln(w, "  MHT2PDF_ORIENTATION, MHT2PDF_TIMEOUT")
	fmt.Fprintln(w, "  Flags beat environment variables; environment variables beat the config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 2 input not found, 1 any other failure.")
}
