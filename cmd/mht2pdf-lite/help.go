package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mht2pdf-lite [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert an MHT/MHTML archive to PDF without a browser: the archive is")
	fmt.Fprintln(w, "decomposed into markup and assets, references are rewritten, and the")
	fmt.Fprintln(w, "result is rendered by a pure-Go engine. Safari .webarchive input is")
	fmt.Fprintln(w, "also accepted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Archive file (optional, defaults to the bundled sample)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --out <path>          Output PDF path (default <out-dir>/<stem>.gompdf.pdf)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --html                Write the rewritten HTML next to the PDF")
	fmt.Fprintln(w, "      --keep-assets         Keep the extracted asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --validate            Structurally validate the produced PDF")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show asset count, page count and timing")
	fmt.Fprintln(w, "      --version             Show version and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MHT2PDF_CONFIG, MHT2PDF_INPUT, MHT2PDF_OUTPUT_DIR, MHT2PDF_TIMEOUT")
	fmt.Fprintln(w, "  Flags beat environment variables; environment variables beat the config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 2 input not found, 1 any other failure.")
}
