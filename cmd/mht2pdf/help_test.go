package main

// Notes:
// - Required content strings only; exact formatting is an implementation detail.

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	output := buf.String()

	requiredStrings := []string{
		"Usage: mht2pdf",
		"Arguments:",
		"Page:",
		"--out",
		"--config",
		"--timeout",
		"--page-size",
		"--orientation",
		"--margin",
		"--validate",
		"--quiet",
		"--verbose",
		"--version",
		"Environment:",
		"MHT2PDF_TIMEOUT",
		"Exit codes",
	}

	for _, s := range requiredStrings {
		if !strings.Contains(output, s) {
			t.Errorf("printUsage output should contain %q", s)
		}
	}
}
