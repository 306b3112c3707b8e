package main

import (
	"errors"

	mht2pdf "github.com/alnah/go-mht2pdf"
)

// Exit codes for the mht2pdf CLI.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // Any other failure
	ExitNotFound = 2 // Input archive not found
)

// exitCodeFor returns the exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, mht2pdf.ErrInputNotFound) {
		return ExitNotFound
	}
	return ExitGeneral
}
