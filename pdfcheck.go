package mht2pdf

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ValidatePDF structurally validates the PDF at path.
// A nil return means pdfcpu accepted the cross-reference table, object graph,
// and page tree. Both rendering engines are exercised through this check when
// output validation is requested.
func ValidatePDF(path string) error {
	if err := api.ValidateFile(path, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrPDFInvalid, err)
	}
	return nil
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPDFInvalid, err)
	}
	return n, nil
}
