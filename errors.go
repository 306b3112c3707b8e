package mht2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrInputNotFound  = errors.New("input archive not found")
	ErrEmptyArchive   = errors.New("archive content cannot be empty")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// PDF validation errors.
	ErrPDFInvalid = errors.New("generated PDF failed validation")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
)
