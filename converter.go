package mht2pdf

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-mht2pdf/internal/fileutil"
)

// Converter renders web archives to PDF with headless Chrome.
//
// Chrome parses MHTML itself, so the archive is handed to the browser whole:
// no MIME decomposition, no reference rewriting. Create with NewConverter(),
// convert with ConvertFile(), and Close() when done to release the browser.
type Converter struct {
	cfg      converterConfig
	renderer pdfRenderer
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg: converterConfig{timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Create renderer if not injected (e.g., by tests)
	if c.renderer == nil {
		c.renderer = newRodRenderer(c.cfg.timeout)
	}

	return c
}

// ConvertFile renders the archive at archivePath to PDF bytes.
// A nil page means default page settings. The context bounds cancellation
// and timeout; the configured timeout applies when the context has no deadline.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) ConvertFile(ctx context.Context, archivePath string, page *PageSettings) (pdf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := page.Validate(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(archivePath)
	if err != nil {
		return nil, fmt.Errorf("resolving archive path: %w", err)
	}
	if !fileutil.FileExists(abs) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, abs)
	}

	pdfBytes, err := c.renderer.RenderFile(ctx, abs, page)
	if err != nil {
		return nil, err
	}
	if len(pdfBytes) == 0 {
		return nil, fmt.Errorf("%w: browser produced empty output", ErrPDFGeneration)
	}

	return pdfBytes, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
