package mht2pdf

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gompdf/gompdf"

	"github.com/alnah/go-mht2pdf/internal/fileutil"
)

// htmlRenderer abstracts HTML-to-PDF rendering to enable testing without a
// real layout engine.
type htmlRenderer interface {
	RenderHTML(ctx context.Context, htmlContent string) ([]byte, error)
}

// Compile-time interface checks
var _ htmlRenderer = (*gompdfRenderer)(nil)

// gompdfRenderer implements htmlRenderer with the pure-Go gompdf engine.
// No browser is involved: layout happens in-process, which keeps the
// extraction pipeline free of external runtime dependencies.
type gompdfRenderer struct {
	debug bool
}

// newGompdfRenderer creates a gompdfRenderer.
func newGompdfRenderer() *gompdfRenderer {
	return &gompdfRenderer{}
}

// RenderHTML lays out htmlContent and returns the PDF bytes.
// The engine works file-to-file, so content passes through a temp pair.
func (g *gompdfRenderer) RenderHTML(ctx context.Context, htmlContent string) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(htmlContent) == "" {
		return nil, fmt.Errorf("%w: empty document", ErrPDFGeneration)
	}

	htmlPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pdfPath := strings.TrimSuffix(htmlPath, ".html") + ".pdf"
	defer func() { _ = os.Remove(pdfPath) }()

	conv := gompdf.New()
	if g.debug {
		conv = conv.SetDebug(true)
	}

	// The engine has no context support; run it aside and race the deadline.
	done := make(chan error, 1)
	go func() {
		done <- conv.ConvertFile(htmlPath, pdfPath)
	}()

	select {
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	pdfBytes, err := os.ReadFile(pdfPath) // #nosec G304 -- path derived from our own temp file
	if err != nil {
		return nil, fmt.Errorf("%w: reading output: %v", ErrPDFGeneration, err)
	}
	if len(pdfBytes) == 0 {
		return nil, fmt.Errorf("%w: engine produced empty output", ErrPDFGeneration)
	}

	return pdfBytes, nil
}
