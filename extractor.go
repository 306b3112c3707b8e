package mht2pdf

import (
	"context"
	"fmt"
	"os"

	"github.com/alnah/go-mht2pdf/internal/mhtml"
	"github.com/alnah/go-mht2pdf/internal/pipeline"
	"github.com/alnah/go-mht2pdf/internal/webarchive"
)

// scratchPattern names per-invocation asset directories under the system
// temp dir.
const scratchPattern = "mht2pdf_"

// Extractor renders web archives to PDF without a browser.
//
// The archive is decomposed into markup and asset files, references are
// rewritten to the extracted files, and the result is laid out by a pure-Go
// engine. Safari webarchives are detected and decomposed the same way.
type Extractor struct {
	renderer htmlRenderer
}

// NewExtractor creates an Extractor with the default rendering engine.
func NewExtractor() *Extractor {
	return &Extractor{renderer: newGompdfRenderer()}
}

// Convert decomposes input.Archive, rewrites its asset references, and
// renders the markup to PDF.
//
// A scratch directory holds the extracted assets for the duration of the
// call and is removed on every path unless input.KeepScratch is set, in
// which case its location is reported in the result.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Extractor) Convert(ctx context.Context, input ExtractInput) (result *ExtractResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if len(input.Archive) == 0 {
		return nil, ErrEmptyArchive
	}

	scratch, err := os.MkdirTemp("", scratchPattern)
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	if !input.KeepScratch {
		defer func() { _ = os.RemoveAll(scratch) }()
	}

	doc, err := decompose(input, scratch)
	if err != nil {
		return nil, err
	}

	htmlContent, err := pipeline.RewriteAssetRefs(doc.HTML, doc.Assets)
	if err != nil {
		return nil, fmt.Errorf("rewriting asset references: %w", err)
	}

	pdfBytes, err := e.renderer.RenderHTML(ctx, htmlContent)
	if err != nil {
		return nil, err
	}

	res := &ExtractResult{
		PDF:    pdfBytes,
		HTML:   htmlContent,
		Assets: doc.Files,
	}
	if input.KeepScratch {
		res.ScratchDir = scratch
	}
	return res, nil
}

// decompose picks the archive format and extracts its parts into dir.
func decompose(input ExtractInput, dir string) (*mhtml.Document, error) {
	if webarchive.Detect(input.Name, input.Archive) {
		return webarchive.Decompose(input.Archive, dir)
	}
	return mhtml.Decompose(input.Archive, dir)
}
