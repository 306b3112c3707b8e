// Package pipeline implements the HTML preparation stage between archive
// decomposition and PDF rendering.
//
// Decomposition (internal/mhtml, internal/webarchive) leaves markup whose
// references still point into the archive: cid: URIs and the original
// Content-Location URLs. This package rewrites those references to the
// extracted files on disk so a renderer can resolve them like any local
// page.
//
// PDF generation is handled separately by the root mht2pdf package. This
// separation keeps the pipeline focused on document structure, while PDF
// rendering handles page layout, margins, and engine concerns.
package pipeline
