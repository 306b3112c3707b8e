// Package mht2pdf converts MHT/MHTML web archives to PDF.
//
// Two engines are provided. Converter drives headless Chrome, which parses
// MHTML natively and reproduces the page faithfully. Extractor decomposes
// the archive itself and lays the markup out with a pure-Go engine, trading
// fidelity for a browser-free runtime.
//
// # Quick Start
//
// Browser engine — create a converter, render a file, and close when done:
//
//	conv := mht2pdf.NewConverter()
//	defer conv.Close()
//
//	pdf, err := conv.ConvertFile(ctx, "page.mht", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("page.pdf", pdf, 0644)
//
// Extraction engine — no browser, no Close:
//
//	ext := mht2pdf.NewExtractor()
//	data, _ := os.ReadFile("page.mht")
//
//	result, err := ext.Convert(ctx, mht2pdf.ExtractInput{Archive: data, Name: "page.mht"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("page.pdf", result.PDF, 0644)
//
// The extraction result also carries the rewritten HTML (result.HTML) for
// debugging and the extracted asset paths (result.Assets).
//
// # Extraction Pipeline
//
// The extraction engine follows these stages:
//
//  1. MIME decomposition (internal/mhtml): the first text/html part becomes
//     the document; image, audio, video, and application parts are written
//     to a per-invocation scratch directory. Safari .webarchive files are
//     detected and decomposed equivalently (internal/webarchive).
//  2. Reference rewriting (internal/pipeline): cid: URIs and
//     Content-Location URLs in img, link, script, audio, video, and source
//     elements are pointed at the extracted files.
//  3. PDF layout via gompdf.
//
// The scratch directory is removed on every exit path unless
// ExtractInput.KeepScratch is set.
//
// # Page Settings
//
// The browser engine accepts page geometry per conversion:
//
//	pdf, err := conv.ConvertFile(ctx, "page.mht", &mht2pdf.PageSettings{
//	    Size:        "a4",
//	    Orientation: "landscape",
//	    Margin:      0.75,
//	})
//
// # Browser Requirements
//
// Converter requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
// Extractor has no external requirements.
package mht2pdf
