package mht2pdf

// Notes:
// - Extractor tests use a mock htmlRenderer so the layout engine never runs
// - Fixtures are built inline with CRLF line endings as MIME requires
// - The webarchive fixture is encoded with the same plist library the
//   decoder uses
// - Real engine rendering is covered by the integration build tag

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"
	"testing"

	"howett.net/plist"

	"github.com/alnah/go-mht2pdf/internal/assets"
	"github.com/alnah/go-mht2pdf/internal/mhtml"
)

// tinyPNG is a base64-encoded 1x1 transparent PNG.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

// ---------------------------------------------------------------------------
// Mocks and fixtures
// ---------------------------------------------------------------------------

// mockHTMLRenderer implements htmlRenderer for testing without the engine.
type mockHTMLRenderer struct {
	Result     []byte
	Err        error
	CalledWith string
	Calls      int
}

func (m *mockHTMLRenderer) RenderHTML(_ context.Context, htmlContent string) ([]byte, error) {
	m.Calls++
	m.CalledWith = htmlContent
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// panicHTMLRenderer panics on render to exercise the recovery path.
type panicHTMLRenderer struct{}

func (p *panicHTMLRenderer) RenderHTML(context.Context, string) ([]byte, error) {
	panic("engine exploded")
}

// crlf joins lines with MIME line endings.
func crlf(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n"))
}

// multipartArchive is an MHT with one HTML part referencing one image by cid.
func multipartArchive() []byte {
	return crlf(
		"From: <Saved by test>",
		"MIME-Version: 1.0",
		`Content-Type: multipart/related; boundary="sep"`,
		"",
		"--sep",
		`Content-Type: text/html; charset="utf-8"`,
		"Content-Location: http://example.com/index.html",
		"",
		`<html><body><h1>Report</h1><img src="cid:logo@site"></body></html>`,
		"--sep",
		"Content-Type: image/png",
		"Content-Transfer-Encoding: base64",
		"Content-ID: <logo@site>",
		"",
		tinyPNG,
		"--sep--",
		"",
	)
}

// webarchiveFixture is a binary-plist Safari archive with one subresource.
func webarchiveFixture(t *testing.T) []byte {
	t.Helper()

	png, err := base64.StdEncoding.DecodeString(tinyPNG)
	if err != nil {
		t.Fatalf("decoding png fixture: %v", err)
	}

	arc := map[string]any{
		"WebMainResource": map[string]any{
			"WebResourceURL":      "http://example.com/",
			"WebResourceMIMEType": "text/html",
			"WebResourceData":     []byte(`<html><body><img src="http://example.com/pic.png"></body></html>`),
		},
		"WebSubresources": []any{
			map[string]any{
				"WebResourceURL":      "http://example.com/pic.png",
				"WebResourceMIMEType": "image/png",
				"WebResourceData":     png,
			},
		},
	}

	var buf bytes.Buffer
	if err := plist.NewBinaryEncoder(&buf).Encode(arc); err != nil {
		t.Fatalf("encoding webarchive fixture: %v", err)
	}
	return buf.Bytes()
}

// ---------------------------------------------------------------------------
// NewExtractor
// ---------------------------------------------------------------------------

func TestNewExtractor(t *testing.T) {
	t.Parallel()

	ex := NewExtractor()
	if ex.renderer == nil {
		t.Fatal("NewExtractor() renderer is nil")
	}
}

// ---------------------------------------------------------------------------
// Convert
// ---------------------------------------------------------------------------

func TestExtractor_Convert_RewritesAndRenders(t *testing.T) {
	t.Parallel()

	mock := &mockHTMLRenderer{Result: []byte("%PDF-1.4 data")}
	ex := &Extractor{renderer: mock}

	res, err := ex.Convert(context.Background(), ExtractInput{Archive: multipartArchive()})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if string(res.PDF) != "%PDF-1.4 data" {
		t.Errorf("PDF = %q, want mock result", res.PDF)
	}
	if res.HTML != mock.CalledWith {
		t.Error("result HTML differs from what the renderer received")
	}
	if strings.Contains(res.HTML, "cid:") {
		t.Errorf("cid reference survived rewriting:\n%s", res.HTML)
	}
	if !strings.Contains(res.HTML, "logo_site.png") {
		t.Errorf("rewritten markup does not reference the extracted file:\n%s", res.HTML)
	}
	if len(res.Assets) != 1 {
		t.Fatalf("Assets = %v, want one entry", res.Assets)
	}
	if res.ScratchDir != "" {
		t.Errorf("ScratchDir = %q, want empty without KeepScratch", res.ScratchDir)
	}

	// The scratch directory is removed once Convert returns.
	if _, statErr := os.Stat(res.Assets[0]); !os.IsNotExist(statErr) {
		t.Errorf("extracted asset %s still exists after Convert", res.Assets[0])
	}
}

func TestExtractor_Convert_KeepScratch(t *testing.T) {
	t.Parallel()

	mock := &mockHTMLRenderer{Result: []byte("%PDF-1.4")}
	ex := &Extractor{renderer: mock}

	res, err := ex.Convert(context.Background(), ExtractInput{
		Archive:     multipartArchive(),
		KeepScratch: true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(res.ScratchDir) })

	if res.ScratchDir == "" {
		t.Fatal("ScratchDir not reported with KeepScratch")
	}
	if _, err := os.Stat(res.ScratchDir); err != nil {
		t.Fatalf("scratch directory missing: %v", err)
	}
	for _, asset := range res.Assets {
		if _, err := os.Stat(asset); err != nil {
			t.Errorf("extracted asset missing: %v", err)
		}
		if !strings.HasPrefix(asset, res.ScratchDir) {
			t.Errorf("asset %s outside scratch directory %s", asset, res.ScratchDir)
		}
	}
}

func TestExtractor_Convert_BundledSample(t *testing.T) {
	t.Parallel()

	mock := &mockHTMLRenderer{Result: []byte("%PDF-1.4")}
	ex := &Extractor{renderer: mock}

	res, err := ex.Convert(context.Background(), ExtractInput{
		Archive: assets.SampleMHT(),
		Name:    assets.SampleName,
	})
	if err != nil {
		t.Fatalf("Convert() on bundled sample error = %v", err)
	}

	if len(res.Assets) != 2 {
		t.Errorf("Assets = %v, want the sample's two images", res.Assets)
	}
	if strings.Contains(res.HTML, "cid:") {
		t.Error("cid reference survived rewriting in the bundled sample")
	}
	if strings.Contains(res.HTML, `src="http://example.com/images/dot.png"`) {
		t.Error("location reference survived rewriting in the bundled sample")
	}
}

func TestExtractor_Convert_SinglePartPassthrough(t *testing.T) {
	t.Parallel()

	body := "<html><body><p>plain archive</p></body></html>"
	archive := crlf(
		`Content-Type: text/html; charset="utf-8"`,
		"",
		body,
	)

	mock := &mockHTMLRenderer{Result: []byte("%PDF-1.4")}
	ex := &Extractor{renderer: mock}

	res, err := ex.Convert(context.Background(), ExtractInput{Archive: archive})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if mock.CalledWith != body {
		t.Errorf("renderer received %q, want untouched body", mock.CalledWith)
	}
	if len(res.Assets) != 0 {
		t.Errorf("Assets = %v, want none for a single-part archive", res.Assets)
	}
}

func TestExtractor_Convert_Webarchive(t *testing.T) {
	t.Parallel()

	mock := &mockHTMLRenderer{Result: []byte("%PDF-1.4")}
	ex := &Extractor{renderer: mock}

	res, err := ex.Convert(context.Background(), ExtractInput{
		Archive: webarchiveFixture(t),
		Name:    "page.webarchive",
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(res.Assets) != 1 {
		t.Fatalf("Assets = %v, want one entry", res.Assets)
	}
	if strings.Contains(res.HTML, `src="http://example.com/pic.png"`) {
		t.Errorf("subresource URL survived rewriting:\n%s", res.HTML)
	}
	if !strings.Contains(res.HTML, "pic.png") {
		t.Errorf("rewritten markup does not reference the extracted file:\n%s", res.HTML)
	}
}

func TestExtractor_Convert_EmptyArchive(t *testing.T) {
	t.Parallel()

	ex := &Extractor{renderer: &mockHTMLRenderer{}}

	_, err := ex.Convert(context.Background(), ExtractInput{})
	if !errors.Is(err, ErrEmptyArchive) {
		t.Fatalf("Convert() error = %v, want ErrEmptyArchive", err)
	}
}

func TestExtractor_Convert_NoHTMLPart(t *testing.T) {
	t.Parallel()

	archive := crlf(
		"MIME-Version: 1.0",
		`Content-Type: multipart/related; boundary="sep"`,
		"",
		"--sep",
		"Content-Type: image/png",
		"Content-Transfer-Encoding: base64",
		"Content-ID: <only@image>",
		"",
		tinyPNG,
		"--sep--",
		"",
	)

	ex := &Extractor{renderer: &mockHTMLRenderer{}}

	_, err := ex.Convert(context.Background(), ExtractInput{Archive: archive})
	if !errors.Is(err, mhtml.ErrNoHTMLPart) {
		t.Fatalf("Convert() error = %v, want ErrNoHTMLPart", err)
	}
}

func TestExtractor_Convert_RendererErrorPropagates(t *testing.T) {
	t.Parallel()

	ex := &Extractor{renderer: &mockHTMLRenderer{Err: ErrPDFGeneration}}

	_, err := ex.Convert(context.Background(), ExtractInput{Archive: multipartArchive()})
	if !errors.Is(err, ErrPDFGeneration) {
		t.Fatalf("Convert() error = %v, want ErrPDFGeneration", err)
	}
}

func TestExtractor_Convert_RecoversPanic(t *testing.T) {
	t.Parallel()

	ex := &Extractor{renderer: &panicHTMLRenderer{}}

	_, err := ex.Convert(context.Background(), ExtractInput{Archive: multipartArchive()})
	if err == nil {
		t.Fatal("Convert() with panicking renderer returned nil error")
	}
	if !strings.Contains(err.Error(), "internal error") {
		t.Errorf("error = %q, want internal error wrapper", err)
	}
}
