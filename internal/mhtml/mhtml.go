// Package mhtml decomposes MHT/MHTML web archives into an HTML document and
// extracted asset files.
//
// An MHT archive is a MIME message: one part carries the page markup and the
// remaining parts carry assets (images, media, binary attachments), each
// addressable by Content-ID, Content-Location, or both. Decompose writes the
// asset parts to a directory and records how the markup refers to them, so a
// later pass can rewrite the references to local paths.
package mhtml

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jhillyerd/enmime"

	"github.com/alnah/go-mht2pdf/internal/fileutil"
)

// Sentinel errors for archive decomposition.
var (
	ErrParse      = errors.New("failed to parse archive")
	ErrNoHTMLPart = errors.New("no HTML part found in archive")
)

// filePermissions applies to extracted asset files.
const filePermissions = 0o644

// Document is a decomposed archive.
type Document struct {
	// HTML is the markup of the document part, decoded as UTF-8 with
	// invalid sequences replaced.
	HTML string
	// Assets maps part references to extracted file paths in forward-slash
	// form. Keys are bare content-ids (angle brackets stripped) and
	// Content-Location values.
	Assets map[string]string
	// Files lists the extracted file paths in part order.
	Files []string
}

// Decompose parses data as an MHT archive and writes its asset parts to dir.
//
// For multipart archives, the first text/html part becomes the document and
// every image, audio, video, and application part is extracted. Text parts
// other than the document (stylesheets, scripts served as text) are left
// inline. A single-part archive is treated as markup in its entirety,
// whatever its declared type.
func Decompose(data []byte, dir string) (*Document, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	root := env.Root
	if root == nil {
		return nil, fmt.Errorf("%w: archive has no MIME content", ErrParse)
	}

	doc := &Document{Assets: make(map[string]string)}

	if !strings.HasPrefix(strings.ToLower(root.ContentType), "multipart/") {
		doc.HTML = decodeLossy(root.Content)
		return doc, nil
	}

	var htmlPart *enmime.Part
	err = walk(root, func(p *enmime.Part) error {
		ct := strings.ToLower(p.ContentType)
		if strings.HasPrefix(ct, "multipart/") {
			return nil
		}
		if htmlPart == nil && ct == "text/html" {
			htmlPart = p
			return nil
		}
		if !Extractable(ct) {
			return nil
		}
		return extractPart(p, dir, doc)
	})
	if err != nil {
		return nil, err
	}

	if htmlPart == nil {
		return nil, ErrNoHTMLPart
	}
	doc.HTML = decodeLossy(htmlPart.Content)
	return doc, nil
}

// walk visits every descendant of p in document order.
func walk(p *enmime.Part, fn func(*enmime.Part) error) error {
	for child := p.FirstChild; child != nil; child = child.NextSibling {
		if err := fn(child); err != nil {
			return err
		}
		if err := walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Extractable reports whether a part of this media type is written to disk.
// The policy is shared by every archive format that decomposes into a
// Document.
func Extractable(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") ||
		strings.HasPrefix(contentType, "audio/") ||
		strings.HasPrefix(contentType, "video/") ||
		strings.HasPrefix(contentType, "application/")
}

// extractPart writes one asset part into dir and records its references.
func extractPart(p *enmime.Part, dir string, doc *Document) error {
	cid := strings.Trim(p.ContentID, "<>")
	location := p.Header.Get("Content-Location")

	name := partFileName(p.FileName, cid, location)
	if filepath.Ext(name) == "" {
		if ext := mimetype.Detect(p.Content).Extension(); ext != "" {
			name += ext
		}
	}

	target := filepath.Join(dir, name)
	// #nosec G306 -- extracted assets are meant to be readable
	if err := os.WriteFile(target, p.Content, filePermissions); err != nil {
		return fmt.Errorf("writing asset %s: %w", name, err)
	}
	doc.Files = append(doc.Files, target)

	posix := filepath.ToSlash(target)
	if cid != "" {
		doc.Assets[cid] = posix
	}
	if location != "" {
		doc.Assets[location] = posix
	}
	return nil
}

// partFileName picks a disk name for a part: declared filename, then
// content-id, then the basename of its location URL, then "part".
func partFileName(filename, cid, location string) string {
	name := filename
	if name == "" {
		name = cid
	}
	if name == "" && location != "" {
		if u, err := url.Parse(location); err == nil {
			base := path.Base(u.Path)
			if base != "." && base != "/" {
				name = base
			}
		}
	}
	if name == "" {
		name = "part"
	}
	return fileutil.SanitizeName(name)
}

// decodeLossy interprets content as UTF-8, replacing invalid sequences.
func decodeLossy(content []byte) string {
	return strings.ToValidUTF8(string(content), "�")
}
