// Package webarchive decodes Safari .webarchive files into the same
// decomposed form as MHT archives.
//
// A webarchive is a binary property list holding one main resource (the page
// markup) and a list of subresources. Decompose extracts the binary
// subresources to a directory and keys them by their full resource URL,
// which is how the markup refers to them.
package webarchive

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
	"howett.net/plist"

	"github.com/alnah/go-mht2pdf/internal/fileutil"
	"github.com/alnah/go-mht2pdf/internal/mhtml"
)

// Sentinel errors for webarchive decoding.
var (
	ErrDecode         = errors.New("failed to decode webarchive")
	ErrNoMainResource = errors.New("webarchive has no HTML main resource")
)

// filePermissions applies to extracted subresource files.
const filePermissions = 0o644

// binaryPlistMagic prefixes every binary property list.
var binaryPlistMagic = []byte("bplist00")

// webArchive mirrors the property-list layout Safari writes.
type webArchive struct {
	WebMainResource webResource   `plist:"WebMainResource"`
	WebSubresources []webResource `plist:"WebSubresources"`
}

type webResource struct {
	WebResourceURL              string `plist:"WebResourceURL"`
	WebResourceMIMEType         string `plist:"WebResourceMIMEType"`
	WebResourceData             []byte `plist:"WebResourceData"`
	WebResourceTextEncodingName string `plist:"WebResourceTextEncodingName"`
}

// Detect reports whether name or data identify a Safari webarchive.
func Detect(name string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(name), ".webarchive") {
		return true
	}
	return bytes.HasPrefix(data, binaryPlistMagic)
}

// Decompose decodes data as a webarchive and writes its subresources to dir.
//
// The main resource must be HTML; it becomes the document. Image, audio,
// video, and application subresources are extracted; text subresources
// (stylesheets, scripts) are left to the renderer.
func Decompose(data []byte, dir string) (*mhtml.Document, error) {
	var archive webArchive
	if _, err := plist.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	main := archive.WebMainResource
	if !strings.HasPrefix(strings.ToLower(main.WebResourceMIMEType), "text/html") {
		return nil, fmt.Errorf("%w: main resource is %q", ErrNoMainResource, main.WebResourceMIMEType)
	}

	doc := &mhtml.Document{
		HTML:   strings.ToValidUTF8(string(main.WebResourceData), "�"),
		Assets: make(map[string]string),
	}

	for _, sub := range archive.WebSubresources {
		if !mhtml.Extractable(strings.ToLower(sub.WebResourceMIMEType)) {
			continue
		}
		if err := extractResource(sub, dir, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// extractResource writes one subresource into dir and records its URL key.
func extractResource(sub webResource, dir string, doc *mhtml.Document) error {
	name := resourceFileName(sub.WebResourceURL)
	if filepath.Ext(name) == "" {
		if ext := mimetype.Detect(sub.WebResourceData).Extension(); ext != "" {
			name += ext
		}
	}

	target := filepath.Join(dir, name)
	// Distinct URLs can share a basename; keep the later one apart.
	if _, err := os.Stat(target); err == nil {
		name = fmt.Sprintf("%02d_%s", len(doc.Files), name)
		target = filepath.Join(dir, name)
	}

	// #nosec G306 -- extracted assets are meant to be readable
	if err := os.WriteFile(target, sub.WebResourceData, filePermissions); err != nil {
		return fmt.Errorf("writing subresource %s: %w", name, err)
	}
	doc.Files = append(doc.Files, target)

	if sub.WebResourceURL != "" {
		doc.Assets[sub.WebResourceURL] = filepath.ToSlash(target)
	}
	return nil
}

// resourceFileName derives a safe disk name from a resource URL.
func resourceFileName(rawURL string) string {
	name := ""
	if u, err := url.Parse(rawURL); err == nil {
		base := path.Base(u.Path)
		if base != "." && base != "/" {
			name = base
		}
	}
	if name == "" {
		name = "resource"
	}
	return fileutil.SanitizeName(name)
}
