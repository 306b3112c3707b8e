package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// refTags lists the elements whose references may point into an archive.
const refTags = "img, link, script, audio, video, source"

// RewriteAssetRefs points archive references in htmlContent at extracted
// files.
//
// assets maps bare content-ids and Content-Location values to local paths in
// forward-slash form, as produced by decomposition. A cid: reference is
// looked up by its id; every other reference is looked up verbatim.
// References with no mapping are left untouched, so ordinary absolute URLs
// survive the pass.
//
// The markup is reparsed and reserialized: fragments come back as complete
// documents. With no assets the input is returned unchanged.
func RewriteAssetRefs(htmlContent string, assets map[string]string) (string, error) {
	if len(assets) == 0 {
		return htmlContent, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find(refTags).Each(func(_ int, s *goquery.Selection) {
		attr := "src"
		if s.Is("link") {
			attr = "href"
		}
		ref, ok := s.Attr(attr)
		if !ok || ref == "" {
			return
		}
		if local, ok := resolveRef(ref, assets); ok {
			s.SetAttr(attr, local)
		}
	})

	return doc.Html()
}

// resolveRef maps one reference to an extracted file path.
func resolveRef(ref string, assets map[string]string) (string, bool) {
	if strings.HasPrefix(ref, "cid:") {
		local, found := assets[strings.TrimPrefix(ref, "cid:")]
		return local, found
	}
	local, found := assets[ref]
	return local, found
}
