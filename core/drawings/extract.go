package drawings

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor recovers per-page text from raw PDF bytes. Implementations
// are selected when the loader is constructed, never discovered at runtime.
type TextExtractor interface {
	// Name identifies the extractor in logs and review notes
	Name() string

	// Pages returns one string per page of the document
	Pages(data []byte) ([]string, error)
}

// LayoutExtractor performs text-layout recovery through a real PDF reader.
// It is the default, high-fidelity extractor.
type LayoutExtractor struct{}

// Name returns "layout"
func (LayoutExtractor) Name() string { return "layout" }

// Pages extracts plain text page by page
func (LayoutExtractor) Pages(data []byte) (pages []string, err error) {
	// The reader panics on some malformed documents; degrade instead.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	pages = make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single damaged page should not sink the document.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// textShowPattern matches bracketed text-show operators in raw PDF content.
var textShowPattern = regexp.MustCompile(`\(([^)]*)\)\s*TJ?`)

// RawScanExtractor is the best-effort fallback: it scans raw PDF bytes for
// bracketed text-show operators and concatenates the recovered fragments
// into a single pseudo-page.
type RawScanExtractor struct{}

// Name returns "raw-scan"
func (RawScanExtractor) Name() string { return "raw-scan" }

// Pages returns at most one pseudo-page of recovered fragments
func (RawScanExtractor) Pages(data []byte) ([]string, error) {
	raw := string(data)

	var cleaned []string
	for _, match := range textShowPattern.FindAllStringSubmatch(raw, -1) {
		text := match[1]
		text = strings.ReplaceAll(text, `\r`, " ")
		text = strings.ReplaceAll(text, `\n`, " ")
		text = strings.ReplaceAll(text, `\)`, ")")
		text = strings.ReplaceAll(text, `\(`, "(")
		cleaned = append(cleaned, strings.TrimSpace(text))
	}

	if len(cleaned) == 0 {
		return nil, nil
	}
	return []string{strings.Join(cleaned, "\n")}, nil
}

// splitFormFeeds expands any page containing form-feed characters into
// multiple pages and drops blank pages. Extractors that concatenate a whole
// document into one string mark page boundaries with \f.
func splitFormFeeds(pages []string) []string {
	var out []string
	for _, page := range pages {
		for _, part := range strings.Split(page, "\f") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
