// Package drawings loads heterogeneous construction-drawing exports and
// normalizes them into measurable elements. Supported inputs are structured
// JSON documents, scanned or annotated PDF sheets, and zip archives of
// either. JSON documents are trusted as-is; PDF pages go through a
// regex-driven measurement scraper plus keyword classification.
package drawings

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"construction-takeoff/core/review"
	"construction-takeoff/core/types"
	"construction-takeoff/internal/errors"
	"construction-takeoff/internal/logging"
)

// Loader produces Drawings from a directory, zip archive, or single PDF
// file. A load is a forward-only single pass; restart by calling Load again.
type Loader struct {
	path         string
	defaultTrade string
	extractor    TextExtractor
	checklist    *review.Checklist
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithDefaultTrade sets the trade bias for PDF parsing. It never affects
// JSON parsing, which always trusts the document's explicit trade field.
func WithDefaultTrade(trade string) LoaderOption {
	return func(l *Loader) {
		l.defaultTrade = strings.ToLower(strings.TrimSpace(trade))
	}
}

// WithTextExtractor replaces the primary PDF text extractor. The raw-scan
// fallback always remains behind it.
func WithTextExtractor(extractor TextExtractor) LoaderOption {
	return func(l *Loader) {
		l.extractor = extractor
	}
}

// WithChecklist attaches a review checklist so the loader can surface
// advisory findings (for example, unreadable page text).
func WithChecklist(checklist *review.Checklist) LoaderOption {
	return func(l *Loader) {
		l.checklist = checklist
	}
}

// NewLoader creates a loader for the given input path
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{path: path, extractor: LayoutExtractor{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the input and returns the drawings it contains. The input must
// be exactly one of: a directory (all JSON files sorted by name, then all
// PDF files sorted by name), a zip archive (entries sorted by archive name,
// same dual handling), or a single PDF file.
//
// In directory and zip mode a document that fails to parse does not abort
// the batch: siblings are still processed and the per-document failures come
// back combined in the returned error alongside the surviving drawings.
func (l *Loader) Load() ([]types.Drawing, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		return nil, errors.UnsupportedInput(l.path).WithContext("cause", err.Error())
	}

	switch {
	case info.IsDir():
		return l.loadDirectory()
	case isZipFile(l.path):
		return l.loadZip()
	case strings.EqualFold(filepath.Ext(l.path), ".pdf"):
		return l.loadPDFFile()
	default:
		return nil, errors.UnsupportedInput(l.path)
	}
}

func (l *Loader) loadDirectory() ([]types.Drawing, error) {
	var drawings []types.Drawing
	var errs error

	jsonPaths, _ := filepath.Glob(filepath.Join(l.path, "*.json"))
	sort.Strings(jsonPaths)
	for _, path := range jsonPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, errors.Parsing(path, err))
			continue
		}
		drawing, err := parseJSONDocument(data, path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		drawings = append(drawings, drawing)
	}

	pdfPaths, _ := filepath.Glob(filepath.Join(l.path, "*.pdf"))
	sort.Strings(pdfPaths)
	for _, path := range pdfPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, errors.Parsing(path, err))
			continue
		}
		drawings = append(drawings, l.loadPDFBytes(data, path, stemOf(path))...)
	}

	return drawings, errs
}

func (l *Loader) loadZip() ([]types.Drawing, error) {
	archive, err := zip.OpenReader(l.path)
	if err != nil {
		return nil, errors.Parsing(l.path, err)
	}
	defer archive.Close()

	entries := make(map[string]*zip.File, len(archive.File))
	names := make([]string, 0, len(archive.File))
	for _, file := range archive.File {
		entries[file.Name] = file
		names = append(names, file.Name)
	}
	sort.Strings(names)

	var drawings []types.Drawing
	var errs error
	for _, name := range names {
		lowered := strings.ToLower(name)
		if !strings.HasSuffix(lowered, ".json") && !strings.HasSuffix(lowered, ".pdf") {
			continue
		}

		source := fmt.Sprintf("%s:%s", l.path, name)
		data, err := readZipEntry(entries[name])
		if err != nil {
			errs = multierr.Append(errs, errors.Parsing(source, err))
			continue
		}

		if strings.HasSuffix(lowered, ".json") {
			drawing, err := parseJSONDocument(data, source)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			drawings = append(drawings, drawing)
		} else {
			drawings = append(drawings, l.loadPDFBytes(data, source, stemOf(name))...)
		}
	}

	return drawings, errs
}

func (l *Loader) loadPDFFile() ([]types.Drawing, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, errors.Parsing(l.path, err)
	}
	return l.loadPDFBytes(data, l.path, stemOf(l.path)), nil
}

// loadPDFBytes converts one PDF document into one Drawing per page. An
// empty page set is treated as a single page of empty text so every input
// document yields at least one Drawing.
func (l *Loader) loadPDFBytes(data []byte, source, stem string) []types.Drawing {
	pages := l.extractPages(data, source)
	if len(pages) == 0 {
		pages = []string{""}
	}

	drawings := make([]types.Drawing, 0, len(pages))
	for i, text := range pages {
		drawings = append(drawings, types.Drawing{
			Name:     fmt.Sprintf("%s-p%d", stem, i+1),
			Elements: l.parsePage(text, fmt.Sprintf("%s#page%d", source, i+1)),
		})
	}
	return drawings
}

// extractPages layers text extraction: the primary extractor first, then
// the raw byte scan when the primary is unavailable or yields nothing.
func (l *Loader) extractPages(data []byte, source string) []string {
	pages, err := l.extractor.Pages(data)
	if err != nil {
		logging.Warn("primary text extraction failed, falling back to raw scan",
			zap.String("source", source),
			zap.String("extractor", l.extractor.Name()),
			zap.Error(err))
		pages = nil
	}
	pages = splitFormFeeds(pages)
	if len(pages) > 0 {
		return pages
	}

	pages, _ = RawScanExtractor{}.Pages(data)
	pages = splitFormFeeds(pages)
	if len(pages) == 0 && l.checklist != nil {
		l.checklist.Addf(review.SeverityInfo,
			"No text could be recovered from %s. Page treated as empty.", source)
	}
	return pages
}

var zipMagic = []byte{'P', 'K', 0x03, 0x04}

func isZipFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, 4)
	if _, err := io.ReadFull(f, header); err != nil {
		return false
	}
	return bytes.Equal(header, zipMagic)
}

func readZipEntry(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
