package drawings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRawScanExtractorRecoversFragments(t *testing.T) {
	data := []byte("%PDF-1.4\nBT (Slab Area: 1200 SF) Tj (Wall length: 85 LF) TJ ET")

	pages, err := RawScanExtractor{}.Pages(data)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("pages = %d, want a single pseudo-page", len(pages))
	}
	want := "Slab Area: 1200 SF\nWall length: 85 LF"
	if pages[0] != want {
		t.Errorf("pseudo-page = %q, want %q", pages[0], want)
	}
}

func TestRawScanExtractorUnescapes(t *testing.T) {
	data := []byte(`(Note \(detail A: 4 EA) Tj`)

	pages, err := RawScanExtractor{}.Pages(data)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(pages))
	}
	if pages[0] != "Note (detail A: 4 EA" {
		t.Errorf("pseudo-page = %q", pages[0])
	}
}

func TestRawScanExtractorNoFragments(t *testing.T) {
	pages, err := RawScanExtractor{}.Pages([]byte("binary junk with no text operators"))
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("pages = %v, want none", pages)
	}
}

func TestSplitFormFeeds(t *testing.T) {
	got := splitFormFeeds([]string{"page one\fpage two", "", "  \f ", "page three"})
	want := []string{"page one", "page two", "page three"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("splitFormFeeds mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutExtractorRejectsGarbage(t *testing.T) {
	if _, err := (LayoutExtractor{}).Pages([]byte("not a pdf at all")); err == nil {
		t.Error("expected an error for non-PDF bytes")
	}
}
