// Package markup validates and collects manual markup annotations carried
// on element metadata. The export/rendering collaborator relies on the
// guarantee that every bounding box leaving this package is exactly four
// comma-separated floats in [0,1] with a top-left origin and non-degenerate
// extents.
package markup

import (
	"fmt"
	"strconv"
	"strings"

	"construction-takeoff/core/types"
)

// BBox is a normalized top-left-origin rectangle tagging an element's
// location on its source page.
type BBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// ParseBBox parses and validates a markup_bbox metadata value.
func ParseBBox(raw string) (BBox, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return BBox{}, fmt.Errorf("markup bbox must have 4 coordinates, got %d", len(parts))
	}

	coords := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return BBox{}, fmt.Errorf("markup bbox coordinate %d is not numeric: %q", i+1, part)
		}
		if v < 0 || v > 1 {
			return BBox{}, fmt.Errorf("markup bbox coordinate %d out of range [0,1]: %v", i+1, v)
		}
		coords[i] = v
	}

	box := BBox{X1: coords[0], Y1: coords[1], X2: coords[2], Y2: coords[3]}
	if box.X1 == box.X2 || box.Y1 == box.Y2 {
		return BBox{}, fmt.Errorf("markup bbox is degenerate: %s", raw)
	}
	return box, nil
}

// String renders the bbox back to its metadata form
func (b BBox) String() string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return strings.Join([]string{format(b.X1), format(b.Y1), format(b.X2), format(b.Y2)}, ",")
}

// Entry is one exportable markup record
type Entry struct {
	ElementID string `json:"element_id"`
	Trade     string `json:"trade"`
	Category  string `json:"category"`
	Source    string `json:"source,omitempty"`
	BBox      BBox   `json:"bounding_box"`
}

// Collect gathers valid markup entries from the elements. Elements without
// a bbox, or with one that fails validation, are skipped.
func Collect(elements []types.Element) []Entry {
	var entries []Entry
	for _, el := range elements {
		raw := el.Meta(types.MetaMarkupBoundingBox)
		if raw == "" {
			continue
		}
		box, err := ParseBBox(raw)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			ElementID: el.ID,
			Trade:     el.Trade,
			Category:  el.Category,
			Source:    el.Meta(types.MetaSource),
			BBox:      box,
		})
	}
	return entries
}

// OverlayRenderer is the visual-annotation capability. It is explicitly
// constructed and injected by the hosting process; a nil renderer means the
// capability is absent. The core ships no implementation.
type OverlayRenderer interface {
	// RenderOverlays draws the elements' markup boxes onto their source
	// pages and returns the paths of the written artifacts.
	RenderOverlays(elements []types.Element, outputDir string) ([]string, error)
}
