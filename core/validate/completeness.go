// Package validate decides which elements lack the geometry their category
// requires. This check is the sole gate for escalating an element to the
// human-review collaborator instead of passing it straight to estimation.
package validate

import (
	"sort"

	"construction-takeoff/core/types"
)

// Field describes one geometry field a category can carry
type Field struct {
	Key      string
	Optional bool
}

// categoryFields maps each recognized category to its geometry fields.
var categoryFields = map[string][]Field{
	"slab": {
		{Key: types.GeomAreaSqft},
		{Key: types.GeomThicknessIn},
	},
	"wall": {
		{Key: types.GeomLengthFt},
		{Key: types.GeomHeightFt},
		{Key: types.GeomThicknessIn},
	},
	"pier": {
		{Key: types.GeomDiameterIn},
		{Key: types.GeomDepthFt},
	},
	"footing": {
		{Key: types.GeomVolumeCY},
		{Key: types.GeomAreaSqft, Optional: true},
	},
}

// Fields returns the geometry fields for a category, or nil when the
// category is not recognized.
func Fields(category string) []Field {
	return categoryFields[category]
}

// RequiredFields returns the required geometry keys for a category.
func RequiredFields(category string) []string {
	var out []string
	for _, f := range categoryFields[category] {
		if !f.Optional {
			out = append(out, f.Key)
		}
	}
	return out
}

// SupportedCategories returns the recognized categories in sorted order.
func SupportedCategories() []string {
	out := make([]string, 0, len(categoryFields))
	for name := range categoryFields {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NeedsData reports whether an element of the given trade is missing
// required geometry. Elements of other trades never need data here. An
// element with an unrecognized category needs data only when its geometry
// is empty.
func NeedsData(trade string, el types.Element) bool {
	if el.Trade != trade {
		return false
	}
	if len(el.Geometry) == 0 {
		return true
	}
	for _, key := range RequiredFields(el.Category) {
		if !el.HasGeom(key) {
			return true
		}
	}
	return false
}

// Incomplete returns the elements of the given trade that fail NeedsData,
// preserving input order.
func Incomplete(trade string, elements []types.Element) []types.Element {
	var out []types.Element
	for _, el := range elements {
		if NeedsData(trade, el) {
			out = append(out, el)
		}
	}
	return out
}
