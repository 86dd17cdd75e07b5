package drawings

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"construction-takeoff/core/classify"
	"construction-takeoff/core/types"
)

// assumedSlabThicknessIn is injected when a slab callout gives an area but
// no thickness. The assumption is recorded in metadata so it stays auditable.
const assumedSlabThicknessIn = 6.0

// measurementPattern matches "<label> <separator> <value> <unit>" callouts,
// e.g. "Slab Area: 1200 SF". Matching is case-insensitive, non-overlapping,
// left to right.
var measurementPattern = regexp.MustCompile(
	`(?i)([A-Za-z0-9#\-/\s]+)\s*(?:[:=]|-\s)\s*(\d+(?:\.\d+)?)\s*` +
		`(sq\.?\s*ft|sf|square feet|cy|cubic yards|cu\.?\s*yd\.?|lf|linear feet|ft|feet|ea|each|hrs?|hours?)`,
)

// GeometryFromUnit maps a parsed unit token to normalized geometry. Tokens
// outside the known vocabulary land on the generic "quantity" key so the
// measurement survives for manual correction instead of being dropped.
func GeometryFromUnit(unit string, value float64) map[string]float64 {
	normalized := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(unit, ".", "")))
	compact := strings.ReplaceAll(normalized, " ", "")

	switch {
	case normalized == "sq ft" || normalized == "square feet" || compact == "sf":
		return map[string]float64{types.GeomAreaSqft: value}
	case normalized == "cubic yards" || normalized == "cu yd" || compact == "cy" || compact == "cuyd" || compact == "cuyds":
		return map[string]float64{types.GeomVolumeCY: value}
	case normalized == "linear feet" || normalized == "ft" || normalized == "feet" || compact == "lf":
		return map[string]float64{types.GeomLengthFt: value}
	case normalized == "each" || compact == "ea":
		return map[string]float64{types.GeomCount: value}
	case normalized == "hr" || normalized == "hrs" || normalized == "hour" || normalized == "hours":
		return map[string]float64{types.GeomLaborHours: value}
	}
	return map[string]float64{types.GeomQuantity: value}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives an element id from a label plus a 1-based running index,
// which keeps ids unique per page even for repeated labels.
func slugify(label string, index int) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(label), "-"), "-")
	if slug == "" {
		slug = "item"
	}
	return fmt.Sprintf("%s-%d", slug, index)
}

// parsePage scans page text for measurement callouts and converts each match
// into an element candidate. With no matches and a default trade configured,
// a single placeholder element is emitted so downstream review always has
// something to point at for an apparently-empty page.
func (l *Loader) parsePage(text, source string) []types.Element {
	var elements []types.Element

	for idx, match := range measurementPattern.FindAllStringSubmatch(text, -1) {
		label := strings.TrimSpace(match[1])
		value, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			continue
		}
		unit := strings.ToLower(match[3])
		geometry := GeometryFromUnit(unit, value)

		category := classify.Category(label)
		trade := classify.Trade(label, l.defaultTrade)
		metadata := map[string]string{
			types.MetaSource:   source,
			types.MetaUnit:     unit,
			types.MetaRawLabel: label,
		}

		if category == "slab" {
			_, hasArea := geometry[types.GeomAreaSqft]
			_, hasThickness := geometry[types.GeomThicknessIn]
			if hasArea && !hasThickness {
				geometry[types.GeomThicknessIn] = assumedSlabThicknessIn
				metadata[types.MetaAssumedThickness] = strconv.FormatFloat(assumedSlabThicknessIn, 'f', 1, 64)
			}
		}

		elements = append(elements, types.Element{
			ID:       slugify(label, idx+1),
			Trade:    trade,
			Category: category,
			Geometry: geometry,
			Metadata: metadata,
		})
	}

	if len(elements) == 0 && l.defaultTrade != "" {
		elements = append(elements, types.Element{
			ID:       "placeholder-1",
			Trade:    l.defaultTrade,
			Category: "unclassified",
			Geometry: map[string]float64{},
			Metadata: map[string]string{
				types.MetaSource:      source,
				types.MetaNote:        "No measurable callouts detected. Review required.",
				types.MetaPlaceholder: "true",
			},
		})
	}

	return elements
}
