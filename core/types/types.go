// Package types defines the core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

// Well-known trade names. Trades are open-ended strings; these constants
// cover the classifier vocabulary plus the catch-all.
const (
	TradeConcrete      = "concrete"
	TradeMasonry       = "masonry"
	TradeSteel         = "steel"
	TradeRoofing       = "roofing"
	TradeFraming       = "framing"
	TradeWaterproofing = "waterproofing"
	TradeGeneral       = "general"
)

// Geometry keys. The geometry map is open-ended; these are the keys the
// extractors and estimators agree on.
const (
	GeomAreaSqft    = "area_sqft"
	GeomThicknessIn = "thickness_in"
	GeomLengthFt    = "length_ft"
	GeomHeightFt    = "height_ft"
	GeomDiameterIn  = "diameter_in"
	GeomDepthFt     = "depth_ft"
	GeomVolumeCY    = "volume_cy"
	GeomCount       = "count"
	GeomLaborHours  = "labor_hours"
	GeomQuantity    = "quantity"
)

// Reserved metadata keys written by the extraction pipeline.
const (
	MetaSource            = "source"
	MetaUnit              = "unit"
	MetaRawLabel          = "raw_label"
	MetaAssumedThickness  = "assumed_thickness_in"
	MetaPlaceholder       = "placeholder"
	MetaNote              = "note"
	MetaMarkupBoundingBox = "markup_bbox"
)

// Element is a single measurable unit extracted from a drawing.
// Trade and category are always lowercase. Identity is the ID plus the
// originating source metadata.
type Element struct {
	ID       string             `json:"id"`
	Trade    string             `json:"trade"`
	Category string             `json:"category"`
	Geometry map[string]float64 `json:"geometry"`
	Metadata map[string]string  `json:"metadata,omitempty"`
}

// Geom returns a geometry value, or 0 when the key is absent.
func (e Element) Geom(key string) float64 {
	return e.Geometry[key]
}

// HasGeom reports whether a geometry key is present.
func (e Element) HasGeom(key string) bool {
	_, ok := e.Geometry[key]
	return ok
}

// Meta returns a metadata value, or "" when the key is absent.
func (e Element) Meta(key string) string {
	return e.Metadata[key]
}

// Clone returns a deep copy of the element. Collaborators that correct an
// element (human review, manual entry) revise a copy instead of mutating a
// shared reference.
func (e Element) Clone() Element {
	out := e
	out.Geometry = make(map[string]float64, len(e.Geometry))
	for k, v := range e.Geometry {
		out.Geometry[k] = v
	}
	if e.Metadata != nil {
		out.Metadata = make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// WithCategory returns a copy of the element with the category replaced.
func (e Element) WithCategory(category string) Element {
	out := e.Clone()
	out.Category = category
	return out
}

// WithGeometry returns a copy of the element with one geometry value set.
func (e Element) WithGeometry(key string, value float64) Element {
	out := e.Clone()
	if out.Geometry == nil {
		out.Geometry = make(map[string]float64, 1)
	}
	out.Geometry[key] = value
	return out
}

// WithMetadata returns a copy of the element with one metadata value set.
func (e Element) WithMetadata(key, value string) Element {
	out := e.Clone()
	if out.Metadata == nil {
		out.Metadata = make(map[string]string, 1)
	}
	out.Metadata[key] = value
	return out
}

// Drawing represents a single sheet or level within the project.
// One Drawing is created per JSON document or per PDF page; drawings are
// never merged across documents.
type Drawing struct {
	Name     string    `json:"name"`
	Level    string    `json:"level,omitempty"`
	Scale    string    `json:"scale,omitempty"`
	Elements []Element `json:"elements"`
}
