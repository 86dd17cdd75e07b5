package drawings

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"construction-takeoff/core/types"
	"construction-takeoff/internal/errors"
)

// documentSchema checks the shape of a drawing JSON export before element
// parsing: a document is an object whose "elements" key is an array of
// objects. Field-level requirements are enforced by parseElement so the
// resulting errors can name the exact missing fields.
const documentSchemaJSON = `{
	"type": "object",
	"required": ["elements"],
	"properties": {
		"project": {"type": "object"},
		"elements": {
			"type": "array",
			"items": {"type": "object"}
		}
	}
}`

var documentSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("drawing-document.json", strings.NewReader(documentSchemaJSON)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("drawing-document.json")
}()

// reservedElementKeys are the element fields that never become metadata.
var reservedElementKeys = map[string]bool{
	"id":       true,
	"trade":    true,
	"category": true,
	"geometry": true,
}

// parseJSONDocument converts one drawing JSON export into a Drawing. Any
// malformed element fails the whole document: a partially salvaged elements
// array would silently understate the takeoff.
func parseJSONDocument(data []byte, source string) (types.Drawing, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Drawing{}, errors.Parsing(source, err)
	}
	if err := documentSchema.Validate(doc); err != nil {
		return types.Drawing{}, errors.Parsing(source, err)
	}

	root := doc.(map[string]interface{})

	name := stemOf(source)
	var level, scale string
	if project, ok := root["project"].(map[string]interface{}); ok {
		if v, ok := project["name"].(string); ok && v != "" {
			name = v
		}
		level, _ = project["level"].(string)
		scale, _ = project["scale"].(string)
	}

	rawElements, _ := root["elements"].([]interface{})
	elements := make([]types.Element, 0, len(rawElements))
	for _, raw := range rawElements {
		item, ok := raw.(map[string]interface{})
		if !ok {
			return types.Drawing{}, errors.MalformedElement(source, []string{"id", "trade", "category", "geometry"})
		}
		el, err := parseElement(item, source)
		if err != nil {
			return types.Drawing{}, err
		}
		elements = append(elements, el)
	}

	return types.Drawing{Name: name, Level: level, Scale: scale, Elements: elements}, nil
}

// parseElement validates and normalizes a single element entry.
func parseElement(item map[string]interface{}, source string) (types.Element, error) {
	var missing []string
	for key := range reservedElementKeys {
		if _, ok := item[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return types.Element{}, errors.MalformedElement(source, missing)
	}

	id := stringify(item["id"])

	rawGeometry, ok := item["geometry"].(map[string]interface{})
	if !ok {
		return types.Element{}, errors.MalformedGeometry(source, id, "geometry must be an object")
	}
	geometry := make(map[string]float64, len(rawGeometry))
	for key, value := range rawGeometry {
		f, err := coerceFloat(value)
		if err != nil {
			return types.Element{}, errors.MalformedGeometry(source, id, fmt.Sprintf("value for %q is not numeric", key))
		}
		geometry[key] = f
	}

	metadata := make(map[string]string)
	for key, value := range item {
		if !reservedElementKeys[key] {
			metadata[key] = stringify(value)
		}
	}

	return types.Element{
		ID:       id,
		Trade:    strings.ToLower(stringify(item["trade"])),
		Category: strings.ToLower(stringify(item["category"])),
		Geometry: geometry,
		Metadata: metadata,
	}, nil
}

// GroupByTrade flattens drawings into trade-keyed element lists, preserving
// drawing and element order within each trade.
func GroupByTrade(drawings []types.Drawing) map[string][]types.Element {
	grouped := make(map[string][]types.Element)
	for _, drawing := range drawings {
		for _, el := range drawing.Elements {
			grouped[el.Trade] = append(grouped[el.Trade], el)
		}
	}
	return grouped
}

func coerceFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported geometry value %T", value)
	}
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// stemOf returns the base name of a source path without its extension.
func stemOf(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
