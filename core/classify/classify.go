// Package classify infers trades and element categories from free-text
// drawing labels. Both classifiers are pure functions of the label text:
// deterministic, no side effects, no I/O.
//
// The keyword tables are data, not branching logic, so priority order is
// explicit and independently testable.
package classify

import "strings"

// tradeRule pairs a trade with the label keywords that imply it.
// Rules are evaluated in order; the first hit wins.
type tradeRule struct {
	trade    string
	keywords []string
}

var tradeRules = []tradeRule{
	{"concrete", []string{"slab", "concrete", "footing", "foundation", "grade beam", "column", "wall"}},
	{"masonry", []string{"masonry", "brick", "cmu", "block"}},
	{"steel", []string{"steel", "beam", "joist", "girder"}},
	{"roofing", []string{"roof", "roofing", "membrane"}},
	{"framing", []string{"stud", "framing", "joist", "truss"}},
	{"waterproofing", []string{"waterproof", "damp proof", "seal"}},
}

// maxCategoryLen caps free-form categories derived from raw labels.
const maxCategoryLen = 40

// Trade infers a trade from a label. Matching is a case-insensitive
// substring check against the ordered keyword table. A non-empty fallback
// represents the caller's declared intent about which trade the drawing set
// covers and overrides lexical inference; with no fallback and no keyword
// hit the result is "general".
func Trade(label, fallback string) string {
	lowered := strings.ToLower(label)
	for _, rule := range tradeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				if fallback != "" && rule.trade != fallback {
					return fallback
				}
				return rule.trade
			}
		}
	}
	if fallback != "" {
		return fallback
	}
	return "general"
}

// KnownTrades returns the trades in the keyword table, in priority order.
func KnownTrades() []string {
	out := make([]string, len(tradeRules))
	for i, rule := range tradeRules {
		out[i] = rule.trade
	}
	return out
}

// Category infers an element category from a label. A small priority list
// is checked first; otherwise the label itself is normalized (lowercase,
// spaces to underscores, truncated) with "unclassified" as the last resort.
func Category(label string) string {
	lowered := strings.ToLower(label)
	switch {
	case strings.Contains(lowered, "slab"):
		return "slab"
	case strings.Contains(lowered, "footing"), strings.Contains(lowered, "foundation"):
		return "footing"
	case strings.Contains(lowered, "rebar"), strings.Contains(lowered, "reinforcing"):
		return "rebar"
	case strings.Contains(lowered, "form"):
		return "formwork"
	case strings.Contains(lowered, "labor"):
		return "labor"
	}

	normalized := strings.ReplaceAll(strings.TrimSpace(lowered), " ", "_")
	if len(normalized) > maxCategoryLen {
		normalized = normalized[:maxCategoryLen]
	}
	if normalized == "" {
		return "unclassified"
	}
	return normalized
}
