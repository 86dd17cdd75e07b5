package validate

import (
	"testing"

	"construction-takeoff/core/types"
)

func element(trade, category string, geometry map[string]float64) types.Element {
	return types.Element{ID: "e1", Trade: trade, Category: category, Geometry: geometry}
}

func TestNeedsData(t *testing.T) {
	tests := []struct {
		name string
		el   types.Element
		want bool
	}{
		{
			"complete slab",
			element("concrete", "slab", map[string]float64{"area_sqft": 100, "thickness_in": 6}),
			false,
		},
		{
			"slab missing thickness",
			element("concrete", "slab", map[string]float64{"area_sqft": 100}),
			true,
		},
		{
			"wall missing height",
			element("concrete", "wall", map[string]float64{"length_ft": 40, "thickness_in": 8}),
			true,
		},
		{
			"complete pier",
			element("concrete", "pier", map[string]float64{"diameter_in": 18, "depth_ft": 10}),
			false,
		},
		{
			"footing without optional area",
			element("concrete", "footing", map[string]float64{"volume_cy": 12}),
			false,
		},
		{
			"footing missing volume",
			element("concrete", "footing", map[string]float64{"area_sqft": 80}),
			true,
		},
		{
			"unknown category with empty geometry",
			element("concrete", "unclassified", map[string]float64{}),
			true,
		},
		{
			"unknown category with some geometry",
			element("concrete", "unclassified", map[string]float64{"quantity": 4}),
			false,
		},
		{
			"other trade never needs data here",
			element("steel", "slab", map[string]float64{}),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsData("concrete", tt.el); got != tt.want {
				t.Errorf("NeedsData = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIncompletePreservesOrder(t *testing.T) {
	elements := []types.Element{
		{ID: "a", Trade: "concrete", Category: "slab", Geometry: map[string]float64{"area_sqft": 10}},
		{ID: "b", Trade: "concrete", Category: "slab", Geometry: map[string]float64{"area_sqft": 10, "thickness_in": 4}},
		{ID: "c", Trade: "concrete", Category: "pier", Geometry: map[string]float64{}},
	}

	got := Incomplete("concrete", elements)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("Incomplete = %v", got)
	}
}

func TestRequiredFields(t *testing.T) {
	got := RequiredFields("footing")
	if len(got) != 1 || got[0] != "volume_cy" {
		t.Errorf("RequiredFields(footing) = %v, want [volume_cy]", got)
	}
	if fields := RequiredFields("nonsense"); fields != nil {
		t.Errorf("RequiredFields(nonsense) = %v, want nil", fields)
	}
}

func TestSupportedCategoriesSorted(t *testing.T) {
	got := SupportedCategories()
	want := []string{"footing", "pier", "slab", "wall"}
	if len(got) != len(want) {
		t.Fatalf("SupportedCategories = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SupportedCategories[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
