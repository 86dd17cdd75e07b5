package service

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"construction-takeoff/core/review"
	"construction-takeoff/internal/errors"
)

func writePlan(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunTradeTakeoff(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "plan.json", `{
		"project": {"name": "Warehouse"},
		"elements": [
			{"id": "s1", "trade": "concrete", "category": "slab",
			 "geometry": {"area_sqft": 100, "thickness_in": 6}}
		]
	}`)

	run, err := RunTradeTakeoff("Concrete", dir)
	if err != nil {
		t.Fatalf("RunTradeTakeoff: %v", err)
	}

	if run.Trade != "concrete" {
		t.Errorf("trade = %q, want normalized concrete", run.Trade)
	}
	if run.DrawingCount != 1 || run.ElementCount != 1 {
		t.Errorf("counts = %d drawings, %d elements", run.DrawingCount, run.ElementCount)
	}
	if math.Abs(run.Result.Summary["concrete_cy"]-1.8519) > 0.001 {
		t.Errorf("concrete_cy = %v, want ~1.852", run.Result.Summary["concrete_cy"])
	}
	if len(run.Incomplete) != 0 {
		t.Errorf("incomplete = %v, want none", run.Incomplete)
	}
}

func TestRunTradeTakeoffUnknownTradeFailsEarly(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "plan.json", `{"elements": []}`)

	run, err := RunTradeTakeoff("plumbing", dir)
	if err == nil {
		t.Fatal("expected error for unknown trade")
	}
	if run != nil {
		t.Error("no partial result may be produced for an unknown trade")
	}
	if !errors.IsType(err, errors.TypeNotSupported) {
		t.Errorf("error type = %v", err)
	}
	if !strings.Contains(err.Error(), "concrete") {
		t.Errorf("error must enumerate available trades: %v", err)
	}
}

func TestRunTradeTakeoffNoElementsWarns(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "plan.json", `{
		"elements": [
			{"id": "b1", "trade": "steel", "category": "beam", "geometry": {"length_ft": 20}}
		]
	}`)

	run, err := RunTradeTakeoff("concrete", dir)
	if err != nil {
		t.Fatalf("RunTradeTakeoff: %v", err)
	}

	var warned bool
	for _, item := range run.Review.Items() {
		if item.Severity == review.SeverityWarning && strings.Contains(item.Message, "No drawing elements found") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("expected a no-elements warning, got: %s", run.Review.Summarize())
	}
	if len(run.Result.LineItems) != 0 {
		t.Errorf("line items = %v, want none", run.Result.LineItems)
	}
}

func TestRunTradeTakeoffIncompleteElementsEscalated(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "plan.json", `{
		"elements": [
			{"id": "s1", "trade": "concrete", "category": "slab",
			 "geometry": {"area_sqft": 100}},
			{"id": "s2", "trade": "concrete", "category": "slab",
			 "geometry": {"area_sqft": 50, "thickness_in": 4}}
		]
	}`)

	run, err := RunTradeTakeoff("concrete", dir)
	if err != nil {
		t.Fatalf("RunTradeTakeoff: %v", err)
	}
	if len(run.Incomplete) != 1 || run.Incomplete[0].ID != "s1" {
		t.Errorf("incomplete = %v, want [s1]", run.Incomplete)
	}
}

func TestRunTradeTakeoffCorruptSiblingBecomesCriticalReview(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "a-broken.json", `{"elements": [`)
	writePlan(t, dir, "b-good.json", `{
		"elements": [
			{"id": "s1", "trade": "concrete", "category": "slab",
			 "geometry": {"area_sqft": 100, "thickness_in": 6}}
		]
	}`)

	run, err := RunTradeTakeoff("concrete", dir)
	if err != nil {
		t.Fatalf("RunTradeTakeoff: %v", err)
	}

	var critical bool
	for _, item := range run.Review.Items() {
		if item.Severity == review.SeverityCritical && strings.Contains(item.Message, "a-broken.json") {
			critical = true
		}
	}
	if !critical {
		t.Errorf("per-document failure must surface as critical review item: %s", run.Review.Summarize())
	}
	if run.DrawingCount != 1 {
		t.Errorf("drawing count = %d, want 1 surviving document", run.DrawingCount)
	}
}

func TestRunTradeTakeoffUnsupportedInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := RunTradeTakeoff("concrete", path)
	if !errors.IsType(err, errors.TypeInput) {
		t.Errorf("error = %v, want INPUT_ERROR", err)
	}
}

func TestRunTradeTakeoffExternalChecklistIsUsed(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "plan.json", `{"elements": []}`)

	checklist := review.NewChecklist()
	run, err := RunTradeTakeoff("concrete", dir, WithChecklist(checklist))
	if err != nil {
		t.Fatalf("RunTradeTakeoff: %v", err)
	}
	if run.Review != checklist {
		t.Error("run must use the supplied checklist")
	}
	if checklist.Len() == 0 {
		t.Error("no-elements warning should land on the supplied checklist")
	}
}
