package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"construction-takeoff/core/estimate"
	"construction-takeoff/core/review"
	"construction-takeoff/core/service"
	"construction-takeoff/internal/errors"
)

func sampleRun() *service.Run {
	checklist := review.NewChecklist()
	checklist.Add("Assumed 6 in slab thickness for element slab-1.", review.SeverityInfo)

	return &service.Run{
		Trade:        "concrete",
		DrawingCount: 2,
		ElementCount: 3,
		Review:       checklist,
		Result: &estimate.TakeoffResult{
			LineItems: []estimate.TakeoffLineItem{
				{
					Description:       "Concrete slab s1",
					Quantity:          1.8519,
					Unit:              "CY",
					MaterialUnitCost:  decimal.NewFromFloat(135),
					LaborHoursPerUnit: 0.125,
					LaborRatePerHour:  decimal.NewFromInt(65),
				},
			},
			Summary: map[string]float64{
				estimate.SummaryConcreteCY:   1.8519,
				estimate.SummaryMaterialCost: 250.01,
			},
		},
	}
}

func TestForFormat(t *testing.T) {
	cli, err := ForFormat(FormatCLI)
	if err != nil || cli.Format() != FormatCLI {
		t.Errorf("ForFormat(cli) = %v, %v", cli, err)
	}

	// Empty means the default human-readable form.
	def, err := ForFormat("")
	if err != nil || def.Format() != FormatCLI {
		t.Errorf("ForFormat(\"\") = %v, %v", def, err)
	}

	jf, err := ForFormat(FormatJSON)
	if err != nil || jf.Format() != FormatJSON {
		t.Errorf("ForFormat(json) = %v, %v", jf, err)
	}

	if _, err := ForFormat("yaml"); !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("ForFormat(yaml) error = %v, want CONFIG_ERROR", err)
	}
}

func TestNewReportMaterializesCosts(t *testing.T) {
	report := NewReport(sampleRun())

	if len(report.LineItems) != 1 {
		t.Fatalf("line items = %d, want 1", len(report.LineItems))
	}
	item := report.LineItems[0]
	if item.MaterialCost != "250.01" {
		t.Errorf("material cost = %q, want 250.01", item.MaterialCost)
	}
	if item.LaborCost != "15.05" {
		t.Errorf("labor cost = %q, want 15.05", item.LaborCost)
	}
	if report.ReviewSummary == "" || len(report.ReviewItems) != 1 {
		t.Errorf("review not carried into report: %+v", report)
	}
}

func TestCLIFormatterRender(t *testing.T) {
	var buf bytes.Buffer
	if err := (CLIFormatter{}).Render(&buf, NewReport(sampleRun())); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`Takeoff estimate for trade "concrete" (2 drawings, 3 elements)`,
		"Concrete slab s1",
		"concrete_cy",
		"Human review required",
		"Assumed 6 in slab thickness",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Summary keys render in a fixed order.
	if strings.Index(out, "concrete_cy") > strings.Index(out, "material_cost") {
		t.Errorf("summary order wrong:\n%s", out)
	}
}

func TestJSONFormatterRender(t *testing.T) {
	var buf bytes.Buffer
	if err := (JSONFormatter{}).Render(&buf, NewReport(sampleRun())); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Trade != "concrete" || decoded.LineItems[0].MaterialUnitCost != "135.00" {
		t.Errorf("decoded = %+v", decoded)
	}
}
