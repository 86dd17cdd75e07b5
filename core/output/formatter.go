// Package output renders takeoff results for human and machine consumers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"construction-takeoff/core/estimate"
	"construction-takeoff/core/review"
	"construction-takeoff/core/service"
	"construction-takeoff/internal/errors"
)

// Format represents an output format type
type Format string

const (
	// FormatCLI is a human-readable table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// LineItemView is a line item with its derived costs materialized for
// rendering. Money fields are decimal strings.
type LineItemView struct {
	Description       string  `json:"description"`
	Quantity          float64 `json:"quantity"`
	Unit              string  `json:"unit"`
	MaterialUnitCost  string  `json:"material_unit_cost"`
	MaterialCost      string  `json:"material_cost"`
	LaborHours        float64 `json:"labor_hours"`
	LaborRatePerHour  string  `json:"labor_rate_per_hour"`
	LaborCost         string  `json:"labor_cost"`
	LaborHoursPerUnit float64 `json:"labor_hours_per_unit"`
}

// Report is the renderable view of a takeoff run
type Report struct {
	Trade         string             `json:"trade"`
	DrawingCount  int                `json:"drawing_count"`
	ElementCount  int                `json:"element_count"`
	LineItems     []LineItemView     `json:"line_items"`
	Summary       map[string]float64 `json:"summary"`
	ReviewItems   []review.Item      `json:"review_items"`
	ReviewSummary string             `json:"review_summary"`
}

// NewReport builds a report from a completed run
func NewReport(run *service.Run) *Report {
	items := make([]LineItemView, 0, len(run.Result.LineItems))
	for _, item := range run.Result.LineItems {
		items = append(items, newLineItemView(item))
	}
	return &Report{
		Trade:         run.Trade,
		DrawingCount:  run.DrawingCount,
		ElementCount:  run.ElementCount,
		LineItems:     items,
		Summary:       run.Result.Summary,
		ReviewItems:   run.Review.Items(),
		ReviewSummary: run.Review.Summarize(),
	}
}

func newLineItemView(item estimate.TakeoffLineItem) LineItemView {
	return LineItemView{
		Description:       item.Description,
		Quantity:          item.Quantity,
		Unit:              item.Unit,
		MaterialUnitCost:  money(item.MaterialUnitCost),
		MaterialCost:      money(item.MaterialCost()),
		LaborHours:        item.LaborHours(),
		LaborRatePerHour:  money(item.LaborRatePerHour),
		LaborCost:         money(item.LaborCost()),
		LaborHoursPerUnit: item.LaborHoursPerUnit,
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the report
	Render(w io.Writer, report *Report) error
}

// ForFormat returns the formatter for a format name
func ForFormat(format Format) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return CLIFormatter{}, nil
	case FormatJSON:
		return JSONFormatter{}, nil
	default:
		return nil, errors.Newf(errors.TypeConfig, "unknown output format %q (expected cli or json)", format)
	}
}

// CLIFormatter renders a plain-text table plus the review summary
type CLIFormatter struct{}

// Format returns FormatCLI
func (CLIFormatter) Format() Format { return FormatCLI }

// Render writes the report as aligned text
func (CLIFormatter) Render(w io.Writer, report *Report) error {
	fmt.Fprintf(w, "Takeoff estimate for trade %q (%d drawings, %d elements)\n\n",
		report.Trade, report.DrawingCount, report.ElementCount)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DESCRIPTION\tQTY\tUNIT\tMATERIAL $/U\tMATERIAL $\tLABOR HRS\tLABOR $")
	for _, item := range report.LineItems {
		fmt.Fprintf(tw, "%s\t%.4f\t%s\t%s\t%s\t%.2f\t%s\n",
			item.Description, item.Quantity, item.Unit,
			item.MaterialUnitCost, item.MaterialCost,
			item.LaborHours, item.LaborCost)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary:")
	for _, key := range summaryOrder {
		if value, ok := report.Summary[key]; ok {
			fmt.Fprintf(w, "  %-14s %.2f\n", key, value)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, report.ReviewSummary)
	return nil
}

// summaryOrder fixes the display order of summary metrics.
var summaryOrder = []string{
	estimate.SummaryConcreteCY,
	estimate.SummaryRebarLB,
	estimate.SummaryFormworkSF,
	estimate.SummaryLaborHours,
	estimate.SummaryMaterialCost,
	estimate.SummaryLaborCost,
}

// JSONFormatter renders the report as indented JSON
type JSONFormatter struct{}

// Format returns FormatJSON
func (JSONFormatter) Format() Format { return FormatJSON }

// Render writes the report as JSON
func (JSONFormatter) Render(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
