// Package estimate converts drawing elements into priced takeoff line items
// through a pluggable per-trade costing contract.
package estimate

import "github.com/shopspring/decimal"

// TakeoffLineItem is one priced row of an estimate. Costs are derived,
// never stored, so the row can't drift out of sync with its inputs.
type TakeoffLineItem struct {
	Description       string          `json:"description"`
	Quantity          float64         `json:"quantity"`
	Unit              string          `json:"unit"`
	MaterialUnitCost  decimal.Decimal `json:"material_unit_cost"`
	LaborHoursPerUnit float64         `json:"labor_hours_per_unit"`
	LaborRatePerHour  decimal.Decimal `json:"labor_rate_per_hour"`
}

// MaterialCost returns quantity * material unit cost
func (i TakeoffLineItem) MaterialCost() decimal.Decimal {
	return decimal.NewFromFloat(i.Quantity).Mul(i.MaterialUnitCost)
}

// LaborHours returns quantity * labor hours per unit
func (i TakeoffLineItem) LaborHours() float64 {
	return i.Quantity * i.LaborHoursPerUnit
}

// LaborCost returns labor hours * labor rate
func (i TakeoffLineItem) LaborCost() decimal.Decimal {
	return decimal.NewFromFloat(i.LaborHours()).Mul(i.LaborRatePerHour)
}

// Summary metric keys emitted by the concrete estimator.
const (
	SummaryConcreteCY   = "concrete_cy"
	SummaryRebarLB      = "rebar_lb"
	SummaryFormworkSF   = "formwork_sf"
	SummaryLaborHours   = "labor_hours"
	SummaryMaterialCost = "material_cost"
	SummaryLaborCost    = "labor_cost"
)

// TakeoffResult is the complete output of one estimator run: the ordered
// line items plus numeric totals keyed by metric name. Summary values are
// sums over the emitted line items, never independently recomputed.
type TakeoffResult struct {
	LineItems []TakeoffLineItem  `json:"line_items"`
	Summary   map[string]float64 `json:"summary"`
}
