package estimate

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"construction-takeoff/core/review"
	"construction-takeoff/core/types"
)

// cubicFeetPerCY converts cubic feet to cubic yards.
const cubicFeetPerCY = 27.0

// Rebar allowances in pounds per cubic yard of placed concrete.
const (
	slabRebarLBPerCY = 250.0
	wallRebarLBPerCY = 180.0
	pierRebarLBPerCY = 120.0
)

// ConcreteRates holds the unit prices and production rates the concrete
// estimator applies. Everything here is swappable configuration, not a
// hard rule.
type ConcreteRates struct {
	// Material unit prices
	ReadyMixPerCY decimal.Decimal `json:"ready_mix_cy"`
	RebarPerLB    decimal.Decimal `json:"rebar_lb"`
	FormworkPerSF decimal.Decimal `json:"formwork_sf"`

	// CrewRatePerHour is the loaded labor rate for the concrete crew
	CrewRatePerHour decimal.Decimal `json:"concrete_crew_per_hour"`

	// Production rates, in units per labor hour
	PlaceFinishCYPerHour float64 `json:"place_finish_cy_per_hour"`
	RebarLBPerHour       float64 `json:"rebar_lb_per_hour"`
	FormworkSFPerHour    float64 `json:"formwork_sf_per_hour"`
}

// DefaultConcreteRates returns the built-in rate table. In production these
// could be loaded from a pricing database instead.
func DefaultConcreteRates() ConcreteRates {
	return ConcreteRates{
		ReadyMixPerCY:        decimal.NewFromFloat(135.0),
		RebarPerLB:           decimal.NewFromFloat(0.75),
		FormworkPerSF:        decimal.NewFromFloat(4.50),
		CrewRatePerHour:      decimal.NewFromFloat(65.0),
		PlaceFinishCYPerHour: 8.0,
		RebarLBPerHour:       120.0,
		FormworkSFPerHour:    40.0,
	}
}

// ConcreteEstimator prices slab, wall, and pier elements for the concrete
// trade. It is the canonical TradeEstimator implementation.
type ConcreteEstimator struct {
	checklist *review.Checklist
	rates     ConcreteRates
}

// NewConcreteEstimator creates a concrete estimator bound to a run-scoped
// checklist and rate table.
func NewConcreteEstimator(checklist *review.Checklist, rates ConcreteRates) *ConcreteEstimator {
	return &ConcreteEstimator{checklist: checklist, rates: rates}
}

// Trade returns "concrete"
func (e *ConcreteEstimator) Trade() string {
	return types.TradeConcrete
}

// Estimate converts the elements into priced line items and summary totals.
func (e *ConcreteEstimator) Estimate(elements []types.Element) *TakeoffResult {
	lineItems := []TakeoffLineItem{}
	summary := map[string]float64{
		SummaryConcreteCY:   0,
		SummaryRebarLB:      0,
		SummaryFormworkSF:   0,
		SummaryLaborHours:   0,
		SummaryMaterialCost: 0,
		SummaryLaborCost:    0,
	}

	for _, el := range elements {
		switch el.Category {
		case "slab":
			cy := slabVolumeCY(el)
			formwork := el.Geom(types.GeomAreaSqft)
			rebar := cy * slabRebarLBPerCY
			lineItems = append(lineItems,
				e.lineItem(fmt.Sprintf("Concrete slab %s", el.ID), cy, "cy", e.rates.ReadyMixPerCY, e.rates.PlaceFinishCYPerHour),
				e.lineItem(fmt.Sprintf("Rebar for slab %s", el.ID), rebar, "lb", e.rates.RebarPerLB, e.rates.RebarLBPerHour),
				e.lineItem(fmt.Sprintf("Slab formwork %s", el.ID), formwork, "sf", e.rates.FormworkPerSF, e.rates.FormworkSFPerHour),
			)
			summary[SummaryConcreteCY] += cy
			summary[SummaryRebarLB] += rebar
			summary[SummaryFormworkSF] += formwork

		case "wall":
			cy := wallVolumeCY(el)
			// Formwork on both faces.
			formwork := el.Geom(types.GeomLengthFt) * el.Geom(types.GeomHeightFt) * 2
			rebar := cy * wallRebarLBPerCY
			lineItems = append(lineItems,
				e.lineItem(fmt.Sprintf("Concrete wall %s", el.ID), cy, "cy", e.rates.ReadyMixPerCY, e.rates.PlaceFinishCYPerHour),
				e.lineItem(fmt.Sprintf("Rebar for wall %s", el.ID), rebar, "lb", e.rates.RebarPerLB, e.rates.RebarLBPerHour),
				e.lineItem(fmt.Sprintf("Wall formwork %s", el.ID), formwork, "sf", e.rates.FormworkPerSF, e.rates.FormworkSFPerHour),
			)
			summary[SummaryConcreteCY] += cy
			summary[SummaryRebarLB] += rebar
			summary[SummaryFormworkSF] += formwork

		case "pier":
			cy := pierVolumeCY(el)
			rebar := cy * pierRebarLBPerCY
			lineItems = append(lineItems,
				e.lineItem(fmt.Sprintf("Concrete pier %s", el.ID), cy, "cy", e.rates.ReadyMixPerCY, e.rates.PlaceFinishCYPerHour),
				e.lineItem(fmt.Sprintf("Rebar for pier %s", el.ID), rebar, "lb", e.rates.RebarPerLB, e.rates.RebarLBPerHour),
			)
			summary[SummaryConcreteCY] += cy
			summary[SummaryRebarLB] += rebar

		default:
			e.checklist.Addf(review.SeverityWarning,
				"Concrete estimator encountered unsupported category '%s' for element %s.",
				el.Category, el.ID)
		}
	}

	for _, item := range lineItems {
		summary[SummaryMaterialCost] += item.MaterialCost().InexactFloat64()
		summary[SummaryLaborHours] += item.LaborHours()
		summary[SummaryLaborCost] += item.LaborCost().InexactFloat64()
	}

	return &TakeoffResult{LineItems: lineItems, Summary: summary}
}

func (e *ConcreteEstimator) lineItem(description string, quantity float64, unit string, materialPrice decimal.Decimal, productionRate float64) TakeoffLineItem {
	laborHoursPerUnit := 0.0
	if productionRate != 0 {
		laborHoursPerUnit = 1 / productionRate
	}
	return TakeoffLineItem{
		Description:       description,
		Quantity:          quantity,
		Unit:              unit,
		MaterialUnitCost:  materialPrice,
		LaborHoursPerUnit: laborHoursPerUnit,
		LaborRatePerHour:  e.rates.CrewRatePerHour,
	}
}

// Missing geometry keys read as zero: absence was the completeness
// validator's concern before the element reached the estimator.

func slabVolumeCY(el types.Element) float64 {
	return el.Geom(types.GeomAreaSqft) * el.Geom(types.GeomThicknessIn) / 12 / cubicFeetPerCY
}

func wallVolumeCY(el types.Element) float64 {
	return el.Geom(types.GeomLengthFt) * el.Geom(types.GeomHeightFt) * el.Geom(types.GeomThicknessIn) / 12 / cubicFeetPerCY
}

func pierVolumeCY(el types.Element) float64 {
	radiusFt := (el.Geom(types.GeomDiameterIn) / 12) / 2
	return math.Pi * radiusFt * radiusFt * el.Geom(types.GeomDepthFt) / cubicFeetPerCY
}
