// Package service orchestrates a complete takeoff run: load drawings,
// group elements by trade, resolve the trade's estimator, estimate, and
// gather the elements that still need human-supplied geometry.
package service

import (
	"strings"

	"go.uber.org/zap"

	"construction-takeoff/core/drawings"
	"construction-takeoff/core/estimate"
	"construction-takeoff/core/review"
	"construction-takeoff/core/types"
	"construction-takeoff/core/validate"
	"construction-takeoff/internal/logging"

	"go.uber.org/multierr"
)

// Run describes the outcome of one takeoff execution
type Run struct {
	// Result holds the priced line items and summary totals
	Result *estimate.TakeoffResult

	// Review is the run-scoped checklist accumulated along the way
	Review *review.Checklist

	// Trade is the normalized trade that was estimated
	Trade string

	// DrawingCount is the number of drawings loaded
	DrawingCount int

	// ElementCount is the number of elements matching the trade
	ElementCount int

	// Elements are the trade's elements, for the export collaborator
	Elements []types.Element

	// Incomplete are the trade's elements that failed the completeness
	// check and should be escalated to the human-review collaborator
	Incomplete []types.Element
}

type options struct {
	registry  *estimate.Registry
	checklist *review.Checklist
	extractor drawings.TextExtractor
}

// Option configures a takeoff run
type Option func(*options)

// WithRegistry overrides the estimator registry (defaults to the built-ins)
func WithRegistry(registry *estimate.Registry) Option {
	return func(o *options) { o.registry = registry }
}

// WithChecklist supplies an externally owned checklist for the run
func WithChecklist(checklist *review.Checklist) Option {
	return func(o *options) { o.checklist = checklist }
}

// WithTextExtractor overrides the primary PDF text extractor
func WithTextExtractor(extractor drawings.TextExtractor) Option {
	return func(o *options) { o.extractor = extractor }
}

// RunTradeTakeoff executes a takeoff for one trade over the given input.
// An unknown trade or unusable input fails before any estimate is produced;
// recoverable per-document failures become critical review items instead.
func RunTradeTakeoff(trade, inputPath string, opts ...Option) (*Run, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = estimate.Default()
	}
	if o.checklist == nil {
		o.checklist = review.NewChecklist()
	}

	tradeKey := strings.ToLower(strings.TrimSpace(trade))

	estimator, err := o.registry.New(tradeKey, o.checklist)
	if err != nil {
		return nil, err
	}

	loaderOpts := []drawings.LoaderOption{
		drawings.WithDefaultTrade(tradeKey),
		drawings.WithChecklist(o.checklist),
	}
	if o.extractor != nil {
		loaderOpts = append(loaderOpts, drawings.WithTextExtractor(o.extractor))
	}

	drawingList, loadErr := drawings.NewLoader(inputPath, loaderOpts...).Load()
	if loadErr != nil && len(drawingList) == 0 {
		return nil, loadErr
	}
	for _, docErr := range multierr.Errors(loadErr) {
		o.checklist.Add(docErr.Error(), review.SeverityCritical)
	}

	grouped := drawings.GroupByTrade(drawingList)
	elements := grouped[tradeKey]
	if len(elements) == 0 {
		o.checklist.Addf(review.SeverityWarning,
			"No drawing elements found for trade '%s'. Upload a data set that includes %s items.",
			trade, tradeKey)
	}

	logging.Info("running takeoff",
		zap.String("trade", tradeKey),
		zap.Int("drawings", len(drawingList)),
		zap.Int("elements", len(elements)))

	result := estimate.Run(estimator, elements)

	return &Run{
		Result:       result,
		Review:       o.checklist,
		Trade:        tradeKey,
		DrawingCount: len(drawingList),
		ElementCount: len(elements),
		Elements:     elements,
		Incomplete:   validate.Incomplete(tradeKey, elements),
	}, nil
}
