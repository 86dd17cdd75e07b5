package estimate

import (
	"sort"
	"sync"

	"construction-takeoff/core/review"
	"construction-takeoff/core/types"

	"construction-takeoff/internal/errors"
)

// TradeEstimator converts a list of elements into a priced takeoff result.
// Estimate expects its input pre-filtered to the estimator's own trade;
// callers normally go through Run, which applies FilterByTrade first.
type TradeEstimator interface {
	// Trade returns the lowercase trade this estimator prices
	Trade() string

	// Estimate prices the given elements. Elements with a category the
	// estimator does not recognize are reported to the review checklist
	// at warning severity and contribute nothing to the result.
	Estimate(elements []types.Element) *TakeoffResult
}

// FilterByTrade returns the elements whose trade matches exactly.
func FilterByTrade(elements []types.Element, trade string) []types.Element {
	var out []types.Element
	for _, el := range elements {
		if el.Trade == trade {
			out = append(out, el)
		}
	}
	return out
}

// Run filters the elements to the estimator's trade and estimates them.
func Run(e TradeEstimator, elements []types.Element) *TakeoffResult {
	return e.Estimate(FilterByTrade(elements, e.Trade()))
}

// Factory builds an estimator bound to a run-scoped review checklist.
type Factory func(checklist *review.Checklist) TradeEstimator

// Registry maps trade names to estimator factories. The orchestration layer
// consults it to resolve the requested trade; unknown trades fail with an
// error enumerating the known set.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for a trade
func (r *Registry) Register(trade string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[trade]; exists {
		return errors.Newf(errors.TypeConfig, "estimator already registered for trade %q", trade)
	}
	r.factories[trade] = factory
	return nil
}

// Trades returns the registered trade names in sorted order
func (r *Registry) Trades() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.factories))
	for trade := range r.factories {
		out = append(out, trade)
	}
	sort.Strings(out)
	return out
}

// New builds an estimator for the trade, bound to the given checklist
func (r *Registry) New(trade string, checklist *review.Checklist) (TradeEstimator, error) {
	r.mu.RLock()
	factory, ok := r.factories[trade]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.UnsupportedTrade(trade, r.Trades())
	}
	return factory(checklist), nil
}

// defaultRegistry carries the built-in estimators with default rate tables.
var defaultRegistry = func() *Registry {
	r := NewRegistry()
	_ = r.Register(types.TradeConcrete, func(checklist *review.Checklist) TradeEstimator {
		return NewConcreteEstimator(checklist, DefaultConcreteRates())
	})
	return r
}()

// Default returns the registry of built-in estimators
func Default() *Registry {
	return defaultRegistry
}
