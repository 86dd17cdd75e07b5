// Package review accumulates items that need human confirmation before an
// estimate is trusted. The checklist is the only channel through which the
// engine communicates uncertainty: recoverable data gaps are recorded here
// instead of raising errors.
package review

import (
	"fmt"
	"strings"
)

// Severity classifies how urgently an item needs attention
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Item is an assumption or decision that should be confirmed by a human
type Item struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Checklist is an append-only, ordered, run-scoped list of review items.
// Items are never merged, deduplicated, or pruned; insertion order is the
// audit trail. A checklist belongs to exactly one takeoff run.
type Checklist struct {
	items []Item
}

// NewChecklist creates an empty checklist
func NewChecklist() *Checklist {
	return &Checklist{}
}

// Add appends an item to the checklist
func (c *Checklist) Add(message string, severity Severity) {
	c.items = append(c.items, Item{Message: message, Severity: severity})
}

// Addf appends a formatted item to the checklist
func (c *Checklist) Addf(severity Severity, format string, args ...interface{}) {
	c.Add(fmt.Sprintf(format, args...), severity)
}

// Extend appends all given items in order
func (c *Checklist) Extend(items []Item) {
	for _, item := range items {
		c.Add(item.Message, item.Severity)
	}
}

// Items returns a copy of the accumulated items
func (c *Checklist) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of accumulated items
func (c *Checklist) Len() int {
	return len(c.items)
}

// Summarize renders the checklist as a human-readable multi-line report
func (c *Checklist) Summarize() string {
	if len(c.items) == 0 {
		return "No human review items."
	}

	lines := []string{"Human review required for the following items:"}
	for i, item := range c.items {
		lines = append(lines, fmt.Sprintf("  %d. [%s] %s", i+1, strings.ToUpper(string(item.Severity)), item.Message))
	}
	return strings.Join(lines, "\n")
}
