package cli

import (
	"fmt"
	"strings"

	"github.com/agbru/hassecalc/internal/algebra"
)

// DefaultHistorySize is the number of calculations a History keeps when no
// explicit limit is given.
const DefaultHistorySize = 20

// HistoryEntry is one recorded calculation.
type HistoryEntry struct {
	// Expr holds the operands as typed and the operator.
	Expr algebra.Expression
	// Digit marks a single-digit lookup rather than a multi-digit evaluation.
	Digit bool
	// Result is the rendered result at the time of the calculation.
	Result string
}

// String renders "x op y = result".
func (e HistoryEntry) String() string {
	return fmt.Sprintf("%s = %s", e.Expr, e.Result)
}

// Line returns the expression line that reproduces the entry.
func (e HistoryEntry) Line() string { return e.Expr.String() }

// History is a bounded, newest-first list of calculations. Adding beyond
// the limit evicts the oldest entry. A History is not safe for concurrent
// use.
type History struct {
	entries []HistoryEntry
	limit   int
}

// NewHistory creates a history holding at most limit entries. A limit
// below 1 selects DefaultHistorySize.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = DefaultHistorySize
	}
	return &History{limit: limit}
}

// Add records e as the newest entry.
func (h *History) Add(e HistoryEntry) {
	h.entries = append([]HistoryEntry{e}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}

// Get returns the n-th newest entry, 1-based as displayed.
func (h *History) Get(n int) (HistoryEntry, bool) {
	if n < 1 || n > len(h.entries) {
		return HistoryEntry{}, false
	}
	return h.entries[n-1], true
}

// Entries returns a copy of the entries, newest first.
func (h *History) Entries() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

// Len returns the number of recorded entries.
func (h *History) Len() int { return len(h.entries) }

// Limit returns the capacity.
func (h *History) Limit() int { return h.limit }

// Clear removes every entry.
func (h *History) Clear() { h.entries = nil }

// FormatHistory renders one "[i] x op y = result" line per entry, newest
// first. An empty history renders as "".
func FormatHistory(h *History) string {
	var sb strings.Builder
	for i, e := range h.entries {
		fmt.Fprintf(&sb, "[%d] %s\n", i+1, e)
	}
	return sb.String()
}
