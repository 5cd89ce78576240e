// Package entity defines the domain models for the watchlist feature.
package entity

import (
	"slices"

	symbolentity "stock_dashboard/internal/feature/symbollist/domain/entity"
)

// Watchlist is the ordered set of followed symbol codes plus the symbol
// currently shown on the chart. Codes never repeat.
type Watchlist struct {
	Codes    []string
	Selected string
}

// Contains reports whether code is in the watchlist.
func (w Watchlist) Contains(code string) bool {
	return slices.Contains(w.Codes, code)
}

// Clone returns a copy that shares no memory with w.
func (w Watchlist) Clone() Watchlist {
	return Watchlist{Codes: slices.Clone(w.Codes), Selected: w.Selected}
}

// View is the watchlist with catalog details resolved for display.
type View struct {
	Symbols  []symbolentity.Symbol
	Selected string
}
