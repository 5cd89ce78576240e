// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

// SymbolItem represents a symbol in the API response.
// It contains only the public-facing fields needed by clients.
type SymbolItem struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// SymbolDetail is the quote-details view of one symbol.
type SymbolDetail struct {
	SymbolItem
	Market    string `json:"market"`
	UpdatedAt int64  `json:"updatedAt"` // epoch milliseconds
}
