// Package dto defines data transfer objects for the watchlist HTTP API.
package dto

// CodeRequest is the body of POST /watchlist and PUT /watchlist/selected.
type CodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// WatchlistItem is one watchlist row.
type WatchlistItem struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// WatchlistResponse is the watchlist with its current selection.
type WatchlistResponse struct {
	Symbols  []WatchlistItem `json:"symbols"`
	Selected string          `json:"selected"`
}
