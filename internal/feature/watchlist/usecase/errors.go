package usecase

import (
	"errors"

	symbolusecase "stock_dashboard/internal/feature/symbollist/usecase"
)

var (
	// ErrSymbolNotFound is returned when a code is not in the symbol catalog.
	ErrSymbolNotFound = symbolusecase.ErrSymbolNotFound

	// ErrAlreadyInWatchlist is returned when adding a code twice.
	ErrAlreadyInWatchlist = errors.New("symbol already in watchlist")

	// ErrNotInWatchlist is returned when removing a code that is not listed.
	ErrNotInWatchlist = errors.New("symbol not in watchlist")
)
