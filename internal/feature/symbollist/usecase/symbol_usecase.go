// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"strings"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
)

const (
	// DefaultSuggestLimit is used when a suggestion request gives no limit.
	DefaultSuggestLimit = 8
	// MaxSuggestLimit caps the number of suggestions per request.
	MaxSuggestLimit = 50
)

// SymbolRepository abstracts the persistence layer for symbol (stock ticker) data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	FindByCode(ctx context.Context, code string) (entity.Symbol, error)
	Search(ctx context.Context, query string, limit int) ([]entity.Symbol, error)
	UpdateQuote(ctx context.Context, code string, q entity.Quote) error
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols from the repository.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// Suggest returns catalog entries matching query for the search bar.
// A blank query yields no suggestions.
func (u *SymbolUsecase) Suggest(ctx context.Context, query string, limit int) ([]entity.Symbol, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.Symbol{}, nil
	}
	switch {
	case limit <= 0:
		limit = DefaultSuggestLimit
	case limit > MaxSuggestLimit:
		limit = MaxSuggestLimit
	}
	return u.repo.Search(ctx, query, limit)
}

// Lookup returns the catalog entry for code, ignoring case and surrounding spaces.
func (u *SymbolUsecase) Lookup(ctx context.Context, code string) (entity.Symbol, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return entity.Symbol{}, ErrSymbolNotFound
	}
	return u.repo.FindByCode(ctx, code)
}
