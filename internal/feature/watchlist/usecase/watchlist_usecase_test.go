package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	symbolentity "stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/feature/watchlist/adapters"
	"stock_dashboard/internal/feature/watchlist/domain/entity"
	"stock_dashboard/internal/feature/watchlist/usecase"
)

// mockSymbolCatalog はSymbolCatalogインターフェースのモック実装です。
type mockSymbolCatalog struct {
	symbols []symbolentity.Symbol
	listErr error
}

func newCatalog(codes ...string) *mockSymbolCatalog {
	c := &mockSymbolCatalog{}
	for _, code := range codes {
		c.symbols = append(c.symbols, symbolentity.Symbol{Code: code, Name: code + " Inc."})
	}
	return c
}

func (m *mockSymbolCatalog) ListActiveCodes(ctx context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	codes := make([]string, 0, len(m.symbols))
	for _, s := range m.symbols {
		codes = append(codes, s.Code)
	}
	return codes, nil
}

func (m *mockSymbolCatalog) FindByCode(ctx context.Context, code string) (symbolentity.Symbol, error) {
	for _, s := range m.symbols {
		if strings.EqualFold(s.Code, code) {
			return s, nil
		}
	}
	return symbolentity.Symbol{}, usecase.ErrSymbolNotFound
}

func codesOf(v entity.View) []string {
	out := make([]string, 0, len(v.Symbols))
	for _, s := range v.Symbols {
		out = append(out, s.Code)
	}
	return out
}

func newUsecase(catalog usecase.SymbolCatalog) *usecase.WatchlistUsecase {
	return usecase.NewWatchlistUsecase(catalog, adapters.NewMemoryStore(), nil)
}

func TestWatchlistUsecase_InitialState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		catalog          *mockSymbolCatalog
		expectedCodes    []string
		expectedSelected string
	}{
		{
			name:             "first two catalog symbols",
			catalog:          newCatalog("AAPL", "MSFT", "GOOGL"),
			expectedCodes:    []string{"AAPL", "MSFT"},
			expectedSelected: "AAPL",
		},
		{
			name:             "single symbol catalog",
			catalog:          newCatalog("AAPL"),
			expectedCodes:    []string{"AAPL"},
			expectedSelected: "AAPL",
		},
		{
			name:             "empty catalog",
			catalog:          newCatalog(),
			expectedCodes:    []string{},
			expectedSelected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := newUsecase(tt.catalog)
			v, err := uc.List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCodes, codesOf(v))
			assert.Equal(t, tt.expectedSelected, v.Selected)

			selected, err := uc.Selected(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSelected, selected)
		})
	}
}

func TestWatchlistUsecase_Add(t *testing.T) {
	t.Parallel()

	uc := newUsecase(newCatalog("AAPL", "MSFT", "GOOGL", "TSLA"))

	v, err := uc.Add(context.Background(), " tsla ")
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT", "TSLA"}, codesOf(v))
	assert.Equal(t, "AAPL", v.Selected, "adding does not move an existing selection")

	_, err = uc.Add(context.Background(), "TSLA")
	assert.ErrorIs(t, err, usecase.ErrAlreadyInWatchlist)

	_, err = uc.Add(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, usecase.ErrSymbolNotFound)

	v, err = uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT", "TSLA"}, codesOf(v), "failed adds leave the watchlist unchanged")
}

func TestWatchlistUsecase_Remove(t *testing.T) {
	t.Parallel()

	t.Run("removing selected moves selection to first remaining", func(t *testing.T) {
		t.Parallel()

		uc := newUsecase(newCatalog("AAPL", "MSFT", "GOOGL"))
		v, err := uc.Remove(context.Background(), "aapl")
		require.NoError(t, err)
		assert.Equal(t, []string{"MSFT"}, codesOf(v))
		assert.Equal(t, "MSFT", v.Selected)
	})

	t.Run("removing unselected keeps selection", func(t *testing.T) {
		t.Parallel()

		uc := newUsecase(newCatalog("AAPL", "MSFT", "GOOGL"))
		v, err := uc.Remove(context.Background(), "MSFT")
		require.NoError(t, err)
		assert.Equal(t, []string{"AAPL"}, codesOf(v))
		assert.Equal(t, "AAPL", v.Selected)
	})

	t.Run("emptying the watchlist falls back to first catalog symbol", func(t *testing.T) {
		t.Parallel()

		uc := newUsecase(newCatalog("AAPL", "MSFT", "GOOGL"))
		_, err := uc.Select(context.Background(), "MSFT")
		require.NoError(t, err)
		_, err = uc.Remove(context.Background(), "AAPL")
		require.NoError(t, err)
		v, err := uc.Remove(context.Background(), "MSFT")
		require.NoError(t, err)
		assert.Empty(t, codesOf(v))
		assert.Equal(t, "AAPL", v.Selected)
	})

	t.Run("error: not in watchlist", func(t *testing.T) {
		t.Parallel()

		uc := newUsecase(newCatalog("AAPL", "MSFT", "GOOGL"))
		_, err := uc.Remove(context.Background(), "GOOGL")
		assert.ErrorIs(t, err, usecase.ErrNotInWatchlist)
	})
}

func TestWatchlistUsecase_Select(t *testing.T) {
	t.Parallel()

	uc := newUsecase(newCatalog("AAPL", "MSFT", "NVDA"))

	v, err := uc.Select(context.Background(), "nvda")
	require.NoError(t, err)
	assert.Equal(t, "NVDA", v.Selected, "symbols outside the watchlist can be selected")
	assert.Equal(t, []string{"AAPL", "MSFT"}, codesOf(v))

	_, err = uc.Select(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, usecase.ErrSymbolNotFound)

	selected, err := uc.Selected(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "NVDA", selected)
}

func TestWatchlistUsecase_ViewSkipsDelistedSymbols(t *testing.T) {
	t.Parallel()

	catalog := newCatalog("AAPL", "MSFT")
	uc := newUsecase(catalog)
	_, err := uc.List(context.Background())
	require.NoError(t, err)

	catalog.symbols = catalog.symbols[1:]
	v, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT"}, codesOf(v))
}

func TestWatchlistUsecase_CatalogError(t *testing.T) {
	t.Parallel()

	listErr := errors.New("database connection failed")
	uc := newUsecase(&mockSymbolCatalog{listErr: listErr})

	_, err := uc.List(context.Background())
	assert.ErrorIs(t, err, listErr)
	_, err = uc.Remove(context.Background(), "AAPL")
	assert.ErrorIs(t, err, listErr)
}

func TestWatchlistUsecase_ConcurrentAdds(t *testing.T) {
	t.Parallel()

	catalog := newCatalog("AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "JPM")
	uc := newUsecase(catalog)

	var wg sync.WaitGroup
	errs := make(chan error, 2*len(catalog.symbols))
	for i := 0; i < 2; i++ {
		for _, s := range catalog.symbols {
			wg.Add(1)
			go func(code string) {
				defer wg.Done()
				if _, err := uc.Add(context.Background(), code); err != nil {
					errs <- err
				}
			}(s.Code)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.ErrorIs(t, err, usecase.ErrAlreadyInWatchlist)
	}
	v, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "JPM"}, codesOf(v))
}
