// Package usecase implements the watchlist operations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	symbolentity "stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/feature/watchlist/domain/entity"
)

// initialSize is how many catalog symbols a fresh watchlist starts with.
const initialSize = 2

// SymbolCatalog resolves codes against the active symbol catalog.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolCatalog interface {
	ListActiveCodes(ctx context.Context) ([]string, error)
	FindByCode(ctx context.Context, code string) (symbolentity.Symbol, error)
}

// Store holds the single watchlist.
type Store interface {
	Update(ctx context.Context, init func(ctx context.Context) (entity.Watchlist, error), fn func(wl *entity.Watchlist) error) (entity.Watchlist, error)
}

// WatchlistUsecase manages the watchlist and the selected symbol.
type WatchlistUsecase struct {
	catalog SymbolCatalog
	store   Store
	log     *zap.Logger
}

// NewWatchlistUsecase creates a WatchlistUsecase.
func NewWatchlistUsecase(catalog SymbolCatalog, store Store, log *zap.Logger) *WatchlistUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &WatchlistUsecase{catalog: catalog, store: store, log: log}
}

// List returns the watchlist with catalog details.
func (u *WatchlistUsecase) List(ctx context.Context) (entity.View, error) {
	wl, err := u.store.Update(ctx, u.initial, func(*entity.Watchlist) error { return nil })
	if err != nil {
		return entity.View{}, err
	}
	return u.view(ctx, wl)
}

// Add appends code to the watchlist. The first added symbol becomes the
// selection when nothing is selected yet.
func (u *WatchlistUsecase) Add(ctx context.Context, code string) (entity.View, error) {
	s, err := u.catalog.FindByCode(ctx, normalize(code))
	if err != nil {
		return entity.View{}, err
	}

	wl, err := u.store.Update(ctx, u.initial, func(wl *entity.Watchlist) error {
		if wl.Contains(s.Code) {
			return fmt.Errorf("%w: %s", ErrAlreadyInWatchlist, s.Code)
		}
		wl.Codes = append(wl.Codes, s.Code)
		if wl.Selected == "" {
			wl.Selected = s.Code
		}
		return nil
	})
	if err != nil {
		return entity.View{}, err
	}
	u.log.Info("watchlist symbol added", zap.String("symbol", s.Code))
	return u.view(ctx, wl)
}

// Remove deletes code from the watchlist. Removing the selected symbol moves
// the selection to the first remaining entry, or to the first catalog symbol
// when the watchlist becomes empty.
func (u *WatchlistUsecase) Remove(ctx context.Context, code string) (entity.View, error) {
	code = normalize(code)

	// 空になった場合のフォールバック先はロック外で先に解決しておく
	codes, err := u.catalog.ListActiveCodes(ctx)
	if err != nil {
		return entity.View{}, fmt.Errorf("list catalog: %w", err)
	}

	wl, err := u.store.Update(ctx, u.initial, func(wl *entity.Watchlist) error {
		i := slices.Index(wl.Codes, code)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotInWatchlist, code)
		}
		wl.Codes = slices.Delete(wl.Codes, i, i+1)
		if wl.Selected == code {
			wl.Selected = fallback(wl.Codes, codes)
		}
		return nil
	})
	if err != nil {
		return entity.View{}, err
	}
	u.log.Info("watchlist symbol removed", zap.String("symbol", code), zap.String("selected", wl.Selected))
	return u.view(ctx, wl)
}

// Select makes code the chart symbol. Any catalog symbol may be selected,
// whether or not it is in the watchlist.
func (u *WatchlistUsecase) Select(ctx context.Context, code string) (entity.View, error) {
	s, err := u.catalog.FindByCode(ctx, normalize(code))
	if err != nil {
		return entity.View{}, err
	}

	wl, err := u.store.Update(ctx, u.initial, func(wl *entity.Watchlist) error {
		wl.Selected = s.Code
		return nil
	})
	if err != nil {
		return entity.View{}, err
	}
	return u.view(ctx, wl)
}

// Selected returns the code of the selected symbol, empty when the catalog is empty.
func (u *WatchlistUsecase) Selected(ctx context.Context) (string, error) {
	wl, err := u.store.Update(ctx, u.initial, func(*entity.Watchlist) error { return nil })
	if err != nil {
		return "", err
	}
	return wl.Selected, nil
}

// initial builds the starting watchlist from the first catalog symbols.
func (u *WatchlistUsecase) initial(ctx context.Context) (entity.Watchlist, error) {
	codes, err := u.catalog.ListActiveCodes(ctx)
	if err != nil {
		return entity.Watchlist{}, fmt.Errorf("list catalog: %w", err)
	}
	n := min(initialSize, len(codes))
	wl := entity.Watchlist{Codes: slices.Clone(codes[:n])}
	wl.Selected = fallback(wl.Codes, codes)
	return wl, nil
}

// view resolves catalog details. Codes that left the catalog are skipped.
func (u *WatchlistUsecase) view(ctx context.Context, wl entity.Watchlist) (entity.View, error) {
	out := entity.View{Symbols: make([]symbolentity.Symbol, 0, len(wl.Codes)), Selected: wl.Selected}
	for _, code := range wl.Codes {
		s, err := u.catalog.FindByCode(ctx, code)
		if errors.Is(err, ErrSymbolNotFound) {
			u.log.Warn("watchlist symbol no longer in catalog", zap.String("symbol", code))
			continue
		}
		if err != nil {
			return entity.View{}, err
		}
		out.Symbols = append(out.Symbols, s)
	}
	return out, nil
}

func fallback(watchlist, catalog []string) string {
	if len(watchlist) > 0 {
		return watchlist[0]
	}
	if len(catalog) > 0 {
		return catalog[0]
	}
	return ""
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
