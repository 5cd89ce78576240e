// Package adapters provides watchlist storage.
package adapters

import (
	"context"
	"sync"

	"stock_dashboard/internal/feature/watchlist/domain/entity"
	"stock_dashboard/internal/feature/watchlist/usecase"
)

// MemoryStore keeps the single watchlist in process memory.
// Contents are lost on restart.
type MemoryStore struct {
	mu          sync.Mutex
	wl          entity.Watchlist
	initialized bool
}

var _ usecase.Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty, uninitialized store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Update runs fn on the current watchlist under the store lock. init supplies
// the starting watchlist on first use. Changes are kept only if fn succeeds.
func (s *MemoryStore) Update(ctx context.Context, init func(ctx context.Context) (entity.Watchlist, error), fn func(wl *entity.Watchlist) error) (entity.Watchlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		wl, err := init(ctx)
		if err != nil {
			return entity.Watchlist{}, err
		}
		s.wl = wl
		s.initialized = true
	}

	next := s.wl.Clone()
	if err := fn(&next); err != nil {
		return entity.Watchlist{}, err
	}
	s.wl = next
	return next.Clone(), nil
}
