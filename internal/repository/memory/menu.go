package memory

import (
	"context"
	"sync"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/repository"
)

type menuStore struct {
	mu    sync.RWMutex
	items []domain.MenuItem
}

// NewMenuRepository returns an in-memory menu repository.
func NewMenuRepository() repository.MenuRepository {
	return &menuStore{items: []domain.MenuItem{}}
}

func (s *menuStore) Add(_ context.Context, item *domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, *item)
	return nil
}

func (s *menuStore) List(_ context.Context) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.MenuItem{}, s.items...), nil
}
