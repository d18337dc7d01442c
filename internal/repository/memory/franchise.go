package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/repository"
)

type franchiseStore struct {
	mu         sync.RWMutex
	franchises map[string]*domain.Franchise
}

// NewFranchiseRepository returns an in-memory franchise repository.
func NewFranchiseRepository() repository.FranchiseRepository {
	return &franchiseStore{franchises: make(map[string]*domain.Franchise)}
}

func (s *franchiseStore) Create(_ context.Context, franchise *domain.Franchise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	franchise.CreatedAt = time.Now()
	if franchise.Stores == nil {
		franchise.Stores = []domain.Store{}
	}
	s.franchises[franchise.ID] = copyFranchise(franchise)
	return nil
}

func (s *franchiseStore) GetByID(_ context.Context, id string) (*domain.Franchise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	franchise, ok := s.franchises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyFranchise(franchise), nil
}

func (s *franchiseStore) List(_ context.Context) ([]domain.Franchise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(*domain.Franchise) bool { return true }), nil
}

func (s *franchiseStore) ListByAdmin(_ context.Context, userID string) ([]domain.Franchise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(f *domain.Franchise) bool {
		for _, admin := range f.Admins {
			if admin.ID == userID {
				return true
			}
		}
		return false
	}), nil
}

func (s *franchiseStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.franchises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.franchises, id)
	return nil
}

func (s *franchiseStore) CreateStore(_ context.Context, store *domain.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	franchise, ok := s.franchises[store.FranchiseID]
	if !ok {
		return repository.ErrNotFound
	}
	store.CreatedAt = time.Now()
	franchise.Stores = append(franchise.Stores, *store)
	return nil
}

func (s *franchiseStore) DeleteStore(_ context.Context, franchiseID, storeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	franchise, ok := s.franchises[franchiseID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, store := range franchise.Stores {
		if store.ID == storeID {
			franchise.Stores = append(franchise.Stores[:i], franchise.Stores[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *franchiseStore) collect(match func(*domain.Franchise) bool) []domain.Franchise {
	result := []domain.Franchise{}
	for _, franchise := range s.franchises {
		if match(franchise) {
			result = append(result, *copyFranchise(franchise))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func copyFranchise(franchise *domain.Franchise) *domain.Franchise {
	clone := *franchise
	clone.Admins = append([]domain.User{}, franchise.Admins...)
	clone.Stores = append([]domain.Store{}, franchise.Stores...)
	return &clone
}
