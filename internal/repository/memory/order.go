package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/repository"
)

type orderStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

// NewOrderRepository returns an in-memory order repository.
func NewOrderRepository() repository.OrderRepository {
	return &orderStore{orders: make(map[string]*domain.Order)}
}

func (s *orderStore) Create(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *order
	clone.Items = append([]domain.OrderItem{}, order.Items...)
	s.orders[order.ID] = &clone
	return nil
}

func (s *orderStore) ListByDiner(_ context.Context, dinerID string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.Order{}
	for _, order := range s.orders {
		if order.DinerID == dinerID {
			clone := *order
			clone.Items = append([]domain.OrderItem{}, order.Items...)
			result = append(result, clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}
