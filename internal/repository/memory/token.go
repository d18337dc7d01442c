package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/repository"
)

type tokenStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewTokenRepository returns an in-memory token denylist.
func NewTokenRepository() repository.TokenRepository {
	return &tokenStore{revoked: make(map[string]time.Time)}
}

func (s *tokenStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (s *tokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	expiry, ok := s.revoked[jti]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		s.mu.Lock()
		delete(s.revoked, jti)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
