// Package memory provides mutex-guarded in-memory implementations of the
// repository interfaces. They back the service when no POSTGRES_DSN is
// configured and serve as the storage layer for the integration tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/repository"
)

type userStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewUserRepository returns an in-memory user repository.
func NewUserRepository() repository.UserRepository {
	return &userStore{users: make(map[string]*domain.User)}
}

func (s *userStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = copyUser(user)
	return nil
}

func (s *userStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	stored.UpdatedAt = time.Now()
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *userStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyUser(user), nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *userStore) GrantRole(_ context.Context, userID string, role domain.UserRole) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, existing := range user.Roles {
		if existing == role {
			return nil
		}
	}
	user.Roles = append(user.Roles, role)
	return nil
}

func (s *userStore) RevokeRolesForObject(_ context.Context, objectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		kept := user.Roles[:0]
		for _, role := range user.Roles {
			if role.ObjectID != objectID {
				kept = append(kept, role)
			}
		}
		user.Roles = kept
	}
	return nil
}

func copyUser(user *domain.User) *domain.User {
	clone := *user
	clone.Roles = append([]domain.UserRole(nil), user.Roles...)
	return &clone
}
