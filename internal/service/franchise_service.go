package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/events"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/repository"
	apperrors "github.com/Taylor-S-Smith/jwt-pizza-service/pkg/util"
)

// FranchiseService coordinates franchise and store management.
type FranchiseService struct {
	franchises repository.FranchiseRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewFranchiseService builds the service.
func NewFranchiseService(franchises repository.FranchiseRepository, users repository.UserRepository, dispatcher events.Dispatcher) *FranchiseService {
	return &FranchiseService{franchises: franchises, users: users, dispatcher: dispatcher}
}

// Create registers a new franchise. Admins are resolved by email and each
// receives a franchisee role grant scoped to the new franchise.
func (s *FranchiseService) Create(ctx context.Context, name string, adminEmails []string) (*domain.Franchise, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("name required")
	}

	admins := make([]domain.User, 0, len(adminEmails))
	for _, email := range adminEmails {
		user, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewValidationError("unknown user for franchise admin")
			}
			return nil, err
		}
		admins = append(admins, domain.User{ID: user.ID, Name: user.Name, Email: user.Email})
	}

	franchise := &domain.Franchise{
		ID:     uuid.NewString(),
		Name:   name,
		Admins: admins,
		Stores: []domain.Store{},
	}
	if err := s.franchises.Create(ctx, franchise); err != nil {
		return nil, err
	}

	adminIDs := make([]string, 0, len(admins))
	for _, admin := range admins {
		grant := domain.UserRole{Role: domain.RoleFranchisee, ObjectID: franchise.ID}
		if err := s.users.GrantRole(ctx, admin.ID, grant); err != nil {
			return nil, err
		}
		adminIDs = append(adminIDs, admin.ID)
	}

	s.publish(ctx, events.EventFranchiseCreated, events.FranchiseCreatedPayload{
		FranchiseID: franchise.ID,
		Name:        franchise.Name,
		AdminIDs:    adminIDs,
	})
	return franchise, nil
}

// ListAll returns every franchise.
func (s *FranchiseService) ListAll(ctx context.Context) ([]domain.Franchise, error) {
	return s.franchises.List(ctx)
}

// ListForUser returns the franchises a user administers. Non-admin callers
// asking about another user get an empty list rather than a rejection.
func (s *FranchiseService) ListForUser(ctx context.Context, caller *domain.User, userID string) ([]domain.Franchise, error) {
	if caller.ID != userID && !caller.IsAdmin() {
		return []domain.Franchise{}, nil
	}
	return s.franchises.ListByAdmin(ctx, userID)
}

// Delete removes a franchise, its stores and all franchisee grants scoped to
// it.
func (s *FranchiseService) Delete(ctx context.Context, franchiseID string) error {
	if err := s.franchises.Delete(ctx, franchiseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("unknown franchise")
		}
		return err
	}
	if err := s.users.RevokeRolesForObject(ctx, franchiseID); err != nil {
		return err
	}

	s.publish(ctx, events.EventFranchiseDeleted, events.FranchiseDeletedPayload{FranchiseID: franchiseID})
	return nil
}

// CreateStore adds a store to a franchise. Allowed for global admins and the
// franchise's own franchisees.
func (s *FranchiseService) CreateStore(ctx context.Context, caller *domain.User, franchiseID, name string) (*domain.Store, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("name required")
	}
	if _, err := s.franchises.GetByID(ctx, franchiseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("unknown franchise")
		}
		return nil, err
	}
	if !caller.IsAdmin() && !caller.IsFranchiseeOf(franchiseID) {
		return nil, apperrors.NewForbidden("unable to create a store")
	}

	store := &domain.Store{
		ID:          uuid.NewString(),
		FranchiseID: franchiseID,
		Name:        name,
	}
	if err := s.franchises.CreateStore(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

// DeleteStore removes a store from a franchise under the same authorization
// rule as CreateStore.
func (s *FranchiseService) DeleteStore(ctx context.Context, caller *domain.User, franchiseID, storeID string) error {
	if !caller.IsAdmin() && !caller.IsFranchiseeOf(franchiseID) {
		return apperrors.NewForbidden("unable to delete a store")
	}
	if err := s.franchises.DeleteStore(ctx, franchiseID, storeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("unknown store")
		}
		return err
	}
	return nil
}

func (s *FranchiseService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
