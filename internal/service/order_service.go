package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/auth"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/events"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/repository"
	apperrors "github.com/Taylor-S-Smith/jwt-pizza-service/pkg/util"
)

// OrderInput describes a requested order.
type OrderInput struct {
	FranchiseID string
	StoreID     string
	Items       []OrderItemInput
}

// OrderItemInput is one requested line item.
type OrderItemInput struct {
	MenuID      string
	Description string
	Price       float64
}

// OrderService owns the menu and order placement.
type OrderService struct {
	menu       repository.MenuRepository
	orders     repository.OrderRepository
	franchises repository.FranchiseRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(menu repository.MenuRepository, orders repository.OrderRepository, franchises repository.FranchiseRepository, tokenMgr *auth.TokenManager, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{
		menu:       menu,
		orders:     orders,
		franchises: franchises,
		tokenMgr:   tokenMgr,
		dispatcher: dispatcher,
	}
}

// Menu returns the full menu snapshot.
func (s *OrderService) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	return s.menu.List(ctx)
}

// AddMenuItem appends an item and returns the full updated menu. Existing
// entries are never deduped or reordered.
func (s *OrderService) AddMenuItem(ctx context.Context, title, description, image string, price float64) ([]domain.MenuItem, error) {
	if title == "" {
		return nil, apperrors.NewValidationError("title required")
	}

	item := &domain.MenuItem{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Image:       image,
		Price:       price,
	}
	if err := s.menu.Add(ctx, item); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventMenuItemAdded, "", events.MenuItemAddedPayload{
		Title: item.Title,
		Price: item.Price,
	})
	return s.menu.List(ctx)
}

// ListOrders returns the orders placed by a diner.
func (s *OrderService) ListOrders(ctx context.Context, dinerID string) ([]domain.Order, error) {
	return s.orders.ListByDiner(ctx, dinerID)
}

// CreateOrder validates the requested items against the menu, persists the
// order and returns it with a signed receipt.
func (s *OrderService) CreateOrder(ctx context.Context, diner *domain.User, input OrderInput) (*domain.Order, string, error) {
	if len(input.Items) == 0 {
		return nil, "", apperrors.NewValidationError("order requires at least one item")
	}
	if _, err := s.franchises.GetByID(ctx, input.FranchiseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperrors.NewValidationError("unknown franchise")
		}
		return nil, "", err
	}

	menu, err := s.menu.List(ctx)
	if err != nil {
		return nil, "", err
	}
	known := make(map[string]struct{}, len(menu))
	for _, item := range menu {
		known[item.ID] = struct{}{}
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if _, ok := known[item.MenuID]; !ok {
			return nil, "", apperrors.NewValidationError("unknown menu item")
		}
		items = append(items, domain.OrderItem{
			MenuID:      item.MenuID,
			Description: item.Description,
			Price:       item.Price,
		})
	}

	order := &domain.Order{
		ID:          uuid.NewString(),
		DinerID:     diner.ID,
		FranchiseID: input.FranchiseID,
		StoreID:     input.StoreID,
		Date:        time.Now(),
		Items:       items,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, "", err
	}

	receipt, err := s.tokenMgr.GenerateReceipt(order)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, events.EventOrderPlaced, diner.ID, events.OrderPlacedPayload{
		OrderID:     order.ID,
		FranchiseID: order.FranchiseID,
		StoreID:     order.StoreID,
		ItemCount:   len(order.Items),
		Total:       order.Total(),
	})
	return order, receipt, nil
}

func (s *OrderService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
