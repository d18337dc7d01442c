package dto

import (
	"time"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
)

// AddMenuItemRequest payload for menu additions.
type AddMenuItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// MenuItemResponse is the wire shape of a menu item.
type MenuItemResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// CreateOrderRequest payload for order placement.
type CreateOrderRequest struct {
	FranchiseID string             `json:"franchiseId"`
	StoreID     string             `json:"storeId"`
	Items       []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one requested line item.
type OrderItemRequest struct {
	MenuID      string  `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// OrderItemResponse is one stored line item.
type OrderItemResponse struct {
	MenuID      string  `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// OrderResponse is the wire shape of a placed order.
type OrderResponse struct {
	ID          string              `json:"id"`
	FranchiseID string              `json:"franchiseId"`
	StoreID     string              `json:"storeId"`
	Date        time.Time           `json:"date"`
	Items       []OrderItemResponse `json:"items"`
}

// CreateOrderResponse bundles the stored order with its signed receipt.
type CreateOrderResponse struct {
	Order OrderResponse `json:"order"`
	JWT   string        `json:"jwt"`
}

// OrderListResponse lists a diner's orders.
type OrderListResponse struct {
	DinerID string          `json:"dinerId"`
	Orders  []OrderResponse `json:"orders"`
}

// NewMenuItemResponses projects menu items onto the wire shape.
func NewMenuItemResponses(items []domain.MenuItem) []MenuItemResponse {
	result := make([]MenuItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, MenuItemResponse{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Image:       item.Image,
			Price:       item.Price,
		})
	}
	return result
}

// NewOrderResponse projects a stored order onto the wire shape.
func NewOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			MenuID:      item.MenuID,
			Description: item.Description,
			Price:       item.Price,
		})
	}
	return OrderResponse{
		ID:          order.ID,
		FranchiseID: order.FranchiseID,
		StoreID:     order.StoreID,
		Date:        order.Date,
		Items:       items,
	}
}
