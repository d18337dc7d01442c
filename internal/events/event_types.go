package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user_registered"
	EventFranchiseCreated EventType = "franchise_created"
	EventFranchiseDeleted EventType = "franchise_deleted"
	EventMenuItemAdded    EventType = "menu_item_added"
	EventOrderPlaced      EventType = "order_placed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// FranchiseCreatedPayload payload.
type FranchiseCreatedPayload struct {
	FranchiseID string   `json:"franchise_id"`
	Name        string   `json:"name"`
	AdminIDs    []string `json:"admin_ids"`
}

// FranchiseDeletedPayload payload.
type FranchiseDeletedPayload struct {
	FranchiseID string `json:"franchise_id"`
}

// MenuItemAddedPayload payload.
type MenuItemAddedPayload struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	OrderID     string  `json:"order_id"`
	FranchiseID string  `json:"franchise_id"`
	StoreID     string  `json:"store_id"`
	ItemCount   int     `json:"item_count"`
	Total       float64 `json:"total"`
}
