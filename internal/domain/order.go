package domain

import "time"

// Order is a purchase placed by a diner against a franchise store.
type Order struct {
	ID          string
	DinerID     string
	FranchiseID string
	StoreID     string
	Date        time.Time
	Items       []OrderItem
}

// Total sums the order's item prices.
func (o *Order) Total() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.Price
	}
	return total
}

// OrderItem references a menu item at the price it was ordered at.
type OrderItem struct {
	MenuID      string
	Description string
	Price       float64
}
