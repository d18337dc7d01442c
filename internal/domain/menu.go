package domain

// MenuItem is a purchasable product definition. The menu is an append-only
// collection: adding an item never dedupes or reorders existing entries.
type MenuItem struct {
	ID          string
	Title       string
	Description string
	Image       string
	Price       float64
}
