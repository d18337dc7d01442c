package domain

import "time"

// Franchise is an owned business entity with admin users and stores.
type Franchise struct {
	ID        string
	Name      string
	Admins    []User
	Stores    []Store
	CreatedAt time.Time
}

// Store is a physical location belonging to a franchise.
type Store struct {
	ID          string
	FranchiseID string
	Name        string
	CreatedAt   time.Time
}
