package dto

import "github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"

// CreateFranchiseRequest payload. Admins are referenced by email.
type CreateFranchiseRequest struct {
	Name   string              `json:"name"`
	Admins []FranchiseAdminRef `json:"admins"`
}

// FranchiseAdminRef identifies a franchise admin by email.
type FranchiseAdminRef struct {
	Email string `json:"email"`
}

// CreateStoreRequest payload.
type CreateStoreRequest struct {
	Name string `json:"name"`
}

// FranchiseAdminResponse is the privacy-minimizing admin projection: no
// password, no roles.
type FranchiseAdminResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StoreResponse is the wire shape of a store.
type StoreResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FranchiseResponse is the full franchise projection including admins.
type FranchiseResponse struct {
	ID     string                   `json:"id"`
	Name   string                   `json:"name"`
	Admins []FranchiseAdminResponse `json:"admins"`
	Stores []StoreResponse          `json:"stores"`
}

// FranchiseListItem is the public listing projection; admins are withheld.
type FranchiseListItem struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Stores []StoreResponse `json:"stores"`
}

// NewFranchiseResponse projects a franchise with its admins.
func NewFranchiseResponse(franchise *domain.Franchise) FranchiseResponse {
	admins := make([]FranchiseAdminResponse, 0, len(franchise.Admins))
	for _, admin := range franchise.Admins {
		admins = append(admins, FranchiseAdminResponse{ID: admin.ID, Name: admin.Name, Email: admin.Email})
	}
	return FranchiseResponse{
		ID:     franchise.ID,
		Name:   franchise.Name,
		Admins: admins,
		Stores: storeResponses(franchise.Stores),
	}
}

// NewFranchiseListItem projects a franchise for the public listing.
func NewFranchiseListItem(franchise *domain.Franchise) FranchiseListItem {
	return FranchiseListItem{
		ID:     franchise.ID,
		Name:   franchise.Name,
		Stores: storeResponses(franchise.Stores),
	}
}

func storeResponses(stores []domain.Store) []StoreResponse {
	result := make([]StoreResponse, 0, len(stores))
	for _, store := range stores {
		result = append(result, StoreResponse{ID: store.ID, Name: store.Name})
	}
	return result
}
