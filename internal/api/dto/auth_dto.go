package dto

import "github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"

// RegisterRequest payload for new diners.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest payload for self-service profile updates. Empty fields
// are left unchanged.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RoleResponse is the wire shape of a role grant.
type RoleResponse struct {
	Role     string `json:"role"`
	ObjectID string `json:"objectId,omitempty"`
}

// UserResponse is the public projection of a user. The password never
// appears here.
type UserResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Roles []RoleResponse `json:"roles"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewUserResponse projects a domain user onto the wire shape.
func NewUserResponse(user *domain.User) UserResponse {
	roles := make([]RoleResponse, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, RoleResponse{Role: string(r.Role), ObjectID: r.ObjectID})
	}
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Roles: roles,
	}
}
