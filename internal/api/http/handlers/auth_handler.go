package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/api/dto"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/auth"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/service"
	apperrors "github.com/Taylor-S-Smith/jwt-pizza-service/pkg/util"
)

// AuthHandler exposes registration, login, logout and self-update endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, and password are required")
	}

	user, token, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{User: dto.NewUserResponse(user), Token: token})
}

// Login handles PUT /api/auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required")
	}

	user, token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{User: dto.NewUserResponse(user), Token: token})
}

// Logout handles DELETE /api/auth.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}
	if err := h.auth.Logout(c.Context(), principal.Claims); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "logout successful"})
}

// UpdateUser handles PUT /api/auth/:userId.
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, err := h.auth.UpdateUser(c.Context(), principal.User, c.Params("userId"), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewUserResponse(user))
}
