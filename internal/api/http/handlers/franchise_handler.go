package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/api/dto"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/auth"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/service"
	apperrors "github.com/Taylor-S-Smith/jwt-pizza-service/pkg/util"
)

// FranchiseHandler exposes franchise and store endpoints.
type FranchiseHandler struct {
	service *service.FranchiseService
}

// NewFranchiseHandler constructs handler.
func NewFranchiseHandler(franchiseService *service.FranchiseService) *FranchiseHandler {
	return &FranchiseHandler{service: franchiseService}
}

// List handles GET /api/franchise. Public; admins are withheld from the
// projection.
func (h *FranchiseHandler) List(c *fiber.Ctx) error {
	franchises, err := h.service.ListAll(c.Context())
	if err != nil {
		return err
	}

	items := make([]dto.FranchiseListItem, 0, len(franchises))
	for i := range franchises {
		items = append(items, dto.NewFranchiseListItem(&franchises[i]))
	}
	return c.JSON(items)
}

// ListForUser handles GET /api/franchise/:userId.
func (h *FranchiseHandler) ListForUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}

	franchises, err := h.service.ListForUser(c.Context(), principal.User, c.Params("userId"))
	if err != nil {
		return err
	}

	items := make([]dto.FranchiseResponse, 0, len(franchises))
	for i := range franchises {
		items = append(items, dto.NewFranchiseResponse(&franchises[i]))
	}
	return c.JSON(items)
}

// Create handles POST /api/franchise.
func (h *FranchiseHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateFranchiseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	emails := make([]string, 0, len(req.Admins))
	for _, admin := range req.Admins {
		emails = append(emails, admin.Email)
	}

	franchise, err := h.service.Create(c.Context(), req.Name, emails)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewFranchiseResponse(franchise))
}

// Delete handles DELETE /api/franchise/:franchiseId.
func (h *FranchiseHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("franchiseId")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "franchise deleted"})
}

// CreateStore handles POST /api/franchise/:franchiseId/store.
func (h *FranchiseHandler) CreateStore(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}

	var req dto.CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	store, err := h.service.CreateStore(c.Context(), principal.User, c.Params("franchiseId"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(dto.StoreResponse{ID: store.ID, Name: store.Name})
}

// DeleteStore handles DELETE /api/franchise/:franchiseId/store/:storeId.
func (h *FranchiseHandler) DeleteStore(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}

	if err := h.service.DeleteStore(c.Context(), principal.User, c.Params("franchiseId"), c.Params("storeId")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "store deleted"})
}
