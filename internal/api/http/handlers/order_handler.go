package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/api/dto"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/auth"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/service"
	apperrors "github.com/Taylor-S-Smith/jwt-pizza-service/pkg/util"
)

// OrderHandler exposes menu and order endpoints.
type OrderHandler struct {
	service *service.OrderService
}

// NewOrderHandler constructs handler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{service: orderService}
}

// Menu handles GET /api/order/menu.
func (h *OrderHandler) Menu(c *fiber.Ctx) error {
	items, err := h.service.Menu(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMenuItemResponses(items))
}

// AddMenuItem handles PUT /api/order/menu, returning the full updated menu.
func (h *OrderHandler) AddMenuItem(c *fiber.Ctx) error {
	var req dto.AddMenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	items, err := h.service.AddMenuItem(c.Context(), req.Title, req.Description, req.Image, req.Price)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMenuItemResponses(items))
}

// ListOrders handles GET /api/order.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}

	orders, err := h.service.ListOrders(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}

	resp := dto.OrderListResponse{DinerID: principal.User.ID, Orders: []dto.OrderResponse{}}
	for i := range orders {
		resp.Orders = append(resp.Orders, dto.NewOrderResponse(&orders[i]))
	}
	return c.JSON(resp)
}

// CreateOrder handles POST /api/order.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized()
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	input := service.OrderInput{
		FranchiseID: req.FranchiseID,
		StoreID:     req.StoreID,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			MenuID:      item.MenuID,
			Description: item.Description,
			Price:       item.Price,
		})
	}

	order, receipt, err := h.service.CreateOrder(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.JSON(dto.CreateOrderResponse{Order: dto.NewOrderResponse(order), JWT: receipt})
}
