package handlers

import "github.com/gofiber/fiber/v2"

// DocsHandler lists the public REST surface.
type DocsHandler struct {
	version string
}

// NewDocsHandler returns a new handler instance.
func NewDocsHandler(version string) *DocsHandler {
	return &DocsHandler{version: version}
}

type endpointDoc struct {
	Method       string `json:"method"`
	Path         string `json:"path"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
}

// Docs handles GET /api/docs.
func (h *DocsHandler) Docs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": h.version,
		"endpoints": []endpointDoc{
			{Method: "POST", Path: "/api/auth", Description: "Register a new user"},
			{Method: "PUT", Path: "/api/auth", Description: "Login existing user"},
			{Method: "PUT", Path: "/api/auth/:userId", Description: "Update user", RequiresAuth: true},
			{Method: "DELETE", Path: "/api/auth", Description: "Logout a user", RequiresAuth: true},
			{Method: "GET", Path: "/api/franchise", Description: "List all franchises"},
			{Method: "GET", Path: "/api/franchise/:userId", Description: "List a user's franchises", RequiresAuth: true},
			{Method: "POST", Path: "/api/franchise", Description: "Create a new franchise", RequiresAuth: true},
			{Method: "DELETE", Path: "/api/franchise/:franchiseId", Description: "Delete a franchise", RequiresAuth: true},
			{Method: "POST", Path: "/api/franchise/:franchiseId/store", Description: "Create a new franchise store", RequiresAuth: true},
			{Method: "DELETE", Path: "/api/franchise/:franchiseId/store/:storeId", Description: "Delete a store", RequiresAuth: true},
			{Method: "GET", Path: "/api/order/menu", Description: "Get the pizza menu"},
			{Method: "PUT", Path: "/api/order/menu", Description: "Add an item to the menu", RequiresAuth: true},
			{Method: "GET", Path: "/api/order", Description: "Get the orders for the authenticated user", RequiresAuth: true},
			{Method: "POST", Path: "/api/order", Description: "Create an order for the authenticated user", RequiresAuth: true},
		},
	})
}
