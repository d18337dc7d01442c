package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/api/http/handlers"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Docs           *handlers.DocsHandler
	Auth           *handlers.AuthHandler
	Franchise      *handlers.FranchiseHandler
	Order          *handlers.OrderHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Login (PUT /api/auth) and self-update
// (PUT /api/auth/:userId) are distinct routes; no verb overloading.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/docs", cfg.Docs.Docs)

	authGroup := api.Group("/auth")
	authGroup.Post("/", cfg.Auth.Register)
	authGroup.Put("/", cfg.Auth.Login)
	authGroup.Delete("/", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Put("/:userId", cfg.AuthMiddleware.Handle, cfg.Auth.UpdateUser)

	franchiseGroup := api.Group("/franchise")
	franchiseGroup.Get("/", cfg.Franchise.List)
	franchiseGroup.Get("/:userId", cfg.AuthMiddleware.Handle, cfg.Franchise.ListForUser)
	franchiseGroup.Post("/", cfg.AuthMiddleware.Handle, auth.RequireAdmin("unable to create a franchise"), cfg.Franchise.Create)
	franchiseGroup.Delete("/:franchiseId", cfg.AuthMiddleware.Handle, auth.RequireAdmin("unable to delete a franchise"), cfg.Franchise.Delete)
	franchiseGroup.Post("/:franchiseId/store", cfg.AuthMiddleware.Handle, cfg.Franchise.CreateStore)
	franchiseGroup.Delete("/:franchiseId/store/:storeId", cfg.AuthMiddleware.Handle, cfg.Franchise.DeleteStore)

	orderGroup := api.Group("/order")
	orderGroup.Get("/menu", cfg.Order.Menu)
	orderGroup.Put("/menu", cfg.AuthMiddleware.Handle, auth.RequireAdmin("unable to add menu item"), cfg.Order.AddMenuItem)
	orderGroup.Get("/", cfg.AuthMiddleware.Handle, cfg.Order.ListOrders)
	orderGroup.Post("/", cfg.AuthMiddleware.Handle, cfg.Order.CreateOrder)
}
