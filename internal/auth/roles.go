package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/domain"
	apperrors "github.com/Taylor-S-Smith/jwt-pizza-service/pkg/util"
)

// RequireAdmin ensures the principal holds the global admin role, rejecting
// with a 403 carrying the operation-specific message.
func RequireAdmin(message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized()
		}
		if !principal.User.IsAdmin() {
			return apperrors.NewForbidden(message)
		}
		return c.Next()
	}
}

// RequireRole ensures the principal carries one of the allowed roles at any
// scope.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized()
		}
		for _, role := range allowed {
			if principal.User.HasRole(role) {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("insufficient role")
	}
}
