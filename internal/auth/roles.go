package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ashutosh-050/sweet-shop-service/internal/domain"
	apperrors "github.com/ashutosh-050/sweet-shop-service/pkg/util"
)

// RequireAdmin ensures the authenticated principal has the admin role.
// Must run after AuthMiddleware.Handle; a missing principal is treated as
// unauthenticated.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("unauthorized")
		}
		if principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal is attached to the request.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("unauthorized")
		}
		return c.Next()
	}
}
