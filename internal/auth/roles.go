package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
	apperrors "github.com/spec-kit/ticket-marketplace/pkg/util"
)

// RequireAuthenticated ensures a verified principal is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireRole ensures the principal carries exactly the given role. Roles
// are flat: an admin does not pass a vendor check.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Role != role {
			return apperrors.NewForbidden("forbidden access")
		}
		return c.Next()
	}
}

// RequireVendor ensures the caller is a vendor.
func RequireVendor() fiber.Handler {
	return RequireRole(domain.RoleVendor)
}

// RequireAdmin ensures the caller is an admin.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
