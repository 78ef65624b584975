package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-platform/internal/domain"
	apperrors "github.com/spec-kit/social-platform/pkg/util"
)

// RequireAuthenticated intercepts requests whose security context is anonymous.
// Declared once per route group at startup; this is the only path producing a
// 401 body for protected resources.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !ContextFromRequest(c).Authenticated {
			return apperrors.NewUnauthenticated("Full authentication is required to access this resource")
		}
		return c.Next()
	}
}

// RequireRole additionally demands one of the allowed roles. Role denial is a
// 403, a separate path from authentication failure.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		sc := ContextFromRequest(c)
		if !sc.Authenticated {
			return apperrors.NewUnauthenticated("Full authentication is required to access this resource")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, ok := allowedSet[sc.Role]; !ok {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
