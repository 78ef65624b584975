package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-platform/internal/domain"
)

const securityContextKey = "security_context"

// SecurityContext carries the per-request authentication outcome. Exactly one
// exists per request; it is created by the access filter and discarded with
// the request.
type SecurityContext struct {
	UserID        string
	Subject       string
	Role          domain.Role
	Authenticated bool
}

func anonymousContext() *SecurityContext {
	return &SecurityContext{}
}

// ContextFromRequest returns the request's security context, anonymous when
// the filter has not populated one.
func ContextFromRequest(c *fiber.Ctx) *SecurityContext {
	if sc, ok := c.Locals(securityContextKey).(*SecurityContext); ok {
		return sc
	}
	return anonymousContext()
}

func setContext(c *fiber.Ctx, sc *SecurityContext) {
	c.Locals(securityContextKey, sc)
}
