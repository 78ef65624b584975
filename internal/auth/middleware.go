package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/social-platform/pkg/util"
)

// PublicRoute marks a path prefix that bypasses token resolution. An empty
// Method matches every method.
type PublicRoute struct {
	Method string
	Prefix string
}

// DefaultPublicRoutes lists the routes reachable without a token: health
// probes, API docs, the auth endpoint and user registration.
func DefaultPublicRoutes() []PublicRoute {
	return []PublicRoute{
		{Prefix: "/health"},
		{Prefix: "/api/docs"},
		{Prefix: "/api/auth"},
		{Method: fiber.MethodPost, Prefix: "/api/users"},
	}
}

// AccessFilter resolves bearer tokens into a per-request security context.
// It never rejects a request itself: a missing or invalid token leaves the
// request anonymous and the route-level policy decides what that means.
type AccessFilter struct {
	resolver *IdentityResolver
	public   []PublicRoute
	logger   *zap.Logger
}

// NewAccessFilter constructs the filter.
func NewAccessFilter(resolver *IdentityResolver, public []PublicRoute, logger *zap.Logger) *AccessFilter {
	return &AccessFilter{resolver: resolver, public: public, logger: logger}
}

// Handle runs exactly once per request, before route dispatch. One resolution
// attempt, no retries.
func (f *AccessFilter) Handle(c *fiber.Ctx) error {
	setContext(c, anonymousContext())

	if f.isPublic(c.Method(), c.Path()) {
		return c.Next()
	}

	token := bearerToken(c.Get(fiber.HeaderAuthorization))
	if token == "" {
		return c.Next()
	}

	identity, err := f.resolver.Resolve(c.Context(), token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			f.logger.Debug("token resolution failed", zap.Error(err))
			return c.Next()
		}
		return apperrors.NewInternalError(err)
	}

	setContext(c, &SecurityContext{
		UserID:        identity.UserID,
		Subject:       identity.Subject,
		Role:          identity.Role,
		Authenticated: true,
	})
	return c.Next()
}

func (f *AccessFilter) isPublic(method, path string) bool {
	for _, route := range f.public {
		if route.Method != "" && route.Method != method {
			continue
		}
		if strings.HasPrefix(path, route.Prefix) {
			return true
		}
	}
	return false
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
