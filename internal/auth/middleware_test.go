package auth_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/social-platform/internal/api/dto"
	httptransport "github.com/spec-kit/social-platform/internal/api/http"
	"github.com/spec-kit/social-platform/internal/auth"
	"github.com/spec-kit/social-platform/internal/domain"
	"github.com/spec-kit/social-platform/internal/observability"
)

func newFilterApp(t *testing.T, codec *auth.TokenCodec) *fiber.App {
	t.Helper()

	resolver := auth.NewIdentityResolver(codec, newTestStore())
	filter := auth.NewAccessFilter(resolver, []auth.PublicRoute{{Prefix: "/public"}}, zap.NewNop())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Use(filter.Handle)

	app.Get("/public/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"pong": true})
	})
	app.Get("/profile", auth.RequireAuthenticated(), func(c *fiber.Ctx) error {
		sc := auth.ContextFromRequest(c)
		return c.JSON(fiber.Map{"subject": sc.Subject, "role": sc.Role})
	})
	app.Get("/admin", auth.RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func errorBody(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	codec := auth.NewTokenCodec(testSecret, time.Hour)
	app := newFilterApp(t, codec)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := errorBody(t, resp)
	assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body.Message)
	require.Len(t, body.Details, 1)
	assert.NotEmpty(t, body.Details[0])
}

func TestProtectedRouteWithInvalidTokenDegradesToAnonymous(t *testing.T) {
	codec := auth.NewTokenCodec(testSecret, time.Hour)
	app := newFilterApp(t, codec)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorBody(t, resp).Message)
}

func TestProtectedRouteWithExpiredToken(t *testing.T) {
	codec := auth.NewTokenCodec(testSecret, time.Hour)
	app := newFilterApp(t, codec)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signedToken(t, "john@x.com", time.Now().Add(-time.Minute)))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := errorBody(t, resp)
	assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body.Message)
}

func TestProtectedRouteWithValidToken(t *testing.T) {
	codec := auth.NewTokenCodec(testSecret, time.Hour)
	app := newFilterApp(t, codec)

	token, _, err := codec.Issue("john@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "john@x.com", body["subject"])
	assert.Equal(t, string(domain.RoleUser), body["role"])
}

func TestPublicRouteSkipsResolution(t *testing.T) {
	codec := auth.NewTokenCodec(testSecret, time.Hour)
	app := newFilterApp(t, codec)

	// A bad token on an allow-listed path must not matter.
	req := httptest.NewRequest(http.MethodGet, "/public/ping", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleDeniesWrongRole(t *testing.T) {
	codec := auth.NewTokenCodec(testSecret, time.Hour)
	app := newFilterApp(t, codec)

	token, _, err := codec.Issue("john@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestContextFromRequestDefaultsToAnonymous(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		sc := auth.ContextFromRequest(c)
		assert.False(t, sc.Authenticated)
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
