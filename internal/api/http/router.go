package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-platform/internal/api/http/handlers"
	"github.com/spec-kit/social-platform/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Users        *handlers.UsersHandler
	Posts        *handlers.PostsHandler
	AccessFilter *auth.AccessFilter
}

// RegisterRoutes wires HTTP routes. The access filter runs once per request
// ahead of dispatch; route-level policy declares which paths require an
// authenticated context.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AccessFilter.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/auth", cfg.Auth.Authenticate)
	api.Post("/users", cfg.Users.Register)
	api.Get("/users/:userId", auth.RequireAuthenticated(), cfg.Users.Profile)

	posts := api.Group("/posts", auth.RequireAuthenticated())
	posts.Post("/", cfg.Posts.Create)
	posts.Get("/", cfg.Posts.List)
	posts.Get("/:postId", cfg.Posts.Get)
	posts.Put("/:postId", cfg.Posts.Update)
	posts.Delete("/:postId", cfg.Posts.Delete)
}
