package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/social-platform/internal/api/http/handlers"
	"github.com/spec-kit/social-platform/internal/auth"
	"github.com/spec-kit/social-platform/internal/cache"
	"github.com/spec-kit/social-platform/internal/config"
	"github.com/spec-kit/social-platform/internal/events"
	"github.com/spec-kit/social-platform/internal/observability"
	"github.com/spec-kit/social-platform/internal/persistence"
	"github.com/spec-kit/social-platform/internal/repository"
	"github.com/spec-kit/social-platform/internal/service"
	"github.com/spec-kit/social-platform/internal/worker"

	httptransport "github.com/spec-kit/social-platform/internal/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	postRepo := repository.NewPostRepository(pool)

	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	resolver := auth.NewIdentityResolver(codec, userRepo)
	accessFilter := auth.NewAccessFilter(resolver, auth.DefaultPublicRoutes(), logger)

	dispatcher := events.NewInMemoryDispatcher()
	postCache := cache.NewPostCache(redis.Client, cfg.Cache.PostTTL(), logger)

	authService := service.NewAuthService(codec, userRepo, logger)
	registrationService := service.NewRegistrationService(codec, userRepo, dispatcher, cfg.Auth.BcryptCost, logger)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, postCache, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:         handlers.NewAuthHandler(authService),
		Users:        handlers.NewUsersHandler(registrationService, userService),
		Posts:        handlers.NewPostsHandler(postService),
		AccessFilter: accessFilter,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
