package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/geek-records/support-desk/internal/api/http"
	"github.com/geek-records/support-desk/internal/api/http/handlers"
	"github.com/geek-records/support-desk/internal/config"
	"github.com/geek-records/support-desk/internal/events"
	"github.com/geek-records/support-desk/internal/identity"
	"github.com/geek-records/support-desk/internal/observability"
	"github.com/geek-records/support-desk/internal/persistence"
	"github.com/geek-records/support-desk/internal/repository"
	"github.com/geek-records/support-desk/internal/service"
	"github.com/geek-records/support-desk/internal/view"
	"github.com/geek-records/support-desk/internal/worker"
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
	profileRepo := repository.NewProfileRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	responseRepo := repository.NewTicketResponseRepository(pool)

	tokenManager := identity.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	sessionStore := identity.NewRedisSessionStore(redis.Client)
	resolver := identity.NewResolver(tokenManager, sessionStore, profileRepo)
	authMiddleware := identity.NewMiddleware(resolver)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(service.AuthDependencies{
		ProfileRepo:  profileRepo,
		SessionStore: sessionStore,
		TokenManager: tokenManager,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		ResponseRepo: responseRepo,
		Dispatcher:   dispatcher,
	})
	projector := view.NewProjector(profileRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, resolver),
		Tickets:        handlers.NewTicketsHandler(ticketService, projector),
		AuthMiddleware: authMiddleware,
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
