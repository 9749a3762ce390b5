package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-marketplace/internal/api/http"
	"github.com/spec-kit/ticket-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/ticket-marketplace/internal/auth"
	"github.com/spec-kit/ticket-marketplace/internal/cache"
	"github.com/spec-kit/ticket-marketplace/internal/config"
	"github.com/spec-kit/ticket-marketplace/internal/events"
	"github.com/spec-kit/ticket-marketplace/internal/observability"
	"github.com/spec-kit/ticket-marketplace/internal/persistence"
	"github.com/spec-kit/ticket-marketplace/internal/repository"
	"github.com/spec-kit/ticket-marketplace/internal/service"
	"github.com/spec-kit/ticket-marketplace/internal/worker"
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
	listingRepo := repository.NewListingRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	roleCache := cache.NewRoleCache(redis.Client, userRepo, cfg.Auth.RoleCacheTTL(), logger)
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokenManager, roleCache)

	dispatcher := events.NewInMemoryDispatcher()

	userService := service.NewUserService(service.UserDependencies{
		UserRepo:    userRepo,
		Invalidator: roleCache,
		Dispatcher:  dispatcher,
	})
	listingService := service.NewListingService(service.ListingDependencies{
		ListingRepo: listingRepo,
		Dispatcher:  dispatcher,
	})
	marketplaceService := service.NewMarketplaceService(listingRepo, userRepo)
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: bookingRepo,
		ListingRepo: listingRepo,
		Dispatcher:  dispatcher,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(userService),
		Listings:       handlers.NewListingsHandler(listingService),
		Marketplace:    handlers.NewMarketplaceHandler(marketplaceService, listingService),
		Bookings:       handlers.NewBookingsHandler(bookingService),
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
