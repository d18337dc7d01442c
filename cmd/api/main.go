package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Taylor-S-Smith/jwt-pizza-service/internal/api/http"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/api/http/handlers"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/auth"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/config"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/events"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/observability"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/persistence"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/repository"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/repository/memory"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/service"
	"github.com/Taylor-S-Smith/jwt-pizza-service/internal/worker"
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

	var (
		userRepo      repository.UserRepository
		franchiseRepo repository.FranchiseRepository
		menuRepo      repository.MenuRepository
		orderRepo     repository.OrderRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		franchiseRepo = repository.NewFranchiseRepository(pool)
		menuRepo = repository.NewMenuRepository(pool)
		orderRepo = repository.NewOrderRepository(pool)
	} else {
		userRepo = memory.NewUserRepository()
		franchiseRepo = memory.NewFranchiseRepository()
		menuRepo = memory.NewMenuRepository()
		orderRepo = memory.NewOrderRepository()
	}

	var tokenRepo repository.TokenRepository
	if redis.Client != nil {
		tokenRepo = repository.NewTokenRepository(redis.Client)
	} else {
		tokenRepo = memory.NewTokenRepository()
	}

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		TokenRepo:  tokenRepo,
		Dispatcher: dispatcher,
	})
	if err := authService.EnsureDefaultAdmin(ctx, cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal("failed to seed default admin", zap.Error(err))
	}

	franchiseService := service.NewFranchiseService(franchiseRepo, userRepo, dispatcher)
	orderService := service.NewOrderService(menuRepo, orderRepo, franchiseRepo, authService.TokenManager(), dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, tokenRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Docs:           handlers.NewDocsHandler(cfg.App.Version),
		Auth:           handlers.NewAuthHandler(authService),
		Franchise:      handlers.NewFranchiseHandler(franchiseService),
		Order:          handlers.NewOrderHandler(orderService),
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
