package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/storefront-service/internal/api/http"
	"github.com/spec-kit/storefront-service/internal/api/http/handlers"
	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/lock"
	"github.com/spec-kit/storefront-service/internal/messaging"
	"github.com/spec-kit/storefront-service/internal/observability"
	"github.com/spec-kit/storefront-service/internal/persistence"
	"github.com/spec-kit/storefront-service/internal/repository"
	"github.com/spec-kit/storefront-service/internal/service"
	"github.com/spec-kit/storefront-service/internal/worker"
	"github.com/spec-kit/storefront-service/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), migrations.FS, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer rdb.Close()

	repos := buildRepositories(pg, rdb, cfg.Catalog, logger)

	var locker lock.Locker = lock.NewKeyedMutex(cfg.Cart.LockWait())
	if rdb != nil {
		locker = lock.NewRedisLocker(rdb.ClientHandle(), cfg.Cart.LockTTL(), cfg.Cart.LockWait(), logger)
	}

	var publisher service.OrderPublisher
	if cfg.Messaging.RabbitMQURL != "" {
		rabbit, err := messaging.NewRabbitPublisher(cfg.Messaging.RabbitMQURL, cfg.Messaging.OrderQueue)
		if err != nil {
			logger.Warn("rabbitmq unavailable; order events stay local", zap.Error(err))
		} else {
			defer rabbit.Close()
			publisher = rabbit
			logger.Info("publishing order events", zap.String("queue", rabbit.Queue()))
		}
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(dispatcher, publisher, logger)

	userService := service.NewUserService(cfg.Auth, repos.users, dispatcher, logger)
	itemService := service.NewItemService(repos.items)
	cartService := service.NewCartService(service.CartDependencies{
		UserRepo:    repos.users,
		ItemRepo:    repos.items,
		CartRepo:    repos.carts,
		Locker:      locker,
		Dispatcher:  dispatcher,
		MaxQuantity: cfg.Cart.MaxQuantity,
	}, logger)
	orderService := service.NewOrderService(service.OrderDependencies{
		UserRepo:   repos.users,
		CartRepo:   repos.carts,
		OrderRepo:  repos.orders,
		Dispatcher: dispatcher,
	}, logger)

	tokens := auth.NewTokenManager(cfg.Auth)
	gate := auth.NewGate(auth.NewCredentialVerifier(repos.users, cfg.Auth.BcryptCost), tokens, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		UnescapePath:          true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	dependencies := map[string]handlers.Pinger{"postgres": nil, "redis": nil}
	if pg.Enabled() {
		dependencies["postgres"] = pg
	}
	if rdb != nil {
		dependencies["redis"] = rdb
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies, metrics),
		Users:  handlers.NewUsersHandler(userService),
		Items:  handlers.NewItemsHandler(itemService),
		Cart:   handlers.NewCartHandler(cartService),
		Orders: handlers.NewOrdersHandler(orderService),
		Gate:   gate,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

type repositories struct {
	users  repository.UserRepository
	items  repository.ItemRepository
	carts  repository.CartRepository
	orders repository.OrderRepository
}

func buildRepositories(pg *persistence.Postgres, rdb *persistence.Redis, catalog config.CatalogConfig, logger *zap.Logger) repositories {
	var repos repositories
	if pg.Enabled() {
		pool := pg.PoolHandle()
		repos = repositories{
			users:  repository.NewUserRepository(pool),
			items:  repository.NewItemRepository(pool),
			carts:  repository.NewCartRepository(pool),
			orders: repository.NewOrderRepository(pool),
		}
	} else {
		logger.Warn("using in-memory store; data is lost on restart")
		store := repository.NewMemoryStore()
		store.SeedCatalog()
		repos = repositories{
			users:  store.Users(),
			items:  store.Items(),
			carts:  store.Carts(),
			orders: store.Orders(),
		}
	}

	repos.items = repository.NewCachedItemRepository(repos.items, rdb.ClientHandle(), catalog.CacheTTL(), logger)
	return repos
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
