// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"showtime-booking/cmd"
	"showtime-booking/internal/data/memory"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/usecase"
	"showtime-booking/internal/wire"
	"showtime-booking/pkg/cache"
	"showtime-booking/pkg/database"
	"showtime-booking/pkg/queue"
	"showtime-booking/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("storage", config.Storage.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize all repositories
	repos, closeStore := initRepository(ctx, config, logger)
	defer closeStore()

	c := initCache(config, logger)
	publisher := initPublisher(config, logger)
	defer publisher.Close()

	// Wire all dependencies
	app := wire.Wiring(usecase.Deps{
		Repo:      repos,
		Cache:     c,
		Publisher: publisher,
		Config:    config,
		Log:       logger,
	})

	if err := app.Service.User.EnsureAdmin(ctx, config.Admin.Email, config.Admin.Password); err != nil {
		logger.Fatal("Failed to bootstrap admin user", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)

	// Start server
	g.Go(func() error {
		return cmd.APIServer(gctx, app.Router, config.App.Port, logger)
	})

	if config.RabbitMQ.Enabled {
		g.Go(func() error {
			return queue.RunConsumer(gctx, config.RabbitMQ.URL, config.RabbitMQ.Queue, queue.AuditHandler(logger), logger)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Application stopped with error", zap.Error(err))
		return
	}
	logger.Info("Application stopped")
}

func initRepository(ctx context.Context, config *utils.Config, logger *zap.Logger) (*repository.Repository, func()) {
	if config.Storage.Driver == "memory" {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepository(logger), func() {}
	}

	// Connect to database
	db, err := database.InitDB(ctx, config.Database, config.App.Name)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database schema applied")
	}

	return repository.NewRepository(db, logger), db.Close
}

func initCache(config *utils.Config, logger *zap.Logger) cache.Cache {
	if !config.Redis.Enabled {
		return cache.NewNoopCache()
	}

	client, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, caching disabled", zap.Error(err))
		return cache.NewNoopCache()
	}
	logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	return cache.NewRedisCache(client, config.Redis.CacheTTL, logger)
}

func initPublisher(config *utils.Config, logger *zap.Logger) queue.Publisher {
	if !config.RabbitMQ.Enabled {
		return queue.NewNoopPublisher()
	}

	publisher, err := queue.NewRabbitPublisher(config.RabbitMQ.URL, config.RabbitMQ.Queue, logger)
	if err != nil {
		logger.Warn("RabbitMQ unavailable, booking events disabled", zap.Error(err))
		return queue.NewNoopPublisher()
	}
	logger.Info("RabbitMQ publisher ready", zap.String("queue", config.RabbitMQ.Queue))
	return publisher
}
