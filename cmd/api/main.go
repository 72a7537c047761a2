package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vantora/vantora-order-service/config"
	"github.com/vantora/vantora-order-service/internal/auth"
	"github.com/vantora/vantora-order-service/internal/cache"
	"github.com/vantora/vantora-order-service/internal/database"
	"github.com/vantora/vantora-order-service/internal/eventbus"

	cartH "github.com/vantora/vantora-order-service/internal/cart/handler"
	cartRepoPkg "github.com/vantora/vantora-order-service/internal/cart/repository"
	cartUCPkg "github.com/vantora/vantora-order-service/internal/cart/usecase"

	invH "github.com/vantora/vantora-order-service/internal/inventory/handler"
	invRepoPkg "github.com/vantora/vantora-order-service/internal/inventory/repository"
	invUCPkg "github.com/vantora/vantora-order-service/internal/inventory/usecase"

	numRepoPkg "github.com/vantora/vantora-order-service/internal/numbering/repository"
	prodRepoPkg "github.com/vantora/vantora-order-service/internal/product/repository"

	orderH "github.com/vantora/vantora-order-service/internal/order/handler"
	orderRepoPkg "github.com/vantora/vantora-order-service/internal/order/repository"
	orderUCPkg "github.com/vantora/vantora-order-service/internal/order/usecase"

	quoteH "github.com/vantora/vantora-order-service/internal/quote/handler"
	quoteRepoPkg "github.com/vantora/vantora-order-service/internal/quote/repository"
	quoteUCPkg "github.com/vantora/vantora-order-service/internal/quote/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := newLogger(&cfg.Logger, cfg.Server.AppEnv)
	defer appLogger.Sync()

	db, err := database.NewPostgres(&cfg.Postgres)
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	txm := database.NewTxManager(db)

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis; stock adjustments run without advisory locks", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	var events eventbus.Bus
	publisher, err := eventbus.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, appLogger)
	if err != nil {
		appLogger.Warn("Could not connect to RabbitMQ; domain events disabled", zap.Error(err))
	} else {
		defer publisher.Close()
		events = publisher
		appLogger.Info("Connected to RabbitMQ", zap.String("exchange", cfg.RabbitMQ.Exchange))
	}

	// Repositories
	prodRepo := prodRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	cartRepo := cartRepoPkg.NewPGRepository(db)
	quoteRepo := quoteRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	numbers := numRepoPkg.NewPGAllocator(db)

	// UseCases
	invUC := invUCPkg.NewInventoryUseCase(invRepo, txm, redisClient, events, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(cartRepo, prodRepo, appLogger)
	quoteUC := quoteUCPkg.NewQuoteUseCase(quoteRepo, orderRepo, prodRepo, numbers, txm, events, appLogger, cfg.Quotes.EnforceTransitions)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, cartRepo, prodRepo, invUC, numbers, txm, events, appLogger)

	// Handlers
	invHandler := invH.NewInventoryHandler(invUC, appLogger)
	cartHandler := cartH.NewCartHandler(cartUC, appLogger)
	quoteHandler := quoteH.NewQuoteHandler(quoteUC, appLogger)
	orderHandler := orderH.NewOrderHandler(orderUC, appLogger)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1", auth.Middleware())
	invHandler.Register(api)
	cartHandler.Register(api)
	quoteHandler.Register(api)
	orderHandler.Register(api)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := app.Listen(port); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	appLogger.Info("Server stopped")
}

func newLogger(cfg *config.LoggerConfig, appEnv string) *zap.Logger {
	var zapCfg zap.Config
	if appEnv == "development" || appEnv == "dev" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	if level, err := zap.ParseAtomicLevel(cfg.Level); err == nil {
		zapCfg.Level = level
	}
	if cfg.Encoding != "" {
		zapCfg.Encoding = cfg.Encoding
	}
	zapCfg.DisableCaller = cfg.DisableCaller
	zapCfg.DisableStacktrace = cfg.DisableStacktrace

	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return logger
}
