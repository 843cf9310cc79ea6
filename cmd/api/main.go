package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/voltshop/inventory-api/internal/cache"
	"github.com/voltshop/inventory-api/internal/clock"
	"github.com/voltshop/inventory-api/internal/config"
	"github.com/voltshop/inventory-api/internal/database"
	"github.com/voltshop/inventory-api/internal/handler"
	"github.com/voltshop/inventory-api/internal/inventory"
	"github.com/voltshop/inventory-api/internal/middleware"
	"github.com/voltshop/inventory-api/internal/repository"
	"github.com/voltshop/inventory-api/internal/service"
	"github.com/voltshop/inventory-api/internal/sse"
	"github.com/voltshop/inventory-api/internal/validation"
	"github.com/voltshop/inventory-api/internal/worker"
)

// main is the application entrypoint for the inventory API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting inventory api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 4. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// 5. Initialize the inventory core
	clk := clock.System{}
	catalogCache := cache.NewCatalogCache(redisClient, cfg.Cache.CatalogTTL)
	validator := validation.New(clk)
	engine := inventory.NewEngine(productRepo, clk, catalogCache)

	// 5a. Stock event stream
	hub := sse.NewHub()
	engine.SetNotifier(sse.NewHubNotifier(hub))

	// 5b. Background workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if cfg.Cache.WarmInterval > 0 {
		warmWorker := worker.NewCatalogWarmWorker(engine, cfg.Cache.WarmInterval)
		go warmWorker.Start(workerCtx)
	}

	// 6. Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	reviewSvc := service.NewReviewService(reviewRepo, productRepo, clk)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(db, redisClient),
		Auth:    handler.NewAuthHandler(authSvc),
		Product: handler.NewProductHandler(validator, engine),
		Review:  handler.NewReviewHandler(reviewSvc),
		SSE:     handler.NewSSEHandler(hub, cfg.JWTSecret),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware(cfg.JWTSecret)

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Review  *handler.ReviewHandler
	SSE     *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Accounts
	router.POST("/v1/auth/register", handlers.Auth.Register)
	router.POST("/v1/auth/login", handlers.Auth.Login)

	// Catalog reads (public)
	router.GET("/v1/products", handlers.Product.GetProducts)
	router.GET("/v1/products/available", handlers.Product.GetAvailableProducts)

	// Catalog mutations (manager or admin)
	managed := router.Group("/v1/products")
	managed.Use(jwtMiddleware.Handle(), jwtMiddleware.RequireManager())
	{
		managed.POST("", handlers.Product.RegisterProduct)
		managed.PATCH("/:model", handlers.Product.ChangeQuantity)
		managed.PATCH("/:model/sell", handlers.Product.SellProduct)
		managed.DELETE("/:model", handlers.Product.DeleteProduct)
	}
	router.DELETE("/v1/products", jwtMiddleware.Handle(), jwtMiddleware.RequireAdmin(), handlers.Product.DeleteAllProducts)

	// Live stock events (token via query param, EventSource cannot set headers)
	router.GET("/v1/admin/stream", handlers.SSE.Stream)

	// Reviews
	router.GET("/v1/reviews/:model", handlers.Review.GetReviews)
	reviews := router.Group("/v1/reviews")
	reviews.Use(jwtMiddleware.Handle())
	{
		reviews.POST("/:model", handlers.Review.AddReview)
		reviews.DELETE("/:model", handlers.Review.DeleteReview)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
