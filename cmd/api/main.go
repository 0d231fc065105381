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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Hamza287/brenvick-dashboard/internal/cache"
	"github.com/Hamza287/brenvick-dashboard/internal/config"
	"github.com/Hamza287/brenvick-dashboard/internal/database"
	"github.com/Hamza287/brenvick-dashboard/internal/events"
	"github.com/Hamza287/brenvick-dashboard/internal/handler"
	"github.com/Hamza287/brenvick-dashboard/internal/middleware"
	"github.com/Hamza287/brenvick-dashboard/internal/models"
	"github.com/Hamza287/brenvick-dashboard/internal/service"
	"github.com/Hamza287/brenvick-dashboard/internal/session"
	"github.com/Hamza287/brenvick-dashboard/internal/worker"
	"github.com/Hamza287/brenvick-dashboard/pkg/storeapi"
	"github.com/Hamza287/brenvick-dashboard/pkg/tcs"
)

// main is the application entrypoint for the Brenvick admin dashboard API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting brenvick dashboard api")

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

	// 3c. Initialize catalog cache
	catalogCache := cache.NewCatalogCache(redisClient, cfg.Worker.CatalogCacheTTL)

	// 4. Initialize upstream clients
	storeClient := storeapi.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	var tcsClient *tcs.Client
	if cfg.TCS.BaseURL != "" {
		tcsClient = tcs.NewClient(cfg.TCS.BaseURL, cfg.TCS.Timeout)
		log.Info().Msg("TCS label client configured")
	}

	// 4a. Connect event publisher (optional)
	publisher, err := events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
	if err != nil {
		log.Warn().Err(err).Msg("Event broker connection failed, order events disabled")
	}
	defer publisher.Close()

	// 5. Initialize session store and manager
	sessionStore := session.NewRepository(db)
	sessionManager := session.NewManager(sessionStore, storeClient, cfg.Session.FallbackTTL)

	// 6. Initialize services
	productSvc := service.NewProductService(storeClient, catalogCache)
	orderSvc := service.NewOrderService(storeClient, tcsClient, publisher)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(db),
		Auth:    handler.NewAuthHandler(sessionManager),
		Product: handler.NewProductHandler(productSvc),
		Order:   handler.NewOrderHandler(orderSvc),
		Cart:    handler.NewCartHandler(storeClient),
	}

	// 8. Initialize middleware
	sessionMw := middleware.NewSessionMiddleware(sessionManager)

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, sessionMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewCatalogSyncWorker(storeClient, catalogCache, cfg.Worker.CatalogSyncInterval).Start(ctx)
	go worker.NewSessionSweepWorker(sessionStore, cfg.Worker.SessionSweepInterval).Start(ctx)

	// 12. Start HTTP server
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

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
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
	Order   *handler.OrderHandler
	Cart    *handler.CartHandler
}

// setupRoutes registers all routes. Everything except health and login sits
// behind the session middleware and the admin role gate.
func setupRoutes(router *gin.Engine, handlers *Handlers, sessionMw *middleware.SessionMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)
	router.POST("/v1/auth/login", handlers.Auth.Login)

	admin := router.Group("/v1")
	admin.Use(sessionMw.Handle())
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		// Session
		admin.POST("/auth/logout", handlers.Auth.Logout)
		admin.GET("/auth/me", handlers.Auth.Me)

		// Catalog
		admin.GET("/products", handlers.Product.GetProducts)
		admin.POST("/products", handlers.Product.CreateProduct)
		admin.POST("/products/search", handlers.Product.SearchProducts)
		admin.GET("/products/:id", handlers.Product.GetProduct)
		admin.PUT("/products/:id", handlers.Product.UpdateProduct)
		admin.DELETE("/products/:id", handlers.Product.DeleteProduct)
		admin.GET("/products/:id/images", handlers.Product.GetVariantImages)
		admin.GET("/categories", handlers.Product.GetCategories)

		// Orders
		admin.GET("/orders", handlers.Order.GetOrders)
		admin.GET("/orders/:id", handlers.Order.GetOrder)
		admin.PUT("/orders/:id/status", handlers.Order.UpdateStatus)
		admin.GET("/orders/:id/export", handlers.Order.ExportPDF)
		admin.POST("/order-items/search", handlers.Order.SearchOrderItems)

		// Carts
		admin.POST("/carts/search", handlers.Cart.SearchCarts)
		admin.GET("/carts/:id", handlers.Cart.GetCart)

		// Shipping
		admin.GET("/shipments/label/:cn", handlers.Order.GetShippingLabel)
		admin.POST("/shipments/search", handlers.Order.SearchShipments)
		admin.PUT("/shipments", handlers.Order.UpdateShipment)
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
