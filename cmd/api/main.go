package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"perkline/internal/config"
	"perkline/internal/database"
	"perkline/internal/handlers"
	"perkline/internal/middleware"
	"perkline/internal/repositories"
	"perkline/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		return err
	}

	// Repositories
	catalogRepo := repositories.NewCatalogRepository(db)
	accountRepo := repositories.NewLinkedAccountRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	matchRepo := repositories.NewMatchRepository(db)
	cursorRepo := repositories.NewCursorRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	tokenService := services.NewTokenService(&cfg.JWT)
	apiKeyService := services.NewAPIKeyService(cfg.Scan.InternalAPIKeyHash)
	resolverService := services.NewProductResolverService(catalogRepo, services.DefaultIssuerAliases(), metrics)
	scanService := services.NewBenefitScanService(accountRepo, transactionRepo, catalogRepo, matchRepo, cursorRepo, cfg.Scan.BatchLimit, metrics)
	usageService := services.NewBenefitUsageService(accountRepo, catalogRepo, matchRepo)
	catalogService := services.NewCatalogService(catalogRepo)
	scanLock := services.NewScanLock()

	// Handlers
	healthHandler := handlers.NewHealthCheckHandler(db)
	scanHandler := handlers.NewScanHandler(scanService, scanLock)
	resolverHandler := handlers.NewResolverHandler(accountRepo, catalogRepo, resolverService)
	accountHandler := handlers.NewAccountHandler(accountRepo, usageService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.RateLimiterWithConfig(cfg.Server.RateLimitPerSec, cfg.Server.RateLimitBurst))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, middleware.TraceIDHeader, middleware.APIKeyHeader},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	authed := api.Group("", middleware.RequireAuth(tokenService))
	authed.POST("/scan", scanHandler.Scan)
	authed.POST("/accounts/:accountId/resolve", resolverHandler.Resolve)
	authed.PUT("/accounts/:accountId/product", resolverHandler.LinkProduct)
	authed.GET("/accounts", accountHandler.ListAccounts)
	authed.GET("/benefits/usage", accountHandler.GetBenefitUsage)
	authed.GET("/catalog/products", catalogHandler.ListProducts)

	admin := api.Group("/admin", middleware.RequireAuth(tokenService), middleware.RequireAdmin())
	admin.POST("/catalog/products", catalogHandler.CreateProduct)

	internal := api.Group("/internal", middleware.RequireAPIKey(apiKeyService))
	internal.POST("/scan/:userId", scanHandler.InternalScan)

	if cfg.IsDevelopment() {
		generator := services.NewSeedGenerator(catalogRepo, accountRepo, transactionRepo)
		devHandler := handlers.NewDevHandler(generator)

		dev := api.Group("/dev", middleware.RequireAuth(tokenService))
		dev.POST("/seed", devHandler.SeedData)
		slog.Info("Development endpoints enabled", "path", "/api/v1/dev")
	}

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	go func() {
		slog.Info("Starting server", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("Server stopped", "error", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return e.Shutdown(ctx)
}
