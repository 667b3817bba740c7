package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/callops-team/call-assistant/pkg/validator"

	"github.com/callops-team/call-assistant/internal/adapter/handler"
	"github.com/callops-team/call-assistant/internal/adapter/repository"
	"github.com/callops-team/call-assistant/internal/infrastructure/cache"
	"github.com/callops-team/call-assistant/internal/infrastructure/database"
	agentuse "github.com/callops-team/call-assistant/internal/usecase/agent"
	calluse "github.com/callops-team/call-assistant/internal/usecase/call"
	promptuse "github.com/callops-team/call-assistant/internal/usecase/prompt"
	"github.com/callops-team/call-assistant/internal/usecase/transcript"
	"github.com/callops-team/call-assistant/pkg/config"
	"github.com/callops-team/call-assistant/pkg/retell"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db, logger)

	// Apply migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db, cfg, logger); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize cache backend. Redis is preferred; a process-local store
	// keeps single-instance deployments working without one.
	log.Println("📦 Connecting to Redis...")
	var store cache.Store
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v), falling back to in-memory cache", err)
		store = cache.NewMemoryStore()
	} else {
		defer redisClient.Close()
		store = cache.NewRedisStore(redisClient)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	callRepo := repository.NewCallRepository(db)
	promptRepo := repository.NewPromptRepository(db)

	// Initialize Retell client
	log.Println("📞 Initializing Retell client...")
	retellClient := retell.NewClient(&cfg.Retell)

	// Initialize services
	log.Println("🧮 Initializing services...")
	processor := transcript.NewProcessor()
	promptService := promptuse.NewService(promptRepo, logger)
	callService := calluse.NewCallService(
		callRepo,
		retellClient,
		promptService,
		processor,
		store,
		logger,
		cfg.Retell.DefaultVoiceID,
		cfg.Retell.WebhookURL,
		cfg.Redis.TranscriptTTL,
	)
	agentService := agentuse.NewAgentService(retellClient, logger, cfg.Retell.DefaultVoiceID, cfg.Retell.WebhookURL)

	// Initialize handlers
	log.Println("🪝 Initializing handlers...")
	webhookHandler := handler.NewWebhookHandler(callService, cfg.Retell.WebhookSecret, logger)
	callHandler := handler.NewCallHandler(callService, logger)
	agentHandler := handler.NewAgentHandler(agentService, logger)
	promptHandler := handler.NewPromptHandler(promptService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, webhookHandler, callHandler, agentHandler, promptHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
