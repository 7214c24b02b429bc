package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/restodesk/pos-api/internal/application/service"
	"github.com/restodesk/pos-api/internal/config"
	"github.com/restodesk/pos-api/internal/infrastructure/database"
	"github.com/restodesk/pos-api/internal/infrastructure/remote"
	"github.com/restodesk/pos-api/internal/infrastructure/repository"
	"github.com/restodesk/pos-api/internal/presentation/http/handler"
	"github.com/restodesk/pos-api/internal/presentation/http/routes"
	"github.com/restodesk/pos-api/pkg/printer"
	"github.com/restodesk/pos-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		logger.WithError(err).Warn("Failed to seed default data")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	sessionStore := repository.NewSessionStore()
	methodRepo := repository.NewPaymentMethodRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	subRepo := repository.NewPendingSubmissionRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	// Initialize backend clients
	postingClient := remote.NewPostingClient(cfg.Backend, logger)
	catalogClient := remote.NewCatalogClient(cfg.Backend, logger)

	// Initialize services
	authService := service.NewAuthService(jwtManager, cfg.Terminal.SecretHash, logger)
	sessionService := service.NewSessionService(sessionStore, settingsRepo, catalogClient, logger)
	shiftService := service.NewShiftService(shiftRepo, logger)
	checkoutService := service.NewCheckoutService(
		sessionStore,
		methodRepo,
		settingsRepo,
		subRepo,
		shiftService,
		postingClient,
		logger,
		cfg.Worker.MaxAttempts,
		service.DefaultCurrencyRates,
	)
	settingsService := service.NewSettingsService(settingsRepo, methodRepo, logger)

	// Initialize thermal printer
	receiptPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize printer")
		receiptPrinter = printer.NewNullPrinter()
	}
	receiptService := service.NewReceiptService(receiptPrinter, subRepo, settingsRepo, cfg.Printer.Width, cfg.App.Name, logger)

	// Start the reconciliation worker
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := service.NewSubmissionWorker(subRepo, checkoutService, cfg.Worker.PollInterval, logger)
	go worker.Start(ctx)

	// Evict sessions abandoned by their terminal
	go sessionService.StartJanitor(ctx, cfg.Session.PruneInterval, cfg.Session.MaxIdle)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Session:    handler.NewSessionHandler(sessionService),
		Checkout:   handler.NewCheckoutHandler(checkoutService),
		Submission: handler.NewSubmissionHandler(checkoutService, receiptService),
		Shift:      handler.NewShiftHandler(shiftService),
		Settings:   handler.NewSettingsHandler(settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Logger:     logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.WithFields(logrus.Fields{
		"service": cfg.App.Name,
		"port":    port,
		"env":     cfg.App.Env,
	}).Info("Starting server")

	if err := router.Run(":" + port); err != nil {
		logger.WithError(err).Fatal("Failed to start server")
	}
}
