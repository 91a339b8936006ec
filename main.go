package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"kasir/internal/handlers"
	"kasir/internal/middleware"
	"kasir/internal/repositories"
	"kasir/internal/services"
	"kasir/pkg/logger"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_PATH", "kasir.db")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	dbPath := viper.GetString("DB_PATH")

	log, err := logger.New(viper.GetString("LOG_LEVEL"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// --- Open the record store ---
	db, err := repositories.Open(dbPath, log)
	if err != nil {
		if errors.Is(err, repositories.ErrStorageBlocked) {
			log.Fatal("database is held by another session, close it and try again", zap.Error(err))
		}
		log.Fatal("failed to open record store", zap.String("path", dbPath), zap.Error(err))
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	saleRepo := repositories.NewGORMSaleRepository(db)

	// --- Services ---
	catalogService := services.NewCatalogService(productRepo, log)
	ledgerService := services.NewLedgerService(saleRepo, log)
	backupService := services.NewBackupService(productRepo, saleRepo, log)

	// --- Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService, log)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, log)
	reportsHandler := handlers.NewReportsHandler(ledgerService, log)
	backupHandler := handlers.NewBackupHandler(backupService, log)

	// --- Fiber app ---
	app := fiber.New()

	app.Use(fiberlogger.New())
	app.Use(middleware.RequestID(log))

	apiV1 := app.Group("/api/v1")
	catalogHandler.RegisterRoutes(apiV1)
	ledgerHandler.RegisterRoutes(apiV1)
	reportsHandler.RegisterRoutes(apiV1)
	backupHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start server with graceful shutdown ---
	log.Info("starting server", zap.String("port", appPort), zap.String("db", dbPath))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
