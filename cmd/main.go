package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/BrandonWrob/ExtendedManager/internal/handler"
	"github.com/BrandonWrob/ExtendedManager/internal/repositories"
	"github.com/BrandonWrob/ExtendedManager/internal/router"
	"github.com/BrandonWrob/ExtendedManager/internal/service"
	"github.com/BrandonWrob/ExtendedManager/pkg/database"
	"github.com/BrandonWrob/ExtendedManager/pkg/envconfig"
	"github.com/BrandonWrob/ExtendedManager/pkg/flags"
	"github.com/BrandonWrob/ExtendedManager/pkg/logger"
	"github.com/BrandonWrob/ExtendedManager/pkg/shutdownsetup"
)

const startupTimeout = 30 * time.Second

func main() {
	// Parse command-line flags
	flagConfig := flags.Parse()

	envErr := envconfig.LoadEnvFile(".env")

	config, err := envconfig.Load(flagConfig.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if flagConfig.Port != "" {
		config.Server.Port = flagConfig.Port
	}
	if flagConfig.Storage != "" {
		config.Storage = flagConfig.Storage
	}

	appLogger := logger.New(config.Log)
	defer appLogger.Close()

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		appLogger.Warn("Failed to load .env file", "error", envErr)
	}

	appLogger.Info("Starting cafe service",
		"environment", config.Log.Environment,
		"log_level", config.Log.Level,
		"storage", config.Storage)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store, closeStore, err := openStore(ctx, config, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open store", "error", err)
	}
	defer closeStore()

	orderService := service.NewOrderService(store, appLogger)
	historyService := service.NewOrderHistoryService(store, appLogger)
	taxService := service.NewTaxService(store, appLogger)
	inventoryService := service.NewInventoryService(store, appLogger)
	recipeService := service.NewRecipeService(store, appLogger)
	userService := service.NewUserService(store, appLogger)

	if config.InitialTaxRate != nil {
		if _, err := taxService.SetTaxRate(ctx, *config.InitialTaxRate); err != nil {
			appLogger.Fatal("Failed to apply initial tax rate", "error", err)
		}
	}

	mux := router.New(router.Handlers{
		Orders:    handler.NewOrderHandler(orderService, appLogger),
		History:   handler.NewHistoryHandler(historyService, appLogger),
		Tax:       handler.NewTaxHandler(taxService, appLogger),
		Inventory: handler.NewInventoryHandler(inventoryService, appLogger),
		Recipes:   handler.NewRecipeHandler(recipeService, appLogger),
		Users:     handler.NewUserHandler(userService, appLogger),
		Health:    handler.NewHealthHandler(store, appLogger),
	}, appLogger)

	server := &http.Server{
		Addr:         net.JoinHostPort(config.Server.Host, config.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		appLogger.Info("Starting HTTP server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		appLogger.Error("Could not start server", "error", err)
		return
	case <-time.After(200 * time.Millisecond):
		appLogger.Info("Server started successfully", "address", server.Addr)
	}

	shutdownsetup.SetupGracefulShutdown(server, appLogger)
}

// openStore returns the configured store and a function releasing it.
func openStore(ctx context.Context, config envconfig.AppConfig, log *logger.Logger) (repositories.Store, func(), error) {
	if config.Storage == envconfig.StorageMemory {
		store, err := repositories.NewMemoryStore(log)
		if err != nil {
			return nil, nil, err
		}
		log.Warn("Using in-memory storage; data is lost on restart")
		return store, func() {}, nil
	}

	db, err := database.NewConnection(ctx, config.Database, log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		db.LogStats()
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", "error", err)
		}
	}

	if err := db.HealthCheck(ctx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("database health check failed: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}
	return repositories.NewPostgresStore(db, log), closeDB, nil
}
