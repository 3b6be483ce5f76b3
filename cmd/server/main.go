// Package main is the entry point for the bahikhata API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bahikhata/internal/domain/auth"
	"bahikhata/internal/domain/documents/invoice"
	v1 "bahikhata/internal/infrastructure/http/v1"
	"bahikhata/internal/infrastructure/render/pdf"
	"bahikhata/internal/infrastructure/storage/postgres"
	"bahikhata/internal/infrastructure/storage/postgres/auth_repo"
	"bahikhata/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting bahikhata server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Auth ---
	jwtSecret := getEnv("JWT_SECRET", "change-me-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))
	settingsRepo := auth_repo.NewSettingsRepo(txManager)
	authService := auth.NewService(settingsRepo, jwtService, auth.DefaultServiceConfig())

	if err := authService.EnsureAdminPassword(ctx); err != nil {
		log.Fatalw("failed to ensure admin password", "error", err)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:        pool,
		TxManager:   txManager,
		Logger:      log,
		AuthService: authService,
		Invoice: invoice.Config{
			EnforceCreditLimit: getEnv("ENFORCE_CREDIT_LIMIT", "false") == "true",
		},
		Business: pdf.BusinessInfo{
			Name:    getEnv("BUSINESS_NAME", "My Shop"),
			GSTIN:   getEnv("BUSINESS_GSTIN", ""),
			Address: getEnv("BUSINESS_ADDRESS", ""),
		},
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
