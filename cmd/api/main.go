package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/app"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/mongodb"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/hash"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/mailtrap"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/minio"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/sentry"
	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/services/token"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func run() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	logger.Info("GOMAXPROCS", "cpu", runtime.GOMAXPROCS(0))

	// The signing secret is an operational precondition; fail fast rather
	// than serving requests that cannot issue tokens.
	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("JWT_SECRET must be set")
	}

	// 1. Initialize Store
	store := mongodb.New()

	// 2. Initialize Services
	hashService := hash.NewHashService()
	tokenService := token.NewTokenService()
	mailService := mailtrap.NewMailtrapService()
	sentryService := sentry.NewSentryService()
	defer sentryService.Close()

	storageService := minio.NewMinioService()
	if storageService == nil {
		return errors.New("object storage initialization failed")
	}
	if err := storageService.EnsureBucket(context.Background()); err != nil {
		logger.Warn("avatar bucket not ready", "error", err)
	}

	// 3. Initialize App
	application := app.NewApp(store, hashService, tokenService, mailService, storageService, sentryService)

	// 4. Configure Server
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080 // Fallback default
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      application.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// 5. Graceful Shutdown Logic
	done := make(chan bool, 1)
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down gracefully, press Ctrl+C again to force")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server forced to shutdown", "error", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("Store close failed", "error", err)
		}
		done <- true
	}()

	// 6. Start Server
	logger.Info("Starting server", "port", srv.Addr)
	err := srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}

	<-done
	logger.Info("Graceful shutdown complete")
	return nil
}
