package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/swatto/ocitotelegram/internal/handler"
)

const (
	// AppName is the name of the application
	AppName = "ocitotelegram"
	// AppDescription provides a brief description of the application
	AppDescription = "OCI Notifications webhook to Telegram bridge"
)

// Version can be set at build time via ldflags
var Version = "1.0.0"

// loadConfig builds the handler configuration and listen port from the
// environment.
func loadConfig() (*handler.Config, string) {
	maxSummaryLength := 200
	if maxLenStr := os.Getenv("MAX_SUMMARY_LENGTH"); maxLenStr != "" {
		if parsedLen, err := strconv.Atoi(maxLenStr); err == nil && parsedLen > 0 {
			maxSummaryLength = parsedLen
		}
	}

	cfg := &handler.Config{
		BotToken:         os.Getenv("TOKEN"),
		ChatID:           os.Getenv("CHAT_ID"),
		TelegramBaseURL:  os.Getenv("TELEGRAM_BASE_URL"),
		MaxSummaryLength: maxSummaryLength,
		LogFormat:        os.Getenv("LOG_FORMAT"),
		DryRun:           os.Getenv("DRY_RUN") == "true",
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	return cfg, port
}

// run starts the HTTP server and blocks until ctx is cancelled or the server
// fails.
func run(ctx context.Context) error {
	cfg, port := loadConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	h := handler.New(cfg, Version)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler.LogRequests(cfg.LogFormat, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)

	printBanner(port, cfg)

	go func() {
		slog.Info("Server started successfully", "app", AppName, "version", Version, "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start HTTP server: %w", err)
	case <-ctx.Done():
		slog.Info("Shutting down server...")
	}

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to terminate: %w", err)
	}

	slog.Info("Server stopped gracefully")
	return nil
}

func main() {
	// A .env file next to the binary is optional; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("startup: "+AppName+" failed", "error", err)
		os.Exit(1)
	}
}
