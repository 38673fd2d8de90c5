package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/giftcircle/giftcircle/internal/auth"
	"github.com/giftcircle/giftcircle/internal/directory"
	"github.com/giftcircle/giftcircle/internal/events"
	"github.com/giftcircle/giftcircle/internal/httpapi"
	"github.com/giftcircle/giftcircle/internal/service"
	"github.com/giftcircle/giftcircle/internal/storage/sqlite"
	"github.com/giftcircle/giftcircle/pkg/logging"
)

func main() {
	loadEnv()
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/giftcircle.db")
	port := getEnv("PORT", "8080")
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		slog.Error("Invalid TOKEN_TTL", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	bus := events.New()

	dir := directory.New(store)
	if err := dir.Refresh(context.Background()); err != nil {
		slog.Error("Failed to load user directory", "error", err)
		os.Exit(1)
	}
	dir.Watch(bus)

	jwtManager := auth.NewJWTManager(jwtSecret, tokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	server := &httpapi.Server{
		Auth:          service.NewAuthService(authenticator, jwtManager, store, bus),
		Items:         service.NewItemService(store, bus),
		Proposals:     service.NewProposalService(store, bus),
		Money:         service.NewMoneyService(store, dir, bus),
		Contributions: service.NewContributionService(store, dir),
		Questions:     service.NewQuestionService(store),
		Directory:     dir,
		JWT:           jwtManager,
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      server.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "port", port, "db", dbPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}

// loadEnv reads .env if present. Variables already set in the environment
// win over the file.
func loadEnv() {
	vars, err := godotenv.Read()
	if err != nil {
		return
	}
	for key, value := range vars {
		if _, set := os.LookupEnv(key); !set {
			os.Setenv(key, value)
		}
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
