package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lixumin/vocabvid-gateway/internal/auth"
	"github.com/lixumin/vocabvid-gateway/internal/config"
	"github.com/lixumin/vocabvid-gateway/internal/credstore"
	credsqlite "github.com/lixumin/vocabvid-gateway/internal/credstore/sqlite"
	"github.com/lixumin/vocabvid-gateway/internal/frontdoor/vocab"
	geminiprovider "github.com/lixumin/vocabvid-gateway/internal/provider/gemini"
	"github.com/lixumin/vocabvid-gateway/internal/server"
	"github.com/lixumin/vocabvid-gateway/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize OpenTelemetry
	shutdownTracer, err := telemetry.InitTracer("vocabvid-gateway", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	store, cleanup, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize credential store: %v", err)
	}
	defer cleanup()

	tokens := auth.NewTokenService([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)
	authenticator := auth.NewAuthenticator(store, tokens)

	var providerOpts []geminiprovider.ProviderOption
	if cfg.Gemini.BaseURL != "" {
		providerOpts = append(providerOpts, geminiprovider.WithBaseURL(cfg.Gemini.BaseURL))
	}
	generator := geminiprovider.New(cfg.Gemini.APIKey, cfg.Gemini.Model, providerOpts...)

	handler := vocab.NewHandler(authenticator, generator)

	srv := server.New(cfg.Server.Port, logger)

	requireAuth := server.AuthMiddleware(authenticator)
	srv.Router.With(server.TimeoutMiddleware(cfg.Server.RequestTimeout)).
		Post("/token", handler.HandleToken)
	srv.Router.With(server.TimeoutMiddleware(cfg.Server.RequestTimeout), requireAuth).
		Get("/users/me", handler.HandleMe)
	// Generation holds the connection open while relaying, so it gets the
	// longer stream deadline.
	srv.Router.With(server.TimeoutMiddleware(cfg.Server.StreamTimeout), requireAuth).
		Post("/gen-sentence", handler.HandleGenerate)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case <-sigCh:
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("gateway stopped")
}

// buildStore constructs the configured credential store and seeds it with the
// users from config.
func buildStore(cfg *config.Config) (credstore.Store, func(), error) {
	seed := cfg.SeedUsers()

	switch cfg.Storage.Type {
	case "sqlite":
		store, err := credsqlite.New(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		for i := range seed {
			if err := store.Upsert(context.Background(), &seed[i]); err != nil {
				store.Close()
				return nil, nil, err
			}
		}
		return store, func() { store.Close() }, nil
	default:
		return credstore.NewMemoryStore(seed), func() {}, nil
	}
}
