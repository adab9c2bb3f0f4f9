package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/inventory-api/internal/auth"
	"github.com/dimitrije/inventory-api/internal/config"
	"github.com/dimitrije/inventory-api/internal/handlers"
	"github.com/dimitrije/inventory-api/internal/inventory"
	"github.com/dimitrije/inventory-api/internal/logging"
	"github.com/dimitrije/inventory-api/internal/server"
	"github.com/dimitrije/inventory-api/internal/storage"
	"github.com/dimitrije/inventory-api/internal/uploads"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "inventory-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Info(ctx, "storage ready", "backend", cfg.Storage.Backend)

	keys, err := openKeySet(ctx, cfg, logger)
	if err != nil {
		return err
	}

	verifier := auth.NewVerifier(auth.Config{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		Algorithms: cfg.Auth.Algorithms,
	}, keys)

	inventoryService := inventory.NewService(store, cfg.Storage.InventoryKey, logger.With("document", cfg.Storage.InventoryKey))
	uploadService := uploads.NewService(store, cfg.Storage.UploadsKey, logger.With("document", cfg.Storage.UploadsKey))

	router := server.NewRouter(server.Options{
		Production: cfg.IsProduction(),
		Logger:     logger,
		Verifier:   verifier,
		Inventory:  handlers.NewInventoryHandler(inventoryService, verifier, logger),
		Uploads:    handlers.NewUploadHandler(uploadService, logger),
	})

	srv := server.New(fmt.Sprintf(":%s", cfg.Port), server.NewHandler(router, logger), logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info(shutdownCtx, "server stopped")
	return nil
}

// openKeySet returns nil when auth is not configured; the verifier then
// fails every check as a configuration error.
func openKeySet(ctx context.Context, cfg *config.Config, logger logging.Logger) (auth.KeySet, error) {
	if !cfg.AuthConfigured() {
		logger.Warn(ctx, "AUTH_ISSUER or AUTH_AUDIENCE not set; writes will fail")
		return nil, nil
	}

	jwksURL := cfg.Auth.JWKSURL
	if jwksURL == "" {
		jwksURL = auth.JWKSURL(auth.NormalizeIssuer(cfg.Auth.Issuer))
	}

	keys, err := auth.NewRemoteKeySet(ctx, jwksURL, auth.RemoteKeySetOptions{
		RefreshInterval: cfg.Auth.JWKSRefresh,
		HTTPTimeout:     cfg.Auth.JWKSHTTPTimeout,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up signing keys: %w", err)
	}
	logger.Info(ctx, "signing keys configured", "jwks_url", jwksURL)
	return keys, nil
}
