// Command storefront runs the headless WooCommerce storefront proxy.
//
// It fronts two WooCommerce APIs: the unauthenticated Store API for cart
// sessions and the credentialed wc/v3 API for products and orders, exposing
// a single normalized JSON API to the storefront frontend.
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

	"storefront-proxy/internal/config"
	"storefront-proxy/internal/handler"
	"storefront-proxy/internal/middleware"
	"storefront-proxy/internal/wcv3"
	"storefront-proxy/internal/woocommerce"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	store, err := woocommerce.New(woocommerce.Config{
		StoreURL: cfg.Store.StoreURL,
	})
	if err != nil {
		logger.Error("failed to create store api client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	catalog, err := wcv3.New(wcv3.Config{
		StoreURL:       cfg.Store.StoreURL,
		ConsumerKey:    cfg.Store.ConsumerKey,
		ConsumerSecret: cfg.Store.ConsumerSecret,
	})
	if err != nil {
		logger.Error("failed to create wc/v3 client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	h := handler.New(store, catalog, cfg.Store.PaymentMethod, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logging(logger),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           chain(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			slog.String("port", cfg.Port),
			slog.String("environment", cfg.Environment),
			slog.String("store", cfg.Store.StoreDomain),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}
}

// newLogger builds the process logger: JSON in production for log
// aggregation, text locally.
func newLogger(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.Environment == "production" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
