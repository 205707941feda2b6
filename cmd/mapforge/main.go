package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mapforge/mapforge/internal/adapter/gmaps"
	mfhttp "github.com/mapforge/mapforge/internal/adapter/http"
	mfotel "github.com/mapforge/mapforge/internal/adapter/otel"
	"github.com/mapforge/mapforge/internal/adapter/ristretto"
	"github.com/mapforge/mapforge/internal/config"
	"github.com/mapforge/mapforge/internal/executor"
	"github.com/mapforge/mapforge/internal/logger"
	"github.com/mapforge/mapforge/internal/manifest"
	"github.com/mapforge/mapforge/internal/middleware"
	"github.com/mapforge/mapforge/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"cache_enabled", cfg.Cache.Enabled,
	)

	ctx := context.Background()

	// --- Telemetry ---
	shutdownOtel, err := mfotel.Init(ctx, cfg.Telemetry.OTLPEndpoint, cfg.Logging.Service)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownOtel(shutdownCtx)
	}()

	metrics, err := mfotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Upstream client ---
	upstream := gmaps.NewClient(cfg.Maps.BaseURL, cfg.Maps.APIKey, cfg.Maps.Timeout)
	if cfg.Cache.Enabled {
		cache, err := ristretto.New(cfg.Cache.MaxSizeMB)
		if err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		defer cache.Close()
		upstream.SetCache(cache, cfg.Cache.TTL)
		slog.Info("upstream response cache enabled", "max_size_mb", cfg.Cache.MaxSizeMB, "ttl", cfg.Cache.TTL)
	}

	// --- Core ---
	tasks := store.NewMemory()
	mf := manifest.New()
	exec := executor.New(tasks, mf, upstream, metrics)

	handlers := &mfhttp.Handlers{
		Manifest: mf,
		Store:    tasks,
		Executor: exec,
		BaseURL:  "http://localhost:" + cfg.Server.Port,
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(mfhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(middleware.RequestID)
	r.Use(mfhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(mfotel.HTTPMiddleware(cfg.Logging.Service))

	mfhttp.MountRoutes(r, handlers, cfg.Auth.APIKey)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
