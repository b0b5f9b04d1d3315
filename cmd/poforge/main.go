package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/poforge/poforge/internal/adapter/memstore"
	pfotel "github.com/poforge/poforge/internal/adapter/otel"
	"github.com/poforge/poforge/internal/adapter/ristretto"
	"github.com/poforge/poforge/internal/config"
	"github.com/poforge/poforge/internal/logger"
	pfmw "github.com/poforge/poforge/internal/middleware"
	"github.com/poforge/poforge/internal/port/a2a"
	"github.com/poforge/poforge/internal/service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

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

	slog.SetDefault(logger.New(logger.Config{Level: cfg.Logging.Level, Service: cfg.Logging.Service}))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"store_ttl", cfg.Store.TTL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Telemetry ---
	shutdownTelemetry, err := pfotel.Setup(ctx, cfg.Logging.Service, cfg.Telemetry.Endpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			slog.Error("telemetry shutdown", "error", err)
		}
	}()

	metrics, err := pfotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Services ---
	store := memstore.New(memstore.WithTTL(cfg.Store.TTL, cfg.Store.SweepInterval))
	processor := service.NewProcessor(store, metrics)

	card := a2a.BuildAgentCard(a2a.CardConfig{
		Name:        cfg.Agent.Name,
		Description: cfg.Agent.Description,
		URL:         cfg.Agent.URL,
		Version:     cfg.Agent.Version,
	})
	handler := a2a.NewHandler(card, processor)

	// --- HTTP ---
	r := chi.NewRouter()

	r.Use(pfmw.CORS(cfg.Server.CORSOrigin))
	r.Use(pfmw.RequestID)
	r.Use(pfmw.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	if cfg.Telemetry.Endpoint != "" {
		r.Use(pfotel.HTTPMiddleware(cfg.Logging.Service))
	}
	if cfg.Idempotency.Enabled {
		replayCache, cacheErr := ristretto.New(cfg.Idempotency.MaxSizeMB << 20)
		if cacheErr != nil {
			return fmt.Errorf("idempotency cache: %w", cacheErr)
		}
		defer replayCache.Close()
		r.Use(pfmw.Idempotency(replayCache, cfg.Idempotency.TTL))
	}

	r.Get("/health", healthHandler(store))
	handler.MountRoutes(r)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return store.Run(gctx)
	})

	g.Go(func() error {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// healthHandler returns an http.HandlerFunc that reports service health.
func healthHandler(store *memstore.Store) http.HandlerFunc {
	type healthStatus struct {
		Status string `json:"status"`
		Tasks  int    `json:"tasks"`
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		status := healthStatus{
			Status: "ok",
			Tasks:  store.Len(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(status)
	}
}
