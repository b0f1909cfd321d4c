package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"greenpatch/internal/config"
	"greenpatch/internal/engine"
	"greenpatch/internal/handlers"
	"greenpatch/internal/media"
	"greenpatch/internal/middleware"
	"greenpatch/internal/storage"
	"greenpatch/internal/utils"
	"greenpatch/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	kv, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	log.Printf("Using %s storage backend", cfg.Storage.Backend)

	metrics := utils.NewMetricsCollector()
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Close()

	var uploader media.Uploader
	if cfg.Media.Enabled() {
		store, err := media.NewStore(cfg.Media)
		if err != nil {
			return fmt.Errorf("media store: %w", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			log.Printf("Media bucket unavailable, uploads disabled: %v", err)
		} else {
			uploader = store
		}
	}

	system := actor.NewActorSystem()
	defer system.Shutdown()

	e := engine.NewEngine(system, kv, metrics, hub, engine.Options{
		RequestTimeout: cfg.Server.RequestTimeout,
		WriteTimeout:   cfg.Storage.WriteTimeout,
	})
	if err := e.Start(ctx); err != nil {
		return fmt.Errorf("start engine: %w", err)
	}

	handler, err := buildHandler(cfg, e, hub, uploader)
	if err != nil {
		_ = e.Stop(context.Background())
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = e.Stop(context.Background())
			return err
		}
	case <-ctx.Done():
		log.Printf("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
	if err := e.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("stop engine: %w", err)
	}
	log.Printf("Server stopped")
	return nil
}

// buildHandler wires the routes behind CORS and session middleware.
func buildHandler(cfg *config.Config, e *engine.Engine, hub *websocket.Hub, uploader media.Uploader) (http.Handler, error) {
	tokens := middleware.NewTokenIssuer(cfg.JWTSecret)
	server := handlers.NewServer(e, tokens, hub, uploader, cfg.AllowedOrigins)
	mux := server.Routes()

	if cfg.Server.MetricsEnabled {
		reg := prometheus.NewRegistry()
		if err := e.Metrics().Register(reg); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	cors := middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.AllowedOrigins))
	return cors(tokens.AuthMiddleware(mux)), nil
}
