package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/kanbanlab/faultgate/internal/config"
	"github.com/kanbanlab/faultgate/internal/errorhandler"
	"github.com/kanbanlab/faultgate/internal/server"
	"github.com/kanbanlab/faultgate/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("FAULTGATE_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	// Initialize OpenTelemetry
	shutdown, err := telemetry.InitTracer("faultgate", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	srv := server.New(cfg.Server.Port, logger,
		errorhandler.WithEndpointFunc(endpointLookup(cfg)),
		errorhandler.WithReporter(errorhandler.NewReporter(nil, cfg.ReportTimeout(), logger)),
	)
	registerRoutes(srv.Router)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if cfg.Collector.Endpoint == "" && os.Getenv(errorhandler.EndpointEnvVar) == "" {
		logger.Info("diagnostic reporting disabled, no collector endpoint configured")
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
}

// endpointLookup prefers the file-configured endpoint and falls back to a
// live env read, so operators can point reporting elsewhere without a
// restart.
func endpointLookup(cfg *config.Config) func() string {
	return func() string {
		if cfg.Collector.Endpoint != "" {
			return cfg.Collector.Endpoint
		}
		return os.Getenv(errorhandler.EndpointEnvVar)
	}
}

func logLevel(level string) slog.Level {
	switch level {
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

// registerRoutes mounts a small board API used to exercise the pipeline.
func registerRoutes(r *chi.Mux) {
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/boards/{boardId}", errorhandler.E(getBoard))

	// Deliberate panic route for verifying interception end to end
	r.Get("/boards/{boardId}/explode", func(w http.ResponseWriter, req *http.Request) {
		panic(fmt.Sprintf("board %s exploded", chi.URLParam(req, "boardId")))
	})
}

func getBoard(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "boardId")
	if id == "demo" {
		w.Header().Set("Content-Type", "application/json")
		return json.NewEncoder(w).Encode(map[string]string{
			"id":   id,
			"name": "Demo Board",
		})
	}
	return fmt.Errorf("load board %s: %w", id, errBoardNotFound)
}

var errBoardNotFound = errors.New("board not found")
