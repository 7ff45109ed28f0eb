// Command invoicegen starts the invoice generator HTTP server.
//
// Drafts, the invoice counter and the invoice history are kept in a single
// BoltDB file. Run with:
//
//	go run .
//
// Configuration comes from the environment (or a .env file): PORT (default
// 8080), DB_PATH (default invoices.db), HISTORY_LIMIT, CURRENCY_PREFIX,
// BUSINESS_NAME, LOG_LEVEL and CORS_ALLOWED_ORIGINS.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/arkantrust/invoicegen/config"
	"github.com/arkantrust/invoicegen/handlers"
	"github.com/arkantrust/invoicegen/invoice"
	"github.com/arkantrust/invoicegen/metrics"
	"github.com/arkantrust/invoicegen/render"
	"github.com/arkantrust/invoicegen/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	s, err := store.New(cfg.DBPath,
		store.WithHistoryLimit(cfg.HistoryLimit),
		store.WithLogger(logger),
	)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer s.Close()

	h := handlers.New(s, invoice.NewBuilder(), render.New(cfg.CurrencyPrefix, cfg.BusinessName), logger)

	mux := http.NewServeMux()
	h.Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	// The front end is served from another origin during development.
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CorsAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           c.Handler(logRequests(logger, metrics.Middleware(mux))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("listening", "addr", srv.Addr, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	slog.Info("stopped")
}

// logRequests logs one line per request with its status and duration.
func logRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &metrics.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.Status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
