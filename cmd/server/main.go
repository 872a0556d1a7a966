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

	"stockfeed/internal/app"
)

func main() {
	a, err := app.InitializeApp(app.ConfigPath(os.Getenv("CONFIG_FILE")))
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	logger := a.Logger
	slog.SetDefault(logger)
	cfg := a.Config

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newHandler(a.Aggregator, cfg.Polygon.NewsLimit, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.RequestTimeoutSec)*time.Second + 20*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "favorites", len(cfg.Favorites))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", "err", err)
	}
}

// newHandler wires routes and middlewares around svc.
func newHandler(svc service, newsLimit int, logger *slog.Logger) http.Handler {
	h := &handlers{svc: svc, newsLimit: newsLimit, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("GET /api/search", h.search)
	mux.HandleFunc("GET /api/details", h.detailsGet)
	mux.HandleFunc("POST /api/details", h.detailsPost)
	mux.HandleFunc("GET /api/favorites", h.favorites)
	mux.HandleFunc("GET /api/history/{symbol}", h.history)
	mux.HandleFunc("GET /api/news/{symbol}", h.news)

	return withRequestLog(logger, withJSONHeaders(withGzip(recoverPanic(logger, limitBody(mux)))))
}
