// Command server starts the SkillSync recommendation HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsync/skillsync/internal/adapter/ai"
	"github.com/skillsync/skillsync/internal/adapter/ai/openrouter"
	"github.com/skillsync/skillsync/internal/adapter/dataset"
	"github.com/skillsync/skillsync/internal/adapter/httpserver"
	"github.com/skillsync/skillsync/internal/adapter/observability"
	"github.com/skillsync/skillsync/internal/app"
	"github.com/skillsync/skillsync/internal/config"
	"github.com/skillsync/skillsync/internal/ranking"
	"github.com/skillsync/skillsync/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register Prometheus metrics once per process so /metrics exposes
	// HTTP, oracle, and reconciliation instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// The dataset is the ranking ground truth; refusing to start without
	// it beats serving unranked fallback content.
	jobs, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		slog.Error("dataset load failed", slog.String("path", cfg.DatasetPath), slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("dataset loaded", slog.String("path", cfg.DatasetPath), slog.Int("jobs", len(jobs)))

	if cfg.OpenRouterAPIKey == "" {
		slog.Warn("OPENROUTER_API_KEY not set; every request will serve fallback recommendations")
	}

	oracle := openrouter.New(cfg)
	reconciler := ai.NewReconciler()
	ranker := ranking.NewRanker()
	svc := usecase.NewRecommendService(oracle, reconciler, ranker, ai.BuildPrompt, jobs)

	srv := httpserver.NewServer(cfg, svc, len(jobs))
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
