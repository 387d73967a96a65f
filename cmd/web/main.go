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

	"github.com/GoSim-25-26J-441/stroke-coach/config"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/bootstrap"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/logging"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/service"
)

const serviceName = "stroke-coach"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logging.New(os.Stderr, cfg.App.Environment, cfg.App.LogLevel))
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.OpenHandoffStore(ctx, bootstrap.StoreOptions{
		Backend: cfg.Handoff.Backend,
		TTL:     cfg.Handoff.TTL,
		LockTTL: service.LockTTL(cfg.Analyzer.Timeout),
		Redis: bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
	})
	if err != nil {
		slog.Error("open handoff store", "backend", cfg.Handoff.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	analyzer := service.NewAnalyzerClient(cfg.Analyzer.BaseURL, service.ClientOptions{
		Timeout:    cfg.Analyzer.Timeout,
		RatePerSec: cfg.Analyzer.RatePerSec,
		Burst:      cfg.Analyzer.Burst,
	})

	submissions := service.NewSubmissionService(analyzer, store, store).
		WithCallTimeout(cfg.Analyzer.Timeout)

	router, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Analyzer:       analyzer,
		Submissions:    submissions,
		HandoffStore:   store,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		CORSOrigins:    cfg.Server.CORSOrigins,
		SecureCookies:  cfg.Server.SecureCookies,
	})
	if err != nil {
		slog.Error("build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("listening",
			"addr", srv.Addr,
			"analyzer", analyzer.BaseURL(),
			"handoff_backend", store.Name(),
			"version", cfg.App.Version,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownPeriod)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
