package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"contact-dedupe/internal/api"
	"contact-dedupe/internal/api/handlers"
	"contact-dedupe/internal/config"
	"contact-dedupe/internal/contact"
	"contact-dedupe/internal/db"
	"contact-dedupe/internal/health"
	"contact-dedupe/internal/logger"
	"contact-dedupe/internal/matching"
	"contact-dedupe/internal/scheduler"
	"contact-dedupe/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the matching HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Matching.Workers = workers
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "parallel scan workers per request (default MATCH_WORKERS)")

	return cmd
}

// newRouter wires the HTTP API. database and sched are nil when not
// configured.
func newRouter(cfg *config.Config, database *db.Database, sched *scheduler.Scheduler) *gin.Engine {
	router := gin.New()

	router.Use(api.RequestIDMiddleware())
	router.Use(api.LoggingMiddleware())
	router.Use(api.RecoveryMiddleware())

	healthChecker := health.NewHealthChecker(nil, cfg.Database.HealthTimeout)
	if database != nil {
		healthChecker = health.NewHealthChecker(database, cfg.Database.HealthTimeout)
	}
	router.GET("/health", healthChecker.Handler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	dedupeService := service.NewDedupeService(matching.NewEngine(cfg.Matching.Workers))
	matchHandler := handlers.NewMatchHandler(dedupeService, cfg.Input.MaxContacts, cfg.Input.MaxUploadBytes)

	v1 := router.Group("/api/v1")
	{
		matches := v1.Group("/matches")
		{
			matches.POST("", matchHandler.FindMatches)
			matches.POST("/upload", matchHandler.UploadMatches)
		}

		if sched != nil {
			scanHandler := handlers.NewScanHandler(sched)
			v1.GET("/scans/latest", scanHandler.GetLatestScan)
		}
	}

	return router
}

type contactSource interface {
	Load(ctx context.Context) ([]contact.Record, error)
}

func serve(ctx context.Context, cfg *config.Config) error {
	var database *db.Database
	if cfg.Database.URL != "" {
		var err error
		database, err = db.NewDatabase(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close()
		logger.Info().Msg("database connected successfully")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var sched *scheduler.Scheduler
	if cfg.Scan.Schedule != "" {
		var source contactSource = contact.FileSource{Path: cfg.Input.Path}
		if database != nil {
			source = contact.NewPostgresSource(database.Pool, cfg.Database.Table)
		}
		dedupeService := service.NewDedupeService(matching.NewEngine(cfg.Matching.Workers))
		sched = scheduler.NewScheduler(cfg.Scan.Schedule, dedupeService, source)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("invalid SCAN_SCHEDULE %q: %w", cfg.Scan.Schedule, err)
		}
		defer sched.Stop()
	}

	router := newRouter(cfg, database, sched)

	addr := cfg.GetBindAddress()
	// Use a listener so we can discover the selected port when PORT=0
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind listener on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", ln.Addr().String()).
			Int("workers", cfg.Matching.Workers).
			Msg("starting server")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-sigCtx.Done():
	}
	logger.Info().Msg("shutting down server")

	// Give outstanding requests a configured timeout to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("server exited")
	return nil
}
