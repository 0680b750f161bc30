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

	"debatebot/config"
	"debatebot/db"
	"debatebot/internal/ratelimit"
	"debatebot/routes"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	deps := routes.Dependencies{Generator: gen, Logger: logger}

	if cfg.Database.Driver != "" {
		archive, err := db.Open(ctx, cfg.Database.Driver, cfg.Database.URI)
		if err != nil {
			return err
		}
		defer archive.Close(context.Background())
		deps.Archive = archive
		logger.Info("debate archive enabled", "driver", cfg.Database.Driver)
	}

	if limiter := newLimiter(ctx, cfg, logger); limiter != nil {
		deps.Limiter = limiter
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           routes.NewRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "model", cfg.Gemini.Model)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newLimiter connects to Redis when configured. Without Redis the API runs
// unlimited; a failed connection is logged rather than fatal.
func newLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) *ratelimit.RateLimiter {
	if cfg.Redis.Addr == "" {
		return nil
	}
	rdb, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", "addr", cfg.Redis.Addr, "error", err)
		return nil
	}
	logger.Info("rate limiting enabled", "addr", cfg.Redis.Addr, "max_requests", cfg.RateLimit.MaxRequests)
	return ratelimit.NewRateLimiter(rdb, ratelimit.Config{
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
	})
}
