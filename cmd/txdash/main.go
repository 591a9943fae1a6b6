package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"txdash/internal/cli"
	apphttp "txdash/internal/http"
	applog "txdash/internal/log"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg, os.Stdout)

	src, err := cli.NewSource(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to initialize transaction source", applog.FieldError, err, applog.FieldSource, cfg.DataSource)
		os.Exit(1)
	}
	logger.Info("Initialized transaction source", applog.FieldSource, cfg.DataSource)

	srv := apphttp.NewServer(":"+cfg.Port, src, apphttp.Options{
		RateLimitRPM:      cfg.RateLimitRPM,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		Logger:            logger,
	})

	// Configure server timeouts and limits. WriteTimeout leaves room for a full fetch.
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = cfg.FetchTimeout + 10*time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(shutdownCtx context.Context) {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
	})

	logger.Info("Starting txdash server", "port", cfg.Port, applog.FieldSource, cfg.DataSource)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
