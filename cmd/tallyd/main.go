package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/backend"
	"tally/internal/cli"
	"tally/internal/config"
	apphttp "tally/internal/http"
	"tally/internal/log"
)

const (
	shutdownTimeout     = 30 * time.Second
	maintenanceInterval = time.Minute
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg, os.Stdout, log.ComponentApp)

	ctx, stop := cli.SignalContext(context.Background())
	err = run(ctx, cfg, logger, nil)
	stop()
	if err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// run serves until ctx is cancelled or the server fails. The backend is
// closed before run returns either way. A nil ln listens on cfg.Port.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, ln net.Listener) (err error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid backend configuration: %w", err)
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return fmt.Errorf("initialize %s backend: %w", cfg.DataBackend, err)
	}
	defer func() {
		if cerr := res.Cleanup(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("backend cleanup: %w", cerr))
		}
	}()

	srv, err := apphttp.NewServer(apphttp.Config{
		Addr:              ":" + cfg.Port,
		RequestsPerMinute: cfg.RateLimitPerMinute,
		CacheTTL:          cfg.CacheTTL,
		TrustedProxies:    cfg.TrustedProxies,
	}, res.Service, res.Pinger, logger)
	if err != nil {
		return fmt.Errorf("configure server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting tally server", "port", cfg.Port, "backend", cfg.DataBackend)
		var serveErr error
		if ln != nil {
			serveErr = srv.Serve(ln)
		} else {
			serveErr = srv.ListenAndServe()
		}
		if !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})
	g.Go(func() error {
		return srv.RunMaintenance(gctx, maintenanceInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
