// Package cli holds start-up helpers shared by the tally binaries and the
// terminal rendering used by the tally command.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"tally/internal/config"
	"tally/internal/log"
)

// SetupLogger builds the logger described by cfg, writing to w, and makes it
// the default logger.
func SetupLogger(cfg *config.Config, w io.Writer, component string) *slog.Logger {
	logger := log.New(w, log.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Component: component,
	})
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads a .env file for local development. A missing file is
// not an error.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
