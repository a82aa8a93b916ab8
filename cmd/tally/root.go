package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tally/internal/backend"
	"tally/internal/cli"
	"tally/internal/config"
	"tally/internal/log"
)

// env carries the resolved configuration and open backend for one command.
type env struct {
	cfg     *config.Config
	backend *backend.BackendResult
}

type envKey struct{}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "tally",
		Short:         "Personal expense log",
		Long:          `tally records personal expenses and shows running totals, filtered lists and a month-by-month chart.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/tally/config.yaml)")
	flags.String("backend", "", "storage backend (memory, sqlite)")
	flags.String("db", "", "SQLite database path")
	flags.String("data-dir", "", "seed directory for the memory backend")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("backend", flags.Lookup("backend"))
	_ = v.BindPFlag("sqlite_path", flags.Lookup("db"))
	_ = v.BindPFlag("data_dir", flags.Lookup("data-dir"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(v, cfgFile)
		if err != nil {
			return err
		}
		logger := cli.SetupLogger(cfg, cmd.ErrOrStderr(), log.ComponentCLI)

		bcfg, err := backend.FromAppConfig(cfg)
		if err != nil {
			return err
		}
		res, err := backend.NewFactory(logger).CreateBackend(cmd.Context(), bcfg)
		if err != nil {
			return err
		}
		cmd.SetContext(withEnv(cmd.Context(), &env{cfg: cfg, backend: res}))
		return nil
	}

	root.AddCommand(addCmd())
	root.AddCommand(listCmd())
	root.AddCommand(recentCmd())
	root.AddCommand(deleteCmd())
	root.AddCommand(chartCmd())
	root.AddCommand(totalCmd())
	root.AddCommand(monthsCmd())
	root.AddCommand(resetCmd())
	return root
}

// loadConfig layers the config file, TALLY_* variables and flags over the
// environment configuration shared with tallyd.
func loadConfig(v *viper.Viper, cfgFile string) (*config.Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "tally"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("TALLY")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := config.Load()
	// Expenses added from the terminal must survive the process.
	if os.Getenv("DATA_BACKEND") == "" {
		cfg.DataBackend = "sqlite"
	}
	override := func(dst *string, key string) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	override(&cfg.DataBackend, "backend")
	override(&cfg.SQLiteDBPath, "sqlite_path")
	override(&cfg.DataDir, "data_dir")
	override(&cfg.StorageKey, "storage_key")
	override(&cfg.LogLevel, "log_level")
	// The terminal client never publishes change events.
	cfg.AMQPURL = ""

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
