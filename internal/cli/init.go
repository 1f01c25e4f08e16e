// Package cli provides common process initialization: env bootstrap,
// logging, configuration and record-store construction.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"moneylog/internal/config"
	"moneylog/internal/log"
	"moneylog/internal/storage"
	"moneylog/internal/storage/memory"
)

// SetupLogger initializes structured logging and sets it as default.
func SetupLogger(verbose bool) *log.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{Level: level})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadConfig loads and validates the configuration file plus env
// overrides.
func LoadConfig(logger *log.Logger) (config.Config, error) {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logger.WithComponent(log.ComponentConfig).Debug("configuration loaded",
		log.FieldBackend, cfg.Backend, log.FieldPath, config.Path())
	return cfg, nil
}

// OpenStore constructs the record store selected by the configuration.
func OpenStore(cfg config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return storage.NewSQLiteStore(cfg.SQLitePath)
	case config.BackendMemory:
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// Fatal logs a store-level or otherwise unrecoverable error and
// terminates the invocation with a non-zero status.
func Fatal(logger *log.Logger, msg string, err error) {
	logger.Error(msg, log.FieldError, err)
	os.Exit(1)
}
