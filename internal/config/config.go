// Package config holds the process-wide configuration: which record
// store backend to use and where its data lives. It is loaded once at
// startup and passed into the components that need store access.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultPath is the config file written by the `config` subcommand,
// relative to the working directory; MONEYLOG_CONFIG overrides it.
const DefaultPath = "./moneylog_config.json"

type Config struct {
	// Backend selects the record store implementation.
	Backend string `json:"backend"`
	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `json:"sqlite_path"`
	// ExportDir is where json/csv exports are written.
	ExportDir string `json:"export_dir"`
}

func defaults() Config {
	return Config{
		Backend:    BackendSQLite,
		SQLitePath: "./data/moneylog.db",
		ExportDir:  ".",
	}
}

// Path returns the config file location, honoring MONEYLOG_CONFIG.
func Path() string {
	if p := os.Getenv("MONEYLOG_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the config file when present and applies environment
// overrides on top. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env and defaults
	default:
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg.Backend = getEnv("MONEYLOG_BACKEND", cfg.Backend)
	cfg.SQLitePath = getEnv("MONEYLOG_DB_PATH", cfg.SQLitePath)
	cfg.ExportDir = getEnv("MONEYLOG_EXPORT_DIR", cfg.ExportDir)
	return cfg, nil
}

// Save writes the config file, creating parent directories as needed.
func (c Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}
	return nil
}

// Validate returns an error describing every invalid field.
func (c Config) Validate() error {
	var errs []string

	switch c.Backend {
	case BackendSQLite, BackendMemory:
	default:
		errs = append(errs, fmt.Sprintf("invalid backend %q: must be %q or %q", c.Backend, BackendSQLite, BackendMemory))
	}
	if c.Backend == BackendSQLite && strings.TrimSpace(c.SQLitePath) == "" {
		errs = append(errs, "sqlite_path cannot be empty for the sqlite backend")
	}
	if strings.TrimSpace(c.ExportDir) == "" {
		errs = append(errs, "export_dir cannot be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
