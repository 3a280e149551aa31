package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/runlog/internal/adapters/notion"
	"github.com/emiliopalmerini/runlog/internal/adapters/otel"
	"github.com/emiliopalmerini/runlog/internal/adapters/turso"
	"github.com/emiliopalmerini/runlog/internal/util"
)

// Notion holds the credential and target database of the remote sink.
// Neither is required here; a missing value fails the upload instead.
type Notion struct {
	APIKey     string        `envconfig:"NOTION_API_KEY"`
	DatabaseID string        `envconfig:"NOTION_DATABASE_ID"`
	BaseURL    string        `envconfig:"NOTION_BASE_URL" default:"https://api.notion.com"`
	Version    string        `envconfig:"NOTION_VERSION" default:"2022-06-28"`
	Timeout    time.Duration `envconfig:"NOTION_TIMEOUT" default:"30s"`
}

// Client returns the API client settings.
func (n Notion) Client() notion.Config {
	return notion.Config{
		APIKey:  n.APIKey,
		BaseURL: n.BaseURL,
		Version: n.Version,
		Timeout: n.Timeout,
	}
}

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	Notion   Notion
	Database turso.Config
	Otel     otel.Config
}

// LoadEnvFile loads variables from path into the environment without
// overriding ones already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve env file %s: %w", path, err)
	}
	if err := godotenv.Load(absPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load env file %s: %w", absPath, err)
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg.Notion); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.Database); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.Otel); err != nil {
		return nil, err
	}

	if cfg.Database.Path == "" {
		dataDir, err := util.GetXDGDataDir()
		if err != nil {
			return nil, err
		}
		cfg.Database.Path = filepath.Join(dataDir, "runlog.db")
	}

	return &cfg, nil
}
