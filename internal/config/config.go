// Package config loads the root curator configuration from TOML files and
// environment variables. A base config.toml is optional; a CURATOR_ENV
// overlay (config.<env>.toml) merges over it, and CURATOR_* environment
// variables override both.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/curator/internal/engine"
	"github.com/JaimeStill/curator/internal/oracle"
	"github.com/JaimeStill/curator/internal/runner"
	"github.com/JaimeStill/curator/pkg/database"
	"github.com/JaimeStill/curator/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvCuratorEnv             = "CURATOR_ENV"
	EnvCuratorShutdownTimeout = "CURATOR_SHUTDOWN_TIMEOUT"
	EnvCuratorVersion         = "CURATOR_VERSION"
	EnvCuratorTaxonomyPath    = "CURATOR_TAXONOMY_PATH"
	EnvCuratorPatternsPath    = "CURATOR_PATTERNS_PATH"
)

var databaseEnv = &database.Env{
	Host:            "CURATOR_DB_HOST",
	Port:            "CURATOR_DB_PORT",
	Name:            "CURATOR_DB_NAME",
	User:            "CURATOR_DB_USER",
	Password:        "CURATOR_DB_PASSWORD",
	SSLMode:         "CURATOR_DB_SSL_MODE",
	MaxOpenConns:    "CURATOR_DB_MAX_OPEN_CONNS",
	ConnMaxLifetime: "CURATOR_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "CURATOR_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "CURATOR_STORAGE_CONTAINER_NAME",
	ConnectionString: "CURATOR_STORAGE_CONNECTION_STRING",
}

var oracleEnv = &oracle.Env{
	Model:       "CURATOR_ORACLE_MODEL",
	BaseURL:     "CURATOR_ORACLE_BASE_URL",
	Token:       "CURATOR_ORACLE_TOKEN",
	MaxRetries:  "CURATOR_ORACLE_MAX_RETRIES",
	RetryBase:   "CURATOR_ORACLE_RETRY_BASE",
	CallTimeout: "CURATOR_ORACLE_CALL_TIMEOUT",
}

// Config is the root configuration for the curator commands.
type Config struct {
	Database database.Config `toml:"database"`
	Storage  storage.Config  `toml:"storage"`
	Oracle   oracle.Config   `toml:"oracle"`
	Engine   engine.Config   `toml:"engine"`
	Runner   runner.Config   `toml:"runner"`

	// TaxonomyPath locates the allowed-label taxonomy document.
	// PatternsPath optionally locates a separate pattern-token document.
	TaxonomyPath string `toml:"taxonomy_path"`
	PatternsPath string `toml:"patterns_path"`

	ShutdownTimeout string `toml:"shutdown_timeout"`
	Version         string `toml:"version"`
}

// Env returns the CURATOR_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvCuratorEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and
// environment variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.TaxonomyPath != "" {
		c.TaxonomyPath = overlay.TaxonomyPath
	}
	if overlay.PatternsPath != "" {
		c.PatternsPath = overlay.PatternsPath
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Oracle.Merge(&overlay.Oracle)
	c.Engine.Merge(&overlay.Engine)
	c.Runner.Merge(&overlay.Runner)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Oracle.Finalize(oracleEnv); err != nil {
		return fmt.Errorf("oracle: %w", err)
	}
	if err := c.Engine.Finalize(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := c.Runner.Finalize(); err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.TaxonomyPath == "" {
		c.TaxonomyPath = "configs/taxonomy.yaml"
	}
	if c.PatternsPath == "" {
		// The patterns document is optional; default only when shipped.
		if _, err := os.Stat("configs/patterns.yaml"); err == nil {
			c.PatternsPath = "configs/patterns.yaml"
		}
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvCuratorTaxonomyPath); v != "" {
		c.TaxonomyPath = v
	}
	if v := os.Getenv(EnvCuratorPatternsPath); v != "" {
		c.PatternsPath = v
	}
	if v := os.Getenv(EnvCuratorShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvCuratorVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvCuratorEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
