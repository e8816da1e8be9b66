package oracle

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds classification oracle parameters. When Token and BaseURL are
// both empty no live oracle is configured and the heuristic stand-in is
// used — unless Strict is set, which makes a missing live oracle fatal.
type Config struct {
	Model       string `toml:"model"`
	BaseURL     string `toml:"base_url"`
	Token       string `toml:"token"`
	MaxRetries  int    `toml:"max_retries"`
	RetryBase   string `toml:"retry_base"`
	CallTimeout string `toml:"call_timeout"`
	Strict      bool   `toml:"strict"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Model       string
	BaseURL     string
	Token       string
	MaxRetries  string
	RetryBase   string
	CallTimeout string
}

// Live reports whether a live oracle endpoint is configured.
func (c *Config) Live() bool {
	return c.Token != "" || c.BaseURL != ""
}

// RetryBaseDuration returns RetryBase as a time.Duration.
func (c *Config) RetryBaseDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryBase)
	return d
}

// CallTimeoutDuration returns CallTimeout as a time.Duration.
func (c *Config) CallTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.CallTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.MaxRetries != 0 {
		c.MaxRetries = overlay.MaxRetries
	}
	if overlay.RetryBase != "" {
		c.RetryBase = overlay.RetryBase
	}
	if overlay.CallTimeout != "" {
		c.CallTimeout = overlay.CallTimeout
	}
	if overlay.Strict {
		c.Strict = true
	}
}

func (c *Config) loadDefaults() {
	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.RetryBase == "" {
		c.RetryBase = "1200ms"
	}
	if c.CallTimeout == "" {
		c.CallTimeout = "60s"
	}
}

func (c *Config) loadEnv(env *Env) {
	setString := func(envVar string, field *string) {
		if envVar == "" {
			return
		}
		if v := os.Getenv(envVar); v != "" {
			*field = v
		}
	}

	setString(env.Model, &c.Model)
	setString(env.BaseURL, &c.BaseURL)
	setString(env.Token, &c.Token)
	setString(env.RetryBase, &c.RetryBase)
	setString(env.CallTimeout, &c.CallTimeout)

	if env.MaxRetries != "" {
		if v := os.Getenv(env.MaxRetries); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.MaxRetries = n
			}
		}
	}
}

func (c *Config) validate() error {
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1")
	}
	if _, err := time.ParseDuration(c.RetryBase); err != nil {
		return fmt.Errorf("invalid retry_base: %w", err)
	}
	if _, err := time.ParseDuration(c.CallTimeout); err != nil {
		return fmt.Errorf("invalid call_timeout: %w", err)
	}
	if c.Strict && !c.Live() {
		return fmt.Errorf("strict mode requires a configured oracle token or base_url")
	}
	return nil
}
