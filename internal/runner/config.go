package runner

import "fmt"

// Config holds batch execution settings.
type Config struct {
	// Workers is the number of documents classified concurrently.
	Workers int `toml:"workers"`
	// SampleChars bounds the content sample sent to the oracle.
	SampleChars int `toml:"sample_chars"`
	// ProgressEvery controls how often a progress line is logged.
	ProgressEvery int `toml:"progress_every"`
}

// Finalize applies defaults and validates.
func (c *Config) Finalize() error {
	c.loadDefaults()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	if overlay.SampleChars != 0 {
		c.SampleChars = overlay.SampleChars
	}
	if overlay.ProgressEvery != 0 {
		c.ProgressEvery = overlay.ProgressEvery
	}
}

func (c *Config) loadDefaults() {
	if c.Workers == 0 {
		c.Workers = 4
	}
	if c.SampleChars == 0 {
		c.SampleChars = 6000
	}
	if c.ProgressEvery == 0 {
		c.ProgressEvery = 25
	}
}

func (c *Config) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if c.SampleChars < 1 {
		return fmt.Errorf("sample_chars must be at least 1")
	}
	if c.ProgressEvery < 1 {
		return fmt.Errorf("progress_every must be at least 1")
	}
	return nil
}
