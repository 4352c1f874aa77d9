// Package config defines all configuration structures for MolForge.
// No I/O or parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"`
}

// GenerationConfig holds candidate-generation parameters.
type GenerationConfig struct {
	// DefaultCount is the molecule count used when a request omits one.
	DefaultCount int `mapstructure:"default_count"`

	// MaxCount bounds the per-request molecule count accepted by the
	// interfaces layer.  The generator itself places no ceiling.
	MaxCount int `mapstructure:"max_count"`

	// Seed, when non-zero, seeds the random source so that repeated runs with
	// identical inputs reproduce the same result set.  Zero selects a
	// time-based seed.
	Seed int64 `mapstructure:"seed"`
}

// LibraryConfig optionally replaces the curated fragment/linker library.
// Empty slices mean "use the built-in curated set".  Every entry must be
// toolkit-parseable in isolation; startup fails otherwise.
type LibraryConfig struct {
	Fragments []string `mapstructure:"fragments"`
	Linkers   []string `mapstructure:"linkers"`
}

// RenderConfig holds 2D depiction defaults.
type RenderConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Config is the root configuration structure for the whole application.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Generation GenerationConfig `mapstructure:"generation"`
	Library    LibraryConfig    `mapstructure:"library"`
	Render     RenderConfig     `mapstructure:"render"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Generation
	if c.Generation.DefaultCount < 1 {
		return fmt.Errorf("config: generation.default_count must be >= 1, got %d", c.Generation.DefaultCount)
	}
	if c.Generation.MaxCount < c.Generation.DefaultCount {
		return fmt.Errorf("config: generation.max_count %d must be >= default_count %d",
			c.Generation.MaxCount, c.Generation.DefaultCount)
	}

	// Render
	if c.Render.Width < 16 || c.Render.Height < 16 {
		return fmt.Errorf("config: render dimensions %dx%d are too small",
			c.Render.Width, c.Render.Height)
	}

	return nil
}
