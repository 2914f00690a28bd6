// Package config binds the CLI settings read by viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	DataDirs       []string `mapstructure:"data_dirs"`
	JournalDir     string   `mapstructure:"journal_dir"`
	MaxIterations  int      `mapstructure:"max_iterations"`
	MemoryCapacity int      `mapstructure:"memory_capacity"`
	SlotCapacity   int      `mapstructure:"slot_capacity"`
	LogLevel       string   `mapstructure:"log_level"`
}

// SetDefaults registers default values and the RECALL_ environment prefix.
func SetDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("data_dirs", []string{"data"})
	v.SetDefault("journal_dir", filepath.Join(home, ".recall", "journals"))
	v.SetDefault("max_iterations", 100)
	v.SetDefault("memory_capacity", 5)
	v.SetDefault("slot_capacity", 5)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("recall")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", c.MaxIterations)
	}
	if c.MemoryCapacity <= 0 {
		return fmt.Errorf("memory_capacity must be positive, got %d", c.MemoryCapacity)
	}
	if c.SlotCapacity <= 0 {
		return fmt.Errorf("slot_capacity must be positive, got %d", c.SlotCapacity)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the zerolog level for LogLevel, info when unset.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
