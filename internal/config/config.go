// Package config loads k2cli's configuration, adapted from
// junjiewwang-perf-analysis/pkg/config's viper-backed Config/Load shape.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the settings k2cli's subcommands share.
type Config struct {
	Graph GraphConfig `mapstructure:"graph"`
	Log   LogConfig   `mapstructure:"log"`
}

// GraphConfig holds the K²-tree/partition build parameters.
type GraphConfig struct {
	K           int    `mapstructure:"k"`
	AttrField   string `mapstructure:"attr_field"`
	DefaultMode string `mapstructure:"default_mode"` // aggregation scan strategy: edge, src, dst
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from configPath, falling back to defaults and
// the standard search locations when it's empty (spec.md §10.3).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("k2cli")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/k2cli")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// no config file: defaults stand
		} else if os.IsNotExist(err) {
			// explicit path doesn't exist: defaults stand
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("K2CLI")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("graph.k", 4)
	v.SetDefault("graph.attr_field", "weight")
	v.SetDefault("graph.default_mode", "edge")
	v.SetDefault("log.level", "info")
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	if c.Graph.K < 2 {
		return fmt.Errorf("graph.k must be >= 2, got %d", c.Graph.K)
	}
	switch c.Graph.DefaultMode {
	case "edge", "src", "dst":
	default:
		return fmt.Errorf("graph.default_mode must be one of edge, src, dst, got %q", c.Graph.DefaultMode)
	}
	return nil
}
