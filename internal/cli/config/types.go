// Package config provides configuration management for the leapframe CLI.
//
// The shared target type lives in internal/config and is re-exported here
// via a type alias for convenience.
package config

import sharedcfg "github.com/leapstack-labs/leapframe/internal/config"

// TargetConfig is an alias for the shared target configuration.
type TargetConfig = sharedcfg.TargetConfig

// Config holds all CLI configuration options.
type Config struct {
	// Indicator names the merge status column.
	Indicator string `koanf:"indicator"`

	// GroupIDName names the column group-id creates.
	GroupIDName string `koanf:"group_id_name"`

	// Quantiles is the default lower/upper winsorize pair.
	Quantiles []float64 `koanf:"quantiles"`

	Environment  string               `koanf:"environment"`
	Verbose      bool                 `koanf:"verbose"`
	LogLevel     string               `koanf:"log_level"`
	OutputFormat string               `koanf:"output"`
	Target       *TargetConfig        `koanf:"target"`
	Environments map[string]EnvConfig `koanf:"environments"`

	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// EnvConfig holds environment-specific configuration overrides.
type EnvConfig struct {
	Target *TargetConfig `koanf:"target"`
}

// Re-exported defaults.
const (
	DefaultIndicator   = sharedcfg.DefaultIndicator
	DefaultGroupIDName = sharedcfg.DefaultGroupIDName
	DefaultOutput      = sharedcfg.DefaultOutput
	DefaultLogLevel    = sharedcfg.DefaultLogLevel
)
