// Package config provides shared configuration types for leapframe.
// It is decoupled from CLI concerns so library callers can build adapter
// configuration without cobra or koanf.
package config

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/leapframe/internal/adapter"
)

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // duckdb, sqlite, postgres

	// File-based databases (DuckDB, SQLite): file path, empty for in-memory.
	// Network databases: database name.
	Database string `koanf:"database"`

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`
}

// ToAdapterConfig converts the target into the adapter package's Config.
func (t *TargetConfig) ToAdapterConfig() adapter.Config {
	cfg := adapter.Config{
		Type:     t.Type,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Options:  t.Options,
	}
	if t.Type != "postgres" {
		cfg.Path = t.Database
	}
	return cfg
}

// MergeTargetConfig overlays the non-empty fields of override on base.
func MergeTargetConfig(base, override *TargetConfig) *TargetConfig {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}
	merged := *base
	if override.Type != "" {
		merged.Type = override.Type
	}
	if override.Database != "" {
		merged.Database = override.Database
	}
	if override.Host != "" {
		merged.Host = override.Host
	}
	if override.Port != 0 {
		merged.Port = override.Port
	}
	if override.User != "" {
		merged.User = override.User
	}
	if override.Password != "" {
		merged.Password = override.Password
	}
	if len(override.Options) > 0 {
		merged.Options = make(map[string]string, len(base.Options)+len(override.Options))
		for k, v := range base.Options {
			merged.Options[k] = v
		}
		for k, v := range override.Options {
			merged.Options[k] = v
		}
	}
	return &merged
}

// ExpandTargetEnvVars expands ${VAR} references in credential fields.
func ExpandTargetEnvVars(t *TargetConfig) {
	if t == nil {
		return
	}
	t.Database = os.ExpandEnv(t.Database)
	t.Host = os.ExpandEnv(t.Host)
	t.User = os.ExpandEnv(t.User)
	t.Password = os.ExpandEnv(t.Password)
	for k, v := range t.Options {
		t.Options[k] = os.ExpandEnv(v)
	}
}

// ValidateTarget checks that the target names a registered adapter and has
// what that adapter needs to connect.
func ValidateTarget(t *TargetConfig) error {
	if t == nil {
		return fmt.Errorf("target is required")
	}
	if !adapter.IsRegistered(t.Type) {
		return &adapter.UnknownAdapterError{Type: t.Type, Available: adapter.ListAdapters()}
	}
	if t.Type == "postgres" && t.Database == "" {
		return fmt.Errorf("target.database is required for postgres")
	}
	return nil
}
