package config

import "github.com/leapstack-labs/leapframe/pkg/frametools"

// Default configuration values.
const (
	DefaultIndicator   = frametools.DefaultIndicator
	DefaultGroupIDName = frametools.DefaultGroupIDName
	DefaultTargetType  = "duckdb"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel    = "info"
)

// DefaultQuantiles returns the default winsorize cutoffs as a lower/upper
// pair.
func DefaultQuantiles() []float64 {
	return []float64{0.01, 0.99}
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}
	if t.Type == "" {
		t.Type = DefaultTargetType
	}
	if t.Type == "postgres" {
		if t.Host == "" {
			t.Host = "localhost"
		}
		if t.Port == 0 {
			t.Port = 5432
		}
	}
}
