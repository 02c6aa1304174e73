package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	sharedcfg "github.com/leapstack-labs/leapframe/internal/config"
	"github.com/leapstack-labs/leapframe/pkg/frametools"
)

// OutputModes lists the accepted values of the output key.
var OutputModes = []string{"auto", "text", "markdown", "csv", "json", "yaml"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Indicator == "" {
		return fmt.Errorf("indicator must not be empty")
	}
	if c.GroupIDName == "" {
		return fmt.Errorf("group_id_name must not be empty")
	}
	if !slices.Contains(OutputModes, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (want one of %s)", c.OutputFormat, strings.Join(OutputModes, ", "))
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.DefaultQuantiles(); err != nil {
		return err
	}
	if err := sharedcfg.ValidateTarget(c.Target); err != nil {
		return fmt.Errorf("invalid target configuration: %w", err)
	}
	return nil
}

// Level returns the slog level for the configuration. Verbose forces debug.
func (c *Config) Level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// DefaultQuantiles returns the configured quantile pair as shared
// winsorize cutoffs.
func (c *Config) DefaultQuantiles() (frametools.Quantiles, error) {
	if len(c.Quantiles) != 2 {
		return frametools.Quantiles{}, fmt.Errorf("quantiles must hold exactly two values, got %d", len(c.Quantiles))
	}
	q := frametools.Shared(c.Quantiles[0], c.Quantiles[1])
	if _, err := q.Pairs(1); err != nil {
		return frametools.Quantiles{}, err
	}
	return q, nil
}
