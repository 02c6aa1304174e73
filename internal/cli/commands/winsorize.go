package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapframe/pkg/frametools"
	"github.com/spf13/cobra"
)

// WinsorizeOptions holds options for the winsorize command.
type WinsorizeOptions struct {
	By        []string
	Quantiles []string
}

// NewWinsorizeCommand creates the winsorize command.
func NewWinsorizeCommand() *cobra.Command {
	opts := &WinsorizeOptions{}

	cmd := &cobra.Command{
		Use:   "winsorize <source>",
		Short: "Drop rows whose values fall outside quantile cutoffs",
		Long: `Drop every row whose value in any of the --by columns lies outside that
column's [lower, upper] quantile range. Cutoffs are computed once, on the full
source, with linear interpolation. Surviving rows keep their original order.

Pass --p once to share a pair across all columns, or once per --by column to
give each column its own pair. Without --p the configured quantiles are used.`,
		Example: `  # Trim the top and bottom percent of wage
  leapframe winsorize workers.csv --by wage

  # Different cutoffs per column
  leapframe winsorize firms.parquet --by sales,assets --p 0,0.99 --p 0.05,1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWinsorize(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.By, "by", nil, "Columns to trim on")
	cmd.Flags().StringArrayVar(&opts.Quantiles, "p", nil, "Quantile pair lower,upper (repeat once per --by column for per-column pairs)")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

// parsePair parses "lower,upper".
func parsePair(s string) (frametools.QuantilePair, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return frametools.QuantilePair{}, fmt.Errorf("invalid quantile pair %q (want lower,upper)", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return frametools.QuantilePair{}, fmt.Errorf("invalid lower quantile in %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return frametools.QuantilePair{}, fmt.Errorf("invalid upper quantile in %q: %w", s, err)
	}
	return frametools.QuantilePair{Lower: lo, Upper: hi}, nil
}

// quantiles builds the cutoffs: none uses fallback, one pair is
// shared, more than one is per column.
func (o *WinsorizeOptions) quantiles(fallback frametools.Quantiles) (frametools.Quantiles, error) {
	switch len(o.Quantiles) {
	case 0:
		return fallback, nil
	case 1:
		p, err := parsePair(o.Quantiles[0])
		if err != nil {
			return frametools.Quantiles{}, err
		}
		return frametools.Shared(p.Lower, p.Upper), nil
	}

	pairs := make([]frametools.QuantilePair, len(o.Quantiles))
	for i, s := range o.Quantiles {
		p, err := parsePair(s)
		if err != nil {
			return frametools.Quantiles{}, err
		}
		pairs[i] = p
	}
	return frametools.PerColumn(pairs...), nil
}

func runWinsorize(cmd *cobra.Command, source string, opts *WinsorizeOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	fallback, err := cc.Cfg.DefaultQuantiles()
	if err != nil {
		return err
	}
	q, err := opts.quantiles(fallback)
	if err != nil {
		return err
	}

	t, err := cc.Load(cmd.Context(), source)
	if err != nil {
		return err
	}

	out, err := frametools.Winsorize(t, opts.By, q)
	if err != nil {
		return err
	}
	cc.Logger.Info("winsorized", "source", source, "rows_in", t.Len(), "rows_out", out.Len())
	return cc.Renderer.Table(out)
}
