package frametools

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/leapstack-labs/leapframe/pkg/frame"
)

// DefaultIndicator is the name of the merge status column.
const DefaultIndicator = "_m"

const (
	leftMarkerBase  = "_merge_left"
	rightMarkerBase = "_merge_right"
)

type mergeConfig struct {
	join      frame.JoinOptions
	expect    Status
	hasExpect bool
	indicator string
	logger    *slog.Logger
}

// MergeOption configures Merge.
type MergeOption func(*mergeConfig)

// On sets the key columns.
func On(columns ...string) MergeOption {
	return func(c *mergeConfig) { c.join.On = columns }
}

// How sets the join type. The default is an inner join.
func How(how frame.JoinType) MergeOption {
	return func(c *mergeConfig) { c.join.How = how }
}

// Suffixes sets the suffixes for overlapping non-key columns.
func Suffixes(left, right string) MergeOption {
	return func(c *mergeConfig) { c.join.Suffixes = [2]string{left, right} }
}

// Expect asserts that every output row has status s. On success the
// indicator column is dropped from the result.
func Expect(s Status) MergeOption {
	return func(c *mergeConfig) {
		c.expect = s
		c.hasExpect = true
	}
}

// Indicator sets the name of the status column.
func Indicator(name string) MergeOption {
	return func(c *mergeConfig) { c.indicator = name }
}

// WithLogger sets the logger the status distribution is reported to.
func WithLogger(l *slog.Logger) MergeOption {
	return func(c *mergeConfig) { c.logger = l }
}

// MergeResult is the outcome of Merge.
type MergeResult struct {
	Table        *frame.Table
	Distribution Distribution
}

// Merge joins left and right and tags every output row with the side(s) it
// came from. Neither input is modified.
//
// Without Expect the distribution is logged at info level and the indicator
// column is kept. With Expect, a mismatch is logged as a warning and returned
// as an *AssertionError; a match drops the indicator column.
func Merge(left, right *frame.Table, opts ...MergeOption) (*MergeResult, error) {
	cfg := mergeConfig{indicator: DefaultIndicator}
	for _, o := range opts {
		o(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.hasExpect && !cfg.expect.Valid() {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("cannot assert unknown merge status %d", int(cfg.expect))}
	}

	taken := func(name string) bool {
		return left.HasColumn(name) || right.HasColumn(name) || name == cfg.indicator
	}
	leftMarker := freshName(leftMarkerBase, taken)
	rightMarker := freshName(rightMarkerBase, func(name string) bool {
		return taken(name) || name == leftMarker
	})

	l, r := left.Clone(), right.Clone()
	l.SetColumn(leftMarker, func(int, frame.Row) any { return int(StatusLeftOnly) })
	r.SetColumn(rightMarker, func(int, frame.Row) any { return int(StatusRightOnly) })

	joined, err := frame.Join(l, r, cfg.join)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if joined.HasColumn(cfg.indicator) {
		return nil, &NameCollisionError{Column: cfg.indicator}
	}

	dist := newDistribution()
	joined.SetColumn(cfg.indicator, func(_ int, row frame.Row) any {
		s := Status(markerValue(row[leftMarker]) + markerValue(row[rightMarker]))
		dist.add(s)
		return s
	})
	joined.DropColumns(leftMarker, rightMarker)

	if !cfg.hasExpect {
		logger.Info("merge status distribution", slog.Any("distribution", dist))
		return &MergeResult{Table: joined, Distribution: dist}, nil
	}

	if !dist.All(cfg.expect) {
		logger.Warn("merge assertion is false",
			slog.String("expected", cfg.expect.String()),
			slog.Any("distribution", dist))
		return nil, &AssertionError{Expected: cfg.expect, Distribution: dist}
	}

	logger.Debug("merge assertion holds",
		slog.String("expected", cfg.expect.String()),
		slog.Int("rows", dist.Total))
	joined.DropColumns(cfg.indicator)
	return &MergeResult{Table: joined, Distribution: dist}, nil
}

func markerValue(v any) int {
	if n, ok := v.(int); ok {
		return n
	}
	return 0
}

// freshName returns base, or base with a random suffix, such that taken
// reports false for it.
func freshName(base string, taken func(string) bool) string {
	name := base
	for taken(name) {
		name = base + "_" + uuid.NewString()[:8]
	}
	return name
}
