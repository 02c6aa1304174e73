package frametools

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapframe/pkg/frame"
)

// DefaultGroupIDName is the default name of the identifier column.
const DefaultGroupIDName = "group_id"

type groupIDConfig struct {
	columns []string
	name    string
	merge   bool
	logger  *slog.Logger
}

// GroupIDOption configures GroupID.
type GroupIDOption func(*groupIDConfig)

// Columns sets the key columns. The default is every column of the table.
func Columns(columns ...string) GroupIDOption {
	return func(c *groupIDConfig) { c.columns = columns }
}

// Name sets the identifier column name.
func Name(name string) GroupIDOption {
	return func(c *groupIDConfig) { c.name = name }
}

// MergeBack attaches the identifier to every row of the input instead of
// returning the key-to-id mapping.
func MergeBack(merge bool) GroupIDOption {
	return func(c *groupIDConfig) { c.merge = merge }
}

// WithGroupLogger sets the logger handed to the internal merge.
func WithGroupLogger(l *slog.Logger) GroupIDOption {
	return func(c *groupIDConfig) { c.logger = l }
}

// GroupID numbers the distinct combinations of the key columns 0..k-1 in
// order of first appearance.
//
// By default it returns the mapping table: the identifier column followed by
// the key columns, one row per combination. With MergeBack(true) it returns
// the input with the identifier appended, same rows in the same order with
// the same index labels.
func GroupID(t *frame.Table, opts ...GroupIDOption) (*frame.Table, error) {
	cfg := groupIDConfig{name: DefaultGroupIDName}
	for _, o := range opts {
		o(&cfg)
	}
	if len(cfg.columns) == 0 {
		cfg.columns = t.Columns()
	}
	if t.HasColumn(cfg.name) {
		return nil, &NameCollisionError{Column: cfg.name}
	}

	keys, err := t.Select(cfg.columns...)
	if err != nil {
		return nil, fmt.Errorf("group id: %w", err)
	}
	uniq := keys.DropDuplicates().ResetIndex()

	mapping, err := frame.New(append([]string{cfg.name}, cfg.columns...), uniq.Rows())
	if err != nil {
		return nil, fmt.Errorf("group id: %w", err)
	}
	mapping.SetColumn(cfg.name, func(i int, _ frame.Row) any { return i })

	if !cfg.merge {
		return mapping, nil
	}

	indicator := freshName(DefaultIndicator, func(n string) bool {
		return t.HasColumn(n) || n == cfg.name
	})
	res, err := Merge(t, mapping,
		On(cfg.columns...),
		Indicator(indicator),
		How(frame.LeftJoin),
		Expect(StatusMatched),
		WithLogger(cfg.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("group id: %w", err)
	}

	merged := res.Table
	if merged.Len() != t.Len() || merged.Width() != t.Width()+1 {
		return nil, &InvariantError{
			Op: "group id",
			Detail: fmt.Sprintf("merged shape %dx%d, want %dx%d",
				merged.Len(), merged.Width(), t.Len(), t.Width()+1),
		}
	}
	if err := merged.WithIndex(t.Index()); err != nil {
		return nil, fmt.Errorf("group id: %w", err)
	}
	return merged, nil
}
