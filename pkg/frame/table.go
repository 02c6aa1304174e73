// Package frame provides the in-memory table used by leapframe's
// transformations.
//
// A Table is an ordered list of columns and an ordered list of rows. Every row
// carries an integer label (its index) so that operations which reorder or
// filter rows can still be related back to the table they came from.
package frame

import (
	"fmt"
	"maps"
	"slices"
)

// Row maps column names to values. Missing values are nil.
type Row map[string]any

// Table is an ordered collection of rows sharing one column set.
type Table struct {
	columns []string
	rows    []Row
	index   []int
}

// New creates a table from columns and rows. Rows are copied and filled with
// nil for any column they do not carry. Index labels are 0..n-1.
func New(columns []string, rows []Row) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}

	t := &Table{
		columns: slices.Clone(columns),
		rows:    make([]Row, len(rows)),
		index:   make([]int, len(rows)),
	}
	for i, r := range rows {
		row := make(Row, len(columns))
		for _, c := range columns {
			row[c] = r[c]
		}
		t.rows[i] = row
		t.index[i] = i
	}
	return t, nil
}

// MustNew is like New but panics on error. Intended for literals in tests.
func MustNew(columns []string, rows ...Row) *Table {
	t, err := New(columns, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.columns, name)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) Row {
	return maps.Clone(t.rows[i])
}

// Value returns the value of column at row i.
func (t *Table) Value(i int, column string) any {
	return t.rows[i][column]
}

// Rows returns copies of all rows in order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = maps.Clone(r)
	}
	return out
}

// Index returns a copy of the row labels.
func (t *Table) Index() []int {
	return slices.Clone(t.index)
}

// Column returns the values of a column in row order.
func (t *Table) Column(name string) ([]any, error) {
	if !t.HasColumn(name) {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]any, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[name]
	}
	return out, nil
}

// Clone returns a copy of the table. Rows are copied so that changes to the
// clone never reach the receiver.
func (t *Table) Clone() *Table {
	return &Table{
		columns: slices.Clone(t.columns),
		rows:    t.Rows(),
		index:   slices.Clone(t.index),
	}
}

// SetColumn sets column name on every row to fn(i, row). The column is
// appended if it does not exist yet. The table is modified in place.
func (t *Table) SetColumn(name string, fn func(i int, row Row) any) {
	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
	for i, r := range t.rows {
		r[name] = fn(i, r)
	}
}

// DropColumns removes the named columns in place. Unknown names are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	t.columns = slices.DeleteFunc(t.columns, func(c string) bool {
		_, ok := drop[c]
		return ok
	})
	for _, r := range t.rows {
		for n := range drop {
			delete(r, n)
		}
	}
}

// Select returns a new table with only the given columns, in the given order.
// Index labels are kept.
func (t *Table) Select(columns ...string) (*Table, error) {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return nil, fmt.Errorf("column %q not found", c)
		}
	}
	out := &Table{
		columns: slices.Clone(columns),
		rows:    make([]Row, len(t.rows)),
		index:   slices.Clone(t.index),
	}
	for i, r := range t.rows {
		row := make(Row, len(columns))
		for _, c := range columns {
			row[c] = r[c]
		}
		out.rows[i] = row
	}
	return out, nil
}

// DropDuplicates returns a new table keeping the first occurrence of every
// distinct row. Index labels of surviving rows are kept.
func (t *Table) DropDuplicates() *Table {
	out := &Table{columns: slices.Clone(t.columns)}
	seen := make(map[string]struct{}, len(t.rows))
	for i, r := range t.rows {
		k := KeyOf(r, t.columns)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out.rows = append(out.rows, maps.Clone(r))
		out.index = append(out.index, t.index[i])
	}
	return out
}

// ResetIndex relabels rows 0..n-1 in place and returns the table.
func (t *Table) ResetIndex() *Table {
	for i := range t.index {
		t.index[i] = i
	}
	return t
}

// WithIndex replaces the row labels in place.
func (t *Table) WithIndex(labels []int) error {
	if len(labels) != len(t.rows) {
		return fmt.Errorf("index length %d does not match row count %d", len(labels), len(t.rows))
	}
	t.index = slices.Clone(labels)
	return nil
}

// Filter returns a new table with the rows whose mask entry is true. Row order
// and index labels are kept.
func (t *Table) Filter(mask []bool) (*Table, error) {
	if len(mask) != len(t.rows) {
		return nil, fmt.Errorf("mask length %d does not match row count %d", len(mask), len(t.rows))
	}
	out := &Table{columns: slices.Clone(t.columns)}
	for i, keep := range mask {
		if !keep {
			continue
		}
		out.rows = append(out.rows, maps.Clone(t.rows[i]))
		out.index = append(out.index, t.index[i])
	}
	return out, nil
}
