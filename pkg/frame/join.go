package frame

import (
	"fmt"
	"slices"
	"strings"
)

// JoinType represents the type of join operation.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	OuterJoin
)

func (j JoinType) String() string {
	switch j {
	case InnerJoin:
		return "inner"
	case LeftJoin:
		return "left"
	case RightJoin:
		return "right"
	case OuterJoin:
		return "outer"
	default:
		return fmt.Sprintf("JoinType(%d)", int(j))
	}
}

// ParseJoinType parses inner, left, right or outer.
func ParseJoinType(s string) (JoinType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inner", "":
		return InnerJoin, nil
	case "left":
		return LeftJoin, nil
	case "right":
		return RightJoin, nil
	case "outer", "full":
		return OuterJoin, nil
	default:
		return InnerJoin, fmt.Errorf("unknown join type %q (want inner, left, right or outer)", s)
	}
}

// JoinOptions configures a join.
type JoinOptions struct {
	// On lists the key columns, present under the same name on both sides.
	// Empty means every column the two tables have in common.
	On []string

	// How selects inner, left, right or outer semantics.
	How JoinType

	// Suffixes are appended to non-key columns present on both sides.
	// Zero value means "_x" and "_y".
	Suffixes [2]string
}

// Join joins left and right on key columns. The output index is 0..n-1.
//
// Row order: inner and left joins follow the left table, each left row
// followed by its right matches in right order; right joins mirror that on
// the right table; outer joins emit the left join and then the unmatched
// right rows in right order.
func Join(left, right *Table, opts JoinOptions) (*Table, error) {
	keys, err := resolveKeys(left, right, opts.On)
	if err != nil {
		return nil, err
	}
	suffixes := opts.Suffixes
	if suffixes == [2]string{} {
		suffixes = [2]string{"_x", "_y"}
	}

	cols, leftName, rightName, err := outputColumns(left, right, keys, suffixes)
	if err != nil {
		return nil, err
	}

	rightIndex := make(map[string][]int, right.Len())
	for i, r := range right.rows {
		k := KeyOf(r, keys)
		rightIndex[k] = append(rightIndex[k], i)
	}

	out := &Table{columns: cols}
	emit := func(l, r Row) {
		row := make(Row, len(cols))
		for _, c := range cols {
			row[c] = nil
		}
		if l != nil {
			for c, v := range l {
				row[leftName[c]] = v
			}
		}
		if r != nil {
			for c, v := range r {
				if slices.Contains(keys, c) && l != nil {
					continue
				}
				row[rightName[c]] = v
			}
		}
		out.rows = append(out.rows, row)
	}

	switch opts.How {
	case InnerJoin, LeftJoin, OuterJoin:
		matchedRight := make([]bool, right.Len())
		for _, l := range left.rows {
			matches := rightIndex[KeyOf(l, keys)]
			if len(matches) == 0 && opts.How != InnerJoin {
				emit(l, nil)
				continue
			}
			for _, j := range matches {
				matchedRight[j] = true
				emit(l, right.rows[j])
			}
		}
		if opts.How == OuterJoin {
			for j, r := range right.rows {
				if !matchedRight[j] {
					emit(nil, r)
				}
			}
		}
	case RightJoin:
		leftIndex := make(map[string][]int, left.Len())
		for i, l := range left.rows {
			k := KeyOf(l, keys)
			leftIndex[k] = append(leftIndex[k], i)
		}
		for _, r := range right.rows {
			matches := leftIndex[KeyOf(r, keys)]
			if len(matches) == 0 {
				emit(nil, r)
				continue
			}
			for _, i := range matches {
				emit(left.rows[i], r)
			}
		}
	default:
		return nil, fmt.Errorf("unknown join type: %d", opts.How)
	}

	out.index = make([]int, len(out.rows))
	out.ResetIndex()
	return out, nil
}

func resolveKeys(left, right *Table, on []string) ([]string, error) {
	if len(on) == 0 {
		for _, c := range left.columns {
			if right.HasColumn(c) {
				on = append(on, c)
			}
		}
		if len(on) == 0 {
			return nil, fmt.Errorf("no common columns to join on")
		}
		return on, nil
	}
	for _, c := range on {
		if !left.HasColumn(c) {
			return nil, fmt.Errorf("column '%s' not found in left table", c)
		}
		if !right.HasColumn(c) {
			return nil, fmt.Errorf("column '%s' not found in right table", c)
		}
	}
	return slices.Clone(on), nil
}

// outputColumns lays out left columns followed by right non-key columns and
// returns, per side, the mapping from input column to output column. A
// suffixed name that meets another output column is an error.
func outputColumns(left, right *Table, keys []string, suffixes [2]string) ([]string, map[string]string, map[string]string, error) {
	isKey := func(c string) bool { return slices.Contains(keys, c) }

	leftName := make(map[string]string, left.Width())
	rightName := make(map[string]string, right.Width())
	cols := make([]string, 0, left.Width()+right.Width())

	for _, c := range left.columns {
		name := c
		if !isKey(c) && right.HasColumn(c) {
			name = c + suffixes[0]
		}
		leftName[c] = name
		cols = append(cols, name)
	}
	for _, c := range right.columns {
		if isKey(c) {
			rightName[c] = c
			continue
		}
		name := c
		if left.HasColumn(c) {
			name = c + suffixes[1]
		}
		rightName[c] = name
		cols = append(cols, name)
	}

	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c] {
			return nil, nil, nil, fmt.Errorf("column '%s' appears twice in join output; choose other suffixes", c)
		}
		seen[c] = true
	}
	return cols, leftName, rightName, nil
}
