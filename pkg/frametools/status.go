package frametools

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Status records which side of a merge contributed a row.
type Status int

// Codes follow the Stata convention so that the left marker (1) plus the
// right marker (2) yields the matched code (3).
const (
	StatusLeftOnly  Status = 1
	StatusRightOnly Status = 2
	StatusMatched   Status = 3
)

var statuses = []Status{StatusLeftOnly, StatusRightOnly, StatusMatched}

func (s Status) String() string {
	switch s {
	case StatusLeftOnly:
		return "left_only"
	case StatusRightOnly:
		return "right_only"
	case StatusMatched:
		return "matched"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Valid reports whether s is one of the three merge statuses.
func (s Status) Valid() bool {
	return s >= StatusLeftOnly && s <= StatusMatched
}

// ParseStatus accepts a status name (left_only, right_only, matched, both)
// or its numeric code.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "left_only", "left-only", "left":
		return StatusLeftOnly, nil
	case "2", "right_only", "right-only", "right":
		return StatusRightOnly, nil
	case "3", "matched", "both":
		return StatusMatched, nil
	default:
		return 0, fmt.Errorf("unknown merge status %q (want left_only, right_only or matched)", s)
	}
}

// Share is one status's slice of a distribution.
type Share struct {
	Status   Status
	Count    int
	Fraction float64
}

// Distribution counts merge output rows per status.
type Distribution struct {
	Total  int
	Counts map[Status]int
}

func newDistribution() Distribution {
	return Distribution{Counts: make(map[Status]int, len(statuses))}
}

func (d *Distribution) add(s Status) {
	d.Counts[s]++
	d.Total++
}

// Fraction returns the share of rows with status s, or 0 for an empty merge.
func (d Distribution) Fraction(s Status) float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Counts[s]) / float64(d.Total)
}

// All reports whether every row has status s. An empty merge satisfies any
// status.
func (d Distribution) All(s Status) bool {
	return d.Counts[s] == d.Total
}

// Shares lists the statuses that occur, in code order.
func (d Distribution) Shares() []Share {
	var out []Share
	for _, s := range statuses {
		n := d.Counts[s]
		if n == 0 {
			continue
		}
		out = append(out, Share{Status: s, Count: n, Fraction: d.Fraction(s)})
	}
	return out
}

// String renders one "status fraction" line per occurring status.
func (d Distribution) String() string {
	var b strings.Builder
	for i, sh := range d.Shares() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-10s %.6f", sh.Status, sh.Fraction)
	}
	return b.String()
}

// LogValue implements slog.LogValuer.
func (d Distribution) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(statuses)+1)
	attrs = append(attrs, slog.Int("rows", d.Total))
	for _, sh := range d.Shares() {
		attrs = append(attrs, slog.Float64(sh.Status.String(), sh.Fraction))
	}
	return slog.GroupValue(attrs...)
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid merge status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts anything ParseStatus does.
func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
