package frametools

import (
	"fmt"
	"math"
	"slices"

	"github.com/leapstack-labs/leapframe/pkg/frame"
)

// QuantilePair is a lower and upper probability, each in [0, 1].
type QuantilePair struct {
	Lower float64
	Upper float64
}

func (p QuantilePair) validate() error {
	if p.Lower < 0 || p.Upper > 1 || p.Lower > p.Upper || math.IsNaN(p.Lower) || math.IsNaN(p.Upper) {
		return &ConfigurationError{Reason: fmt.Sprintf("quantile pair (%g, %g) must satisfy 0 <= lower <= upper <= 1", p.Lower, p.Upper)}
	}
	return nil
}

// Quantiles selects the cutoffs for Winsorize: either one pair shared by all
// columns or one pair per column. Build it with Shared or PerColumn.
type Quantiles struct {
	shared    QuantilePair
	perColumn []QuantilePair
	isPer     bool
}

// Shared applies the same pair to every column.
func Shared(lower, upper float64) Quantiles {
	return Quantiles{shared: QuantilePair{Lower: lower, Upper: upper}}
}

// PerColumn gives column i the pair pairs[i].
func PerColumn(pairs ...QuantilePair) Quantiles {
	return Quantiles{perColumn: slices.Clone(pairs), isPer: true}
}

// DefaultQuantiles trims the bottom and top percent.
func DefaultQuantiles() Quantiles {
	return Shared(0.01, 0.99)
}

// IsPerColumn reports whether q was built with PerColumn.
func (q Quantiles) IsPerColumn() bool { return q.isPer }

// Pairs expands q to one pair per column.
func (q Quantiles) Pairs(n int) ([]QuantilePair, error) {
	if !q.isPer {
		if err := q.shared.validate(); err != nil {
			return nil, err
		}
		out := make([]QuantilePair, n)
		for i := range out {
			out[i] = q.shared
		}
		return out, nil
	}
	if len(q.perColumn) != n {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("got %d quantile pairs for %d columns", len(q.perColumn), n)}
	}
	for _, p := range q.perColumn {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}
	return slices.Clone(q.perColumn), nil
}

// Winsorize drops the rows whose value in any of the by columns falls
// outside that column's quantile cutoffs. Cutoffs are inclusive and are
// computed from each column's full distribution independently. Rows with a
// missing value in a by column are dropped. The result keeps the input's
// columns, row order and index labels.
func Winsorize(t *frame.Table, by []string, q Quantiles) (*frame.Table, error) {
	if len(by) == 0 {
		return nil, &ConfigurationError{Reason: "winsorize needs at least one column"}
	}
	pairs, err := q.Pairs(len(by))
	if err != nil {
		return nil, err
	}

	idx := t.Index()
	survive := make([]bool, t.Len())
	for i := range survive {
		survive[i] = true
	}

	for c, col := range by {
		raw, err := t.Column(col)
		if err != nil {
			return nil, fmt.Errorf("winsorize: %w", err)
		}

		values := make([]float64, len(raw))
		present := make([]bool, len(raw))
		sample := make([]float64, 0, len(raw))
		for i, v := range raw {
			if v == nil {
				continue
			}
			f, ok := frame.ToFloat(v)
			if !ok {
				return nil, fmt.Errorf("winsorize: column %q row %d: non-numeric value %v (%T)", col, idx[i], v, v)
			}
			if math.IsNaN(f) {
				continue
			}
			values[i], present[i] = f, true
			sample = append(sample, f)
		}

		slices.Sort(sample)
		lo := quantileSorted(sample, pairs[c].Lower)
		hi := quantileSorted(sample, pairs[c].Upper)

		for i := range survive {
			survive[i] = survive[i] && present[i] && values[i] >= lo && values[i] <= hi
		}
	}

	return t.Filter(survive)
}

// Quantile returns the p-quantile of values, interpolating linearly between
// the two closest ranks. It returns NaN for an empty input.
func Quantile(values []float64, p float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return quantileSorted(sorted, p)
}

func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	if frac == 0 {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
