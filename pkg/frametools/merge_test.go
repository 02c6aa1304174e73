package frametools

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/leapframe/internal/testutil"
	"github.com/leapstack-labs/leapframe/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leftTable() *frame.Table {
	return frame.MustNew([]string{"id", "x"},
		frame.Row{"id": 1, "x": 10},
		frame.Row{"id": 2, "x": 20},
	)
}

func rightTable() *frame.Table {
	return frame.MustNew([]string{"id", "y"},
		frame.Row{"id": 2, "y": 200},
		frame.Row{"id": 3, "y": 300},
	)
}

func statusByID(t *testing.T, tbl *frame.Table, indicator string) map[any]Status {
	t.Helper()
	out := make(map[any]Status, tbl.Len())
	for _, row := range tbl.Rows() {
		s, ok := row[indicator].(Status)
		require.True(t, ok, "indicator value %v is not a Status", row[indicator])
		out[row["id"]] = s
	}
	return out
}

func TestMerge_OuterScenario(t *testing.T) {
	res, err := Merge(leftTable(), rightTable(), On("id"), How(frame.OuterJoin))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Table.Len())
	assert.Equal(t, []string{"id", "x", "y", DefaultIndicator}, res.Table.Columns())
	assert.Equal(t, map[any]Status{
		1: StatusLeftOnly,
		2: StatusMatched,
		3: StatusRightOnly,
	}, statusByID(t, res.Table, DefaultIndicator))
}

func TestMerge_StatusesPerJoinType(t *testing.T) {
	tests := []struct {
		name string
		how  frame.JoinType
		want map[any]Status
	}{
		{"inner", frame.InnerJoin, map[any]Status{2: StatusMatched}},
		{"left", frame.LeftJoin, map[any]Status{1: StatusLeftOnly, 2: StatusMatched}},
		{"right", frame.RightJoin, map[any]Status{2: StatusMatched, 3: StatusRightOnly}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Merge(leftTable(), rightTable(), On("id"), How(tt.how))
			require.NoError(t, err)
			assert.Equal(t, tt.want, statusByID(t, res.Table, DefaultIndicator))
		})
	}
}

func TestMerge_OnlyKnownStatusesAndMatchedKeys(t *testing.T) {
	left := frame.MustNew([]string{"k", "a"},
		frame.Row{"k": "a", "a": 1},
		frame.Row{"k": "b", "a": 2},
		frame.Row{"k": "b", "a": 3},
		frame.Row{"k": "c", "a": 4},
	)
	right := frame.MustNew([]string{"k", "b"},
		frame.Row{"k": "b", "b": 1},
		frame.Row{"k": "c", "b": 2},
		frame.Row{"k": "c", "b": 3},
		frame.Row{"k": "d", "b": 4},
	)

	res, err := Merge(left, right, On("k"), How(frame.OuterJoin))
	require.NoError(t, err)

	for _, row := range res.Table.Rows() {
		s := row[DefaultIndicator].(Status)
		assert.True(t, s.Valid())
		switch row["k"] {
		case "b", "c":
			assert.Equal(t, StatusMatched, s)
		}
	}

	var sum float64
	for _, sh := range res.Distribution.Shares() {
		sum += sh.Fraction
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Equal(t, res.Table.Len(), res.Distribution.Total)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	l, r := leftTable(), rightTable()
	_, err := Merge(l, r, On("id"), How(frame.OuterJoin))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "x"}, l.Columns())
	assert.Equal(t, []string{"id", "y"}, r.Columns())
	assert.Equal(t, frame.Row{"id": 1, "x": 10}, l.Row(0))
}

func TestMerge_MarkerNamesAvoidExistingColumns(t *testing.T) {
	l := frame.MustNew([]string{"id", leftMarkerBase, rightMarkerBase},
		frame.Row{"id": 1, leftMarkerBase: "keep", rightMarkerBase: "me"},
	)
	r := frame.MustNew([]string{"id"}, frame.Row{"id": 1})

	res, err := Merge(l, r, On("id"))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", leftMarkerBase, rightMarkerBase, DefaultIndicator}, res.Table.Columns())
	assert.Equal(t, "keep", res.Table.Value(0, leftMarkerBase))
	assert.Equal(t, StatusMatched, res.Table.Value(0, DefaultIndicator))
}

func TestMerge_ExpectHolds(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()

	res, err := Merge(leftTable(), rightTable(), On("id"), How(frame.InnerJoin),
		Expect(StatusMatched), WithLogger(logger))
	require.NoError(t, err)

	assert.False(t, res.Table.HasColumn(DefaultIndicator))
	assert.Equal(t, 1, res.Distribution.Counts[StatusMatched])
	assert.Nil(t, logs.Find("merge assertion is false"))
}

func TestMerge_ExpectFails(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()

	_, err := Merge(leftTable(), rightTable(), On("id"), How(frame.OuterJoin),
		Expect(StatusMatched), WithLogger(logger))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAssertion))

	var assertErr *AssertionError
	require.ErrorAs(t, err, &assertErr)
	assert.Equal(t, StatusMatched, assertErr.Expected)
	assert.Equal(t, 3, assertErr.Distribution.Total)
	assert.InDelta(t, 1.0/3, assertErr.Distribution.Fraction(StatusLeftOnly), 1e-9)

	rec := logs.Find("merge assertion is false")
	require.NotNil(t, rec, "distribution must be reported before the error")
	dist, ok := rec["distribution"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, dist["rows"])
}

func TestMerge_ExpectLeftOnlyIsHonored(t *testing.T) {
	l := frame.MustNew([]string{"id"}, frame.Row{"id": 1})
	r := frame.MustNew([]string{"id"}, frame.Row{"id": 1})

	_, err := Merge(l, r, On("id"), How(frame.LeftJoin), Expect(StatusLeftOnly))
	assert.ErrorIs(t, err, ErrAssertion)
}

func TestMerge_ReportsDistributionWithoutExpect(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()

	_, err := Merge(leftTable(), rightTable(), On("id"), How(frame.OuterJoin), WithLogger(logger))
	require.NoError(t, err)

	rec := logs.Find("merge status distribution")
	require.NotNil(t, rec)
	dist := rec["distribution"].(map[string]any)
	assert.InDelta(t, 1.0/3, dist["matched"], 1e-9)
}

func TestMerge_IndicatorCollision(t *testing.T) {
	l := frame.MustNew([]string{"id", "_m"}, frame.Row{"id": 1, "_m": 0})

	_, err := Merge(l, rightTable(), On("id"))
	assert.ErrorIs(t, err, ErrNameCollision)

	res, err := Merge(l, rightTable(), On("id"), How(frame.LeftJoin), Indicator("status"))
	require.NoError(t, err)
	assert.Equal(t, StatusLeftOnly, res.Table.Value(0, "status"))
}

func TestMerge_InvalidExpect(t *testing.T) {
	_, err := Merge(leftTable(), rightTable(), On("id"), Expect(Status(0)))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestMerge_JoinError(t *testing.T) {
	_, err := Merge(leftTable(), rightTable(), On("x"))
	assert.ErrorContains(t, err, "merge:")
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"1": StatusLeftOnly, "left_only": StatusLeftOnly,
		"2": StatusRightOnly, "right_only": StatusRightOnly,
		"3": StatusMatched, "matched": StatusMatched, "both": StatusMatched,
	}
	for in, want := range tests {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStatus("4")
	assert.Error(t, err)
}

func TestDistribution_String(t *testing.T) {
	d := newDistribution()
	d.add(StatusLeftOnly)
	d.add(StatusMatched)
	d.add(StatusMatched)
	d.add(StatusMatched)

	assert.Equal(t, "left_only  0.250000\nmatched    0.750000", d.String())
	assert.False(t, d.All(StatusMatched))
	assert.Len(t, d.Shares(), 2)
}
