package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapframe/internal/cli/output"
	"github.com/leapstack-labs/leapframe/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestSources(t *testing.T) {
	dir := SetupTestSources(t)
	for name := range Sources {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestTestRenderer_NoColorOnTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tr := NewTestRenderer(output.ModeAuto, true)
	assert.Equal(t, output.ModeText, tr.EffectiveMode())

	tbl := frame.MustNew([]string{"id"}, frame.Row{"id": 1})
	require.NoError(t, tr.Table(tbl))
	tr.Warning("heads up")

	AssertNoANSI(t, tr.Output())
	AssertNoANSI(t, tr.ErrorOutput())
	assert.Contains(t, tr.Output(), "(1 row)")
	assert.Contains(t, tr.ErrorOutput(), "heads up")
}

func TestTestRenderer_Markdown(t *testing.T) {
	tr := NewTestRenderer(output.ModeMarkdown, false)
	tbl := frame.MustNew([]string{"a", "b"}, frame.Row{"a": 1, "b": "x"}, frame.Row{"a": 2})

	require.NoError(t, tr.Table(tbl))
	AssertValidMarkdown(t, tr.Output())
}
