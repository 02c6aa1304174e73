// Package main provides tests for the leapframe CLI.
package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapframe/internal/cli"
	"github.com/leapstack-labs/leapframe/internal/cli/testutil"
	"github.com/leapstack-labs/leapframe/pkg/frametools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// project lays out the fixture sources and returns the directory and config path.
func project(t *testing.T) (dir, cfg string) {
	t.Helper()
	dir = testutil.SetupTestSources(t)
	return dir, filepath.Join(dir, "leapframe.yaml")
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestVersionCommand(t *testing.T) {
	_, cfg := project(t)
	out, _, err := run(t, "--config", cfg, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "leapframe")
}

func TestHelpCommand(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)

	for _, expected := range []string{"merge", "group-id", "winsorize", "completion"} {
		assert.Contains(t, out, expected)
	}
}

func TestMergeCommand_Outer(t *testing.T) {
	dir, cfg := project(t)

	out, _, err := run(t, "--config", cfg, "merge",
		filepath.Join(dir, "left.csv"), filepath.Join(dir, "right.csv"),
		"--on", "id", "--how", "outer")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"id,x,y,_m",
		"1,10,NULL,left_only",
		"2,20,200,matched",
		"3,NULL,300,right_only",
	}, lines(out))
}

func TestMergeCommand_Markdown(t *testing.T) {
	dir, cfg := project(t)

	out, _, err := run(t, "--config", cfg, "-o", "markdown", "merge",
		filepath.Join(dir, "left.csv"), filepath.Join(dir, "right.csv"), "--how", "outer")
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "## Merge status")
	assert.Contains(t, out, "right_only")
}

func TestMergeCommand_ExpectFailsWithDistribution(t *testing.T) {
	dir, cfg := project(t)

	out, _, err := run(t, "--config", cfg, "-o", "json", "merge",
		filepath.Join(dir, "left.csv"), filepath.Join(dir, "right.csv"),
		"--how", "left", "--expect", "matched")
	require.Error(t, err)
	assert.ErrorIs(t, err, frametools.ErrAssertion)

	var doc struct {
		Distribution struct {
			Total  int `json:"total"`
			Shares []struct {
				Status string `json:"status"`
			} `json:"shares"`
		} `json:"distribution"`
		Failed bool `json:"assertion_failed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.True(t, doc.Failed)
	assert.Equal(t, 2, doc.Distribution.Total)
	require.Len(t, doc.Distribution.Shares, 2)
	assert.Equal(t, "left_only", doc.Distribution.Shares[0].Status)
}

func TestMergeCommand_ExpectHoldsDropsIndicator(t *testing.T) {
	dir, cfg := project(t)

	out, _, err := run(t, "--config", cfg, "merge",
		filepath.Join(dir, "left.csv"), filepath.Join(dir, "left.csv"),
		"--expect", "matched")
	require.NoError(t, err)
	assert.Equal(t, "id,x", lines(out)[0])
}

func TestMergeCommand_BadHow(t *testing.T) {
	dir, cfg := project(t)
	_, _, err := run(t, "--config", cfg, "merge",
		filepath.Join(dir, "left.csv"), filepath.Join(dir, "right.csv"), "--how", "sideways")
	assert.Error(t, err)
}

func TestGroupIDCommand(t *testing.T) {
	dir, cfg := project(t)
	panel := filepath.Join(dir, "panel.csv")

	out, _, err := run(t, "--config", cfg, "group-id", panel, "--cols", "firm,year")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"group_id,firm,year",
		"0,a,2020",
		"1,b,2020",
		"2,b,2021",
	}, lines(out))

	out, _, err = run(t, "--config", cfg, "group-id", panel, "--cols", "firm,year", "--name", "cell", "--merge")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"firm,year,cell",
		"a,2020,0",
		"b,2020,1",
		"a,2020,0",
		"b,2021,2",
	}, lines(out))
}

func TestWinsorizeCommand(t *testing.T) {
	dir, cfg := project(t)
	wages := filepath.Join(dir, "wages.csv")

	out, _, err := run(t, "--config", cfg, "winsorize", wages, "--by", "wage", "--p", "0,0.9")
	require.NoError(t, err)
	got := lines(out)
	assert.Len(t, got, 10, "header plus nine rows")
	assert.NotContains(t, got, "3,100")

	_, _, err = run(t, "--config", cfg, "winsorize", wages, "--by", "wage", "--p", "0,0.9", "--p", "0,1")
	assert.ErrorIs(t, err, frametools.ErrConfiguration)

	_, _, err = run(t, "--config", cfg, "winsorize", wages)
	assert.Error(t, err, "--by is required")
}
