package adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteAdapter_ReadTable(t *testing.T) {
	ctx := context.Background()
	a := NewSQLiteAdapter(nil)
	require.NoError(t, a.Connect(ctx, Config{Path: filepath.Join(t.TempDir(), "data.db")}))
	defer func() { _ = a.Close() }()

	require.NoError(t, a.Exec(ctx, `CREATE TABLE households (state TEXT, income REAL)`))
	require.NoError(t, a.Exec(ctx, `INSERT INTO households VALUES ('TX', 64.0), ('CA', 71.5), ('CA', NULL)`))

	tbl, err := a.ReadTable(ctx, "households")
	require.NoError(t, err)

	assert.Equal(t, []string{"state", "income"}, tbl.Columns())
	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, "TX", tbl.Value(0, "state"))
	assert.Equal(t, 71.5, tbl.Value(1, "income"))
	assert.Nil(t, tbl.Value(2, "income"))
}

func TestSQLiteAdapter_InMemory(t *testing.T) {
	ctx := context.Background()
	a := NewSQLiteAdapter(nil)
	require.NoError(t, a.Connect(ctx, Config{}))
	defer func() { _ = a.Close() }()

	require.NoError(t, a.Exec(ctx, `CREATE TABLE t (a INTEGER)`))
	require.NoError(t, a.Exec(ctx, `INSERT INTO t VALUES (1), (2)`))

	tbl, err := a.ReadTable(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	_, err = a.ReadTable(ctx, "missing")
	assert.ErrorContains(t, err, "failed to read missing")
}
