package adapter

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/leapframe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseSQLAdapter_Close(t *testing.T) {
	tests := []struct {
		name    string
		setupDB bool
	}{
		{name: "close with nil DB", setupDB: false},
		{name: "close with open DB", setupDB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{Logger: testutil.NewTestLogger(t)}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectClose()
				base.DB = db
			}

			assert.NoError(t, base.Close())
		})
	}
}

func TestBaseSQLAdapter_Exec(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		errMsg    string
	}{
		{
			name:    "exec without connection",
			setupDB: false,
			sql:     "SELECT 1",
			errMsg:  "database connection not established",
		},
		{
			name:    "exec success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE users").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			sql: "CREATE TABLE users (id INT)",
		},
		{
			name:    "exec with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INVALID SQL").WillReturnError(assert.AnError)
			},
			sql:    "INVALID SQL",
			errMsg: "failed to execute SQL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}
			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()
				tt.setupMock(mock)
				base.DB = db
			}

			err := base.Exec(context.Background(), tt.sql)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBaseSQLAdapter_ReadQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT \\* FROM people").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "score"}).
			AddRow(int64(2), []byte("bob"), 1.5).
			AddRow(int64(1), "alice", nil),
	)

	base := &BaseSQLAdapter{DB: db, Logger: testutil.NewTestLogger(t)}
	tbl, err := base.ReadQuery(context.Background(), "SELECT * FROM people")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "score"}, tbl.Columns())
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, int64(2), tbl.Value(0, "id"))
	assert.Equal(t, "bob", tbl.Value(0, "name"))
	assert.Nil(t, tbl.Value(1, "score"))
	assert.Equal(t, []int{0, 1}, tbl.Index())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseSQLAdapter_ReadQueryErrors(t *testing.T) {
	t.Run("not connected", func(t *testing.T) {
		_, err := (&BaseSQLAdapter{}).ReadQuery(context.Background(), "SELECT 1")
		assert.ErrorContains(t, err, "not established")
	})

	t.Run("row error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("SELECT").WillReturnRows(
			sqlmock.NewRows([]string{"a"}).AddRow(int64(1)).RowError(0, assert.AnError),
		)

		_, err = (&BaseSQLAdapter{DB: db}).ReadQuery(context.Background(), "SELECT a FROM t")
		assert.ErrorContains(t, err, "error iterating rows")
	})
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"orders"`, QuoteIdent("orders"))
	assert.Equal(t, `"main"."orders"`, QuoteIdent("main.orders"))
	assert.Equal(t, `"we""ird"`, QuoteIdent(`we"ird`))
}
