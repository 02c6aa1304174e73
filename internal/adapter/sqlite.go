package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// sqlite driver (pure Go)
	_ "modernc.org/sqlite"

	"github.com/leapstack-labs/leapframe/pkg/frame"
)

func init() {
	Register("sqlite", func(logger *slog.Logger) Adapter { return NewSQLiteAdapter(logger) })
}

// SQLiteAdapter implements the Adapter interface for SQLite databases.
type SQLiteAdapter struct {
	BaseSQLAdapter
}

// NewSQLiteAdapter creates a new SQLite adapter instance.
func NewSQLiteAdapter(logger *slog.Logger) *SQLiteAdapter {
	return &SQLiteAdapter{BaseSQLAdapter: BaseSQLAdapter{Logger: logger}}
}

// Connect opens the SQLite database at cfg.Path, or an in-memory database
// when the path is empty.
func (a *SQLiteAdapter) Connect(ctx context.Context, cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// An in-memory database lives on a single connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// ReadTable reads a table or view in rowid order.
func (a *SQLiteAdapter) ReadTable(ctx context.Context, source string) (*frame.Table, error) {
	t, err := a.ReadQuery(ctx, "SELECT * FROM "+QuoteIdent(source))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return t, nil
}

// DialectName returns the SQL dialect name.
func (a *SQLiteAdapter) DialectName() string {
	return "sqlite"
}

var _ Adapter = (*SQLiteAdapter)(nil)
