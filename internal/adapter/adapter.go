// Package adapter loads tables for leapframe from databases and data files.
//
// Adapters register themselves by name in init(); callers pick one through
// Config.Type and NewAdapter.
package adapter

import (
	"context"
	"database/sql"

	"github.com/leapstack-labs/leapframe/pkg/frame"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Type specifies the database type (e.g., "duckdb", "sqlite", "postgres")
	Type string

	// Path is the file path for file-based databases (e.g., DuckDB, SQLite)
	// Use ":memory:" for in-memory databases
	Path string

	// Host is the hostname for network-based databases
	Host string

	// Port is the port number for network-based databases
	Port int

	// Database is the database name
	Database string

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Options contains additional driver-specific options
	Options map[string]string
}

// Rows wraps sql.Rows to provide a consistent interface across adapters.
type Rows struct {
	*sql.Rows
}

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// ReadTable reads a whole source into memory, preserving row order.
	// A source is a table name, or a data file path for adapters that can
	// read files directly.
	ReadTable(ctx context.Context, source string) (*frame.Table, error)

	// DialectName returns the SQL dialect name for this adapter.
	DialectName() string
}
