package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/leapframe/pkg/frame"
)

func init() {
	Register("duckdb", func(logger *slog.Logger) Adapter { return NewDuckDBAdapter(logger) })
}

// fileReaders maps data file extensions to the DuckDB table function that
// reads them.
var fileReaders = map[string]string{
	".csv":     "read_csv_auto('%s', header=true)",
	".tsv":     "read_csv_auto('%s', header=true, delim='\t')",
	".parquet": "read_parquet('%s')",
	".json":    "read_json_auto('%s')",
	".jsonl":   "read_json_auto('%s', format='newline_delimited')",
	".ndjson":  "read_json_auto('%s', format='newline_delimited')",
}

// DuckDBAdapter implements the Adapter interface for DuckDB. Besides tables
// in the database it reads CSV, Parquet and JSON files directly.
type DuckDBAdapter struct {
	BaseSQLAdapter
}

// NewDuckDBAdapter creates a new DuckDB adapter instance.
func NewDuckDBAdapter(logger *slog.Logger) *DuckDBAdapter {
	return &DuckDBAdapter{BaseSQLAdapter: BaseSQLAdapter{Logger: logger}}
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" or an empty path for an in-memory database.
func (a *DuckDBAdapter) Connect(ctx context.Context, cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// ReadTable reads a data file or a table into memory.
func (a *DuckDBAdapter) ReadTable(ctx context.Context, source string) (*frame.Table, error) {
	from, err := duckdbFrom(source)
	if err != nil {
		return nil, err
	}
	if a.Logger != nil {
		a.Logger.Debug("reading source", "source", source)
	}
	t, err := a.ReadQuery(ctx, "SELECT * FROM "+from)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return t, nil
}

// IsFileSource reports whether source names a file DuckDB can read directly.
func IsFileSource(source string) bool {
	_, ok := fileReaders[strings.ToLower(filepath.Ext(source))]
	return ok
}

// duckdbFrom builds the FROM clause for a source.
func duckdbFrom(source string) (string, error) {
	ext := strings.ToLower(filepath.Ext(source))
	reader, ok := fileReaders[ext]
	if !ok {
		if ext != "" && strings.ContainsAny(source, `/\`) {
			return "", fmt.Errorf("unsupported file type %q for %s", ext, source)
		}
		return QuoteIdent(source), nil
	}

	absPath, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return fmt.Sprintf(reader, strings.ReplaceAll(absPath, "'", "''")), nil
}

// DialectName returns the SQL dialect name.
func (a *DuckDBAdapter) DialectName() string {
	return "duckdb"
}

// Ensure DuckDBAdapter implements Adapter interface
var _ Adapter = (*DuckDBAdapter)(nil)
