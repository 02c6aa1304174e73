package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/leapframe/internal/adapter"
	"github.com/leapstack-labs/leapframe/internal/cli/config"
	"github.com/leapstack-labs/leapframe/internal/cli/output"
	"github.com/leapstack-labs/leapframe/pkg/frame"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Adapter  adapter.Adapter
	Renderer *output.Renderer

	// files reads file sources when the target is not DuckDB.
	filesOnce sync.Once
	files     adapter.Adapter
	filesErr  error
}

// NewCommandContext connects to the configured target and builds a renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	a, err := connect(cmd.Context(), cfg.Target.ToAdapterConfig(), logger)
	if err != nil {
		return nil, nil, err
	}

	cc := &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Adapter:  a,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}

	cleanup := func() {
		_ = cc.Adapter.Close()
		if cc.files != nil {
			_ = cc.files.Close()
		}
	}
	return cc, cleanup, nil
}

func connect(ctx context.Context, cfg adapter.Config, logger *slog.Logger) (adapter.Adapter, error) {
	a, err := adapter.NewAdapter(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := a.Connect(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to connect to %s target: %w", cfg.Type, err)
	}
	return a, nil
}

// readerFor picks the adapter that can read source.
func (c *CommandContext) readerFor(ctx context.Context, source string) (adapter.Adapter, error) {
	if !adapter.IsFileSource(source) || c.Adapter.DialectName() == "duckdb" {
		return c.Adapter, nil
	}
	c.filesOnce.Do(func() {
		c.files, c.filesErr = connect(ctx, adapter.Config{Type: "duckdb", Path: ":memory:"}, c.Logger)
	})
	return c.files, c.filesErr
}

// Load reads a file or table into memory.
func (c *CommandContext) Load(ctx context.Context, source string) (*frame.Table, error) {
	r, err := c.readerFor(ctx, source)
	if err != nil {
		return nil, err
	}
	t, err := r.ReadTable(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", source, err)
	}
	c.Logger.Debug("loaded source", "source", source, "rows", t.Len(), "columns", t.Width())
	return t, nil
}

// LoadAll reads every source concurrently, returning tables in argument order.
func (c *CommandContext) LoadAll(ctx context.Context, sources ...string) ([]*frame.Table, error) {
	tables := make([]*frame.Table, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			t, err := c.Load(gctx, src)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
