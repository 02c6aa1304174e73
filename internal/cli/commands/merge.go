package commands

import (
	"errors"

	"github.com/leapstack-labs/leapframe/internal/cli/output"
	"github.com/leapstack-labs/leapframe/pkg/frame"
	"github.com/leapstack-labs/leapframe/pkg/frametools"
	"github.com/spf13/cobra"
)

// MergeOptions holds options for the merge command.
type MergeOptions struct {
	On        []string
	How       string
	Expect    string
	Indicator string
	Suffixes  []string
}

// NewMergeCommand creates the merge command.
func NewMergeCommand() *cobra.Command {
	opts := &MergeOptions{}

	cmd := &cobra.Command{
		Use:   "merge <left> <right>",
		Short: "Join two sources and tag each row with where it came from",
		Long: `Join two sources and add a column recording whether each output row
matched, or came only from the left or only from the right source.

Sources are CSV, TSV, Parquet or JSON files, or tables in the target database.
With --expect the command fails unless every row has the given status, and the
status column is dropped from the result.`,
		Example: `  # Full outer join on id
  leapframe merge customers.csv orders.parquet --on id --how outer

  # Require every customer to have a match
  leapframe merge customers.csv crm_export.csv --on id --how left --expect matched`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.On, "on", nil, "Key columns (default: columns common to both sources)")
	cmd.Flags().StringVar(&opts.How, "how", "inner", "Join type: inner, left, right, outer")
	cmd.Flags().StringVar(&opts.Expect, "expect", "", "Require every row to have this status: left_only, right_only, matched")
	cmd.Flags().StringVar(&opts.Indicator, "indicator", "", "Name of the status column (default from config)")
	cmd.Flags().StringSliceVar(&opts.Suffixes, "suffixes", []string{"_x", "_y"}, "Suffixes for overlapping non-key columns")

	_ = cmd.RegisterFlagCompletionFunc("how", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"inner", "left", "right", "outer"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("expect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"left_only", "right_only", "matched"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// mergeOptions translates command flags into frametools options.
func (o *MergeOptions) mergeOptions(defaultIndicator string) ([]frametools.MergeOption, error) {
	how, err := frame.ParseJoinType(o.How)
	if err != nil {
		return nil, err
	}
	if len(o.Suffixes) != 2 {
		return nil, &frametools.ConfigurationError{Reason: "--suffixes needs exactly two values"}
	}

	indicator := o.Indicator
	if indicator == "" {
		indicator = defaultIndicator
	}

	opts := []frametools.MergeOption{
		frametools.On(o.On...),
		frametools.How(how),
		frametools.Indicator(indicator),
		frametools.Suffixes(o.Suffixes[0], o.Suffixes[1]),
	}
	if o.Expect != "" {
		status, err := frametools.ParseStatus(o.Expect)
		if err != nil {
			return nil, err
		}
		opts = append(opts, frametools.Expect(status))
	}
	return opts, nil
}

func runMerge(cmd *cobra.Command, left, right string, opts *MergeOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	mopts, err := opts.mergeOptions(cc.Cfg.Indicator)
	if err != nil {
		return err
	}

	tables, err := cc.LoadAll(cmd.Context(), left, right)
	if err != nil {
		return err
	}

	res, mergeErr := frametools.Merge(tables[0], tables[1], append(mopts, frametools.WithLogger(cc.Logger))...)

	var assertErr *frametools.AssertionError
	if mergeErr != nil && !errors.As(mergeErr, &assertErr) {
		return mergeErr
	}

	r := cc.Renderer
	if assertErr != nil {
		// Show where the rows went before failing.
		ok, err := r.Structured(output.MergeOutput{
			Distribution: output.NewDistributionOutput(assertErr.Distribution),
			Expected:     assertErr.Expected.String(),
			Failed:       true,
		})
		if err != nil {
			return err
		}
		if !ok {
			if err := r.Distribution(assertErr.Distribution); err != nil {
				return err
			}
		}
		return mergeErr
	}

	if ok, err := r.Structured(output.MergeOutput{
		Table:        output.NewTableOutput(res.Table),
		Distribution: output.NewDistributionOutput(res.Distribution),
		Expected:     opts.Expect,
	}); ok {
		return err
	}
	if err := r.Table(res.Table); err != nil {
		return err
	}
	if r.EffectiveMode() != output.ModeCSV {
		r.Println()
	}
	return r.Distribution(res.Distribution)
}
