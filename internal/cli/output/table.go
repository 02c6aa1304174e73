package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leapframe/pkg/frame"
	"github.com/leapstack-labs/leapframe/pkg/frametools"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TableOutput is the structured form of a table.
type TableOutput struct {
	Columns []string         `json:"columns" yaml:"columns"`
	Index   []int            `json:"index" yaml:"index"`
	Rows    []map[string]any `json:"rows" yaml:"rows"`
}

// ShareOutput is one status line of a distribution.
type ShareOutput struct {
	Status   frametools.Status `json:"status" yaml:"status"`
	Count    int               `json:"count" yaml:"count"`
	Fraction float64           `json:"fraction" yaml:"fraction"`
}

// DistributionOutput is the structured form of a merge status distribution.
type DistributionOutput struct {
	Total  int           `json:"total" yaml:"total"`
	Shares []ShareOutput `json:"shares" yaml:"shares"`
}

// MergeOutput is the structured result of the merge command.
type MergeOutput struct {
	Table        *TableOutput       `json:"table,omitempty" yaml:"table,omitempty"`
	Distribution DistributionOutput `json:"distribution" yaml:"distribution"`
	Expected     string             `json:"expected,omitempty" yaml:"expected,omitempty"`
	Failed       bool               `json:"assertion_failed,omitempty" yaml:"assertion_failed,omitempty"`
}

// NewTableOutput converts a table to its structured form.
func NewTableOutput(t *frame.Table) *TableOutput {
	rows := make([]map[string]any, t.Len())
	for i, row := range t.Rows() {
		rows[i] = map[string]any(row)
	}
	return &TableOutput{Columns: t.Columns(), Index: t.Index(), Rows: rows}
}

// NewDistributionOutput converts a distribution to its structured form.
func NewDistributionOutput(d frametools.Distribution) DistributionOutput {
	out := DistributionOutput{Total: d.Total, Shares: []ShareOutput{}}
	for _, sh := range d.Shares() {
		out.Shares = append(out.Shares, ShareOutput{Status: sh.Status, Count: sh.Count, Fraction: sh.Fraction})
	}
	return out
}

var counts = message.NewPrinter(language.English)

// RowCount formats a row count with digit grouping.
func RowCount(n int) string {
	if n == 1 {
		return "(1 row)"
	}
	return counts.Sprintf("(%d rows)", n)
}

// Table writes t in the renderer's mode.
func (r *Renderer) Table(t *frame.Table) error {
	mode := r.EffectiveMode()
	if ok, err := r.Structured(NewTableOutput(t)); ok {
		return err
	}

	tw := tableWriter(t)
	switch mode {
	case ModeCSV:
		r.Println(tw.RenderCSV())
	case ModeMarkdown:
		if t.Len() > 0 {
			r.Println(tw.RenderMarkdown())
			r.Println()
		}
		r.Println(RowCount(t.Len()))
	default:
		if t.Len() > 0 {
			r.Println(tw.Render())
		}
		r.Println(r.Muted(RowCount(t.Len())))
	}
	return nil
}

func tableWriter(t *frame.Table) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)

	cols := t.Columns()
	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows() {
		out := make(table.Row, len(cols))
		for i, col := range cols {
			out[i] = formatValue(row[col])
		}
		tw.AppendRow(out)
	}
	return tw
}

// Distribution writes the merge status distribution. CSV mode writes nothing
// so the table stays machine readable.
func (r *Renderer) Distribution(d frametools.Distribution) error {
	mode := r.EffectiveMode()
	if ok, err := r.Structured(NewDistributionOutput(d)); ok {
		return err
	}
	if mode == ModeCSV {
		return nil
	}

	r.Header("Merge status")
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"status", "rows", "fraction"})
	for _, sh := range d.Shares() {
		tw.AppendRow(table.Row{sh.Status.String(), counts.Sprintf("%d", sh.Count), fmt.Sprintf("%.6f", sh.Fraction)})
	}
	if mode == ModeMarkdown {
		r.Println(tw.RenderMarkdown())
		r.Println()
	} else {
		r.Println(tw.Render())
	}
	r.Println(FormatKeyValue("total", counts.Sprintf("%d rows", d.Total), mode))
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
