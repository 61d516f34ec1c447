package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pivotgrid/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	config        string   // pivot definition file
	format        string   // text, html or json
	output        string   // output file; stdout when empty
	collapse      []string // node ids to collapse before rendering
	noGrandTotals bool     // drop the grand total row and column
	plain         bool     // disable terminal styling in text output
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: pipeline.FormatText}

	cmd := &cobra.Command{
		Use:   "render [data]",
		Short: "Render a pivot table as text, HTML or JSON",
		Long: `Render a pivot table from a CSV, TSV or JSON dataset.

The table layout comes from a TOML pivot definition (--config, or pivot.toml
next to the dataset). Groups listed with --collapse are folded into their
total rows before rendering; use 'pivotgrid tree' to look up node ids.

Examples:
  pivotgrid render examples/sales/sales.csv
  pivotgrid render sales.csv -c pivot.toml -f html -o sales.html
  pivotgrid render sales.csv --collapse "[Country:US]" --no-grand-totals`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "pivot definition file (default: pivot.toml next to the data)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), html, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringSliceVar(&opts.collapse, "collapse", nil, "node ids to collapse (comma-separated)")
	cmd.Flags().BoolVar(&opts.noGrandTotals, "no-grand-totals", false, "omit grand totals")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable colors in text output")

	return cmd
}

// runRender builds the table and writes it in the requested format.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	t, err := c.loadTable(ctx, input, opts.config)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	sess, err := c.newSession(ctx, t, opts.collapse, !opts.noGrandTotals)
	if err != nil {
		return err
	}
	stats := sess.Stats()
	prog.done(fmt.Sprintf("Built %d x %d table", stats.Rows, stats.Columns))

	if sess.Matrix().Empty() && opts.format == pipeline.FormatText {
		printInfo(stdout, "No records in %s", input)
		return nil
	}

	out, err := openOutput(stdout, opts.output)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer out.Close()

	outOpts := pipeline.RenderOptions{
		Title: t.compile.Title,
		// Files never get terminal escape codes.
		Plain: opts.plain || opts.output != "",
	}
	if err := pipeline.Render(ctx, out, sess.Matrix(), opts.format, outOpts); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess(stdout, "Rendered %s", opts.format)
		printFile(stdout, opts.output)
	}
	return nil
}
