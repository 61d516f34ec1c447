package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pivotgrid/pkg/pipeline"
	"github.com/matzehuels/pivotgrid/pkg/render/nodelink"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	config   string
	format   string
	output   string
	collapse []string
	header   bool // show the header tree instead of the data tree
	values   bool // include value and measure label leaves
	detailed bool // add cell types and ids to diagram labels
}

// treeCommand creates the tree command for inspecting node trees.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{format: pipeline.FormatTable}

	cmd := &cobra.Command{
		Use:   "tree [data]",
		Short: "Show the node tree behind a pivot table",
		Long: `Show the data tree (row groups, totals and values) or, with --header, the
header tree (column groups) that a pivot table is flattened from.

The table format lists every node with its id, which is what --collapse and
the explorer work with. The dot and svg formats draw the tree with Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateTreeFormat(opts.format); err != nil {
				return err
			}
			return c.runTree(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "pivot definition file (default: pivot.toml next to the data)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table (default), dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringSliceVar(&opts.collapse, "collapse", nil, "node ids to collapse (comma-separated)")
	cmd.Flags().BoolVar(&opts.header, "header", false, "show the header tree")
	cmd.Flags().BoolVar(&opts.values, "values", false, "include value and measure label leaves")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show cell types and ids in diagram labels")

	return cmd
}

// runTree builds the table and writes one of its trees.
func (c *CLI) runTree(ctx context.Context, stdout io.Writer, input string, opts treeOpts) error {
	t, err := c.loadTable(ctx, input, opts.config)
	if err != nil {
		return err
	}
	sess, err := c.newSession(ctx, t, opts.collapse, true)
	if err != nil {
		return err
	}

	root, which := sess.DataTree(), "data"
	if opts.header {
		root, which = sess.HeaderTree(), "header"
	}
	if root == nil {
		printInfo(stdout, "No records in %s", input)
		return nil
	}
	loggerFromContext(ctx).Debug("Rendering tree", "tree", which, "nodes", root.Count(), "format", opts.format)

	out, err := openOutput(stdout, opts.output)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer out.Close()

	nlOpts := nodelink.Options{
		Detailed:  opts.detailed,
		Values:    opts.values,
		Expansion: sess.Cache(),
	}
	if opts.format == pipeline.FormatTable {
		_, err = fmt.Fprintln(out, nodeTable(nodelink.Flatten(root, nlOpts)))
	} else {
		err = pipeline.RenderTree(ctx, out, root, opts.format, nlOpts)
	}
	if err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess(stdout, "Rendered %s tree as %s", which, opts.format)
		printFile(stdout, opts.output)
	}
	return nil
}

// nodeTable lists tree entries, indenting captions by depth.
func nodeTable(entries []nodelink.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		caption := e.Value
		if caption == "" {
			caption = e.ID
		}
		state := ""
		if e.CanToggle {
			state = "expanded"
			if !e.Expanded {
				state = "collapsed"
			}
		}
		rows = append(rows, []string{
			strings.Repeat("  ", e.Depth) + caption,
			e.CellType.String(),
			e.ID,
			strconv.Itoa(e.Depth),
			state,
		})
	}
	return newTable("Caption", "Type", "ID", "Depth", "State").Rows(rows...).Render()
}
