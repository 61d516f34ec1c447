package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pivotgrid/pkg/dataset"
	"github.com/matzehuels/pivotgrid/pkg/definition"
	"github.com/matzehuels/pivotgrid/pkg/errors"
	"github.com/matzehuels/pivotgrid/pkg/pivot"
)

// validateCommand creates the validate command for checking definitions.
func (c *CLI) validateCommand() *cobra.Command {
	var config string

	cmd := &cobra.Command{
		Use:   "validate [data]",
		Short: "Check a pivot definition and show its normalized layout",
		Long: `Check a pivot definition and show its normalized layout.

Every problem in the definition is reported at once. When a dataset is given,
the fields the definition refers to are checked against it as well, and the
definition defaults to pivot.toml next to the dataset.

The normalized layout lists the enabled dimensions per axis in display order
and the measures, with the flags the table builder derives for them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data string
			if len(args) == 1 {
				data = args[0]
			}
			if data == "" && config == "" {
				return errors.New(errors.ErrCodeInvalidInput, "either --config or a dataset is required")
			}
			return c.runValidate(cmd.Context(), cmd.OutOrStdout(), data, config)
		},
	}

	cmd.Flags().StringVarP(&config, "config", "c", "", "pivot definition file")

	return cmd
}

// runValidate compiles the definition and prints its normalized layout.
// Validation problems are listed one per line before the error is returned.
func (c *CLI) runValidate(ctx context.Context, w io.Writer, data, config string) error {
	var compiled *definition.Compiled
	var err error
	if data != "" {
		var t *pivotTable
		if t, err = c.loadTable(ctx, data, config); err == nil {
			compiled = t.compile
		}
	} else {
		var def *definition.Definition
		if def, err = definition.Load(config); err == nil {
			compiled, err = def.Compile(nil)
		}
	}
	if err != nil {
		var verrs errors.ValidationErrors
		if stderrors.As(err, &verrs) {
			printError(w, "Definition has %s", pluralize(len(verrs), "problem"))
			for _, e := range verrs {
				printDetail(w, "%s: %s", e.Code, e.Message)
			}
		}
		return err
	}

	printSuccess(w, "Definition is valid")
	if compiled.Title != "" {
		printKeyValue(w, "Title", compiled.Title)
	}
	printKeyValue(w, "Grand totals", yesNo(compiled.GrandTotals))
	fmt.Fprintln(w)

	fmt.Fprintln(w, StyleTitle.Render("Dimensions"))
	fmt.Fprintln(w, dimensionTable(pivot.NormalizeDimensions(compiled.Dimensions)))
	fmt.Fprintln(w, StyleTitle.Render("Measures"))
	pivot.NormalizeMeasures(compiled.Measures)
	fmt.Fprintln(w, measureTable(compiled.Measures))
	return nil
}

func dimensionTable(dims []*pivot.Dimension[dataset.Record]) string {
	rows := make([][]string, 0, len(dims))
	for _, d := range dims {
		rows = append(rows, []string{
			d.Axis(),
			strconv.Itoa(d.Sequence),
			d.Name,
			yesNo(d.IsLeaf()),
			yesNo(d.Collapsed),
			yesNo(d.CanRepositionAcrossAxis()),
		})
	}
	return newTable("Axis", "Seq", "Name", "Leaf", "Collapsed", "Movable").Rows(rows...).Render()
}

func measureTable(measures []*pivot.Measure[dataset.Record]) string {
	rows := make([][]string, 0, len(measures))
	for _, m := range measures {
		rows = append(rows, []string{
			strconv.Itoa(m.Sequence),
			m.Name,
			yesNo(!m.Disabled),
			yesNo(m.CanDisable()),
		})
	}
	return newTable("Seq", "Name", "Enabled", "Can disable").Rows(rows...).Render()
}
