// Package cli implements the pivotgrid command-line interface.
//
// This package provides commands for rendering pivot tables from CSV, TSV
// or JSON datasets, exploring them interactively, inspecting the node trees
// behind a table, and validating pivot definitions. The CLI is built using
// cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Write a table as text, HTML or JSON
//   - explore: Expand and collapse groups in an interactive terminal view
//   - tree: Show the data or header tree as a table, DOT source or SVG
//   - validate: Check a pivot definition and print its normalized layout
//
// # Definitions
//
// Every command reads a TOML pivot definition. It is taken from --config,
// or from a pivot.toml file next to the dataset.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// lives on the [CLI] value and is also attached to each command's context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pivotgrid/pkg/buildinfo"
	"github.com/matzehuels/pivotgrid/pkg/dataset"
	"github.com/matzehuels/pivotgrid/pkg/definition"
	"github.com/matzehuels/pivotgrid/pkg/errors"
	"github.com/matzehuels/pivotgrid/pkg/pipeline"
	"github.com/matzehuels/pivotgrid/pkg/pivot"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "pivotgrid"

	// defaultConfigName is looked up next to the dataset when --config is
	// not given.
	defaultConfigName = "pivot.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "pivotgrid turns flat records into collapsible pivot tables",
		Long: `pivotgrid groups the records of a CSV, TSV or JSON dataset along row and
column dimensions, aggregates measures for every intersection, and renders the
result as a terminal grid, an HTML table or JSON. Groups can be collapsed and
expanded, interactively with 'explore' or up front with --collapse.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Table Loading
// =============================================================================

// pivotTable is a dataset together with the compiled definition it is pivoted by.
type pivotTable struct {
	data    *dataset.Dataset
	def     *definition.Definition
	compile *definition.Compiled
}

// loadTable reads the dataset at dataPath and compiles the definition
// found by resolveConfig against it.
func (c *CLI) loadTable(ctx context.Context, dataPath, configPath string) (*pivotTable, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	configPath, err := resolveConfig(dataPath, configPath)
	if err != nil {
		return nil, err
	}
	def, err := definition.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded definition", "path", configPath, "dimensions", len(def.Dimensions), "measures", len(def.Measures))

	ds, err := dataset.Load(dataPath)
	if err != nil {
		return nil, err
	}
	compiled, err := def.Compile(ds)
	if err != nil {
		return nil, err
	}

	prog.done("Loaded " + pluralize(ds.Len(), "record") + " from " + filepath.Base(dataPath))
	return &pivotTable{data: ds, def: def, compile: compiled}, nil
}

// resolveConfig returns configPath, or the default definition file next to
// dataPath when configPath is empty.
func resolveConfig(dataPath, configPath string) (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	candidate := filepath.Join(filepath.Dir(dataPath), defaultConfigName)
	if _, err := os.Stat(candidate); err != nil {
		return "", errors.New(errors.ErrCodeInvalidInput,
			"no --config given and no %s next to %s", defaultConfigName, dataPath)
	}
	return candidate, nil
}

// newSession builds t in a fresh session. grandTotals overrides the
// definition when false.
func (c *CLI) newSession(ctx context.Context, t *pivotTable, collapse []string, grandTotals bool) (*pipeline.Session[dataset.Record], error) {
	sess, err := pipeline.NewSession(pivot.NewNodeCache[dataset.Record](), pipeline.Options{
		Collapse: collapse,
		Logger:   c.Logger,
	})
	if err != nil {
		return nil, err
	}
	_, err = sess.Build(ctx, t.data.Records, t.compile.Dimensions, t.compile.Measures,
		grandTotals && t.compile.GrandTotals)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// nopCloser wraps a writer that must not be closed, such as stdout.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a file for path, or w when path is empty.
func openOutput(w io.Writer, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{w}, nil
	}
	return os.Create(path)
}
