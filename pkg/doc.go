// Package pkg provides the core libraries of pivotgrid, a pivot table
// engine.
//
// # Overview
//
// pivotgrid groups flat records along row and column dimensions,
// aggregates measures for every intersection, and flattens the result into
// a grid of spanning cells that a terminal or a browser can draw. Groups
// can be collapsed and expanded without losing the rest of the table's
// state. The pkg directory is organized into these areas:
//
//  1. [pivot] - Dimensions, measures, the tree builder and the node cache
//  2. [pivot/grid] - Flattening trees into a spanning-cell matrix
//  3. [pipeline] - Sessions tying build, flatten and toggle together
//  4. [dataset] and [definition] - Records from CSV/JSON and tables from TOML
//  5. [render] - Text, HTML and JSON tables plus Graphviz tree diagrams
//
// # Architecture
//
// The typical data flow:
//
//	CSV / TSV / JSON records       TOML definition
//	         ↓                            ↓
//	    [dataset] package         [definition] package
//	         └──────────┬─────────────────┘
//	                    ↓
//	    [pivot] package (data tree + header tree)
//	                    ↓
//	    [pivot/grid] package (Matrix)
//	                    ↓
//	    [render/sink] package (text, HTML, JSON)
//
// # Quick Start
//
//	ds, _ := dataset.Load("examples/sales/sales.csv")
//	def, _ := definition.Load("examples/sales/pivot.toml")
//	table, _ := def.Compile(ds)
//
//	sess, _ := pipeline.NewSession(pivot.NewNodeCache[dataset.Record](), pipeline.Options{})
//	m, _ := sess.Build(ctx, ds.Records, table.Dimensions, table.Measures, table.GrandTotals)
//	sink.WriteText(os.Stdout, m)
//
//	sess.Toggle(ctx, "[Country:US]")
//	sink.WriteText(os.Stdout, sess.Matrix())
//
// # Supporting Packages
//
// [errors] - Structured errors with stable codes such as NODE_NOT_FOUND.
//
// [observability] - Hook interfaces for builds, toggles and renders.
//
// [buildinfo] - Version information set at build time.
//
// [pivot]: github.com/matzehuels/pivotgrid/pkg/pivot
// [pivot/grid]: github.com/matzehuels/pivotgrid/pkg/pivot/grid
// [pipeline]: github.com/matzehuels/pivotgrid/pkg/pipeline
// [dataset]: github.com/matzehuels/pivotgrid/pkg/dataset
// [definition]: github.com/matzehuels/pivotgrid/pkg/definition
// [render]: github.com/matzehuels/pivotgrid/pkg/render
// [render/sink]: github.com/matzehuels/pivotgrid/pkg/render/sink
// [errors]: github.com/matzehuels/pivotgrid/pkg/errors
// [observability]: github.com/matzehuels/pivotgrid/pkg/observability
// [buildinfo]: github.com/matzehuels/pivotgrid/pkg/buildinfo
package pkg
