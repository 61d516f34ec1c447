// Package nodelink renders pivot data and header trees as node-link
// diagrams.
//
// # Overview
//
// A pivot table is backed by two trees: the data tree of row groups,
// totals and value leaves, and the header tree of column groups. This
// package draws either one with Graphviz, one box per node, so the shape a
// table was flattened from can be inspected directly.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{Expansion: cache})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [Flatten] lists the same nodes depth-first for textual output, which the
// CLI prints as a table.
//
// # Options
//
//   - Detailed: labels include the cell type and node id
//   - Values: include value and measure label leaves
//   - Expansion: where to read collapsed state, usually the session cache
//
// # DOT Format
//
// The generated DOT lays the tree out left to right (rankdir=LR), as rows
// of a pivot table nest. Totals are filled grey and collapsed groups have
// dashed outlines.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
