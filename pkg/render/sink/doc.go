// Package sink writes a flattened pivot [grid.Matrix] to an output format.
//
// # Overview
//
// A "sink" takes the spanning-cell matrix produced by [grid.Build] and
// renders it for a consumer:
//
//   - Text: an aligned terminal grid styled with lipgloss
//   - HTML: a table with rowspan, colspan and node id attributes
//   - JSON: the matrix itself, for external tools
//
// # Text Output
//
// [WriteText] resolves spans into physical columns, sizes every column to
// its widest cell and separates header rows from the body with a rule:
//
//	            │ East │ West │ Grand Total
//	            │ Qty  │ Qty  │ Qty
//	────────────┼──────┼──────┼────────────
//	A           │   10 │    5 │          15
//	Grand Total │   10 │    5 │          15
//
// Toggleable cells are prefixed with [MarkerExpanded] or [MarkerCollapsed].
// Options:
//
//   - [WithPlain]: no styling, for files and tests
//   - [WithStyles]: custom [Styles] per cell role
//   - [WithHighlight]: mark the cell of one node, as the explorer does
//
// # HTML Output
//
// [WriteHTML] emits header rows in thead and data rows in tbody. Every cell
// has a class from [CSSClass], so totals and grand totals can be styled
// apart, and a data-node-id attribute naming its tree node. Toggleable
// cells add data-expanded. [WithDocument] wraps the table in a full page.
//
// # JSON Output
//
// [WriteJSON] encodes the matrix with cell types written by name:
//
//	{
//	  "headerRows": 3,
//	  "headerColumns": 1,
//	  "columns": 4,
//	  "rows": [{"cells": [{"value": "", "cellType": "Corner", ...}]}]
//	}
//
// [grid.Matrix]: github.com/matzehuels/pivotgrid/pkg/pivot/grid.Matrix
// [grid.Build]: github.com/matzehuels/pivotgrid/pkg/pivot/grid.Build
package sink
