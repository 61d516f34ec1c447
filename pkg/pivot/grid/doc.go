// Package grid flattens pivot trees into a rectangular matrix of spanning
// cells.
//
// [Build] takes the header tree and the data tree produced by a
// [pivot.Builder] and lays them out the way an HTML table does: every
// cell has a row span and a column span, and each row lists only the
// cells that start in it.
//
// # Layout
//
// The first header row holds a Corner cell, spanning all header rows and
// all row-header columns, and a SortBar cell spanning the data columns.
// Column groups follow, bottom-aligned so every measure label lands in
// the last header row. Body rows start with their row-header labels and
// continue with one cell per data column.
//
//	┌────────────┬───────────────────────────┐
//	│            │          SortBar          │
//	│            ├──────┬──────┬─────────────┤
//	│   Corner   │ East │ West │ Grand Total │
//	│            ├──────┼──────┼─────────────┤
//	│            │ Qty  │ Qty  │ Qty         │
//	├────────────┼──────┼──────┼─────────────┤
//	│ A          │ 10   │ 5    │ 15          │
//	│ Grand Total│ 10   │ 5    │ 15          │
//	└────────────┴──────┴──────┴─────────────┘
//
// # Collapsed Groups
//
// A collapsed group is drawn as a single slot showing its own label and
// the values of its total. Collapsing a row group with N leaf rows
// replaces those rows and the total row with one row; collapsing a column
// group replaces its columns and its total columns with the total
// columns alone.
//
// Rows without a value for some column get an empty placeholder cell, so
// every row covers the same number of physical columns. [Matrix.Width]
// reports that number per row.
package grid
