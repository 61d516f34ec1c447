// Package pivot builds the trees behind an interactive pivot table.
//
// # Overview
//
// A pivot table cross-tabulates flat records: rows are grouped by one or
// more row dimensions, columns by one or more column dimensions, and every
// row and column intersection shows the value of each measure. Groups of
// non-leaf dimensions get subtotals, and the whole table can end with a
// grand total row and column.
//
// This package holds the configuration model ([Dimension], [Measure]),
// its [Validate] and normalization functions, the [Builder] that turns
// records into trees, and the [NodeCache] that keeps expand/collapse state
// across rebuilds. Turning the trees into a grid of spanning cells is the
// job of package grid.
//
// # Dimensions and Measures
//
// Dimensions and measures are plain values with function fields:
//
//	product := &pivot.Dimension[Sale]{
//	    Name:     "Product",
//	    IsRow:    true,
//	    GroupKey: func(s Sale) string { return s.Product },
//	}
//	qty := &pivot.Measure[Sale]{
//	    Name:   "Quantity",
//	    Format: "%.0f",
//	    Aggregate: func(md pivot.MeasureData[Sale]) float64 {
//	        return pivot.Sum(md.Cell, func(s Sale) float64 { return s.Qty })
//	    },
//	}
//
// A measure receives a [MeasureData] holding the records of its cell, of
// the whole row and of the whole column, so percent-of-row and
// percent-of-column measures are ordinary aggregate functions (see
// [RowShare] and [ColumnShare]).
//
// # Trees
//
// [Builder.Build] returns the data tree. Its row nodes are GroupHeader,
// TotalHeader and GrandTotalHeader nodes; leaf and total rows own one
// value leaf per measure and column, tagged Measure, Total or GrandTotal.
// [Builder.BuildColumnHeaders] returns the header tree, in which column
// groups are materialized and end in MeasureLabel or MeasureTotalLabel
// leaves.
//
// Every value leaf and its label share a column key, the path of column
// fragments such as "[Year:2020]/[Quarter:1]/{Quantity}". Column keys let
// rows with different shapes line up in one grid.
//
// # Expansion State
//
// Node identifiers are paths of "[dimension:key]" fragments, so the same
// group gets the same identifier on every rebuild. [NodeCache] hands back
// the existing node for an identifier and keeps the set of collapsed
// identifiers; [NodeCache.Toggle] flips one entry and fails for unknown
// identifiers and for nodes that cannot be toggled.
//
// # Concurrency
//
// Nothing in this package is safe for concurrent use. A cache belongs to
// one pivot session and a builder to one cache.
package pivot
