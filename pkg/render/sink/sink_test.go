package sink_test

import (
	"testing"

	"github.com/matzehuels/pivotgrid/pkg/pivot"
	"github.com/matzehuels/pivotgrid/pkg/pivot/grid"
)

type order struct {
	Product, Region string
	Qty             float64
}

// orders flattens A/East/10 and A/West/5 with products on rows and
// regions on columns.
func orders(t *testing.T) *grid.Matrix {
	t.Helper()
	data := []order{{"A", "East", 10}, {"A", "West", 5}}
	dims := []*pivot.Dimension[order]{
		{Name: "Product", IsRow: true, GroupKey: func(o order) string { return o.Product }},
		{Name: "Region", GroupKey: func(o order) string { return o.Region }},
	}
	measures := []*pivot.Measure[order]{{
		Name: "Qty",
		Aggregate: func(md pivot.MeasureData[order]) float64 {
			return pivot.Sum(md.Cell, func(o order) float64 { return o.Qty })
		},
	}}

	cache := pivot.NewNodeCache[order]()
	b := pivot.NewBuilder(cache)
	header := b.BuildColumnHeaders(data, dims, measures, true)
	tree := b.Build(data, dims, measures, true)
	return grid.Build(header, tree, cache)
}

// folded is a hand-built matrix with one collapsed row group.
func folded() *grid.Matrix {
	return &grid.Matrix{
		HeaderRows:    1,
		HeaderColumns: 1,
		Columns:       2,
		Rows: []grid.Row{
			{Cells: []grid.Cell{
				{CellType: pivot.CellTypeCorner, RowSpan: 1, ColSpan: 1, Expanded: true},
				{Value: "Qty", CellType: pivot.CellTypeMeasureTotalLabel, RowSpan: 1, ColSpan: 1, Expanded: true, NodeID: "#label:{Qty}"},
			}},
			{Cells: []grid.Cell{
				{Value: "US & <Co>", CellType: pivot.CellTypeGroupHeader, RowSpan: 1, ColSpan: 1, NodeID: "[Country:US]", CanToggle: true},
				{Value: "16", CellType: pivot.CellTypeTotal, RowSpan: 1, ColSpan: 1, Expanded: true, NodeID: "[Country:US]#total|{Qty}"},
			}},
		},
	}
}
