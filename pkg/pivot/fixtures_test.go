package pivot_test

import (
	"github.com/matzehuels/pivotgrid/pkg/pivot"
)

type sale struct {
	Product string
	Region  string
	Country string
	City    string
	Year    string
	Quarter string
	Qty     float64
}

func qty(s sale) float64 { return s.Qty }

func sumQty() *pivot.Measure[sale] {
	return &pivot.Measure[sale]{
		Name:   "Sum(Qty)",
		Format: "%.0f",
		Aggregate: func(md pivot.MeasureData[sale]) float64 {
			return pivot.Sum(md.Cell, qty)
		},
	}
}

func dim(name string, row bool, seq int, key func(sale) string) *pivot.Dimension[sale] {
	return &pivot.Dimension[sale]{Name: name, IsRow: row, Sequence: seq, GroupKey: key}
}

// twoRegions is the smallest table with a grand total: one product sold
// in two regions.
func twoRegions() ([]sale, []*pivot.Dimension[sale], []*pivot.Measure[sale]) {
	data := []sale{
		{Product: "A", Region: "East", Qty: 10},
		{Product: "A", Region: "West", Qty: 5},
	}
	dims := []*pivot.Dimension[sale]{
		dim("Product", true, 0, func(s sale) string { return s.Product }),
		dim("Region", false, 0, func(s sale) string { return s.Region }),
	}
	return data, dims, []*pivot.Measure[sale]{sumQty()}
}

// nested has two row and two column dimensions:
//
//	CA/Toronto: 2021 Q2 3
//	US/LA:      2020 Q1 5, 2021 Q1 7
//	US/NYC:     2020 Q1 10, 2020 Q2 20
func nested() ([]sale, []*pivot.Dimension[sale], []*pivot.Measure[sale]) {
	data := []sale{
		{Country: "US", City: "NYC", Year: "2020", Quarter: "Q1", Qty: 10},
		{Country: "US", City: "NYC", Year: "2020", Quarter: "Q2", Qty: 20},
		{Country: "US", City: "LA", Year: "2020", Quarter: "Q1", Qty: 5},
		{Country: "US", City: "LA", Year: "2021", Quarter: "Q1", Qty: 7},
		{Country: "CA", City: "Toronto", Year: "2021", Quarter: "Q2", Qty: 3},
	}
	dims := []*pivot.Dimension[sale]{
		dim("Country", true, 0, func(s sale) string { return s.Country }),
		dim("City", true, 1, func(s sale) string { return s.City }),
		dim("Year", false, 0, func(s sale) string { return s.Year }),
		dim("Quarter", false, 1, func(s sale) string { return s.Quarter }),
	}
	return data, dims, []*pivot.Measure[sale]{sumQty()}
}

func childValues(n *pivot.Node[sale]) []string {
	var out []string
	for _, c := range n.Children {
		out = append(out, c.Value)
	}
	return out
}
