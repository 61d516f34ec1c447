package grid

import (
	"slices"
	"testing"
)

func TestOccupancy(t *testing.T) {
	m := &Matrix{Rows: []Row{
		{Cells: []Cell{{RowSpan: 2, ColSpan: 1}, {RowSpan: 1, ColSpan: 2}}},
		{Cells: []Cell{{RowSpan: 1, ColSpan: 1}, {RowSpan: 1, ColSpan: 1}}},
	}}

	occ := m.Occupancy()
	want := [][]Position{
		{{0, 0}, {0, 1}, {0, 1}},
		{{0, 0}, {1, 0}, {1, 1}},
	}
	for r := range want {
		if !slices.Equal(occ[r], want[r]) {
			t.Errorf("row %d = %v, want %v", r, occ[r], want[r])
		}
	}
	if got := m.Width(); !slices.Equal(got, []int{3, 3}) {
		t.Errorf("Width() = %v, want [3 3]", got)
	}
}

func TestWidthRagged(t *testing.T) {
	m := &Matrix{Rows: []Row{
		{Cells: []Cell{{RowSpan: 1, ColSpan: 3}}},
		{Cells: []Cell{{RowSpan: 1, ColSpan: 1}}},
	}}
	if got := m.Width(); !slices.Equal(got, []int{3, 1}) {
		t.Errorf("Width() = %v, want [3 1]", got)
	}
}

func TestToggleable(t *testing.T) {
	m := &Matrix{Rows: []Row{
		{Cells: []Cell{{Value: "a"}, {Value: "b", CanToggle: true}}},
		{Cells: []Cell{{Value: "c", CanToggle: true}}},
	}}
	got := m.Toggleable()
	want := []Position{{0, 1}, {1, 0}}
	if !slices.Equal(got, want) {
		t.Fatalf("Toggleable() = %v, want %v", got, want)
	}
	if c := m.Cell(got[1]); c.Value != "c" {
		t.Errorf("Cell() = %q, want c", c.Value)
	}
}
