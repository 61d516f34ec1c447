package grid

import "github.com/matzehuels/pivotgrid/pkg/pivot"

// Cell is one spanning cell of a Matrix.
type Cell struct {
	Value     string         `json:"value"`
	CellType  pivot.CellType `json:"cellType"`
	RowSpan   int            `json:"rowSpan"`
	ColSpan   int            `json:"colSpan"`
	Expanded  bool           `json:"expanded"`
	NodeID    string         `json:"nodeId,omitempty"`
	CanToggle bool           `json:"canToggle"`
}

// Row is one row of a Matrix. Its cells are listed left to right, skipping
// positions covered by cells from rows above.
type Row struct {
	Cells []Cell `json:"cells"`
}

// Matrix is a rectangular grid of spanning cells, the layout an HTML
// table with rowspan and colspan uses.
type Matrix struct {
	Rows []Row `json:"rows"`

	// HeaderRows is the number of leading header rows.
	HeaderRows int `json:"headerRows"`
	// HeaderColumns is the number of leading row-header columns.
	HeaderColumns int `json:"headerColumns"`
	// Columns is the number of physical columns.
	Columns int `json:"columns"`
}

// Empty reports whether the matrix has no rows.
func (m *Matrix) Empty() bool { return len(m.Rows) == 0 }

// Position addresses a cell by row and index within the row.
type Position struct {
	Row   int
	Index int
}

// Occupancy resolves spans into physical positions. The result has one
// slice per row; each entry names the cell covering that slot. Slots no
// cell covers hold {-1, -1}. Cells that would overlap a slot already
// taken are placed after it, as browsers do.
func (m *Matrix) Occupancy() [][]Position {
	var grid [][]Position
	ensure := func(r, width int) {
		for len(grid) <= r {
			grid = append(grid, nil)
		}
		for len(grid[r]) < width {
			grid[r] = append(grid[r], Position{-1, -1})
		}
	}
	taken := func(r, c int) bool {
		return r < len(grid) && c < len(grid[r]) && grid[r][c].Row >= 0
	}

	for r, row := range m.Rows {
		ensure(r, 0)
		col := 0
		for i, cell := range row.Cells {
			for taken(r, col) {
				col++
			}
			rs, cs := max(cell.RowSpan, 1), max(cell.ColSpan, 1)
			for dr := range rs {
				ensure(r+dr, col+cs)
				for dc := range cs {
					grid[r+dr][col+dc] = Position{Row: r, Index: i}
				}
			}
			col += cs
		}
	}
	if len(grid) > len(m.Rows) {
		grid = grid[:len(m.Rows)]
	}
	return grid
}

// Width returns the number of physical columns each row covers, with
// spans from earlier rows counted.
func (m *Matrix) Width() []int {
	occ := m.Occupancy()
	widths := make([]int, len(occ))
	for r, slots := range occ {
		for _, p := range slots {
			if p.Row >= 0 {
				widths[r]++
			}
		}
	}
	return widths
}

// Toggleable returns the positions of cells that can be expanded or
// collapsed, in reading order.
func (m *Matrix) Toggleable() []Position {
	var out []Position
	for r, row := range m.Rows {
		for i, c := range row.Cells {
			if c.CanToggle {
				out = append(out, Position{Row: r, Index: i})
			}
		}
	}
	return out
}

// Cell returns the cell at p.
func (m *Matrix) Cell(p Position) Cell {
	return m.Rows[p.Row].Cells[p.Index]
}
