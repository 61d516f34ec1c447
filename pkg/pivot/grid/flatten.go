package grid

import "github.com/matzehuels/pivotgrid/pkg/pivot"

// Expansion answers whether a node is expanded. [pivot.NodeCache]
// implements it.
type Expansion interface {
	Expanded(id string) bool
}

type flattener[T any] struct {
	exp Expansion

	height  int // header rows
	width   int // row-header columns
	columns int // data columns
	next    int // next data column to register

	index map[string]int // column key -> data column
	leaf  map[int]bool   // data columns under plain groups
}

// Build flattens a header tree and a data tree into a Matrix.
//
// The header pass lays out the column groups bottom-aligned so every
// measure label lands in the last header row, and records the data column
// of each column key. The row pass then emits one matrix row per visible
// leaf, total or folded row, placing each value by its column key and
// filling columns the row has no value for with empty placeholders.
//
// Expansion is read from exp. A nil exp falls back to each node's
// Expanded field. Empty trees yield an empty Matrix.
func Build[T any](header, data *pivot.Node[T], exp Expansion) *Matrix {
	m := &Matrix{}
	if header == nil || data == nil || len(header.Children) == 0 || len(data.Children) == 0 {
		return m
	}

	f := &flattener[T]{
		exp:   exp,
		index: make(map[string]int),
		leaf:  make(map[int]bool),
	}
	f.buildHeaders(m, header)
	f.buildRows(m, data)

	m.HeaderRows = f.height
	m.HeaderColumns = f.width
	m.Columns = f.width + f.columns
	return m
}

func (f *flattener[T]) expanded(n *pivot.Node[T]) bool {
	if !n.CanToggle {
		return true
	}
	if f.exp != nil {
		return f.exp.Expanded(n.ID)
	}
	return n.Expanded
}

func (f *flattener[T]) buildHeaders(m *Matrix, root *pivot.Node[T]) {
	top := unit[T]{label: root, body: root}
	f.height = f.depth(top, columnAxis)
	f.columns = f.leafCount(top, columnAxis)

	m.Rows = make([]Row, f.height)
	m.Rows[0].Cells = []Cell{
		{CellType: pivot.CellTypeCorner, RowSpan: f.height, ColSpan: 1, Expanded: true},
		{CellType: pivot.CellTypeSortBar, RowSpan: 1, ColSpan: f.columns, Expanded: true},
	}
	for _, u := range f.units(root, columnAxis) {
		f.placeHeader(m, u, 1)
	}
}

// placeHeader lays out u and its subtree starting at header row top.
// Children are placed before the node's own cell; they sit in lower rows,
// so every row still lists its cells left to right.
func (f *flattener[T]) placeHeader(m *Matrix, u unit[T], top int) {
	n := u.label
	if n.CellType.IsLabel() {
		f.index[n.ColumnKey] = f.next
		if n.CellType == pivot.CellTypeMeasureLabel {
			f.leaf[f.next] = true
		}
		f.next++
		last := f.height - 1
		m.Rows[last].Cells = append(m.Rows[last].Cells, Cell{
			Value:    n.Value,
			CellType: n.CellType,
			RowSpan:  1,
			ColSpan:  1,
			Expanded: true,
			NodeID:   n.ID,
		})
		return
	}

	bottom := f.height - f.depth(u, columnAxis)
	for _, c := range f.children(u, columnAxis) {
		f.placeHeader(m, c, bottom+1)
	}
	m.Rows[top].Cells = append(m.Rows[top].Cells, Cell{
		Value:     n.Value,
		CellType:  n.CellType,
		RowSpan:   bottom - top + 1,
		ColSpan:   f.leafCount(u, columnAxis),
		Expanded:  !u.folded,
		NodeID:    n.ID,
		CanToggle: n.CanToggle,
	})
}

func (f *flattener[T]) buildRows(m *Matrix, root *pivot.Node[T]) {
	top := unit[T]{label: root, body: root}
	f.width = max(f.depth(top, rowAxis)-1, 1)
	m.Rows[0].Cells[0].ColSpan = f.width

	var cur Row
	for _, u := range f.units(root, rowAxis) {
		f.placeRow(m, &cur, u, 1)
	}
}

// placeRow emits the label of u at row-header column level and either
// descends into its rows or completes the matrix row with its values.
func (f *flattener[T]) placeRow(m *Matrix, cur *Row, u unit[T], level int) {
	n := u.label
	if kids := f.children(u, rowAxis); !u.folded && len(kids) > 0 {
		cur.Cells = append(cur.Cells, Cell{
			Value:     n.Value,
			CellType:  n.CellType,
			RowSpan:   f.leafCount(u, rowAxis),
			ColSpan:   1,
			Expanded:  true,
			NodeID:    n.ID,
			CanToggle: n.CanToggle,
		})
		for _, c := range kids {
			f.placeRow(m, cur, c, level+1)
		}
		return
	}

	cur.Cells = append(cur.Cells, Cell{
		Value:     n.Value,
		CellType:  n.CellType,
		RowSpan:   1,
		ColSpan:   f.width - level + 1,
		Expanded:  !u.folded,
		NodeID:    n.ID,
		CanToggle: n.CanToggle,
	})
	totalRow := u.folded || n.CellType != pivot.CellTypeGroupHeader
	f.placeValues(cur, u.body, totalRow)
	m.Rows = append(m.Rows, *cur)
	*cur = Row{}
}

// placeValues appends the values of body in header column order. Each
// value goes to the column its key was registered at, independent of the
// order of body's children. Columns the header has no slot for belong to
// collapsed column groups and are skipped; gaps are filled with
// placeholders.
func (f *flattener[T]) placeValues(cur *Row, body *pivot.Node[T], totalRow bool) {
	slots := make([]*pivot.Node[T], f.columns)
	for _, c := range body.Children {
		if c.IsRow {
			continue
		}
		if idx, ok := f.index[c.ColumnKey]; ok && slots[idx] == nil {
			slots[idx] = c
		}
	}
	for col, c := range slots {
		if c == nil {
			cur.Cells = append(cur.Cells, f.placeholder(col, totalRow))
			continue
		}
		cur.Cells = append(cur.Cells, Cell{
			Value:    c.Value,
			CellType: c.CellType,
			RowSpan:  1,
			ColSpan:  1,
			Expanded: true,
			NodeID:   c.ID,
		})
	}
}

func (f *flattener[T]) placeholder(col int, totalRow bool) Cell {
	ct := pivot.CellTypeMeasure
	if totalRow || !f.leaf[col] {
		ct = pivot.CellTypeTotal
	}
	return Cell{CellType: ct, RowSpan: 1, ColSpan: 1, Expanded: true}
}
