package pivot

import (
	"cmp"
	"slices"
)

// branch says whether a row or column path runs through plain groups, a
// subtotal or the grand total.
type branch int

const (
	branchGroup branch = iota
	branchTotal
	branchGrandTotal
)

// valueType picks the cell type of a value leaf from its row and column
// branches. A grand total on either axis wins over a subtotal.
func valueType(row, column branch) CellType {
	switch {
	case row == branchGrandTotal || column == branchGrandTotal:
		return CellTypeGrandTotal
	case row == branchTotal || column == branchTotal:
		return CellTypeTotal
	}
	return CellTypeMeasure
}

// Builder groups records along row and column dimensions and produces the
// data tree and the column-header tree of a pivot table. Every node is
// obtained from the builder's [NodeCache], so expansion state survives a
// rebuild.
//
// Dimensions and measures are expected to have passed [Validate]. A
// Builder is not safe for concurrent use.
type Builder[T any] struct {
	cache *NodeCache[T]

	data        []T
	rows        []*Dimension[T]
	columns     []*Dimension[T]
	measures    []*Measure[T]
	grandTotals bool

	keys *columnKeys
	// column extents by parent column path, then by group key
	extents map[string]map[string][]T
}

// NewBuilder returns a builder that resolves nodes through cache. A nil
// cache gets a fresh one.
func NewBuilder[T any](cache *NodeCache[T]) *Builder[T] {
	if cache == nil {
		cache = NewNodeCache[T]()
	}
	return &Builder[T]{cache: cache}
}

// Cache returns the builder's node cache.
func (b *Builder[T]) Cache() *NodeCache[T] { return b.cache }

func (b *Builder[T]) prepare(data []T, dims []*Dimension[T], measures []*Measure[T], grandTotals bool) {
	b.data = data
	b.rows, b.columns = splitAxes(dims)
	b.measures = enabledMeasures(measures)
	b.grandTotals = grandTotals
	b.keys = newColumnKeys(len(b.columns))
	b.extents = make(map[string]map[string][]T)
}

// Build returns the root of the data tree.
//
// Row groups become GroupHeader nodes, each non-leaf row group is followed
// by a TotalHeader sibling, and leaf and total rows own one value leaf per
// measure and column. With grandTotals set the root ends with a
// GrandTotalHeader row over the whole input.
func (b *Builder[T]) Build(data []T, dims []*Dimension[T], measures []*Measure[T], grandTotals bool) *Node[T] {
	b.prepare(data, dims, measures, grandTotals)
	root := b.cache.Get(NodeSpec[T]{ID: DataRootID, CellType: CellTypeRoot, IsRow: true, Expanded: true})
	if len(data) == 0 || len(b.rows) == 0 || len(b.columns) == 0 {
		return root
	}

	b.buildRows(root, 0, data)
	if grandTotals {
		gt := b.cache.Get(NodeSpec[T]{
			ID:           RowGrandTotalID,
			CellType:     CellTypeGrandTotalHeader,
			Value:        GrandTotalLabel,
			RowDimension: b.rows[0],
			IsRow:        true,
			Expanded:     true,
		})
		root.add(gt)
		b.buildColumns(gt, branchGrandTotal, 0, data, data, data)
	}
	return root
}

// BuildColumnHeaders returns the root of the header tree, which holds the
// column groups, their totals and the grand total column, each ending in
// one label leaf per measure.
func (b *Builder[T]) BuildColumnHeaders(data []T, dims []*Dimension[T], measures []*Measure[T], grandTotals bool) *Node[T] {
	b.prepare(data, dims, measures, grandTotals)
	root := b.cache.Get(NodeSpec[T]{ID: HeaderRootID, CellType: CellTypeRoot, Expanded: true})
	if len(data) == 0 || len(b.columns) == 0 {
		return root
	}
	b.buildHeaders(root, 0, data)
	return root
}

func (b *Builder[T]) buildRows(parent *Node[T], level int, records []T) {
	dim := b.rows[level]
	leaf := level == len(b.rows)-1

	for _, g := range groupBy(dim, records) {
		id := childID(parent, groupFragment(dim.Name, g.key))
		node := b.cache.Get(NodeSpec[T]{
			ID:           id,
			CellType:     CellTypeGroupHeader,
			Value:        g.label,
			RowDimension: dim,
			IsRow:        true,
			Expanded:     leaf || !dim.Collapsed,
			CanToggle:    !leaf,
		})
		parent.add(node)

		if leaf {
			b.buildColumns(node, branchGroup, 0, g.records, g.records, b.data)
			continue
		}

		b.buildRows(node, level+1, g.records)
		total := b.cache.Get(NodeSpec[T]{
			ID:           id + totalMarker,
			CellType:     CellTypeTotalHeader,
			Value:        g.label + totalSuffix,
			RowDimension: dim,
			IsRow:        true,
			Expanded:     true,
		})
		parent.add(total)
		b.buildColumns(total, branchTotal, 0, g.records, g.records, b.data)
	}
}

// buildColumns inlines the column axis under owner. cell is the owner's
// slice of the current column path, row the owner's full row and column
// the records of the current column path across all rows.
func (b *Builder[T]) buildColumns(owner *Node[T], row branch, level int, cell, rowSet, column []T) {
	dim := b.columns[level]
	leaf := level == len(b.columns)-1
	extents := b.columnExtents(dim, column)

	for _, g := range groupBy(dim, cell) {
		b.keys.set(level, groupFragment(dim.Name, g.key))
		columnSet := extents[g.key]
		if leaf {
			b.emitValues(owner, valueType(row, branchGroup), dim, g.records, rowSet, columnSet)
		} else {
			b.buildColumns(owner, row, level+1, g.records, rowSet, columnSet)
			b.keys.set(level, totalFragment(dim.Name, g.key))
			b.emitValues(owner, valueType(row, branchTotal), dim, g.records, rowSet, columnSet)
		}
		b.keys.clear(level)
	}

	if level == 0 && b.grandTotals {
		b.keys.grandTotal()
		b.emitValues(owner, valueType(row, branchGrandTotal), nil, cell, rowSet, column)
		b.keys.clearGrandTotal()
	}
}

// columnExtents groups the records of the current column path by dim.
// The result depends only on the path, so it is shared by every row.
func (b *Builder[T]) columnExtents(dim *Dimension[T], column []T) map[string][]T {
	path := b.keys.path()
	if m, ok := b.extents[path]; ok {
		return m
	}
	m := make(map[string][]T)
	for _, r := range column {
		k := dim.GroupKey(r)
		m[k] = append(m[k], r)
	}
	b.extents[path] = m
	return m
}

func (b *Builder[T]) emitValues(owner *Node[T], ct CellType, colDim *Dimension[T], cell, row, column []T) {
	for _, m := range b.measures {
		md := MeasureData[T]{
			Cell:            cell,
			Row:             row,
			Column:          column,
			RowDimension:    owner.RowDimension,
			ColumnDimension: colDim,
		}
		var v float64
		if m.Aggregate != nil {
			v = m.Aggregate(md)
		}
		key := b.keys.key(m.Name)
		owner.add(b.cache.Get(NodeSpec[T]{
			ID:              owner.ID + "|" + key,
			CellType:        ct,
			ColumnKey:       key,
			Value:           m.FormatValue(v),
			Number:          v,
			RowDimension:    owner.RowDimension,
			ColumnDimension: colDim,
			Expanded:        true,
		}))
	}
}

func (b *Builder[T]) buildHeaders(parent *Node[T], level int, records []T) {
	dim := b.columns[level]
	leaf := level == len(b.columns)-1

	for _, g := range groupBy(dim, records) {
		b.keys.set(level, groupFragment(dim.Name, g.key))
		path := b.keys.path()
		node := b.cache.Get(NodeSpec[T]{
			ID:              path,
			CellType:        CellTypeGroupHeader,
			ColumnKey:       path,
			Value:           g.label,
			ColumnDimension: dim,
			Expanded:        leaf || !dim.Collapsed,
			CanToggle:       !leaf,
		})
		parent.add(node)

		if leaf {
			b.emitLabels(node, CellTypeMeasureLabel, dim)
		} else {
			b.buildHeaders(node, level+1, g.records)
			b.keys.set(level, totalFragment(dim.Name, g.key))
			path = b.keys.path()
			total := b.cache.Get(NodeSpec[T]{
				ID:              path,
				CellType:        CellTypeTotalHeader,
				ColumnKey:       path,
				Value:           g.label + totalSuffix,
				ColumnDimension: dim,
				Expanded:        true,
			})
			parent.add(total)
			b.emitLabels(total, CellTypeMeasureTotalLabel, dim)
		}
		b.keys.clear(level)
	}

	if level == 0 && b.grandTotals {
		b.keys.grandTotal()
		gt := b.cache.Get(NodeSpec[T]{
			ID:              ColumnGrandTotalID,
			CellType:        CellTypeGrandTotalHeader,
			ColumnKey:       b.keys.path(),
			Value:           GrandTotalLabel,
			ColumnDimension: dim,
			Expanded:        true,
		})
		parent.add(gt)
		b.emitLabels(gt, CellTypeMeasureTotalLabel, nil)
		b.keys.clearGrandTotal()
	}
}

func (b *Builder[T]) emitLabels(owner *Node[T], ct CellType, dim *Dimension[T]) {
	for _, m := range b.measures {
		key := b.keys.key(m.Name)
		owner.add(b.cache.Get(NodeSpec[T]{
			ID:              "#label:" + key,
			CellType:        ct,
			ColumnKey:       key,
			Value:           m.Name,
			ColumnDimension: dim,
			Expanded:        true,
		}))
	}
}

func childID[T any](parent *Node[T], fragment string) string {
	if parent.CellType == CellTypeRoot {
		return fragment
	}
	return parent.ID + fragment
}

type group[T any] struct {
	key     string
	label   string
	records []T
}

// groupBy partitions records by dim, then orders the groups by sort key.
// Keys with equal sort keys are ordered by the key itself, so every subset
// of the records lists its groups in the same relative order.
func groupBy[T any](dim *Dimension[T], records []T) []group[T] {
	index := make(map[string]int)
	var groups []group[T]
	for _, r := range records {
		k := dim.GroupKey(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[T]{key: k, label: dim.label(r)})
		}
		groups[i].records = append(groups[i].records, r)
	}

	slices.SortFunc(groups, func(a, c group[T]) int {
		o := cmp.Or(cmp.Compare(dim.sortKey(a.key), dim.sortKey(c.key)), cmp.Compare(a.key, c.key))
		if dim.Descending {
			return -o
		}
		return o
	})
	return groups
}

// splitAxes returns the enabled row and column dimensions, each ordered by
// sequence.
func splitAxes[T any](dims []*Dimension[T]) (rows, columns []*Dimension[T]) {
	for _, d := range dims {
		if d == nil || d.Disabled {
			continue
		}
		if d.IsRow {
			rows = append(rows, d)
		} else {
			columns = append(columns, d)
		}
	}
	bySequence := func(a, c *Dimension[T]) int { return cmp.Compare(a.Sequence, c.Sequence) }
	slices.SortStableFunc(rows, bySequence)
	slices.SortStableFunc(columns, bySequence)
	return rows, columns
}

// enabledMeasures returns the enabled measures ordered by sequence.
func enabledMeasures[T any](measures []*Measure[T]) []*Measure[T] {
	var out []*Measure[T]
	for _, m := range measures {
		if m != nil && !m.Disabled {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, c *Measure[T]) int { return cmp.Compare(a.Sequence, c.Sequence) })
	return out
}
