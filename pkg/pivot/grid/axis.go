package grid

import "github.com/matzehuels/pivotgrid/pkg/pivot"

type axis bool

const (
	rowAxis    axis = true
	columnAxis axis = false
)

// unit is one visible slot along an axis. A collapsed group folds into the
// total that follows it: the group supplies the label, the total supplies
// the values (rows) or the measure labels (columns).
type unit[T any] struct {
	label  *pivot.Node[T]
	body   *pivot.Node[T]
	folded bool
}

func (u unit[T]) hidden() bool {
	return u.folded && u.body == u.label
}

// units lists the visible children of n along ax.
func (f *flattener[T]) units(n *pivot.Node[T], ax axis) []unit[T] {
	kids := n.Children
	var out []unit[T]
	for i := 0; i < len(kids); i++ {
		c := kids[i]
		if c.IsRow != bool(ax) {
			continue
		}
		if c.CellType != pivot.CellTypeGroupHeader || f.expanded(c) {
			out = append(out, unit[T]{label: c, body: c})
			continue
		}

		u := unit[T]{label: c, body: c, folded: true}
		if j := nextOnAxis(kids, i+1, ax); j >= 0 && kids[j].CellType == pivot.CellTypeTotalHeader {
			u.body = kids[j]
			i = j
		}
		out = append(out, u)
	}
	return out
}

func nextOnAxis[T any](kids []*pivot.Node[T], from int, ax axis) int {
	for j := from; j < len(kids); j++ {
		if kids[j].IsRow == bool(ax) {
			return j
		}
	}
	return -1
}

func (f *flattener[T]) children(u unit[T], ax axis) []unit[T] {
	if u.hidden() {
		return nil
	}
	return f.units(u.body, ax)
}

// depth counts the levels u occupies along ax, itself included. Only
// expanded nodes contribute their children, so collapsing a group makes
// the matrix shallower.
func (f *flattener[T]) depth(u unit[T], ax axis) int {
	d := 0
	for _, c := range f.children(u, ax) {
		d = max(d, f.depth(c, ax))
	}
	return d + 1
}

// leafCount counts the slots u spans along ax: rows on the row axis,
// physical columns on the column axis. A node without visible children
// counts as one.
func (f *flattener[T]) leafCount(u unit[T], ax axis) int {
	kids := f.children(u, ax)
	if len(kids) == 0 {
		return 1
	}
	n := 0
	for _, c := range kids {
		n += f.leafCount(c, ax)
	}
	return n
}
