package nodelink

import "github.com/matzehuels/pivotgrid/pkg/pivot"

// Entry is one node of a tree listing.
type Entry struct {
	ID        string
	Parent    string
	Value     string
	CellType  pivot.CellType
	ColumnKey string
	Depth     int
	Expanded  bool
	CanToggle bool
}

// Flatten lists the nodes of root depth-first, root first. Value and
// measure label leaves are only included when opts.Values is set. The
// Expansion in opts decides the Expanded flag; children of collapsed
// nodes are still listed.
func Flatten[T any](root *pivot.Node[T], opts Options) []Entry {
	if root == nil {
		return nil
	}
	var out []Entry
	var visit func(n *pivot.Node[T], parent string, depth int)
	visit = func(n *pivot.Node[T], parent string, depth int) {
		if !opts.Values && (n.CellType.IsValue() || n.CellType.IsLabel()) {
			return
		}
		expanded := n.Expanded
		if n.CanToggle && opts.Expansion != nil {
			expanded = opts.Expansion.Expanded(n.ID)
		}
		out = append(out, Entry{
			ID:        n.ID,
			Parent:    parent,
			Value:     n.Value,
			CellType:  n.CellType,
			ColumnKey: n.ColumnKey,
			Depth:     depth,
			Expanded:  expanded,
			CanToggle: n.CanToggle,
		})
		for _, c := range n.Children {
			visit(c, n.ID, depth+1)
		}
	}
	visit(root, "", 0)
	return out
}
