package pivot

// Identifiers of synthetic nodes.
const (
	DataRootID         = "#root"
	HeaderRootID       = "#header"
	RowGrandTotalID    = "#grand-total:row"
	ColumnGrandTotalID = "#grand-total:column"
)

// Captions of synthetic nodes.
const (
	GrandTotalLabel = "Grand Total"
	totalSuffix     = " Total"
)

// Node is one vertex of the data tree or the header tree.
//
// Row nodes of the data tree own either further row nodes or, on leaf and
// total rows, the value leaves of every column. Column structure is only
// materialized in the header tree.
type Node[T any] struct {
	ID        string
	CellType  CellType
	ColumnKey string
	Value     string
	Number    float64 // raw aggregate of value leaves

	RowDimension    *Dimension[T]
	ColumnDimension *Dimension[T]

	IsRow     bool
	Expanded  bool
	CanToggle bool

	Children []*Node[T]
}

func (n *Node[T]) add(c *Node[T]) {
	n.Children = append(n.Children, c)
}

// Walk visits n and its descendants depth-first, passing the depth below
// n. Returning false from fn skips the node's children.
func (n *Node[T]) Walk(fn func(node *Node[T], depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node[T]) walk(fn func(*Node[T], int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node[T]) Count() int {
	count := 0
	n.Walk(func(*Node[T], int) bool {
		count++
		return true
	})
	return count
}

// Find returns the node with the given identifier below n.
func (n *Node[T]) Find(id string) *Node[T] {
	var found *Node[T]
	n.Walk(func(c *Node[T], _ int) bool {
		if found != nil {
			return false
		}
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}
