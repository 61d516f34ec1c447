package pivot

import (
	"github.com/matzehuels/pivotgrid/pkg/errors"
)

// NodeSpec describes a node requested from a [NodeCache].
// Expanded is the default expansion, used only when the node is new.
type NodeSpec[T any] struct {
	ID        string
	CellType  CellType
	ColumnKey string
	Value     string
	Number    float64

	RowDimension    *Dimension[T]
	ColumnDimension *Dimension[T]

	IsRow     bool
	Expanded  bool
	CanToggle bool
}

// CacheStats reports how a [NodeCache] has been used.
type CacheStats struct {
	Hits    int
	Misses  int
	Entries int
}

// NodeCache maps node identifiers to the nodes built for them, so a
// rebuild hands back the same node and keeps its expand/collapse state.
//
// The authoritative expansion state is the set of collapsed identifiers;
// each node's Expanded field mirrors it. A NodeCache belongs to one pivot
// session and is not safe for concurrent use.
type NodeCache[T any] struct {
	nodes     map[string]*Node[T]
	collapsed map[string]struct{}
	hits      int
	misses    int
}

// NewNodeCache returns an empty cache.
func NewNodeCache[T any]() *NodeCache[T] {
	return &NodeCache[T]{
		nodes:     make(map[string]*Node[T]),
		collapsed: make(map[string]struct{}),
	}
}

// Get returns the node for s.ID. An existing node has its children cleared
// and its display fields refreshed from s, but keeps its expansion state.
// A new node starts expanded unless s.Expanded is false and it can toggle.
func (c *NodeCache[T]) Get(s NodeSpec[T]) *Node[T] {
	n, ok := c.nodes[s.ID]
	if ok {
		c.hits++
		n.Children = nil
	} else {
		c.misses++
		n = &Node[T]{ID: s.ID}
		c.nodes[s.ID] = n
		if s.CanToggle && !s.Expanded {
			c.collapsed[s.ID] = struct{}{}
		}
	}

	n.CellType = s.CellType
	n.ColumnKey = s.ColumnKey
	n.Value = s.Value
	n.Number = s.Number
	n.RowDimension = s.RowDimension
	n.ColumnDimension = s.ColumnDimension
	n.IsRow = s.IsRow
	n.CanToggle = s.CanToggle
	if !s.CanToggle {
		delete(c.collapsed, s.ID)
	}
	n.Expanded = c.Expanded(s.ID)
	return n
}

// Toggle flips the expansion of the node with the given identifier and
// returns its new state. Unknown identifiers and nodes that cannot toggle
// are reported as errors.
func (c *NodeCache[T]) Toggle(id string) (bool, error) {
	n, ok := c.nodes[id]
	if !ok {
		return false, errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", id)
	}
	if !n.CanToggle {
		return false, errors.New(errors.ErrCodeNotToggleable, "node %q (%s) cannot be expanded or collapsed", id, n.CellType)
	}

	if _, collapsed := c.collapsed[id]; collapsed {
		delete(c.collapsed, id)
	} else {
		c.collapsed[id] = struct{}{}
	}
	n.Expanded = c.Expanded(id)
	return n.Expanded, nil
}

// SetExpanded forces the expansion of a toggleable node.
func (c *NodeCache[T]) SetExpanded(id string, expanded bool) error {
	n, ok := c.nodes[id]
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", id)
	}
	if n.Expanded == expanded {
		return nil
	}
	_, err := c.Toggle(id)
	return err
}

// Expanded reports whether the node with the given identifier is expanded.
// Identifiers the cache has never seen count as expanded.
func (c *NodeCache[T]) Expanded(id string) bool {
	_, collapsed := c.collapsed[id]
	return !collapsed
}

// Lookup returns the cached node for id.
func (c *NodeCache[T]) Lookup(id string) (*Node[T], bool) {
	n, ok := c.nodes[id]
	return n, ok
}

// Collapsed returns the identifiers of all collapsed nodes.
func (c *NodeCache[T]) Collapsed() []string {
	ids := make([]string, 0, len(c.collapsed))
	for id := range c.collapsed {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of cached nodes.
func (c *NodeCache[T]) Len() int { return len(c.nodes) }

// Stats returns hit, miss and entry counts.
func (c *NodeCache[T]) Stats() CacheStats {
	return CacheStats{Hits: c.hits, Misses: c.misses, Entries: len(c.nodes)}
}

// Reset forgets every node and all expansion state.
func (c *NodeCache[T]) Reset() {
	clear(c.nodes)
	clear(c.collapsed)
	c.hits, c.misses = 0, 0
}
