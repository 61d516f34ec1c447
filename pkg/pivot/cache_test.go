package pivot

import (
	"slices"
	"testing"

	"github.com/matzehuels/pivotgrid/pkg/errors"
)

func TestNodeCacheGet(t *testing.T) {
	c := NewNodeCache[int]()

	n := c.Get(NodeSpec[int]{ID: "a", Value: "first", CanToggle: true, Expanded: true})
	if !n.Expanded {
		t.Error("new toggleable node Expanded = false, want true")
	}
	n.add(&Node[int]{ID: "child"})

	again := c.Get(NodeSpec[int]{ID: "a", Value: "second", CanToggle: true, Expanded: true})
	if again != n {
		t.Fatal("Get() returned a different node for the same id")
	}
	if again.Value != "second" {
		t.Errorf("Value = %q, want %q", again.Value, "second")
	}
	if len(again.Children) != 0 {
		t.Errorf("Children = %d after hit, want 0", len(again.Children))
	}

	want := CacheStats{Hits: 1, Misses: 1, Entries: 1}
	if got := c.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestNodeCacheDefaultCollapsed(t *testing.T) {
	tests := []struct {
		name      string
		spec      NodeSpec[int]
		wantState bool
	}{
		{"toggleable collapsed", NodeSpec[int]{ID: "g", CanToggle: true}, false},
		{"toggleable expanded", NodeSpec[int]{ID: "g", CanToggle: true, Expanded: true}, true},
		{"fixed ignores default", NodeSpec[int]{ID: "g"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewNodeCache[int]()
			if got := c.Get(tt.spec).Expanded; got != tt.wantState {
				t.Errorf("Expanded = %v, want %v", got, tt.wantState)
			}
			if got := c.Expanded("g"); got != tt.wantState {
				t.Errorf("Expanded(g) = %v, want %v", got, tt.wantState)
			}
		})
	}
}

func TestNodeCacheToggle(t *testing.T) {
	c := NewNodeCache[int]()
	c.Get(NodeSpec[int]{ID: "g", CanToggle: true, Expanded: true})

	expanded, err := c.Toggle("g")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if expanded {
		t.Error("first Toggle() = true, want false")
	}
	if !slices.Equal(c.Collapsed(), []string{"g"}) {
		t.Errorf("Collapsed() = %v, want [g]", c.Collapsed())
	}

	// The default is only used for new nodes.
	n := c.Get(NodeSpec[int]{ID: "g", CanToggle: true, Expanded: true})
	if n.Expanded {
		t.Error("rebuilt node Expanded = true, want false")
	}

	expanded, err = c.Toggle("g")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !expanded || !n.Expanded {
		t.Error("second Toggle() did not expand the node")
	}
}

func TestNodeCacheToggleErrors(t *testing.T) {
	c := NewNodeCache[int]()
	c.Get(NodeSpec[int]{ID: "leaf", CanToggle: false})

	tests := []struct {
		id   string
		want errors.Code
	}{
		{"missing", errors.ErrCodeNodeNotFound},
		{"leaf", errors.ErrCodeNotToggleable},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, err := c.Toggle(tt.id)
			if !errors.Is(err, tt.want) {
				t.Errorf("Toggle(%q) error = %v, want code %s", tt.id, err, tt.want)
			}
		})
	}
}

func TestNodeCacheLosesToggleability(t *testing.T) {
	c := NewNodeCache[int]()
	c.Get(NodeSpec[int]{ID: "g", CanToggle: true})
	if c.Expanded("g") {
		t.Fatal("g should start collapsed")
	}

	// The group became a leaf, e.g. after a dimension was disabled.
	n := c.Get(NodeSpec[int]{ID: "g"})
	if !n.Expanded || !c.Expanded("g") {
		t.Error("leaf node stayed collapsed")
	}
}

func TestNodeCacheSetExpanded(t *testing.T) {
	c := NewNodeCache[int]()
	c.Get(NodeSpec[int]{ID: "g", CanToggle: true, Expanded: true})

	for _, want := range []bool{false, false, true} {
		if err := c.SetExpanded("g", want); err != nil {
			t.Fatalf("SetExpanded(%v) error = %v", want, err)
		}
		if got := c.Expanded("g"); got != want {
			t.Errorf("Expanded() = %v, want %v", got, want)
		}
	}
	if err := c.SetExpanded("nope", true); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("SetExpanded(nope) error = %v, want NODE_NOT_FOUND", err)
	}
}

func TestNodeCacheReset(t *testing.T) {
	c := NewNodeCache[int]()
	c.Get(NodeSpec[int]{ID: "g", CanToggle: true})
	c.Reset()

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if !c.Expanded("g") {
		t.Error("Expanded(g) = false after Reset, want true")
	}
	if _, ok := c.Lookup("g"); ok {
		t.Error("Lookup(g) found a node after Reset")
	}
}
