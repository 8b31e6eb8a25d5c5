package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hlop3z/sdelite/internal/sderr"
)

// -----------------------------------------------------------------------------
// Test Node Implementation
// -----------------------------------------------------------------------------

type testNode struct {
	id   string
	deps []string
}

func (n *testNode) ID() string             { return n.id }
func (n *testNode) Dependencies() []string { return n.deps }

func newNode(id string, deps ...string) *testNode {
	return &testNode{id: id, deps: deps}
}

func getIDs(nodes []*testNode) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	return ids
}

// -----------------------------------------------------------------------------
// TopoSort Tests
// -----------------------------------------------------------------------------

func TestTopoSort_EmptyInput(t *testing.T) {
	result, err := TopoSort[*testNode](nil)
	if err != nil {
		t.Fatalf("TopoSort() error = %v", err)
	}
	if result != nil {
		t.Errorf("TopoSort() = %v, want nil", result)
	}
}

func TestTopoSort(t *testing.T) {
	tests := []struct {
		name  string
		nodes []*testNode
		want  []string
	}{
		{
			name:  "single node",
			nodes: []*testNode{newNode("A")},
			want:  []string{"A"},
		},
		{
			name:  "linear chain given backwards",
			nodes: []*testNode{newNode("C", "B"), newNode("B", "A"), newNode("A")},
			want:  []string{"A", "B", "C"},
		},
		{
			name:  "independent nodes keep input order",
			nodes: []*testNode{newNode("Z"), newNode("A"), newNode("M")},
			want:  []string{"Z", "A", "M"},
		},
		{
			name:  "diamond",
			nodes: []*testNode{newNode("D", "B", "C"), newNode("B", "A"), newNode("C", "A"), newNode("A")},
			want:  []string{"A", "B", "C", "D"},
		},
		{
			name:  "self reference ignored",
			nodes: []*testNode{newNode("market_groups", "market_groups", "icons"), newNode("icons")},
			want:  []string{"icons", "market_groups"},
		},
		{
			name:  "dependencies outside the set ignored",
			nodes: []*testNode{newNode("types", "groups"), newNode("icons")},
			want:  []string{"types", "icons"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := TopoSort(tt.nodes)
			if err != nil {
				t.Fatalf("TopoSort() error = %v", err)
			}
			if got := getIDs(result); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TopoSort() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopoSort_Cycle(t *testing.T) {
	nodes := []*testNode{newNode("A", "B"), newNode("B", "C"), newNode("C", "A")}

	_, err := TopoSort(nodes)
	if !sderr.Is(err, sderr.ErrCircularDependency) {
		t.Fatalf("TopoSort() error = %v, want %s", err, sderr.ErrCircularDependency)
	}

	var e *sderr.Error
	if !errors.As(err, &e) {
		t.Fatalf("error type = %T, want *sderr.Error", err)
	}
	if e.Message() != "circular dependency detected at: A" {
		t.Errorf("Message() = %q", e.Message())
	}
}
