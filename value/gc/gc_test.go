package gc

import (
	"testing"

	"github.com/rcornwell/asmvalue/value"
)

// node is a minimal Collectable: a value.Header for refcounting plus
// a single outgoing reference, enough to build a cycle.
type node struct {
	value.Header
	name string
	ref  value.Obj
}

func (n *node) Type() value.Type                        { return value.TNamespace }
func (n *node) Same(o value.Obj) bool                   { return n == o }
func (n *node) Truth(value.TruthMode) (bool, error)      { return true, nil }
func (n *node) Hash() uint32                             { return 0 }
func (n *node) Repr(int) (string, error)                 { return n.name, nil }
func (n *node) Garbage(phase int, visit func(value.Obj)) {
	switch phase {
	case -1, 1:
		if n.ref != nil {
			visit(n.ref)
		}
	case 0:
		n.ref = nil
	}
}

func TestCollectFreesUnreachableCycle(t *testing.T) {
	a := &node{name: "a"}
	b := &node{name: "b"}
	a.ref = b
	b.ref = a
	a.Ref()
	b.Ref()
	// Each holds the other's only reference: a cycle with no external
	// holder, so after collection both should be at refcount 0.

	roots := &Roots{}
	roots.Register(a)
	roots.Register(b)
	Collect(roots)

	if a.Count() != 0 {
		t.Errorf("a.Count() = %d, want 0 (unreachable cycle)", a.Count())
	}
	if b.Count() != 0 {
		t.Errorf("b.Count() = %d, want 0 (unreachable cycle)", b.Count())
	}
}

func TestCollectPreservesRootedChain(t *testing.T) {
	a := &node{name: "a"}
	b := &node{name: "b"}
	a.ref = b
	a.Ref()
	b.Ref()

	roots := &Roots{}
	roots.Register(a)

	Collect(roots)

	if b.Count() == 0 {
		t.Errorf("b should remain reachable through rooted a")
	}
}
