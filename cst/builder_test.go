package cst

import (
	"testing"

	"github.com/npillmayer/pegium-go"
)

// fakeElement is a minimal pegium.Element for tests that don't need real
// grammar elements.
type fakeElement string

func (f fakeElement) Kind() pegium.Kind { return pegium.KindLiteral }
func (f fakeElement) String() string    { return string(f) }

func TestBuilderLeafAndFinalize(t *testing.T) {
	b := NewBuilder("ab")
	b.Leaf(0, 1, fakeElement("a"), false, false)
	b.Leaf(1, 2, fakeElement("b"), false, false)
	b.Finalize()

	root, ok := b.Root().Root()
	if !ok {
		t.Fatal("expected a root node")
	}
	if root.Text() != "a" {
		t.Errorf("expected first root-level node text %q, got %q", "a", root.Text())
	}
	next, ok := root.NextSibling()
	if !ok || next.Text() != "b" {
		t.Errorf("expected sibling node text %q", "b")
	}
}

func TestBuilderEnterExitProducesComposite(t *testing.T) {
	b := NewBuilder("xy")
	b.Enter(0)
	b.Leaf(0, 1, fakeElement("x"), false, false)
	b.Leaf(1, 2, fakeElement("y"), false, false)
	b.Exit(2, fakeElement("XY"))
	b.Finalize()

	root, ok := b.Root().Root()
	if !ok {
		t.Fatal("expected a root node")
	}
	if root.IsLeaf() {
		t.Error("expected the entered node to be composite, not a leaf")
	}
	if root.Text() != "xy" {
		t.Errorf("expected composite span text %q, got %q", "xy", root.Text())
	}
	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
}

func TestBuilderExitWithNoChildrenPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic exiting a node with no children")
		}
	}()
	b := NewBuilder("x")
	b.Enter(0)
	b.Exit(0, fakeElement("X"))
}

func TestBuilderMarkRewind(t *testing.T) {
	b := NewBuilder("abc")
	b.Leaf(0, 1, fakeElement("a"), false, false)
	cp := b.Mark()
	b.Leaf(1, 2, fakeElement("b"), false, false)
	if b.Root().Len() != 2 {
		t.Fatalf("expected 2 nodes before rewind, got %d", b.Root().Len())
	}
	b.Rewind(cp)
	if b.Root().Len() != 1 {
		t.Errorf("expected 1 node after rewind, got %d", b.Root().Len())
	}
}

func TestBuilderHiddenFlag(t *testing.T) {
	b := NewBuilder("  ")
	id := b.Leaf(0, 2, fakeElement("ws"), true, false)
	view := b.Root().Node(id)
	if !view.IsHidden() {
		t.Error("expected the leaf to be tagged hidden")
	}
}

func TestBuilderRecoveredPropagatesToAncestors(t *testing.T) {
	b := NewBuilder("x")
	b.Enter(0)
	b.Leaf(0, 1, fakeElement("x"), false, true)
	b.Exit(1, fakeElement("X"))
	b.Finalize()
	root, _ := b.Root().Root()
	if !root.IsRecovered() {
		t.Error("expected a recovered leaf to mark every open ancestor recovered")
	}
}

func TestFirstMatching(t *testing.T) {
	b := NewBuilder("ab")
	target := fakeElement("target")
	b.Enter(0)
	b.Leaf(0, 1, fakeElement("a"), false, false)
	b.Exit(1, target)
	b.Finalize()

	node, ok := b.Root().FirstMatching(target)
	if !ok {
		t.Fatal("expected to find the node tagged with target")
	}
	if node.Text() != "a" {
		t.Errorf("expected matched node text %q, got %q", "a", node.Text())
	}
}
