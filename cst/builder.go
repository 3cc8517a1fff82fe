package cst

import (
	"fmt"

	"github.com/npillmayer/pegium-go"
	"github.com/npillmayer/pegium-go/trace"
)

func tracer() interface {
	Debugf(string, ...interface{})
	Errorf(string, ...interface{})
} {
	return trace.For("cst")
}

// Checkpoint is sufficient to truncate the arena and restore the builder to
// any earlier state (§3 invariant 3, §4.2 mark/rewind).
type Checkpoint struct {
	count      uint32
	parent     NodeId
	stackTop   int
	finalized  bool
}

// Builder grows a RootCstNode. State: the arena, the current parent id (or
// noParent), an explicit stack of open-parent ids with an explicit top
// index so truncation is O(1), and a finalized flag.
type Builder struct {
	root      *RootCstNode
	parent    NodeId
	stack     []NodeId
	finalized bool
}

// NewBuilder creates a builder over a fresh arena for input.
func NewBuilder(input string) *Builder {
	return &Builder{
		root:   NewRoot(input),
		parent: noParent,
		stack:  make([]NodeId, 0, 64),
	}
}

// Root returns the arena being built. Valid to call at any point, but only
// meaningful content-wise after Finalize.
func (b *Builder) Root() *RootCstNode { return b.root }

// Mark returns a checkpoint capturing the current builder state.
func (b *Builder) Mark() Checkpoint {
	return Checkpoint{
		count:     b.root.count,
		parent:    b.parent,
		stackTop:  len(b.stack),
		finalized: b.finalized,
	}
}

// Rewind truncates the arena and restores current/stack-top to a previously
// marked checkpoint. Invariant 3: a checkpoint saved at time T can always be
// rewound to, provided no *other* rewind to an earlier state happened
// between T and the rewind to T.
func (b *Builder) Rewind(cp Checkpoint) {
	b.root.truncate(cp.count)
	b.parent = cp.parent
	b.stack = b.stack[:cp.stackTop]
	b.finalized = cp.finalized
}

// Enter allocates a new node at the growing end, pushes its id onto the
// stack, and makes it the current parent. Its nextSiblingId is set to the
// *previous* current, encoding the parent chain until Finalize.
func (b *Builder) Enter(begin pegium.TextOffset) NodeId {
	id := b.root.grow()
	n := b.root.at(id)
	*n = Node{
		Begin:         begin,
		End:           begin,
		nextSiblingId: b.parent,
		Flags:         FlagLeaf,
	}
	b.stack = append(b.stack, id)
	b.parent = id
	return id
}

// Exit closes the current open parent: stores end and grammar element,
// clears FlagLeaf, pops the stack, and restores the saved parent as
// current. It is a precondition violation to exit a node with no children.
func (b *Builder) Exit(end pegium.TextOffset, elem pegium.Element) {
	if len(b.stack) == 0 {
		panic("cst: Exit called with no open node")
	}
	id := b.stack[len(b.stack)-1]
	n := b.root.at(id)
	if n.IsLeaf() && id+1 == NodeId(b.root.count) {
		panic(fmt.Sprintf("cst: Exit on node %d with no children", id))
	}
	n.End = end
	n.Element = elem
	n.Flags &^= FlagLeaf
	b.stack = b.stack[:len(b.stack)-1]
	if len(b.stack) == 0 {
		b.parent = noParent
	} else {
		b.parent = b.stack[len(b.stack)-1]
	}
}

// Leaf allocates a leaf with the given span and flags; its temporary parent
// field points at the current open parent. If recovered is true, every
// open ancestor is also marked recovered.
func (b *Builder) Leaf(begin, end pegium.TextOffset, elem pegium.Element, hidden, recovered bool) NodeId {
	id := b.root.grow()
	flags := FlagLeaf
	if hidden {
		flags |= FlagHidden
	}
	if recovered {
		flags |= FlagRecovered
	}
	*b.root.at(id) = Node{
		Begin:         begin,
		End:           end,
		Element:       elem,
		nextSiblingId: b.parent,
		Flags:         flags,
	}
	if recovered {
		for _, anc := range b.stack {
			b.root.at(anc).Flags |= FlagRecovered
		}
	}
	return id
}

// OverrideGrammarElement retags a child after the fact; used by Assignment
// to claim ownership of a sub-element's freshly produced CST node (§4.1.10).
func (b *Builder) OverrideGrammarElement(id NodeId, elem pegium.Element) {
	b.root.at(id).Element = elem
}

// CurrentParent returns the currently open parent id, or false if none.
func (b *Builder) CurrentParent() (NodeId, bool) {
	if b.parent == noParent {
		return 0, false
	}
	return b.parent, true
}

// NextAllocatedId returns the id the next Enter/Leaf call will receive —
// used by Assignment to identify "the first newly inserted CST child".
func (b *Builder) NextAllocatedId() NodeId {
	return NodeId(b.root.count)
}

// Finalize converts temporary parent fields into next-sibling links: for
// each node in allocation order, it is appended to its parent's sibling
// list (or the root's sibling list if parent == none). Idempotent.
func (b *Builder) Finalize() {
	if b.finalized {
		return
	}
	tails := map[NodeId]NodeId{} // parent id (or noParent) -> id of its current list tail
	rootTail := noSibling
	hasRootTail := false
	for i := uint32(0); i < b.root.count; i++ {
		id := NodeId(i)
		n := b.root.at(id)
		parent := n.nextSiblingId // still encodes temporary parent at this point
		n.nextSiblingId = noSibling
		if parent == noParent {
			if hasRootTail {
				b.root.at(rootTail).nextSiblingId = id
			}
			rootTail = id
			hasRootTail = true
			continue
		}
		if tail, ok := tails[parent]; ok {
			b.root.at(tail).nextSiblingId = id
		}
		tails[parent] = id
	}
	b.finalized = true
}

// IsFinalized reports whether Finalize has been called since the last
// rewind to a pre-finalize checkpoint.
func (b *Builder) IsFinalized() bool { return b.finalized }
