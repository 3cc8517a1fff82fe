package cst

import "github.com/npillmayer/pegium-go"

// NodeView is a lightweight reference: a root pointer plus a node id.
// Exposes text slicing, flags, the grammar-element pointer and an iterator
// over visible children.
type NodeView struct {
	root *RootCstNode
	id   NodeId
}

// Id returns the node's identifier within the arena.
func (v NodeView) Id() NodeId { return v.id }

// Valid reports whether v refers to an actual node.
func (v NodeView) Valid() bool { return v.root != nil }

func (v NodeView) node() *Node { return v.root.at(v.id) }

// Span returns the node's text span.
func (v NodeView) Span() pegium.Span {
	n := v.node()
	return pegium.Span{Begin: n.Begin, End: n.End}
}

// Text returns the slice of input text this node covers.
func (v NodeView) Text() string {
	n := v.node()
	return v.root.input[n.Begin:n.End]
}

// Element returns the grammar element that produced this node.
func (v NodeView) Element() pegium.Element { return v.node().Element }

func (v NodeView) IsLeaf() bool      { return v.node().IsLeaf() }
func (v NodeView) IsHidden() bool    { return v.node().IsHidden() }
func (v NodeView) IsRecovered() bool { return v.node().IsRecovered() }

// FirstChild returns the node's first child, if any — always id+1 for a
// non-leaf node (§3 invariant 2).
func (v NodeView) FirstChild() (NodeView, bool) {
	if v.IsLeaf() {
		return NodeView{}, false
	}
	childId := v.id + 1
	if uint32(childId) >= v.root.count {
		return NodeView{}, false
	}
	return NodeView{root: v.root, id: childId}, true
}

// NextSibling returns the node's next sibling, if any. Only meaningful
// after the builder has been finalized.
func (v NodeView) NextSibling() (NodeView, bool) {
	n := v.node()
	if n.nextSiblingId == noSibling {
		return NodeView{}, false
	}
	return NodeView{root: v.root, id: n.nextSiblingId}, true
}

// Children iterates the node's direct children in order, skipping none —
// callers that only want materialization-visible children should filter
// IsHidden() themselves (hidden nodes stay in the CST, invariant 6).
func (v NodeView) Children() []NodeView {
	var out []NodeView
	child, ok := v.FirstChild()
	for ok {
		out = append(out, child)
		child, ok = child.NextSibling()
	}
	return out
}

// VisibleChildren returns the node's children excluding hidden ones.
func (v NodeView) VisibleChildren() []NodeView {
	all := v.Children()
	out := make([]NodeView, 0, len(all))
	for _, c := range all {
		if !c.IsHidden() {
			out = append(out, c)
		}
	}
	return out
}
