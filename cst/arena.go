package cst

import "github.com/npillmayer/pegium-go"

// chunkSize is the number of nodes per arena chunk (§4.2: "fixed-size
// chunks (4096 nodes each)").
const chunkSize = 4096

// RootCstNode owns the full input text and the monotonic arena of CstNodes
// produced by one parse call. It outlives the ParseState/RecoverState that
// built it. Existing node indices are never invalidated by further growth,
// since the chunk table only ever appends new chunks.
type RootCstNode struct {
	input  string
	chunks [][]Node
	count  uint32
}

// NewRoot creates an empty arena over input.
func NewRoot(input string) *RootCstNode {
	return &RootCstNode{input: input}
}

// Input returns the full input text the arena was built over.
func (r *RootCstNode) Input() string { return r.input }

// Len returns the number of allocated nodes.
func (r *RootCstNode) Len() uint32 { return r.count }

// at returns a pointer to the node at id, valid as long as r is alive.
func (r *RootCstNode) at(id NodeId) *Node {
	chunk := id / chunkSize
	offset := id % chunkSize
	return &r.chunks[chunk][offset]
}

// grow appends one uninitialized node and returns its id.
func (r *RootCstNode) grow() NodeId {
	id := NodeId(r.count)
	chunk := int(id / chunkSize)
	for chunk >= len(r.chunks) {
		r.chunks = append(r.chunks, make([]Node, 0, chunkSize))
	}
	offset := int(id % chunkSize)
	if offset >= len(r.chunks[chunk]) {
		r.chunks[chunk] = r.chunks[chunk][:offset+1]
	}
	r.count++
	return id
}

// truncate drops every node with id >= count, used by rewind. Since chunks
// are never shrunk (only the logical count moves back), growing again after
// a rewind reuses the same backing arrays.
func (r *RootCstNode) truncate(count uint32) {
	r.count = count
}

// Node returns a CstNodeView for id.
func (r *RootCstNode) Node(id NodeId) NodeView {
	return NodeView{root: r, id: id}
}

// Root returns a view of node 0, the entry point of the tree, if any nodes
// exist.
func (r *RootCstNode) Root() (NodeView, bool) {
	if r.count == 0 {
		return NodeView{}, false
	}
	return NodeView{root: r, id: 0}, true
}

// firstMatching returns the first node (in allocation/pre-order) whose
// Element is elem — used by the parser facade (§4.6 step 5: "the first CST
// node matching this rule, root-level preferred, then depth-first", which
// pre-order allocation already guarantees).
func (r *RootCstNode) firstMatching(elem pegium.Element) (NodeView, bool) {
	for i := uint32(0); i < r.count; i++ {
		n := r.at(NodeId(i))
		if n.Element == elem {
			return NodeView{root: r, id: NodeId(i)}, true
		}
	}
	return NodeView{}, false
}

// FirstMatching exposes firstMatching to other packages.
func (r *RootCstNode) FirstMatching(elem pegium.Element) (NodeView, bool) {
	return r.firstMatching(elem)
}
