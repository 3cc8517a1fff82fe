/*
Package cst implements the Concrete Syntax Tree arena: a chunked, append-only
store of CstNodes with checkpoint/rewind and a one-pass finalization step
that turns temporary parent pointers into sibling chains (§4.2).
*/
package cst

import "github.com/npillmayer/pegium-go"

// Flags are the three single-bit properties a node carries over its
// lifetime.
type Flags uint8

const (
	FlagLeaf Flags = 1 << iota
	FlagHidden
	FlagRecovered
)

// Node is a trivially-constructible record. nextSiblingId serves two roles
// over a node's lifetime: during construction it holds the node's temporary
// parent id (or noParent), and after Finalize it holds the final
// next-sibling id (or noSibling). A node's first child, if any, is always
// the node at id+1 (depth-first pre-order allocation, invariant 2).
type Node struct {
	Begin, End    pegium.TextOffset
	Element       pegium.Element
	nextSiblingId NodeId
	Flags         Flags
}

// NodeId is re-exported from pegium for package-local readability.
type NodeId = pegium.NodeId

const noParent NodeId = ^NodeId(0)
const noSibling NodeId = ^NodeId(0)

func (n *Node) IsLeaf() bool      { return n.Flags&FlagLeaf != 0 }
func (n *Node) IsHidden() bool    { return n.Flags&FlagHidden != 0 }
func (n *Node) IsRecovered() bool { return n.Flags&FlagRecovered != 0 }
