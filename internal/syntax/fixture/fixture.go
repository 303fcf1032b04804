// Package fixture builds in-memory concrete syntax trees that satisfy
// syntax.Node/syntax.Tree, for use by tests only. No production code in
// this repository depends on this package: the real parser is an external
// collaborator (SPEC_FULL.md §1), and this package exists purely so the
// flattener can be exercised against known tree shapes without one.
package fixture

import "mage/internal/syntax"

// Node is a hand-built concrete-syntax-tree node.
type Node struct {
	kind     syntax.Kind
	children []syntax.Node
	start    int
	end      int
}

// New builds a leaf or interior node. start/end are byte offsets into
// whatever source string the caller intends the tree to describe;
// fixtures that only check shape (not text) may leave them zero.
func New(kind syntax.Kind, start, end int, children ...*Node) *Node {
	n := &Node{kind: kind, start: start, end: end}
	for _, c := range children {
		n.children = append(n.children, syntax.Node(c))
	}
	return n
}

func (n *Node) Kind() syntax.Kind            { return n.kind }
func (n *Node) NamedChildren() []syntax.Node { return n.children }
func (n *Node) StartByte() int               { return n.start }
func (n *Node) EndByte() int                 { return n.end }

// Tree wraps a root Node as a syntax.Tree.
type Tree struct {
	Root *Node
}

func (t *Tree) RootNode() syntax.Node { return t.Root }

// NewTree is a convenience constructor.
func NewTree(root *Node) *Tree {
	return &Tree{Root: root}
}
