package parse

import "mage/internal/syntax"

// node is a concrete-syntax-tree node built by Parse. It satisfies
// syntax.Node the same way internal/syntax/fixture.Node does, but is
// assembled from real source bytes instead of hand-authored by a test.
type node struct {
	kind     syntax.Kind
	start    int
	end      int
	children []syntax.Node
}

func (n *node) Kind() syntax.Kind            { return n.kind }
func (n *node) NamedChildren() []syntax.Node { return n.children }
func (n *node) StartByte() int               { return n.start }
func (n *node) EndByte() int                 { return n.end }

// tree wraps a root node as a syntax.Tree.
type tree struct {
	root *node
}

func (t *tree) RootNode() syntax.Node { return t.root }
