package syntax

// Node is the read-only view the flattener needs of one concrete-syntax-
// tree node, whatever parser produced it. The flattener depends only on
// this contract: a node's kind, its named children in tree order, and the
// byte range its text occupies in the original source (SPEC_FULL.md §6).
type Node interface {
	// Kind returns the numeric node-kind identifier, computed by the same
	// Language the caller is traversing with.
	Kind() Kind

	// NamedChildren returns this node's named children, in tree order.
	// Anonymous tokens (punctuation such as brackets) are not named
	// children and must not appear here.
	NamedChildren() []Node

	// StartByte and EndByte delimit this node's source-text byte range.
	StartByte() int
	EndByte() int
}

// Tree is the root handle an external parser returns for one parse.
type Tree interface {
	RootNode() Node
}

// Text extracts a node's exact source-text slice given the full source
// buffer the tree was parsed from.
func Text(n Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}
