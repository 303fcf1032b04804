package flatten

import (
	"mage/internal/ir"
	"mage/internal/merrors"
	"mage/internal/syntax"
)

// Flattener drives the single top-down traversal that lowers a concrete
// syntax tree into a FlatRoot (SPEC_FULL.md §4.2). One Flattener is bound
// to one Language and one source buffer; it holds no other state, so a
// single instance may flatten many trees from the same grammar version.
type Flattener struct {
	lang   *syntax.Language
	source []byte
}

// New returns a Flattener for trees produced against lang, whose node text
// is read out of source.
func New(lang *syntax.Language, source []byte) *Flattener {
	return &Flattener{lang: lang, source: source}
}

// Flatten lowers tree into a fresh FlatRoot. The tree's root node is always
// a container (source_file) and becomes the root's first source
// (SPEC_FULL.md §4.2, scenario 1).
func (f *Flattener) Flatten(tree syntax.Tree) (*ir.FlatRoot, error) {
	root := ir.NewRoot()
	rb := newRootBuilder(root)
	if _, err := f.visit(tree.RootNode(), rb); err != nil {
		return nil, err
	}
	return root, nil
}

// visit dispatches on a node's kind per SPEC_FULL.md §4.2's five-way
// traversal rule, and calls the appropriate take_* (or, for parenthesize,
// nothing) on cur.
func (f *Flattener) visit(n syntax.Node, cur builder) (ir.FlatIndex, error) {
	kind := n.Kind()

	switch {
	case f.lang.IsContainer(kind):
		return f.visitContainer(n, cur)

	case f.lang.IsBinary(kind):
		return f.visitBinary(n, kind, cur)

	case kind == f.lang.Paren:
		return f.visitParen(n, cur)

	case f.lang.IsNumber(kind):
		return cur.takeNumber(syntax.Text(n, f.source))

	case f.lang.IsString(kind):
		return cur.takeString(syntax.Text(n, f.source))

	case kind == f.lang.Identifier:
		return cur.takeIdentifier(syntax.Text(n, f.source))

	case f.lang.IsOperatorLeaf(kind):
		return ir.FlatIndex{}, cur.operator(f.operatorFor(kind))

	default:
		return ir.FlatIndex{}, merrors.NewFlattenError(
			"unrecognized node kind %q", f.lang.Name(kind)).At(n.StartByte(), n.EndByte())
	}
}

// visitContainer pushes a fresh source builder, recurses into the
// container's named children against it, then hands the finished source to
// the enclosing builder via take_source.
func (f *Flattener) visitContainer(n syntax.Node, cur builder) (ir.FlatIndex, error) {
	sb := newSourceBuilder(cur)
	for _, child := range n.NamedChildren() {
		if _, err := f.visit(child, sb); err != nil {
			return ir.FlatIndex{}, err
		}
	}
	return cur.takeSource(sb.finish())
}

// visitBinary pushes a fresh binary builder, recurses into the node's
// named children (which supply zero or one left operand, exactly one
// operator, and exactly one right operand, in tree order), then hands the
// finished FlatBinary to the enclosing builder via take_expression. All
// seven binary forms — including member and call — go through this one
// rule; nothing about them is special-cased here (SPEC_FULL.md §4.2,
// Open Question decisions in DESIGN.md).
func (f *Flattener) visitBinary(n syntax.Node, kind syntax.Kind, cur builder) (ir.FlatIndex, error) {
	bb := newBinaryBuilder(cur)
	for _, child := range n.NamedChildren() {
		if _, err := f.visit(child, bb); err != nil {
			return ir.FlatIndex{}, err
		}
	}
	binary, err := bb.finish()
	if err != nil {
		return ir.FlatIndex{}, err
	}
	expr := ir.FlatExpression{Kind: f.expressionKindFor(kind), Binary: binary}
	return cur.takeExpression(expr)
}

// visitParen is transparent: it recurses on the parenthesized node's named
// children against the same builder, with no push of its own. An empty
// parenthesized expression is a hard error (SPEC_FULL.md §4.2, §8 edge
// cases).
func (f *Flattener) visitParen(n syntax.Node, cur builder) (ir.FlatIndex, error) {
	children := n.NamedChildren()
	if len(children) == 0 {
		return ir.FlatIndex{}, merrors.NewValidationError("empty parenthesized expression").
			At(n.StartByte(), n.EndByte())
	}
	var last ir.FlatIndex
	var err error
	for _, child := range children {
		last, err = f.visit(child, cur)
		if err != nil {
			return ir.FlatIndex{}, err
		}
	}
	return last, nil
}

// expressionKindFor maps a binary node's kind to its FlatExpression tag.
func (f *Flattener) expressionKindFor(kind syntax.Kind) ir.ExpressionKind {
	switch kind {
	case f.lang.Member:
		return ir.MemberExpr
	case f.lang.Call:
		return ir.CallExpr
	case f.lang.Multiplicative:
		return ir.MultiplicativeExpr
	case f.lang.Additive:
		return ir.AdditiveExpr
	case f.lang.Comparison:
		return ir.ComparisonExpr
	case f.lang.Logical:
		return ir.LogicalExpr
	default:
		return ir.AssignExpr
	}
}

// operatorFor maps an operator leaf's kind to its ir.Operator tag.
func (f *Flattener) operatorFor(kind syntax.Kind) ir.Operator {
	switch kind {
	case f.lang.Extract:
		return ir.Extract
	case f.lang.Pipe:
		return ir.Pipe
	case f.lang.Multiply:
		return ir.Multiply
	case f.lang.Divide:
		return ir.Divide
	case f.lang.Modulo:
		return ir.Modulo
	case f.lang.Add:
		return ir.Add
	case f.lang.Subtract:
		return ir.Subtract
	case f.lang.Equal:
		return ir.Equal
	case f.lang.NotEqual:
		return ir.NotEqual
	case f.lang.LessThan:
		return ir.LessThan
	case f.lang.GreaterThan:
		return ir.GreaterThan
	case f.lang.LessEqual:
		return ir.LessEqual
	case f.lang.GreaterEqual:
		return ir.GreaterEqual
	case f.lang.And:
		return ir.And
	case f.lang.Or:
		return ir.Or
	case f.lang.Constant:
		return ir.Constant
	default:
		return ir.Variable
	}
}
