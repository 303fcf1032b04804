package flatten

import (
	"mage/internal/ir"
	"mage/internal/merrors"
)

// rootBuilder wraps the FlatRoot under construction. It owns the sources,
// numbers, and strings pools outright and rejects everything a source
// scopes locally (SPEC_FULL.md §4.2.1).
type rootBuilder struct {
	root *ir.FlatRoot
}

func newRootBuilder(root *ir.FlatRoot) *rootBuilder {
	return &rootBuilder{root: root}
}

func (b *rootBuilder) sendSource(src *ir.FlatSource) (ir.FlatIndex, error) {
	return b.takeSource(src)
}

func (b *rootBuilder) takeSource(src *ir.FlatSource) (ir.FlatIndex, error) {
	return ir.SourceIndex(b.root.AddSource(src)), nil
}

func (b *rootBuilder) sendExpression(e ir.FlatExpression) (ir.FlatIndex, error) {
	return b.takeExpression(e)
}

func (b *rootBuilder) takeExpression(ir.FlatExpression) (ir.FlatIndex, error) {
	return ir.FlatIndex{}, rootCannotAccept("expression")
}

func (b *rootBuilder) sendNumber(token string) (ir.FlatIndex, error) {
	return b.takeNumber(token)
}

func (b *rootBuilder) takeNumber(token string) (ir.FlatIndex, error) {
	return ir.NumberIndex(b.root.InternNumber(token)), nil
}

func (b *rootBuilder) sendString(token string) (ir.FlatIndex, error) {
	return b.takeString(token)
}

func (b *rootBuilder) takeString(token string) (ir.FlatIndex, error) {
	return ir.StringIndex(b.root.InternString(token)), nil
}

func (b *rootBuilder) sendIdentifier(token string) (ir.FlatIndex, error) {
	return b.takeIdentifier(token)
}

func (b *rootBuilder) takeIdentifier(string) (ir.FlatIndex, error) {
	return ir.FlatIndex{}, rootCannotAccept("identifier")
}

func (b *rootBuilder) index(idx ir.FlatIndex) error {
	return rejectIndex("root", idx)
}

func (b *rootBuilder) operator(op ir.Operator) error {
	return rejectOperator("root", op)
}

func rootCannotAccept(what string) error {
	return merrors.NewFlattenError("root builder cannot accept an %s", what)
}
