package flatten

import (
	"mage/internal/ir"
)

// sourceBuilder wraps one FlatSource under construction. It owns the
// expression list and the per-source identifier pool; everything else
// (sources, numbers, strings) is root-owned and simply forwarded
// (SPEC_FULL.md §4.2.1).
type sourceBuilder struct {
	parent builder
	source *ir.FlatSource
}

func newSourceBuilder(parent builder) *sourceBuilder {
	return &sourceBuilder{parent: parent, source: ir.NewFlatSource()}
}

func (b *sourceBuilder) finish() *ir.FlatSource {
	return b.source
}

func (b *sourceBuilder) sendSource(src *ir.FlatSource) (ir.FlatIndex, error) {
	return b.parent.sendSource(src)
}

func (b *sourceBuilder) takeSource(src *ir.FlatSource) (ir.FlatIndex, error) {
	return b.sendSource(src)
}

func (b *sourceBuilder) sendExpression(e ir.FlatExpression) (ir.FlatIndex, error) {
	return b.takeExpression(e)
}

func (b *sourceBuilder) takeExpression(e ir.FlatExpression) (ir.FlatIndex, error) {
	return ir.ExpressionIndex(b.source.AddExpression(e)), nil
}

func (b *sourceBuilder) sendNumber(token string) (ir.FlatIndex, error) {
	return b.parent.sendNumber(token)
}

func (b *sourceBuilder) takeNumber(token string) (ir.FlatIndex, error) {
	return b.sendNumber(token)
}

func (b *sourceBuilder) sendString(token string) (ir.FlatIndex, error) {
	return b.parent.sendString(token)
}

func (b *sourceBuilder) takeString(token string) (ir.FlatIndex, error) {
	return b.sendString(token)
}

func (b *sourceBuilder) sendIdentifier(token string) (ir.FlatIndex, error) {
	return b.takeIdentifier(token)
}

func (b *sourceBuilder) takeIdentifier(token string) (ir.FlatIndex, error) {
	return ir.IdentifierIndex(b.source.InternIdentifier(token)), nil
}

func (b *sourceBuilder) index(idx ir.FlatIndex) error {
	return rejectIndex("source", idx)
}

func (b *sourceBuilder) operator(op ir.Operator) error {
	return rejectOperator("source", op)
}
