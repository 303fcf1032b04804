package flatten

import (
	"mage/internal/ir"
	"mage/internal/merrors"
)

// binaryBuilder wraps one FlatBinary under construction. It owns no pool at
// all: every send_* forwards straight to its parent, and every take_*
// defaults to send-then-index — materialise upward, then remember the
// resulting index as one of this binary's own operand slots
// (SPEC_FULL.md §4.2.1, §9 Design Notes).
type binaryBuilder struct {
	parent builder

	one     *ir.FlatIndex
	two     ir.FlatIndex
	op      ir.Operator
	haveOne bool
	haveTwo bool
	haveOp  bool
}

func newBinaryBuilder(parent builder) *binaryBuilder {
	return &binaryBuilder{parent: parent}
}

// finish validates that exactly one operator and exactly one right operand
// arrived, then returns the completed FlatBinary (SPEC_FULL.md §4.2.2
// "Policy").
func (b *binaryBuilder) finish() (ir.FlatBinary, error) {
	if !b.haveOp {
		return ir.FlatBinary{}, merrors.NewFlattenError("binary expression has no operator")
	}
	if !b.haveTwo {
		return ir.FlatBinary{}, merrors.NewFlattenError("binary expression has no right operand")
	}
	return ir.FlatBinary{One: b.one, Two: b.two, Operator: b.op}, nil
}

func (b *binaryBuilder) sendSource(src *ir.FlatSource) (ir.FlatIndex, error) {
	return b.parent.sendSource(src)
}

func (b *binaryBuilder) takeSource(src *ir.FlatSource) (ir.FlatIndex, error) {
	return b.take(b.sendSource(src))
}

func (b *binaryBuilder) sendExpression(e ir.FlatExpression) (ir.FlatIndex, error) {
	return b.parent.sendExpression(e)
}

func (b *binaryBuilder) takeExpression(e ir.FlatExpression) (ir.FlatIndex, error) {
	return b.take(b.sendExpression(e))
}

func (b *binaryBuilder) sendNumber(token string) (ir.FlatIndex, error) {
	return b.parent.sendNumber(token)
}

func (b *binaryBuilder) takeNumber(token string) (ir.FlatIndex, error) {
	return b.take(b.sendNumber(token))
}

func (b *binaryBuilder) sendString(token string) (ir.FlatIndex, error) {
	return b.parent.sendString(token)
}

func (b *binaryBuilder) takeString(token string) (ir.FlatIndex, error) {
	return b.take(b.sendString(token))
}

func (b *binaryBuilder) sendIdentifier(token string) (ir.FlatIndex, error) {
	return b.parent.sendIdentifier(token)
}

func (b *binaryBuilder) takeIdentifier(token string) (ir.FlatIndex, error) {
	return b.take(b.sendIdentifier(token))
}

// take is the shared send-then-index helper every take_* delegates to.
func (b *binaryBuilder) take(idx ir.FlatIndex, err error) (ir.FlatIndex, error) {
	if err != nil {
		return ir.FlatIndex{}, err
	}
	if err := b.index(idx); err != nil {
		return ir.FlatIndex{}, err
	}
	return idx, nil
}

// index fills one, then two, per the arrival-order policy: an operand
// arriving before the operator fills one; afterward, two. A third operand,
// or an operand after both slots are full, is a hard error.
func (b *binaryBuilder) index(idx ir.FlatIndex) error {
	switch {
	case !b.haveOp && !b.haveOne:
		one := idx
		b.one = &one
		b.haveOne = true
		return nil
	case b.haveOp && !b.haveTwo:
		b.two = idx
		b.haveTwo = true
		return nil
	default:
		return merrors.NewFlattenError("binary expression has too many operands")
	}
}

// operator sets the single operator this binary may carry. A second
// operator leaf is a hard error.
func (b *binaryBuilder) operator(op ir.Operator) error {
	if b.haveOp {
		return merrors.NewFlattenError("binary expression has more than one operator")
	}
	b.op = op
	b.haveOp = true
	return nil
}
