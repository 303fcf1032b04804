// Package flatten implements the tree-to-IR lowering (SPEC_FULL.md §4.2):
// a single top-down traversal driving three builder variants — root,
// source, binary — each with a narrow, typed contract over what it may
// accept.
package flatten

import (
	"mage/internal/ir"
	"mage/internal/merrors"
)

// builder is the shared capability contract every variant implements
// (SPEC_FULL.md §9 Design Notes): send_* forwards a pool insertion to the
// nearest enclosing owner without owning it; take_* is what the traversal
// calls directly. index/operator are the binary builder's slot-filling
// primitives; root and source reject both.
type builder interface {
	sendSource(src *ir.FlatSource) (ir.FlatIndex, error)
	takeSource(src *ir.FlatSource) (ir.FlatIndex, error)

	sendExpression(e ir.FlatExpression) (ir.FlatIndex, error)
	takeExpression(e ir.FlatExpression) (ir.FlatIndex, error)

	sendNumber(token string) (ir.FlatIndex, error)
	takeNumber(token string) (ir.FlatIndex, error)

	sendString(token string) (ir.FlatIndex, error)
	takeString(token string) (ir.FlatIndex, error)

	sendIdentifier(token string) (ir.FlatIndex, error)
	takeIdentifier(token string) (ir.FlatIndex, error)

	index(idx ir.FlatIndex) error
	operator(op ir.Operator) error
}

// rejectIndex and rejectOperator back the root and source builders, which
// never accept a bare index or an operator leaf directly (SPEC_FULL.md
// §4.2.1).
func rejectIndex(scope string, idx ir.FlatIndex) error {
	return merrors.NewFlattenError("%s builder cannot accept a bare index (%s)", scope, idx)
}

func rejectOperator(scope string, op ir.Operator) error {
	return merrors.NewFlattenError("%s builder cannot accept an operator (%s)", scope, op)
}
