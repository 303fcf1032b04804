package codegen

import (
	"mage/internal/ir"
	"mage/internal/merrors"
)

// translateSource compiles one FlatSource into the `main` body: a frame
// prologue, straight-line evaluation of every expression in order (the
// flattener's post-order guarantee means each expression only ever
// references earlier slots), and an epilogue that writes the source's
// last-evaluated value into the host main-frame result slot before
// jumping to registers_exit (SPEC_FULL.md §4.3 "[ADDED] Operator lowering
// table").
func translateSource(a *asm, root *ir.FlatRoot, src *ir.FlatSource) (exitPatch int, err error) {
	f := frame{numIdent: len(src.Identifiers), numExpr: len(src.Expressions)}

	a.push(rbp)
	a.movRegReg(rbp, rsp)
	a.subRegImm32(rsp, f.size())
	a.storeMem(rbp, f.mainFrameDisp(), rdx) // save &mainframe, rdx is clobbered by idiv below

	for i, expr := range src.Expressions {
		if err := compileExpression(a, root, f, i, expr); err != nil {
			return 0, err
		}
	}

	if f.numExpr == 0 {
		a.movRegImm64(rax, 0)
	} else {
		a.loadMem(rax, rbp, f.exprDisp(f.numExpr-1))
	}
	a.loadMem(rdx, rbp, f.mainFrameDisp())
	a.storeMemImm32(rdx, mainFrameTagOff, resultTagNumber)
	a.storeMem(rdx, mainFramePayOff, rax)

	a.movRegReg(rsp, rbp)
	a.pop(rbp)
	a.movRegReg(rsi, rdi) // rsi = &old, ready for registers_exit
	return a.jmpRel32(), nil
}

// compileExpression evaluates one FlatExpression and stores its value into
// its own slot, so later expressions may address it by ExpressionIndex.
func compileExpression(a *asm, root *ir.FlatRoot, f frame, i int, expr ir.FlatExpression) error {
	switch expr.Kind {
	case ir.MemberExpr, ir.CallExpr:
		return merrors.NewCompileError(
			"%s is not part of the current code-generation contract", expr.Kind)

	case ir.AssignExpr:
		return compileAssign(a, root, f, i, expr.Binary)

	default:
		return compileArithmetic(a, root, f, i, expr.Binary)
	}
}

func compileAssign(a *asm, root *ir.FlatRoot, f frame, i int, b ir.FlatBinary) error {
	if !b.Operator.IsDefinitionKind() {
		return merrors.NewCompileError("assign expression carries non-definition operator %s", b.Operator)
	}
	if b.One == nil || b.One.Kind != ir.IdentifierIndexKind {
		return merrors.NewCompileError("assign expression's left operand must be an identifier")
	}
	if err := loadOperand(a, root, f, b.Two); err != nil {
		return err
	}
	a.storeMem(rbp, f.identDisp(b.One.Value), rax)
	a.storeMem(rbp, f.exprDisp(i), rax)
	return nil
}

func compileArithmetic(a *asm, root *ir.FlatRoot, f frame, i int, b ir.FlatBinary) error {
	if b.One == nil {
		return merrors.NewCompileError("unary operator %s is not supported by this code generator", b.Operator)
	}
	if err := loadOperand(a, root, f, *b.One); err != nil {
		return err
	}
	a.push(rax)
	if err := loadOperand(a, root, f, b.Two); err != nil {
		return err
	}
	a.movRegReg(rcx, rax)
	a.pop(rax)

	switch b.Operator {
	case ir.Add:
		a.addRegReg(rax, rcx)
	case ir.Subtract:
		a.subRegReg(rax, rcx)
	case ir.Multiply:
		a.imulRegReg(rax, rcx)
	case ir.Divide:
		a.cqo()
		a.idiv(rcx)
	case ir.Modulo:
		a.cqo()
		a.idiv(rcx)
		a.movRegReg(rax, rdx)
	case ir.Equal:
		a.cmpRegReg(rax, rcx)
		a.setcc(setE)
		a.movzxRaxAl()
	case ir.NotEqual:
		a.cmpRegReg(rax, rcx)
		a.setcc(setNE)
		a.movzxRaxAl()
	case ir.LessThan:
		a.cmpRegReg(rax, rcx)
		a.setcc(setL)
		a.movzxRaxAl()
	case ir.GreaterThan:
		a.cmpRegReg(rax, rcx)
		a.setcc(setG)
		a.movzxRaxAl()
	case ir.LessEqual:
		a.cmpRegReg(rax, rcx)
		a.setcc(setLE)
		a.movzxRaxAl()
	case ir.GreaterEqual:
		a.cmpRegReg(rax, rcx)
		a.setcc(setGE)
		a.movzxRaxAl()
	case ir.And:
		a.andRegReg(rax, rcx)
	case ir.Or:
		a.orRegReg(rax, rcx)
	default:
		return merrors.NewCompileError("operator %s has no arithmetic lowering", b.Operator)
	}

	a.storeMem(rbp, f.exprDisp(i), rax)
	return nil
}

// loadOperand loads idx's value into RAX. Number and identifier/expression
// operands carry their real integer value; string and nested-source
// operands are loaded as their pool index, a representation deliberately
// narrower than full value semantics (DESIGN.md records this as a scope
// decision: arithmetic over strings or sources has no contract in
// SPEC_FULL.md §4.3).
func loadOperand(a *asm, root *ir.FlatRoot, f frame, idx ir.FlatIndex) error {
	switch idx.Kind {
	case ir.NumberIndexKind:
		v, err := decodeNumber(root.Numbers[idx.Value])
		if err != nil {
			return err
		}
		a.movRegImm64(rax, v)
	case ir.StringIndexKind, ir.SourceIndexKind:
		a.movRegImm64(rax, int64(idx.Value))
	case ir.IdentifierIndexKind:
		a.loadMem(rax, rbp, f.identDisp(idx.Value))
	case ir.ExpressionIndexKind:
		a.loadMem(rax, rbp, f.exprDisp(idx.Value))
	default:
		return merrors.NewCompileError("operand has unrecognized index kind")
	}
	return nil
}
