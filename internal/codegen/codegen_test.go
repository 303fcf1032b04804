package codegen

import (
	"bytes"
	"testing"

	"mage/internal/ir"
)

func idx(k ir.IndexKind, v int) ir.FlatIndex { return ir.FlatIndex{Kind: k, Value: v} }

func TestGenerate_EmptyRootIsDemoBody(t *testing.T) {
	root := ir.NewRoot()
	bc, err := Generate(root)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if bc.RegistersSwap != 0 {
		t.Errorf("want registers_swap at offset 0, got %d", bc.RegistersSwap)
	}
	if bc.Main <= bc.RegistersSwap {
		t.Errorf("want main after registers_swap, got main=%d swap=%d", bc.Main, bc.RegistersSwap)
	}
	if bc.RegistersExit <= bc.Main {
		t.Errorf("want registers_exit after main, got exit=%d main=%d", bc.RegistersExit, bc.Main)
	}
	// syscall opcode (0F 05) must appear in the demo body.
	if !bytes.Contains(bc.Code[bc.Main:bc.RegistersExit], []byte{0x0F, 0x05}) {
		t.Error("want a syscall instruction in the demo body")
	}
}

func TestGenerate_DivideUsesSignedIdiv(t *testing.T) {
	root := ir.NewRoot()
	nTen := root.InternNumber("0d10")
	nThree := root.InternNumber("0d3")
	src2 := ir.NewFlatSource()
	one := idx(ir.NumberIndexKind, nTen)
	src2.AddExpression(ir.FlatExpression{
		Kind: ir.AdditiveExpr,
		Binary: ir.FlatBinary{
			One:      &one,
			Two:      idx(ir.NumberIndexKind, nThree),
			Operator: ir.Divide,
		},
	})
	root.AddSource(src2)

	bc, err := Generate(root)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	body := bc.Code[bc.Main:bc.RegistersExit]

	// cqo is REX.W (0x48) + 0x99; idiv rcx is REX.W + 0xF7 + ModRM(11 111 001 = 0xF9).
	if !bytes.Contains(body, []byte{0x48, 0x99}) {
		t.Error("want a cqo (sign-extend) instruction ahead of division")
	}
	if !bytes.Contains(body, []byte{0x48, 0xF7, 0xF9}) {
		t.Error("want a signed idiv rcx instruction, not an unsigned div")
	}
}

func TestGenerate_MemberIsCompileError(t *testing.T) {
	root := ir.NewRoot()
	src := ir.NewFlatSource()
	one := idx(ir.IdentifierIndexKind, 0)
	src.InternIdentifier("a")
	src.InternIdentifier("b")
	src.AddExpression(ir.FlatExpression{
		Kind: ir.MemberExpr,
		Binary: ir.FlatBinary{
			One:      &one,
			Two:      idx(ir.IdentifierIndexKind, 1),
			Operator: ir.Extract,
		},
	})
	root.AddSource(src)

	if _, err := Generate(root); err == nil {
		t.Fatal("want CompileError for member expression, got nil")
	}
}

func TestGenerate_AssignWritesIdentifierSlot(t *testing.T) {
	root := ir.NewRoot()
	src := ir.NewFlatSource()
	xIdx := src.InternIdentifier("x")
	n := root.InternNumber("0d42")
	one := idx(ir.IdentifierIndexKind, xIdx)
	src.AddExpression(ir.FlatExpression{
		Kind: ir.AssignExpr,
		Binary: ir.FlatBinary{
			One:      &one,
			Two:      idx(ir.NumberIndexKind, n),
			Operator: ir.Constant,
		},
	})
	root.AddSource(src)

	bc, err := Generate(root)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if bc.Main >= bc.RegistersExit {
		t.Fatal("expected a non-empty main body")
	}
}
