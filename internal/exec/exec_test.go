//go:build linux && amd64

package exec

import (
	"testing"

	"mage/internal/codegen"
	"mage/internal/ir"
)

func idx(k ir.IndexKind, v int) ir.FlatIndex { return ir.FlatIndex{Kind: k, Value: v} }

func TestRun_AssignThenAdd(t *testing.T) {
	root := ir.NewRoot()
	five := root.InternNumber("0d5")
	ten := root.InternNumber("0d10")

	src := ir.NewFlatSource()
	x := src.InternIdentifier("x")
	xIdx := idx(ir.IdentifierIndexKind, x)
	src.AddExpression(ir.FlatExpression{
		Kind: ir.AssignExpr,
		Binary: ir.FlatBinary{
			One:      &xIdx,
			Two:      idx(ir.NumberIndexKind, ten),
			Operator: ir.Constant,
		},
	})
	one := idx(ir.IdentifierIndexKind, x)
	src.AddExpression(ir.FlatExpression{
		Kind: ir.AdditiveExpr,
		Binary: ir.FlatBinary{
			One:      &one,
			Two:      idx(ir.NumberIndexKind, five),
			Operator: ir.Add,
		},
	})
	root.AddSource(src)

	bc, err := codegen.Generate(root)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	result, err := Run(bc, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Kind != ResultNumber {
		t.Fatalf("want ResultNumber, got %v", result.Kind)
	}
	if result.Payload != 15 {
		t.Errorf("want payload 15, got %d", result.Payload)
	}
}

func TestRun_DemoBodyEchoesInput(t *testing.T) {
	bc, err := codegen.Generate(ir.NewRoot())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	result, err := Run(bc, []byte("hi\n"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Kind != ResultNumber {
		t.Fatalf("want ResultNumber, got %v", result.Kind)
	}
	if result.Payload != 3 {
		t.Errorf("want write(2) to report 3 bytes written, got %d", result.Payload)
	}
}
