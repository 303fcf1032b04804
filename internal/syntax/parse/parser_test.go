package parse

import (
	"testing"

	"mage/internal/flatten"
	"mage/internal/ir"
	"mage/internal/syntax"
)

func flattenText(t *testing.T, src string) *ir.FlatRoot {
	t.Helper()
	lang := syntax.NewLanguage()
	tr, err := Parse(lang, []byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	root, err := flatten.New(lang, []byte(src)).Flatten(tr)
	if err != nil {
		t.Fatalf("Flatten(%q): %v", src, err)
	}
	return root
}

// TestParse_Scenario1 is SPEC_FULL.md §8 scenario 1.
func TestParse_Scenario1(t *testing.T) {
	root := flattenText(t, "x : 0d10;")
	if len(root.Sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(root.Sources))
	}
	src := root.Sources[0]
	if len(src.Expressions) != 1 || src.Expressions[0].Kind != ir.AssignExpr {
		t.Fatalf("expressions = %+v, want one Assign", src.Expressions)
	}
	if len(root.Numbers) != 1 || root.Numbers[0] != "0d10" {
		t.Errorf("numbers = %v, want [0d10]", root.Numbers)
	}
	if len(src.Identifiers) != 1 || src.Identifiers[0] != "x" {
		t.Errorf("identifiers = %v, want [x]", src.Identifiers)
	}
}

// TestParse_Scenario2 is SPEC_FULL.md §8 scenario 2: number dedup plus
// nested Multiplicative-inside-Additive shape.
func TestParse_Scenario2(t *testing.T) {
	root := flattenText(t, "y : 0d10 - 0d2 * 0d2;")
	if len(root.Numbers) != 2 {
		t.Fatalf("numbers = %v, want 2 distinct tokens", root.Numbers)
	}
	src := root.Sources[0]
	if len(src.Expressions) != 3 {
		t.Fatalf("got %d expressions, want 3", len(src.Expressions))
	}
	if src.Expressions[0].Kind != ir.MultiplicativeExpr {
		t.Errorf("expr 0 kind = %v, want Multiplicative", src.Expressions[0].Kind)
	}
	if src.Expressions[1].Kind != ir.AdditiveExpr {
		t.Errorf("expr 1 kind = %v, want Additive", src.Expressions[1].Kind)
	}
	if src.Expressions[2].Kind != ir.AssignExpr {
		t.Errorf("expr 2 kind = %v, want Assign", src.Expressions[2].Kind)
	}
}

// TestParse_Scenario3 checks bracket grouping adds no expression entry of
// its own.
func TestParse_Scenario3(t *testing.T) {
	root := flattenText(t, "x : 0d10 - [0d10 - 0d5];")
	src := root.Sources[0]
	if len(src.Expressions) != 3 {
		t.Fatalf("got %d expressions, want 3 (inner subtract, outer subtract, assign)", len(src.Expressions))
	}
}

// TestParse_Scenario4 checks unary minus flattens with one absent.
func TestParse_Scenario4(t *testing.T) {
	root := flattenText(t, "- 0d1")
	src := root.Sources[0]
	if len(src.Expressions) != 1 {
		t.Fatalf("got %d expressions, want 1", len(src.Expressions))
	}
	expr := src.Expressions[0]
	if expr.Kind != ir.AdditiveExpr || expr.Binary.One != nil || expr.Binary.Operator != ir.Subtract {
		t.Errorf("expr = %+v, want unary Additive/Subtract", expr)
	}
}

// TestParse_Scenario5 is SPEC_FULL.md §8 scenario 5: "a.b(c)" is a Call
// whose one is a Member, referencing two identifier indices.
func TestParse_Scenario5(t *testing.T) {
	root := flattenText(t, "a.b(c);")
	src := root.Sources[0]
	if len(src.Expressions) != 2 {
		t.Fatalf("got %d expressions, want 2 (member, call)", len(src.Expressions))
	}
	if src.Expressions[0].Kind != ir.MemberExpr {
		t.Errorf("expr 0 kind = %v, want Member", src.Expressions[0].Kind)
	}
	if src.Expressions[1].Kind != ir.CallExpr {
		t.Errorf("expr 1 kind = %v, want Call", src.Expressions[1].Kind)
	}
	call := src.Expressions[1]
	if call.Binary.One == nil || call.Binary.One.Kind != ir.ExpressionIndexKind || call.Binary.One.Value != 0 {
		t.Errorf("call.one = %+v, want Expression(0)", call.Binary.One)
	}
	if len(src.Identifiers) != 3 {
		t.Errorf("identifiers = %v, want [a, b, c]", src.Identifiers)
	}
}

// TestParse_Scenario6 checks two top-level statements land in the same
// source, in textual order.
func TestParse_Scenario6(t *testing.T) {
	root := flattenText(t, "x : 0d1; y : 0d2;")
	if len(root.Sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(root.Sources))
	}
	src := root.Sources[0]
	if len(src.Expressions) != 2 {
		t.Fatalf("got %d expressions, want 2", len(src.Expressions))
	}
	if len(src.Identifiers) != 2 || src.Identifiers[0] != "x" || src.Identifiers[1] != "y" {
		t.Errorf("identifiers = %v, want [x, y]", src.Identifiers)
	}
}

func TestParse_EmptySourceProducesEmptyRoot(t *testing.T) {
	root := flattenText(t, "")
	if len(root.Sources) != 1 {
		t.Fatalf("got %d sources, want 1 (the empty top-level source)", len(root.Sources))
	}
	if len(root.Sources[0].Expressions) != 0 {
		t.Errorf("got %d expressions, want 0", len(root.Sources[0].Expressions))
	}
}

func TestParse_EmptyBracketedExpressionIsError(t *testing.T) {
	lang := syntax.NewLanguage()
	if _, err := Parse(lang, []byte("x : [];")); err == nil {
		t.Fatal("want a parse error for an empty bracketed expression")
	}
}

func TestParse_UnterminatedStringIsError(t *testing.T) {
	lang := syntax.NewLanguage()
	if _, err := Parse(lang, []byte(`x : "unterminated`)); err == nil {
		t.Fatal("want a parse error for an unterminated string")
	}
}
