package commands

import (
	"testing"

	"mage/internal/ir"
)

func flatten(t *testing.T, src string, stage string) *runEnvelope {
	t.Helper()
	env, _, err := process(RunOptions{Stage: stage}, []byte(src))
	if err != nil {
		t.Fatalf("process(%q): %v", src, err)
	}
	return env
}

func TestProcess_SimpleAssign(t *testing.T) {
	env := flatten(t, "x : 0d10;", "flatten")
	if env.Result != nil {
		t.Fatalf("flatten stage must not execute: got Result %+v", env.Result)
	}
	if len(env.Root.Sources) != 1 {
		t.Fatalf("want 1 source, got %d", len(env.Root.Sources))
	}
	src := env.Root.Sources[0]
	if got := src.Identifiers; len(got) != 1 || got[0] != "x" {
		t.Fatalf("want identifiers [x], got %v", got)
	}
	if got := env.Root.Numbers; len(got) != 1 || got[0] != "0d10" {
		t.Fatalf("want numbers [0d10], got %v", got)
	}
	if len(src.Expressions) != 1 || src.Expressions[0].Kind != ir.AssignExpr {
		t.Fatalf("want one Assign expression, got %+v", src.Expressions)
	}
}

func TestProcess_NumberDedup(t *testing.T) {
	env := flatten(t, "y : 0d10 - 0d2 * 0d2;", "flatten")
	if got := env.Root.Numbers; len(got) != 2 || got[0] != "0d10" || got[1] != "0d2" {
		t.Fatalf("want numbers [0d10 0d2], got %v", got)
	}
}

func TestProcess_MemberCallIsCompileErrorAtCompileStage(t *testing.T) {
	_, _, err := process(RunOptions{Stage: "compile"}, []byte("a.b(c);"))
	if err == nil {
		t.Fatal("want a CompileError for Member/Call at compile stage, got nil")
	}
}

func TestProcess_EmptySourceProducesEmptyRoot(t *testing.T) {
	env := flatten(t, "", "flatten")
	if len(env.Root.Sources) != 1 {
		t.Fatalf("want 1 (empty) source, got %d", len(env.Root.Sources))
	}
	if len(env.Root.Sources[0].Expressions) != 0 {
		t.Fatalf("want no expressions, got %v", env.Root.Sources[0].Expressions)
	}
}

func TestProcess_ParseErrorPropagates(t *testing.T) {
	_, _, err := process(RunOptions{Stage: "flatten"}, []byte("x : ;"))
	if err == nil {
		t.Fatal("want a parse error for a missing right-hand side, got nil")
	}
}
