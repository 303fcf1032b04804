package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets testscript invoke "mage" as an in-process subprocess
// instead of building a real binary — the same trick the teacher's
// go.mod pulls testscript in for but never uses (see DESIGN.md).
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"mage": func() int { return run(os.Args[1:]) },
	}))
}

func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
