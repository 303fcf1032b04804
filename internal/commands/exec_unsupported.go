//go:build !(linux && amd64)

package commands

import (
	"mage/internal/codegen"
	"mage/internal/merrors"
)

// execResult mirrors exec_linux_amd64.go's shape so run.go needs no
// platform-specific branching of its own.
type execResult struct {
	Kind    string
	Payload int64
}

// executeBytecode reports a clear ExecuteError rather than letting the
// build fail: internal/exec's trampoline is fixed to the System-V AMD64
// ABI (SPEC_FULL.md §4.3), so there is nothing to run on other platforms.
func executeBytecode(bc *codegen.Bytecode, input []byte) (execResult, error) {
	return execResult{}, merrors.NewExecuteError("execution is only supported on linux/amd64")
}
