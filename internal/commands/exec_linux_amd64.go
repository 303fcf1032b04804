//go:build linux && amd64

package commands

import (
	"mage/internal/codegen"
	"mage/internal/exec"
)

// execResult mirrors the two fields of exec.Result this package's JSON/
// text envelopes need, decoupled from exec.Result itself so non-linux/
// amd64 builds (which cannot import internal/exec at all — it is built
// only under this same constraint) still have something to return.
type execResult struct {
	Kind    string
	Payload int64
}

func executeBytecode(bc *codegen.Bytecode, input []byte) (execResult, error) {
	result, err := exec.Run(bc, input)
	if err != nil {
		return execResult{}, err
	}
	kind := "Unknown"
	if result.Kind == exec.ResultNumber {
		kind = "Number"
	}
	return execResult{Kind: kind, Payload: result.Payload}, nil
}
