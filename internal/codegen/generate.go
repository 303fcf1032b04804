package codegen

import "mage/internal/ir"

// Generate lowers root into one contiguous Bytecode: registers_swap first
// (so the executor's entry call lands on its first byte), then `main`, then
// registers_exit. registers_swap reaches main via ret, not fallthrough — the
// executor primes the fresh Coroutine's stack with main's absolute address
// so the switched-to RSP finds it directly under the stack pointer. Only
// the first source in root is compiled; a FlatRoot with no sources falls
// back to the fixed write(2) demonstration body (spec.md §4.3, SPEC_FULL.md
// §4.3).
func Generate(root *ir.FlatRoot) (*Bytecode, error) {
	a := &asm{}

	swapOffset := len(a.code)
	emitRegistersSwap(a)

	mainOffset := len(a.code)
	var exitPatch int
	if len(root.Sources) == 0 {
		exitPatch = emitDemoMain(a)
	} else {
		patch, err := translateSource(a, root, root.Sources[0])
		if err != nil {
			return nil, err
		}
		exitPatch = patch
	}

	exitOffset := len(a.code)
	emitRegistersExit(a)
	patchRel32(a.code, exitPatch, exitOffset)

	return &Bytecode{
		Code:          a.code,
		Main:          mainOffset,
		RegistersSwap: swapOffset,
		RegistersExit: exitOffset,
	}, nil
}
