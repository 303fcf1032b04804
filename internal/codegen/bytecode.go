// Package codegen translates a flattened FlatRoot into a contiguous x86-64
// byte vector: a coroutine-switch trampoline, a fixed entry-point ABI, and
// straight-line generated code for each source's expressions
// (SPEC_FULL.md §4.3).
package codegen

// Bytecode is the generator's output: one position-independent byte vector
// plus three labelled offsets into it.
type Bytecode struct {
	Code []byte

	Main          int
	RegistersSwap int
	RegistersExit int
}
