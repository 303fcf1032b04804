package exec

// coroutine mirrors the trampoline's Coroutine record layout exactly
// (codegen's coroutineScratchOff.. coroutineRSPOff, SPEC_FULL.md §4.3): a
// scratch slot, six callee-saved registers, and RSP. Only RSP is ever set
// by this package directly; the rest start zeroed and are filled in by the
// generated registers_swap the first time it runs.
type coroutine struct {
	scratch, rbx, rbp, r12, r13, r14, r15, rsp uint64
}

// mainFrame mirrors codegen's mainFrame offsets (mainFramePtrOff..
// mainFramePayOff): the host-supplied input buffer as a (pointer, length)
// pair, followed by a result slot (tag, payload).
type mainFrame struct {
	ptr     uint64
	length  uint64
	tag     uint64
	payload uint64
}

// resultTagNumber mirrors codegen.resultTagNumber; the two packages agree
// on this convention without sharing a type, since the contract crosses
// the Go/machine-code boundary.
const resultTagNumber = 1

// ResultKind classifies the value reported back from a run.
type ResultKind int

const (
	// ResultUnknown marks a tag the generated code never actually wrote,
	// which should not happen for any bytecode codegen.Generate produces.
	ResultUnknown ResultKind = iota
	ResultNumber
)

// Result is the decoded contents of the host main frame's result slot
// after a run completes.
type Result struct {
	Kind    ResultKind
	Payload int64
}
