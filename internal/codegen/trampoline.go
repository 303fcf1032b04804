package codegen

// A Coroutine record is eight machine words: a scratch slot, the six
// callee-saved registers in System-V order, and RSP (SPEC_FULL.md §4.3,
// spec.md §4.3 "Trampoline layout"). Offsets are in bytes from the record's
// base pointer.
const (
	coroutineScratchOff = 0
	coroutineRBXOff     = 8
	coroutineRBPOff     = 16
	coroutineR12Off     = 24
	coroutineR13Off     = 32
	coroutineR14Off     = 40
	coroutineR15Off     = 48
	coroutineRSPOff     = 56
	coroutineSize       = 64
)

// emitRegistersSwap builds the registers_swap label: save the current
// callee-saves into [RDI+...], load the new set from [RSI+...], then ret.
// The executor primes the new Coroutine's stack so that the word directly
// under the switched-to RSP holds main's absolute address; ret pops it and
// jumps there, the same trick a fresh fiber's first resume always needs
// since there is no real call frame to return into otherwise. RDX is
// untouched throughout, so it still holds the host main-frame pointer main
// expects on entry.
func emitRegistersSwap(a *asm) {
	// save old <- current callee-saves (RDI untouched: it is the "old"
	// record pointer and main needs it again at exit)
	emitSaveCallee(a, rdi)
	// RSP is part of the callee-save set but must be swapped, not merely
	// saved, since it is what makes the switch a stack switch.
	a.storeMem(rdi, coroutineRSPOff, rsp)

	emitLoadCallee(a, rsi)
	a.loadMem(rsp, rsi, coroutineRSPOff)
	a.ret()
}

// emitRegistersExit builds the registers_exit label: restore callee-saves
// from [RSI+...] (by the time a generated body reaches this label, RSI has
// been repointed at the host's saved state) and return to the executor's
// caller.
func emitRegistersExit(a *asm) {
	emitLoadCallee(a, rsi)
	a.loadMem(rsp, rsi, coroutineRSPOff)
	a.ret()
}

func emitSaveCallee(a *asm, base reg) {
	a.storeMem(base, coroutineRBXOff, rbx)
	a.storeMem(base, coroutineRBPOff, rbp)
	a.storeMem(base, coroutineR12Off, r12)
	a.storeMem(base, coroutineR13Off, r13)
	a.storeMem(base, coroutineR14Off, r14)
	a.storeMem(base, coroutineR15Off, r15)
}

func emitLoadCallee(a *asm, base reg) {
	a.loadMem(rbx, base, coroutineRBXOff)
	a.loadMem(rbp, base, coroutineRBPOff)
	a.loadMem(r12, base, coroutineR12Off)
	a.loadMem(r13, base, coroutineR13Off)
	a.loadMem(r14, base, coroutineR14Off)
	a.loadMem(r15, base, coroutineR15Off)
}
