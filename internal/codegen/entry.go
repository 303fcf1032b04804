package codegen

// resultTagNumber is the interface-tag convention this generator uses for
// the host main-frame's result slot (SPEC_FULL.md §4.3). The vocabulary is
// closed to the single kind generated code currently produces.
const resultTagNumber = 1

// mainFrame field offsets, relative to the pointer RDX holds on entry: a
// (pointer, length) pair describing the host-supplied input buffer,
// followed by the result slot (interface tag, then payload) (spec.md §4.3
// "Entry point (main)").
const (
	mainFramePtrOff  = 0
	mainFrameLenOff  = 8
	mainFrameTagOff  = 16
	mainFramePayOff  = 24
)

// emitDemoMain builds the fixed write(2) demonstration body: it writes the
// host-supplied buffer to file descriptor 1 and stores the syscall's
// return value into the result slot tagged Number (spec.md §4.3, "The body
// currently implements one concrete behaviour end-to-end"). This is the
// generator's zero-IR fallback, used whenever the FlatRoot carries no
// sources. RDI (the host's "old" coroutine record pointer, needed again at
// exit) and RDX (&mainframe, needed again to store the result) both get
// clobbered by the write() ABI, so both are spilled around the syscall.
func emitDemoMain(a *asm) (exitPatch int) {
	a.loadMem(rsi, rdx, mainFramePtrOff) // rsi = buffer pointer
	a.loadMem(rcx, rdx, mainFrameLenOff) // rcx = buffer length (parked off rdx)

	a.push(rdx) // save &mainframe
	a.push(rdi) // save &old coroutine record

	a.movRegReg(rdx, rcx)  // rdx = length (3rd write() argument)
	a.movRegImm64(rdi, 1)  // rdi = fd 1 (stdout)
	a.movRegImm64(rax, 1)  // rax = syscall number for write
	a.bytes(0x0F, 0x05)    // syscall

	a.pop(rdi) // restore &old coroutine record
	a.pop(rdx) // restore &mainframe

	a.storeMemImm32(rdx, mainFrameTagOff, resultTagNumber)
	a.storeMem(rdx, mainFramePayOff, rax)

	a.movRegReg(rsi, rdi) // rsi = &old, ready for registers_exit
	return a.jmpRel32()
}
