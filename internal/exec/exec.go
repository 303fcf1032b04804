//go:build linux && amd64

// Package exec maps generated bytecode into executable memory and runs it
// as a coroutine switched to from the host, per spec.md §4.4.
package exec

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"

	"mage/internal/codegen"
	"mage/internal/merrors"
)

// stackSize is the fixed guest stack allocation spec.md §4.4 names: 64 KiB.
const stackSize = 64 * 1024

// Run maps bc's code into an executable region, gives it a dedicated stack,
// and switches into it with input as the guest's main frame buffer. It
// blocks until the guest runs registers_exit and control returns to the
// host.
func Run(bc *codegen.Bytecode, input []byte) (Result, error) {
	code, err := mapExecutable(bc.Code)
	if err != nil {
		return Result{}, merrors.NewExecuteError("mapping executable region: %v", err)
	}
	defer unix.Munmap(code)

	stack, err := unix.Mmap(-1, 0, stackSize,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return Result{}, merrors.NewExecuteError("mapping guest stack: %v", err)
	}
	defer unix.Munmap(stack)

	entryBase := uintptr(unsafe.Pointer(&code[0]))
	mainAddr := entryBase + uintptr(bc.Main)

	// The word directly under the fresh stack's initial RSP must hold
	// main's absolute address: registers_swap's final `ret`, once it has
	// switched RSP onto this stack, pops that word as though it were a
	// return address and lands in main. This is the standard way to give
	// a coroutine that has never run before somewhere to "return" to.
	top := uintptr(unsafe.Pointer(&stack[0])) + stackSize - 8
	*(*uint64)(unsafe.Pointer(top)) = uint64(mainAddr)

	var old, guest coroutine
	guest.rsp = uint64(top)

	frame := mainFrame{length: uint64(len(input))}
	if len(input) > 0 {
		frame.ptr = uint64(uintptr(unsafe.Pointer(&input[0])))
	}

	callEntry(
		entryBase+uintptr(bc.RegistersSwap),
		uintptr(unsafe.Pointer(&old)),
		uintptr(unsafe.Pointer(&guest)),
		uintptr(unsafe.Pointer(&frame)),
	)
	// input, code and stack must outlive the call above: the guest reads
	// and writes through raw pointers the Go runtime can't see.
	runtime.KeepAlive(input)
	runtime.KeepAlive(code)
	runtime.KeepAlive(stack)

	return decodeResult(frame)
}

// mapExecutable copies code into a fresh anonymous mapping, then flips it
// from writable to executable. Separating the two steps (rather than
// mapping PROT_EXEC directly) keeps the region W^X at every instant:
// writable while being populated, executable once sealed, never both.
func mapExecutable(code []byte) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, len(code),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	copy(mem, code)
	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		unix.Munmap(mem)
		return nil, err
	}
	return mem, nil
}

func decodeResult(f mainFrame) (Result, error) {
	switch f.tag {
	case resultTagNumber:
		return Result{Kind: ResultNumber, Payload: int64(f.payload)}, nil
	default:
		return Result{}, merrors.NewExecuteError("guest wrote unrecognized result tag %d", f.tag)
	}
}
