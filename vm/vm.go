package vm

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dputtick/lc3-vm/isa"
)

// DefaultOrigin is the conventional load address for LC-3 user programs.
const DefaultOrigin = 0x3000

// Sentinel errors returned by Step/Run, grounded on the teacher's
// sentinel-error convention (vm.ErrHalted / vm.ErrNotPermitted in the
// pack's bassosimone-risc32/pkg/vm) and on the teacher's own
// StepResult{Err} return shape in emu/emulator.go.
var (
	// ErrHalted indicates a clean TRAP HALT. Run() treats it as success.
	ErrHalted = errors.New("vm: halted")

	// ErrReservedOpcode indicates RTI or RES was decoded, or an
	// unrecognized trap vector was executed, while running in strict
	// mode (spec.md §7).
	ErrReservedOpcode = errors.New("vm: reserved opcode")

	// ErrIOError wraps a console read/write failure (spec.md §7).
	ErrIOError = errors.New("vm: io error")
)

// VM is a single LC-3 processor: register file, memory, and the console
// boundary the trap routines talk to. A VM is not goroutine-safe and is
// meant to be driven by a single goroutine (spec.md §5).
type VM struct {
	Reg     RegisterFile
	Mem     *Memory
	Console Console

	// Strict promotes ReservedOpcode from a no-op to ErrReservedOpcode.
	Strict bool

	// Logger receives ambient diagnostics only — never the program's own
	// trap I/O. If left nil, nothing is logged.
	Logger *slog.Logger

	instructionCount uint64
}

// New creates a VM with the given memory and console, reset to the
// conventional start state (PC = DefaultOrigin, COND = Z).
func New(mem *Memory, console Console) *VM {
	v := &VM{Mem: mem, Console: console}
	v.Reg.Reset(DefaultOrigin)
	return v
}

// InstructionCount returns the number of instructions executed so far.
func (vm *VM) InstructionCount() uint64 {
	return vm.instructionCount
}

// Step fetches, decodes, and executes a single instruction, advancing PC
// by exactly one before the handler observes it (spec.md §4.7).
func (vm *VM) Step() error {
	pc := vm.Reg.Get(RPC)
	word := vm.Mem.Read(pc)
	vm.Reg.Set(RPC, pc+1)

	inst := isa.Decode(word)
	err := vm.execute(inst)
	vm.instructionCount++
	return err
}

// Run executes instructions until TRAP HALT (returns nil) or a fatal
// error occurs.
func (vm *VM) Run() error {
	for {
		err := vm.Step()
		if err == nil {
			continue
		}
		if errors.Is(err, ErrHalted) {
			return nil
		}
		return err
	}
}

func (vm *VM) logWarn(msg string, args ...any) {
	if vm.Logger != nil {
		vm.Logger.Warn(msg, args...)
	}
}

// reservedOpcode implements the ReservedOpcode policy from spec.md §7:
// a no-op by default, promoted to a fatal error in strict mode.
func (vm *VM) reservedOpcode(op isa.Op) error {
	vm.logWarn("reserved opcode decoded", "op", fmt.Sprintf("%04b", op))
	if vm.Strict {
		return fmt.Errorf("%w: %04b", ErrReservedOpcode, op)
	}
	return nil
}
