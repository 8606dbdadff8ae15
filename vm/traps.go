package vm

import (
	"fmt"

	"github.com/dputtick/lc3-vm/isa"
)

// execTRAP dispatches the low byte of the TRAP instruction to one of
// the six service routines in spec.md §4.5. An unrecognized vector is
// treated the same as a reserved opcode.
func (vm *VM) execTRAP(inst isa.Instruction) error {
	switch inst.TrapVect8 {
	case isa.TrapGETC:
		return vm.trapGETC()
	case isa.TrapOUT:
		return vm.trapOUT()
	case isa.TrapPUTS:
		return vm.trapPUTS()
	case isa.TrapIN:
		return vm.trapIN()
	case isa.TrapPUTSP:
		return vm.trapPUTSP()
	case isa.TrapHALT:
		return ErrHalted
	default:
		vm.logWarn("unrecognized trap vector", "vector", fmt.Sprintf("0x%02X", inst.TrapVect8))
		if vm.Strict {
			return fmt.Errorf("%w: trap vector 0x%02X", ErrReservedOpcode, inst.TrapVect8)
		}
		return nil
	}
}

// trapGETC reads one raw byte from the console into R0, with no echo.
func (vm *VM) trapGETC() error {
	b, err := vm.Console.ReadByte()
	if err != nil {
		return fmt.Errorf("%w: getc: %v", ErrIOError, err)
	}
	vm.Reg.Set(R0, uint16(b))
	return nil
}

// trapOUT writes R0's low byte directly to the console. R0 is the
// character itself, never an address to dereference.
func (vm *VM) trapOUT() error {
	if err := vm.Console.WriteByte(byte(vm.Reg.Get(R0))); err != nil {
		return fmt.Errorf("%w: out: %v", ErrIOError, err)
	}
	return nil
}

// trapPUTS writes a NUL-terminated string of one character per word,
// starting at the address in R0.
func (vm *VM) trapPUTS() error {
	addr := vm.Reg.Get(R0)
	for {
		w := vm.Mem.Read(addr)
		if w == 0 {
			return nil
		}
		if err := vm.Console.WriteByte(byte(w)); err != nil {
			return fmt.Errorf("%w: puts: %v", ErrIOError, err)
		}
		addr++
	}
}

// trapIN prints a prompt, reads one byte, echoes it, and stores it in
// R0, updating COND from the byte read.
func (vm *VM) trapIN() error {
	const prompt = "Enter a character: "
	for i := 0; i < len(prompt); i++ {
		if err := vm.Console.WriteByte(prompt[i]); err != nil {
			return fmt.Errorf("%w: in: %v", ErrIOError, err)
		}
	}
	b, err := vm.Console.ReadByte()
	if err != nil {
		return fmt.Errorf("%w: in: %v", ErrIOError, err)
	}
	if err := vm.Console.WriteByte(b); err != nil {
		return fmt.Errorf("%w: in: %v", ErrIOError, err)
	}
	value := uint16(b)
	vm.Reg.Set(R0, value)
	vm.Reg.UpdateFlags(value)
	return nil
}

// trapPUTSP writes a string packed two characters per word (low byte
// first, then high byte if nonzero), terminated by a zero word.
func (vm *VM) trapPUTSP() error {
	addr := vm.Reg.Get(R0)
	for {
		w := vm.Mem.Read(addr)
		if w == 0 {
			return nil
		}
		lo := byte(w & 0xFF)
		if err := vm.Console.WriteByte(lo); err != nil {
			return fmt.Errorf("%w: putsp: %v", ErrIOError, err)
		}
		hi := byte(w >> 8)
		if hi != 0 {
			if err := vm.Console.WriteByte(hi); err != nil {
				return fmt.Errorf("%w: putsp: %v", ErrIOError, err)
			}
		}
		addr++
	}
}
