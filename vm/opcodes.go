package vm

import "github.com/dputtick/lc3-vm/isa"

// execute dispatches a decoded instruction to its handler. PC has
// already been advanced by Step; every PC-relative computation here
// uses that advanced value, per spec.md §4.3.
func (vm *VM) execute(inst isa.Instruction) error {
	switch inst.Op {
	case isa.OpBR:
		vm.execBR(inst)
	case isa.OpADD:
		vm.execADD(inst)
	case isa.OpLD:
		vm.execLD(inst)
	case isa.OpST:
		vm.execST(inst)
	case isa.OpJSR:
		vm.execJSR(inst)
	case isa.OpAND:
		vm.execAND(inst)
	case isa.OpLDR:
		vm.execLDR(inst)
	case isa.OpSTR:
		vm.execSTR(inst)
	case isa.OpRTI:
		return vm.reservedOpcode(inst.Op)
	case isa.OpNOT:
		vm.execNOT(inst)
	case isa.OpLDI:
		vm.execLDI(inst)
	case isa.OpSTI:
		vm.execSTI(inst)
	case isa.OpJMP:
		vm.execJMP(inst)
	case isa.OpRES:
		return vm.reservedOpcode(inst.Op)
	case isa.OpLEA:
		vm.execLEA(inst)
	case isa.OpTRAP:
		return vm.execTRAP(inst)
	}
	return nil
}

func (vm *VM) execBR(inst isa.Instruction) {
	if inst.NZP&vm.Reg.Get(RCOND) != 0 {
		vm.Reg.Set(RPC, vm.Reg.Get(RPC)+inst.PCOffset9)
	}
}

func (vm *VM) execADD(inst isa.Instruction) {
	var rhs uint16
	if inst.ImmMode {
		rhs = inst.Imm5
	} else {
		rhs = vm.Reg.Get(inst.SR2)
	}
	result := vm.Reg.Get(inst.SR1) + rhs
	vm.Reg.Set(inst.DR, result)
	vm.Reg.UpdateFlags(result)
}

func (vm *VM) execAND(inst isa.Instruction) {
	var rhs uint16
	if inst.ImmMode {
		rhs = inst.Imm5
	} else {
		rhs = vm.Reg.Get(inst.SR2)
	}
	result := vm.Reg.Get(inst.SR1) & rhs
	vm.Reg.Set(inst.DR, result)
	vm.Reg.UpdateFlags(result)
}

func (vm *VM) execNOT(inst isa.Instruction) {
	result := ^vm.Reg.Get(inst.SR1)
	vm.Reg.Set(inst.DR, result)
	vm.Reg.UpdateFlags(result)
}

func (vm *VM) execLD(inst isa.Instruction) {
	addr := vm.Reg.Get(RPC) + inst.PCOffset9
	value := vm.Mem.Read(addr)
	vm.Reg.Set(inst.DR, value)
	vm.Reg.UpdateFlags(value)
}

func (vm *VM) execLDI(inst isa.Instruction) {
	ptr := vm.Reg.Get(RPC) + inst.PCOffset9
	addr := vm.Mem.Read(ptr)
	value := vm.Mem.Read(addr)
	vm.Reg.Set(inst.DR, value)
	vm.Reg.UpdateFlags(value)
}

func (vm *VM) execLDR(inst isa.Instruction) {
	addr := vm.Reg.Get(inst.BaseR) + inst.Offset6
	value := vm.Mem.Read(addr)
	vm.Reg.Set(inst.DR, value)
	vm.Reg.UpdateFlags(value)
}

// execLEA computes PC + offset and does NOT dereference it. The source
// this spec is distilled from has a variant that wrongly dereferences
// the computed address here; LEA never touches memory.
func (vm *VM) execLEA(inst isa.Instruction) {
	value := vm.Reg.Get(RPC) + inst.PCOffset9
	vm.Reg.Set(inst.DR, value)
	vm.Reg.UpdateFlags(value)
}

func (vm *VM) execST(inst isa.Instruction) {
	addr := vm.Reg.Get(RPC) + inst.PCOffset9
	vm.Mem.Write(addr, vm.Reg.Get(inst.SR))
}

func (vm *VM) execSTI(inst isa.Instruction) {
	ptr := vm.Reg.Get(RPC) + inst.PCOffset9
	addr := vm.Mem.Read(ptr)
	vm.Mem.Write(addr, vm.Reg.Get(inst.SR))
}

func (vm *VM) execSTR(inst isa.Instruction) {
	addr := vm.Reg.Get(inst.BaseR) + inst.Offset6
	vm.Mem.Write(addr, vm.Reg.Get(inst.SR))
}

func (vm *VM) execJSR(inst isa.Instruction) {
	returnAddr := vm.Reg.Get(RPC)
	vm.Reg.Set(R7, returnAddr)
	if inst.LongFlag {
		vm.Reg.Set(RPC, returnAddr+inst.PCOffset11)
	} else {
		vm.Reg.Set(RPC, vm.Reg.Get(inst.BaseR))
	}
}

// execJMP sets PC to the contents of BaseR. A source variant of this
// spec sometimes assigns the register index itself rather than its
// value; the correct semantics always read through the register.
func (vm *VM) execJMP(inst isa.Instruction) {
	vm.Reg.Set(RPC, vm.Reg.Get(inst.BaseR))
}
