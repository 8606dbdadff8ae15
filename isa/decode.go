package isa

// Op represents an LC-3 opcode.
type Op uint8

// LC-3 opcodes, values equal to bits [15:12] of the instruction word.
const (
	OpBR   Op = 0b0000
	OpADD  Op = 0b0001
	OpLD   Op = 0b0010
	OpST   Op = 0b0011
	OpJSR  Op = 0b0100
	OpAND  Op = 0b0101
	OpLDR  Op = 0b0110
	OpSTR  Op = 0b0111
	OpRTI  Op = 0b1000 // reserved, see §7 ReservedOpcode
	OpNOT  Op = 0b1001
	OpLDI  Op = 0b1010
	OpSTI  Op = 0b1011
	OpJMP  Op = 0b1100
	OpRES  Op = 0b1101 // reserved, see §7 ReservedOpcode
	OpLEA  Op = 0b1110
	OpTRAP Op = 0b1111
)

// Trap vectors, the low byte of a TRAP instruction.
const (
	TrapGETC  = 0x20
	TrapOUT   = 0x21
	TrapPUTS  = 0x22
	TrapIN    = 0x23
	TrapPUTSP = 0x24
	TrapHALT  = 0x25
)

// Instruction is a decoded LC-3 instruction. Not every field applies to
// every Op; callers read only the fields their opcode's handler uses.
type Instruction struct {
	Op Op

	DR    uint16 // bits [11:9], destination register
	SR    uint16 // bits [11:9], source register for ST/STI/STR
	SR1   uint16 // bits [8:6]
	SR2   uint16 // bits [2:0], register-mode second operand for ADD/AND
	BaseR uint16 // bits [8:6], base register for JSR/JMP/LDR/STR

	ImmMode bool   // bit 5 of ADD/AND: true selects the immediate operand
	Imm5    uint16 // sign-extended bits [4:0]

	PCOffset9  uint16 // sign-extended bits [8:0]
	PCOffset11 uint16 // sign-extended bits [10:0]
	Offset6    uint16 // sign-extended bits [5:0]

	NZP      uint16 // bits [11:9] for BR
	LongFlag bool   // bit 11 of JSR: true selects JSR (PCOffset11), false JSRR (BaseR)

	TrapVect8 uint16 // bits [7:0] of TRAP
}

// Decode decodes a 16-bit LC-3 instruction word. Every word is a
// syntactically valid instruction: bits [15:12] always identify an Op,
// including the two reserved opcodes (RTI, RES), which handlers treat
// per the ReservedOpcode policy.
func Decode(word uint16) Instruction {
	inst := Instruction{Op: Op(word >> 12)}

	inst.DR = (word >> 9) & 0x7
	inst.SR = (word >> 9) & 0x7
	inst.SR1 = (word >> 6) & 0x7
	inst.SR2 = word & 0x7
	inst.BaseR = (word >> 6) & 0x7

	inst.ImmMode = (word>>5)&0x1 == 1
	inst.Imm5 = SignExtend(word&0x1F, 5)

	inst.PCOffset9 = SignExtend(word&0x1FF, 9)
	inst.PCOffset11 = SignExtend(word&0x7FF, 11)
	inst.Offset6 = SignExtend(word&0x3F, 6)

	inst.NZP = (word >> 9) & 0x7
	inst.LongFlag = (word>>11)&0x1 == 1

	inst.TrapVect8 = word & 0xFF

	return inst
}
