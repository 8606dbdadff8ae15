package isa_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dputtick/lc3-vm/isa"
)

var _ = Describe("Decode", func() {
	It("decodes ADD R1,R1,#2 (immediate mode)", func() {
		inst := isa.Decode(0x1262)

		Expect(inst.Op).To(Equal(isa.OpADD))
		Expect(inst.DR).To(Equal(uint16(1)))
		Expect(inst.SR1).To(Equal(uint16(1)))
		Expect(inst.ImmMode).To(BeTrue())
		Expect(inst.Imm5).To(Equal(uint16(2)))
	})

	It("decodes AND R0,R0,#0 (immediate mode)", func() {
		inst := isa.Decode(0x5020)

		Expect(inst.Op).To(Equal(isa.OpAND))
		Expect(inst.DR).To(Equal(uint16(0)))
		Expect(inst.SR1).To(Equal(uint16(0)))
		Expect(inst.ImmMode).To(BeTrue())
		Expect(inst.Imm5).To(Equal(uint16(0)))
	})

	It("decodes ADD in register mode", func() {
		// ADD R2,R3,R4 -> opcode 0001, DR=010, SR1=011, 000, SR2=100
		inst := isa.Decode(0b0001_010_011_000_100)

		Expect(inst.Op).To(Equal(isa.OpADD))
		Expect(inst.DR).To(Equal(uint16(2)))
		Expect(inst.SR1).To(Equal(uint16(3)))
		Expect(inst.ImmMode).To(BeFalse())
		Expect(inst.SR2).To(Equal(uint16(4)))
	})

	It("decodes NOT R0,R0", func() {
		inst := isa.Decode(0x903F)

		Expect(inst.Op).To(Equal(isa.OpNOT))
		Expect(inst.DR).To(Equal(uint16(0)))
		Expect(inst.SR1).To(Equal(uint16(0)))
	})

	It("decodes BRz #1 with a Z-only NZP mask", func() {
		inst := isa.Decode(0x0401)

		Expect(inst.Op).To(Equal(isa.OpBR))
		Expect(inst.NZP).To(Equal(uint16(0b010)))
		Expect(inst.PCOffset9).To(Equal(uint16(1)))
	})

	It("decodes LEA R0,#2", func() {
		inst := isa.Decode(0xE002)

		Expect(inst.Op).To(Equal(isa.OpLEA))
		Expect(inst.DR).To(Equal(uint16(0)))
		Expect(inst.PCOffset9).To(Equal(uint16(2)))
	})

	It("decodes TRAP PUTS", func() {
		inst := isa.Decode(0xF022)

		Expect(inst.Op).To(Equal(isa.OpTRAP))
		Expect(inst.TrapVect8).To(Equal(uint16(isa.TrapPUTS)))
	})

	It("decodes JSR (long form)", func() {
		inst := isa.Decode(0x4802)

		Expect(inst.Op).To(Equal(isa.OpJSR))
		Expect(inst.LongFlag).To(BeTrue())
		Expect(inst.PCOffset11).To(Equal(uint16(2)))
	})

	It("decodes JSRR (short form)", func() {
		// JSRR R3 -> opcode 0100, bit11=0, 00, BaseR=011, 000000
		inst := isa.Decode(0b0100_0_00_011_000000)

		Expect(inst.Op).To(Equal(isa.OpJSR))
		Expect(inst.LongFlag).To(BeFalse())
		Expect(inst.BaseR).To(Equal(uint16(3)))
	})

	It("decodes JMP R7 (RET)", func() {
		inst := isa.Decode(0xC1C0)

		Expect(inst.Op).To(Equal(isa.OpJMP))
		Expect(inst.BaseR).To(Equal(uint16(7)))
	})

	It("decodes LDI R0,#2", func() {
		inst := isa.Decode(0xA002)

		Expect(inst.Op).To(Equal(isa.OpLDI))
		Expect(inst.DR).To(Equal(uint16(0)))
		Expect(inst.PCOffset9).To(Equal(uint16(2)))
	})

	It("decodes the reserved opcodes without error", func() {
		Expect(isa.Decode(0x8000).Op).To(Equal(isa.OpRTI))
		Expect(isa.Decode(0xD000).Op).To(Equal(isa.OpRES))
	})
})
