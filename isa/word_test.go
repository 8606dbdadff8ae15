package isa_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dputtick/lc3-vm/isa"
)

var _ = Describe("SignExtend", func() {
	It("leaves a positive 5-bit immediate untouched", func() {
		Expect(isa.SignExtend(0b00010, 5)).To(Equal(uint16(2)))
	})

	It("sign-extends a negative 5-bit immediate", func() {
		// #-2 encoded in 5 bits is 0b11110
		Expect(isa.SignExtend(0b11110, 5)).To(Equal(uint16(0xFFFE)))
	})

	It("sign-extends a negative 9-bit PC offset", func() {
		Expect(isa.SignExtend(0x1FF, 9)).To(Equal(uint16(0xFFFF))) // -1
	})

	It("leaves a positive 11-bit offset untouched", func() {
		Expect(isa.SignExtend(0x3FF, 11)).To(Equal(uint16(0x3FF)))
	})

	It("sign-extends a negative 6-bit offset", func() {
		Expect(isa.SignExtend(0b100000, 6)).To(Equal(uint16(0xFFE0))) // -32
	})

	It("masks off bits above the given width before extending", func() {
		// Stray high bits in the input must not leak through.
		Expect(isa.SignExtend(0xFFE2, 5)).To(Equal(uint16(2)))
	})
})
