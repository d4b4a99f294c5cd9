package emu_test

import (
	"bytes"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/insts"
)

var _ = Describe("ALU Operations", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = newQuietEmulator(&bytes.Buffer{})
	})

	DescribeTable("register-form arithmetic and logic",
		func(funct uint8, rs, rt, want uint32) {
			e.WriteRegister(1, rs)
			e.WriteRegister(2, rt)

			result := loadAndStep(e, insts.EncodeRegister(funct, 3, 1, 2, 0))

			Expect(result.Err).NotTo(HaveOccurred())
			Expect(e.ReadRegister(3)).To(Equal(want))
		},
		Entry("add", insts.FunctADD, uint32(40), uint32(2), uint32(42)),
		Entry("add wraps on signed overflow", insts.FunctADD, uint32(math.MaxInt32), uint32(1), uint32(0x80000000)),
		Entry("addu wraps", insts.FunctADDU, uint32(0xFFFFFFFF), uint32(2), uint32(1)),
		Entry("sub", insts.FunctSUB, uint32(10), uint32(3), uint32(7)),
		Entry("sub negative result", insts.FunctSUB, uint32(3), uint32(10), uint32(0xFFFFFFF9)),
		Entry("subu wraps", insts.FunctSUBU, uint32(0), uint32(1), uint32(0xFFFFFFFF)),
		Entry("mul signed", insts.FunctMUL, uint32(0xFFFFFFFE), uint32(3), uint32(0xFFFFFFFA)),
		Entry("mul truncates", insts.FunctMUL, uint32(0x10000), uint32(0x10000), uint32(0)),
		Entry("and", insts.FunctAND, uint32(0xF0F0), uint32(0xFF00), uint32(0xF000)),
		Entry("or", insts.FunctOR, uint32(0xF0F0), uint32(0x0F0F), uint32(0xFFFF)),
		Entry("xor", insts.FunctXOR, uint32(0xFF00), uint32(0x0FF0), uint32(0xF0F0)),
		Entry("nor", insts.FunctNOR, uint32(0xFFFF0000), uint32(0x0000FF00), uint32(0x000000FF)),
		Entry("slt true", insts.FunctSLT, uint32(0xFFFFFFFF), uint32(1), uint32(1)),
		Entry("slt false", insts.FunctSLT, uint32(1), uint32(0xFFFFFFFF), uint32(0)),
		Entry("sltu true", insts.FunctSLTU, uint32(1), uint32(0xFFFFFFFF), uint32(1)),
		Entry("sltu false", insts.FunctSLTU, uint32(0xFFFFFFFF), uint32(1), uint32(0)),
	)

	DescribeTable("immediate-form operations",
		func(op func(*emu.ALU, uint8, uint8, uint16), rs uint32, imm uint16, want uint32) {
			e.WriteRegister(1, rs)

			op(emu.NewALU(e.RegFile()), 3, 1, imm)

			Expect(e.ReadRegister(3)).To(Equal(want))
		},
		Entry("addi positive", (*emu.ALU).ADDI, uint32(10), uint16(5), uint32(15)),
		Entry("addi sign-extends", (*emu.ALU).ADDI, uint32(10), uint16(0xFFFF), uint32(9)),
		Entry("addiu zero-extends", (*emu.ALU).ADDIU, uint32(10), uint16(0xFFFF), uint32(0x10009)),
		Entry("slti sign-extends", (*emu.ALU).SLTI, uint32(0xFFFFFFFE), uint16(0xFFFF), uint32(1)),
		Entry("slti false", (*emu.ALU).SLTI, uint32(5), uint16(0xFFFF), uint32(0)),
		Entry("sltiu zero-extends", (*emu.ALU).SLTIU, uint32(5), uint16(0xFFFF), uint32(1)),
		Entry("sltiu false", (*emu.ALU).SLTIU, uint32(0xFFFFFFFF), uint16(0xFFFF), uint32(0)),
		Entry("andi zero-extends", (*emu.ALU).ANDI, uint32(0xFFFFFFFF), uint16(0x8001), uint32(0x8001)),
		Entry("ori", (*emu.ALU).ORI, uint32(0xF0000000), uint16(0x8000), uint32(0xF0008000)),
		Entry("xori", (*emu.ALU).XORI, uint32(0x0000FFFF), uint16(0x00FF), uint32(0x0000FF00)),
		Entry("lui", func(a *emu.ALU, rd, _ uint8, imm uint16) { a.LUI(rd, imm) },
			uint32(0xFFFFFFFF), uint16(0xABCD), uint32(0xABCD0000)),
	)

	DescribeTable("immediate-form dispatch",
		func(opcode uint8, rs uint32, imm uint16, want uint32) {
			e.WriteRegister(1, rs)

			result := loadAndStep(e, insts.EncodeImmediate(opcode, 3, 1, imm))

			Expect(result.Err).NotTo(HaveOccurred())
			Expect(e.ReadRegister(3)).To(Equal(want))
		},
		Entry("addi", insts.OpcodeADDI, uint32(10), uint16(5), uint32(15)),
		Entry("addiu", insts.OpcodeADDIU, uint32(10), uint16(0x3FF), uint32(0x409)),
		Entry("slti", insts.OpcodeSLTI, uint32(5), uint16(6), uint32(1)),
		Entry("sltiu", insts.OpcodeSLTIU, uint32(7), uint16(6), uint32(0)),
		Entry("andi", insts.OpcodeANDI, uint32(0xFF), uint16(0x0F0), uint32(0xF0)),
		Entry("ori", insts.OpcodeORI, uint32(0xF0000000), uint16(0x001), uint32(0xF0000001)),
		Entry("xori", insts.OpcodeXORI, uint32(0xFF), uint16(0x0F0), uint32(0x0F)),
		Entry("lui", insts.OpcodeLUI, uint32(0), uint16(0x123), uint32(0x01230000)),
	)

	Describe("Moves", func() {
		BeforeEach(func() {
			e.WriteRegister(1, 0xAAAA)
			e.WriteRegister(3, 0x5555)
		})

		It("should copy with mov", func() {
			loadAndStep(e, insts.EncodeRegister(insts.FunctMOV, 3, 1, 0, 0))
			Expect(e.ReadRegister(3)).To(Equal(uint32(0xAAAA)))
		})

		It("should copy with movn when the condition is nonzero", func() {
			e.WriteRegister(2, 1)
			loadAndStep(e, insts.EncodeRegister(insts.FunctMOVN, 3, 1, 2, 0))
			Expect(e.ReadRegister(3)).To(Equal(uint32(0xAAAA)))
		})

		It("should not copy with movn when the condition is zero", func() {
			loadAndStep(e, insts.EncodeRegister(insts.FunctMOVN, 3, 1, 2, 0))
			Expect(e.ReadRegister(3)).To(Equal(uint32(0x5555)))
		})

		It("should copy with movz when the condition is zero", func() {
			loadAndStep(e, insts.EncodeRegister(insts.FunctMOVZ, 3, 1, 2, 0))
			Expect(e.ReadRegister(3)).To(Equal(uint32(0xAAAA)))
		})

		It("should not copy with movz when the condition is nonzero", func() {
			e.WriteRegister(2, 7)
			loadAndStep(e, insts.EncodeRegister(insts.FunctMOVZ, 3, 1, 2, 0))
			Expect(e.ReadRegister(3)).To(Equal(uint32(0x5555)))
		})
	})

	Describe("Complement", func() {
		It("should compute one's complement with not", func() {
			e.WriteRegister(1, 0x0F0F0F0F)
			loadAndStep(e, insts.EncodeRegister(insts.FunctNOT, 3, 1, 0, 0))
			Expect(e.ReadRegister(3)).To(Equal(uint32(0xF0F0F0F0)))
		})

		It("should compute one's complement, not two's, with negu", func() {
			e.WriteRegister(1, 1)
			loadAndStep(e, insts.EncodeRegister(insts.FunctNEGU, 3, 1, 0, 0))
			Expect(e.ReadRegister(3)).To(Equal(uint32(0xFFFFFFFE)))
		})
	})

	Describe("Accumulator moves", func() {
		It("should move to and from the accumulator halves", func() {
			e.WriteRegister(1, 0x11111111)
			e.WriteRegister(2, 0x22222222)
			Expect(e.LoadProgram([]uint32{
				insts.EncodeRegister(insts.FunctMTHI, 0, 1, 0, 0),
				insts.EncodeRegister(insts.FunctMTLO, 0, 2, 0, 0),
				insts.EncodeRegister(insts.FunctMFHI, 3, 0, 0, 0),
				insts.EncodeRegister(insts.FunctMFLO, 4, 0, 0, 0),
			})).To(Succeed())

			Expect(e.Run()).To(Succeed())

			Expect(e.RegFile().Acc()).To(Equal(uint64(0x1111111122222222)))
			Expect(e.ReadRegister(3)).To(Equal(uint32(0x11111111)))
			Expect(e.ReadRegister(4)).To(Equal(uint32(0x22222222)))
		})
	})

	Describe("Add/sub round trip", func() {
		DescribeTable("should restore the original value",
			func(addFunct, subFunct uint8, x, y uint32) {
				e.WriteRegister(1, x)
				e.WriteRegister(2, y)
				Expect(e.LoadProgram([]uint32{
					insts.EncodeRegister(addFunct, 1, 1, 2, 0),
					insts.EncodeRegister(subFunct, 1, 1, 2, 0),
				})).To(Succeed())

				Expect(e.Run()).To(Succeed())

				Expect(e.ReadRegister(1)).To(Equal(x))
			},
			Entry("add/sub", insts.FunctADD, insts.FunctSUB, uint32(5), uint32(7)),
			Entry("add/sub overflow", insts.FunctADD, insts.FunctSUB, uint32(math.MaxInt32), uint32(math.MaxInt32)),
			Entry("addu/subu wrap", insts.FunctADDU, insts.FunctSUBU, uint32(0xFFFFFFF0), uint32(0x20)),
		)
	})
})
