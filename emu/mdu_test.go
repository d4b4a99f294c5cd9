package emu_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/insts"
)

var _ = Describe("Multiply/Divide Unit", func() {
	var e *emu.Emulator

	BeforeEach(func() {
		e = newQuietEmulator(&bytes.Buffer{})
	})

	accOp := func(funct uint8, rs, rt uint32) uint64 {
		e.WriteRegister(1, rs)
		e.WriteRegister(2, rt)
		result := loadAndStep(e, insts.EncodeRegister(funct, 0, 1, 2, 0))
		Expect(result.Err).NotTo(HaveOccurred())
		return e.RegFile().Acc()
	}

	Describe("DIV", func() {
		It("should store the signed quotient across hi and lo", func() {
			Expect(accOp(insts.FunctDIV, 0xFFFFFFF6, 3)).To(Equal(uint64(0xFFFFFFFFFFFFFFFD)))
			Expect(e.RegFile().AccHi).To(Equal(uint32(0xFFFFFFFF)))
			Expect(e.RegFile().AccLo).To(Equal(uint32(0xFFFFFFFD)))
		})

		It("should not trap on the most negative value divided by -1", func() {
			Expect(accOp(insts.FunctDIV, 0x80000000, 0xFFFFFFFF)).To(Equal(uint64(0x80000000)))
		})

		It("should not touch the destination register", func() {
			e.WriteRegister(0, 77)
			accOp(insts.FunctDIV, 10, 2)
			Expect(e.ReadRegister(0)).To(Equal(uint32(77)))
		})
	})

	Describe("DIVU", func() {
		It("should store the unsigned quotient", func() {
			Expect(accOp(insts.FunctDIVU, 0xFFFFFFF6, 3)).To(Equal(uint64(0x55555552)))
		})
	})

	Describe("division by zero", func() {
		It("should not panic and should keep executing", func() {
			e.WriteRegister(1, 10)
			Expect(e.LoadProgram([]uint32{
				insts.EncodeRegister(insts.FunctDIV, 0, 1, 2, 0),
				insts.EncodeRegister(insts.FunctDIVU, 0, 1, 2, 0),
				insts.EncodeImmediate(insts.OpcodeADDIU, 3, 3, 1),
			})).To(Succeed())

			Expect(func() { Expect(e.Run()).To(Succeed()) }).NotTo(Panic())
			Expect(e.ReadRegister(3)).To(Equal(uint32(1)))
		})

		It("should be reproducible for the same seed", func() {
			run := func(seed uint64) uint64 {
				e := newQuietEmulator(&bytes.Buffer{}, emu.WithUndefinedSeed(seed))
				e.WriteRegister(1, 10)
				Expect(e.LoadProgram([]uint32{insts.EncodeRegister(insts.FunctDIV, 0, 1, 2, 0)})).To(Succeed())
				Expect(e.Run()).To(Succeed())
				return e.RegFile().Acc()
			}

			Expect(run(42)).To(Equal(run(42)))
			Expect(run(42)).NotTo(Equal(run(43)))
		})
	})

	Describe("multiply-accumulate", func() {
		BeforeEach(func() {
			e.RegFile().SetAcc(100)
		})

		It("should add the signed product with madd", func() {
			Expect(accOp(insts.FunctMADD, 0xFFFFFFFF, 5)).To(Equal(uint64(95)))
		})

		It("should add the unsigned product with maddu", func() {
			Expect(accOp(insts.FunctMADDU, 0xFFFFFFFF, 2)).To(Equal(uint64(100 + 0x1FFFFFFFE)))
		})

		It("should subtract the signed product with msub", func() {
			Expect(accOp(insts.FunctMSUB, 0xFFFFFFFF, 5)).To(Equal(uint64(105)))
		})

		It("should subtract the unsigned product with msubu", func() {
			Expect(accOp(insts.FunctMSUBU, 10, 11)).To(Equal(uint64(0xFFFFFFFFFFFFFFF6)))
		})

		It("should carry from lo into hi", func() {
			e.RegFile().SetAcc(0xFFFFFFFF)
			accOp(insts.FunctMADDU, 1, 1)
			Expect(e.RegFile().AccHi).To(Equal(uint32(1)))
			Expect(e.RegFile().AccLo).To(BeZero())
		})
	})
})
