package main

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipsim/config"
	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/insts"
)

var _ = Describe("Debugger", func() {
	var (
		out *bytes.Buffer
		s   *session
		d   *debugger
	)

	BeforeEach(func() {
		path := writeHexImage(GinkgoT().TempDir(),
			insts.EncodeImmediate(insts.OpcodeADDIU, 1, 1, 40),
			insts.EncodeImmediate(insts.OpcodeADDIU, 1, 1, 2),
			insts.EncodeRegister(0x3F, 0, 0, 0, 0),
		)

		var err error
		s, err = newSession(path, config.DefaultConfig(), quietLogger())
		Expect(err).NotTo(HaveOccurred())

		out = &bytes.Buffer{}
		d = newDebugger(s, out)
	})

	It("should step one instruction by default", func() {
		quit, err := d.exec("step")

		Expect(quit).To(BeFalse())
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("0x00000000  24210A00  addiu"))
		Expect(s.emulator.PC()).To(Equal(uint32(4)))
	})

	It("should step several instructions and mark invalid ones", func() {
		_, err := d.exec("step 3")

		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("<invalid>"))
		Expect(s.emulator.ReadRegister(1)).To(Equal(uint32(42)))
	})

	It("should reject a bad step count", func() {
		_, err := d.exec("step zero")

		Expect(err).To(HaveOccurred())
		Expect(s.emulator.InstructionCount()).To(BeZero())
	})

	It("should run to the program break", func() {
		_, err := d.exec("run")

		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("executed 3 instructions, pc=0x0000000C"))
	})

	It("should read memory", func() {
		_, err := d.exec("mem 0x4")

		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("[0x00000004] = 0x24210080"))
	})

	It("should report out-of-range memory reads", func() {
		_, err := d.exec("mem 0x3FFFC")

		Expect(err).To(MatchError(emu.ErrAddressOutOfRange))
	})

	It("should show the accumulator and pc", func() {
		s.emulator.RegFile().SetAcc(0x1_00000002)

		_, err := d.exec("acc")
		Expect(err).NotTo(HaveOccurred())
		_, err = d.exec("pc")
		Expect(err).NotTo(HaveOccurred())

		Expect(out.String()).To(ContainSubstring("hi=0x00000001 lo=0x00000002"))
		Expect(out.String()).To(ContainSubstring("pc=0x00000000 pb=3"))
	})

	It("should reset to the entry point", func() {
		_, _ = d.exec("step 2")

		_, err := d.exec("reset")

		Expect(err).NotTo(HaveOccurred())
		Expect(s.emulator.PC()).To(BeZero())
		Expect(s.emulator.ReadRegister(1)).To(BeZero())
		Expect(s.emulator.InstructionCount()).To(BeZero())
	})

	It("should show registers", func() {
		_, _ = d.exec("step 2")

		_, err := d.exec("regs")

		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("r1 = 0x0000002A"))
	})

	It("should ignore blank lines and reject unknown commands", func() {
		quit, err := d.exec("   ")
		Expect(quit).To(BeFalse())
		Expect(err).NotTo(HaveOccurred())

		_, err = d.exec("frobnicate")
		Expect(err).To(MatchError(ContainSubstring(`unknown command "frobnicate"`)))
	})

	It("should quit", func() {
		quit, err := d.exec("quit")

		Expect(quit).To(BeTrue())
		Expect(err).NotTo(HaveOccurred())
	})

	It("should print help", func() {
		_, err := d.exec("help")

		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("step [n]"))
	})
})
