// Package emu provides functional emulation of the reduced MIPS-like
// instruction set.
package emu

import "github.com/sarchlab/mipsim/insts"

// regionMask selects the 256MB region of the instruction after a jump.
const regionMask uint32 = 0xF0000000

// BranchUnit implements the jump-form instructions. Jump handlers own the
// program counter: the engine does not advance PC after they run.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// J jumps to the word address target within the current region.
func (b *BranchUnit) J(target uint32) {
	b.regFile.PC = b.jumpTarget(target)
}

// JAL saves the return address (PC + 4) to the link register, then jumps.
func (b *BranchUnit) JAL(target uint32) {
	b.regFile.WriteReg(insts.LinkRegister, b.regFile.PC+insts.InstructionBytes)
	b.regFile.PC = b.jumpTarget(target)
}

// jumpTarget combines the region bits of the next PC with the shifted
// 26-bit target field.
func (b *BranchUnit) jumpTarget(target uint32) uint32 {
	next := b.regFile.PC + insts.InstructionBytes
	return next&regionMask | (target&insts.TargetMask)<<2
}
