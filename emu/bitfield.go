// Package emu provides functional emulation of the reduced MIPS-like
// instruction set.
package emu

import "math/bits"

// fieldMask returns a mask of the low size bits. Sizes of 32 or more yield
// all ones.
func fieldMask(size uint8) uint32 {
	if size >= 32 {
		return 0xFFFFFFFF
	}
	return uint32(1)<<size - 1
}

// EXT extracts size bits of Rs starting at bit pos into Rd. The field stays
// at its original position; bits outside it are cleared.
func (a *ALU) EXT(rd, rs, size, pos uint8) {
	mask := fieldMask(size) << (pos & shiftMask)
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)&mask)
}

// INS ORs the low size bits of Rs into Rd at bit pos. Existing Rd bits are
// kept, so overlapping ones merge rather than being replaced.
func (a *ALU) INS(rd, rs, size, pos uint8) {
	field := (a.regFile.ReadReg(rs) & fieldMask(size)) << (pos & shiftMask)
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rd)|field)
}

// SEB keeps the low byte of Rs and clears the rest. No sign extension is
// performed.
func (a *ALU) SEB(rd, rs uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)&0xFF)
}

// SEH keeps the low half-word of Rs and clears the rest. No sign extension
// is performed.
func (a *ALU) SEH(rd, rs uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)&0xFFFF)
}

// WSBH swaps the two bytes inside each half-word of Rs.
func (a *ALU) WSBH(rd, rs uint8) {
	v := a.regFile.ReadReg(rs)
	a.regFile.WriteReg(rd, (v&0x00FF00FF)<<8|(v&0xFF00FF00)>>8)
}

// CLO counts the bits of Rs that are set, across all 32 positions.
func (a *ALU) CLO(rd, rs uint8) {
	a.regFile.WriteReg(rd, uint32(bits.OnesCount32(a.regFile.ReadReg(rs))))
}

// CLZ counts the bits of Rs that are clear, across all 32 positions.
func (a *ALU) CLZ(rd, rs uint8) {
	a.regFile.WriteReg(rd, uint32(32-bits.OnesCount32(a.regFile.ReadReg(rs))))
}
