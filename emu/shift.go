// Package emu provides functional emulation of the reduced MIPS-like
// instruction set.
package emu

import "math/bits"

// shiftMask keeps the low five bits of a variable shift amount.
const shiftMask = 0x1F

// SLL shifts Rs left logically by a fixed amount.
func (a *ALU) SLL(rd, rs, shamt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)<<(shamt&shiftMask))
}

// SLLV shifts Rs left logically by the low five bits of Rt.
func (a *ALU) SLLV(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)<<(a.regFile.ReadReg(rt)&shiftMask))
}

// SRL shifts Rs right logically by a fixed amount.
func (a *ALU) SRL(rd, rs, shamt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)>>(shamt&shiftMask))
}

// SRLV shifts Rs right logically by the low five bits of Rt.
func (a *ALU) SRLV(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)>>(a.regFile.ReadReg(rt)&shiftMask))
}

// SRA shifts Rs right arithmetically by a fixed amount.
func (a *ALU) SRA(rd, rs, shamt uint8) {
	a.regFile.WriteReg(rd, uint32(int32(a.regFile.ReadReg(rs))>>(shamt&shiftMask)))
}

// SRAV shifts Rs right arithmetically by the low five bits of Rt.
func (a *ALU) SRAV(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, uint32(int32(a.regFile.ReadReg(rs))>>(a.regFile.ReadReg(rt)&shiftMask)))
}

// ROTR rotates Rs right by a fixed amount.
func (a *ALU) ROTR(rd, rs, shamt uint8) {
	a.regFile.WriteReg(rd, rotateRight32(a.regFile.ReadReg(rs), uint32(shamt)))
}

// ROTRV rotates Rs right by the low five bits of Rt.
func (a *ALU) ROTRV(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, rotateRight32(a.regFile.ReadReg(rs), a.regFile.ReadReg(rt)))
}

// rotateRight32 computes (value << (32 - amount)) | (value >> amount).
// An amount of zero returns value unchanged.
func rotateRight32(value uint32, amount uint32) uint32 {
	amount &= shiftMask
	if amount == 0 {
		return value
	}
	return bits.RotateLeft32(value, -int(amount))
}
