// Package emu provides functional emulation of the reduced MIPS-like
// instruction set.
package emu

// RegFile represents the architectural state mutated by instructions.
// It contains 32 general-purpose registers, the program counter, the program
// break and the hi/lo accumulator pair.
type RegFile struct {
	// R holds general-purpose registers R0-R31. Unlike MIPS, R0 is an
	// ordinary register and accepts writes.
	R [32]uint32

	// PC is the byte address of the next instruction.
	PC uint32

	// PB is the program break: the loaded program size in words.
	PB uint32

	// AccHi and AccLo are the upper and lower halves of the 64-bit
	// accumulator used by the multiply/divide family.
	AccHi uint32
	AccLo uint32
}

// ReadReg reads a register value. Only the low five bits of reg are used.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	return r.R[reg&0x1F]
}

// WriteReg writes a value to a register. Only the low five bits of reg are
// used.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	r.R[reg&0x1F] = value
}

// Acc returns the accumulator pair as one 64-bit value.
func (r *RegFile) Acc() uint64 {
	return uint64(r.AccHi)<<32 | uint64(r.AccLo)
}

// SetAcc splits a 64-bit value across AccHi and AccLo.
func (r *RegFile) SetAcc(value uint64) {
	r.AccHi = uint32(value >> 32)
	r.AccLo = uint32(value)
}
