// Package emu provides functional emulation of the reduced MIPS-like
// instruction set.
package emu

import "math/rand/v2"

// MultiplyDivideUnit implements the operations that target the 64-bit
// accumulator formed by AccHi:AccLo.
type MultiplyDivideUnit struct {
	regFile   *RegFile
	undefined *rand.Rand
}

// NewMultiplyDivideUnit creates a unit connected to the given register file.
// Results that the architecture leaves undefined are drawn from a PCG
// generator seeded with seed, so a run is reproducible for a given seed.
func NewMultiplyDivideUnit(regFile *RegFile, seed uint64) *MultiplyDivideUnit {
	return &MultiplyDivideUnit{
		regFile:   regFile,
		undefined: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// DIV stores the signed 64-bit quotient Rs / Rt in the accumulator.
// Division by zero leaves an unspecified value in both halves.
func (m *MultiplyDivideUnit) DIV(rs, rt uint8) {
	divisor := int64(int32(m.regFile.ReadReg(rt)))
	if divisor == 0 {
		m.fillUndefined()
		return
	}

	dividend := int64(int32(m.regFile.ReadReg(rs)))
	m.regFile.SetAcc(uint64(dividend / divisor))
}

// DIVU stores the unsigned 64-bit quotient Rs / Rt in the accumulator.
// Division by zero leaves an unspecified value in both halves.
func (m *MultiplyDivideUnit) DIVU(rs, rt uint8) {
	divisor := uint64(m.regFile.ReadReg(rt))
	if divisor == 0 {
		m.fillUndefined()
		return
	}

	m.regFile.SetAcc(uint64(m.regFile.ReadReg(rs)) / divisor)
}

// MADD adds the signed product Rs * Rt to the accumulator.
func (m *MultiplyDivideUnit) MADD(rs, rt uint8) {
	acc := int64(m.regFile.Acc())
	m.regFile.SetAcc(uint64(acc + m.signedProduct(rs, rt)))
}

// MADDU adds the unsigned product Rs * Rt to the accumulator.
func (m *MultiplyDivideUnit) MADDU(rs, rt uint8) {
	m.regFile.SetAcc(m.regFile.Acc() + m.unsignedProduct(rs, rt))
}

// MSUB subtracts the signed product Rs * Rt from the accumulator.
func (m *MultiplyDivideUnit) MSUB(rs, rt uint8) {
	acc := int64(m.regFile.Acc())
	m.regFile.SetAcc(uint64(acc - m.signedProduct(rs, rt)))
}

// MSUBU subtracts the unsigned product Rs * Rt from the accumulator.
func (m *MultiplyDivideUnit) MSUBU(rs, rt uint8) {
	m.regFile.SetAcc(m.regFile.Acc() - m.unsignedProduct(rs, rt))
}

func (m *MultiplyDivideUnit) signedProduct(rs, rt uint8) int64 {
	return int64(int32(m.regFile.ReadReg(rs))) * int64(int32(m.regFile.ReadReg(rt)))
}

func (m *MultiplyDivideUnit) unsignedProduct(rs, rt uint8) uint64 {
	return uint64(m.regFile.ReadReg(rs)) * uint64(m.regFile.ReadReg(rt))
}

func (m *MultiplyDivideUnit) fillUndefined() {
	m.regFile.AccHi = m.undefined.Uint32()
	m.regFile.AccLo = m.undefined.Uint32()
}
