// Package emu provides functional emulation of the reduced MIPS-like
// instruction set.
package emu

// ALU implements the arithmetic, logical, comparison and move operations.
// All arithmetic wraps modulo 2^32; no operation traps on overflow.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// signExtend16 widens a 16-bit immediate preserving its sign.
func signExtend16(imm uint16) uint32 {
	return uint32(int32(int16(imm)))
}

// ADD performs signed addition: Rd = Rs + Rt
func (a *ALU) ADD(rd, rs, rt uint8) {
	op1 := int32(a.regFile.ReadReg(rs))
	op2 := int32(a.regFile.ReadReg(rt))
	a.regFile.WriteReg(rd, uint32(op1+op2))
}

// ADDU performs unsigned addition: Rd = Rs + Rt
func (a *ALU) ADDU(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)+a.regFile.ReadReg(rt))
}

// ADDI adds a sign-extended immediate: Rd = Rs + sext(imm)
func (a *ALU) ADDI(rd, rs uint8, imm uint16) {
	op1 := int32(a.regFile.ReadReg(rs))
	a.regFile.WriteReg(rd, uint32(op1+int32(int16(imm))))
}

// ADDIU adds a zero-extended immediate: Rd = Rs + zext(imm)
func (a *ALU) ADDIU(rd, rs uint8, imm uint16) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)+uint32(imm))
}

// SUB performs signed subtraction: Rd = Rs - Rt
func (a *ALU) SUB(rd, rs, rt uint8) {
	op1 := int32(a.regFile.ReadReg(rs))
	op2 := int32(a.regFile.ReadReg(rt))
	a.regFile.WriteReg(rd, uint32(op1-op2))
}

// SUBU performs unsigned subtraction: Rd = Rs - Rt
func (a *ALU) SUBU(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)-a.regFile.ReadReg(rt))
}

// MUL multiplies the signed values of two registers keeping the low 32 bits.
func (a *ALU) MUL(rd, rs, rt uint8) {
	op1 := int32(a.regFile.ReadReg(rs))
	op2 := int32(a.regFile.ReadReg(rt))
	a.regFile.WriteReg(rd, uint32(op1*op2))
}

// AND performs bitwise AND: Rd = Rs & Rt
func (a *ALU) AND(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)&a.regFile.ReadReg(rt))
}

// ANDI performs bitwise AND with a zero-extended immediate.
func (a *ALU) ANDI(rd, rs uint8, imm uint16) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)&uint32(imm))
}

// OR performs bitwise OR: Rd = Rs | Rt
func (a *ALU) OR(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)|a.regFile.ReadReg(rt))
}

// ORI performs bitwise OR with a zero-extended immediate.
func (a *ALU) ORI(rd, rs uint8, imm uint16) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)|uint32(imm))
}

// XOR performs bitwise XOR: Rd = Rs ^ Rt
func (a *ALU) XOR(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)^a.regFile.ReadReg(rt))
}

// XORI performs bitwise XOR with a zero-extended immediate.
func (a *ALU) XORI(rd, rs uint8, imm uint16) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs)^uint32(imm))
}

// NOR performs bitwise NOR: Rd = ^(Rs | Rt)
func (a *ALU) NOR(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, ^(a.regFile.ReadReg(rs) | a.regFile.ReadReg(rt)))
}

// NOT performs bitwise complement: Rd = ^Rs
func (a *ALU) NOT(rd, rs uint8) {
	a.regFile.WriteReg(rd, ^a.regFile.ReadReg(rs))
}

// NEGU writes the one's complement of Rs. Despite the name it is not an
// arithmetic negation; programs rely on the bitwise result.
func (a *ALU) NEGU(rd, rs uint8) {
	a.regFile.WriteReg(rd, ^a.regFile.ReadReg(rs))
}

// MOV copies Rs into Rd.
func (a *ALU) MOV(rd, rs uint8) {
	a.regFile.WriteReg(rd, a.regFile.ReadReg(rs))
}

// MOVN copies Rs into Rd when Rt is nonzero.
func (a *ALU) MOVN(rd, rs, rt uint8) {
	if a.regFile.ReadReg(rt) != 0 {
		a.regFile.WriteReg(rd, a.regFile.ReadReg(rs))
	}
}

// MOVZ copies Rs into Rd when Rt is zero.
func (a *ALU) MOVZ(rd, rs, rt uint8) {
	if a.regFile.ReadReg(rt) == 0 {
		a.regFile.WriteReg(rd, a.regFile.ReadReg(rs))
	}
}

// LUI loads imm into the upper half of Rd and clears the lower half.
func (a *ALU) LUI(rd uint8, imm uint16) {
	a.regFile.WriteReg(rd, uint32(imm)<<16)
}

// SLT sets Rd to 1 if Rs < Rt as signed values, otherwise 0.
func (a *ALU) SLT(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, boolToWord(int32(a.regFile.ReadReg(rs)) < int32(a.regFile.ReadReg(rt))))
}

// SLTU sets Rd to 1 if Rs < Rt as unsigned values, otherwise 0.
func (a *ALU) SLTU(rd, rs, rt uint8) {
	a.regFile.WriteReg(rd, boolToWord(a.regFile.ReadReg(rs) < a.regFile.ReadReg(rt)))
}

// SLTI compares Rs against a sign-extended immediate as signed values.
func (a *ALU) SLTI(rd, rs uint8, imm uint16) {
	a.regFile.WriteReg(rd, boolToWord(int32(a.regFile.ReadReg(rs)) < int32(signExtend16(imm))))
}

// SLTIU compares Rs against a zero-extended immediate as unsigned values.
func (a *ALU) SLTIU(rd, rs uint8, imm uint16) {
	a.regFile.WriteReg(rd, boolToWord(a.regFile.ReadReg(rs) < uint32(imm)))
}

// MFHI copies the upper accumulator half into Rd.
func (a *ALU) MFHI(rd uint8) {
	a.regFile.WriteReg(rd, a.regFile.AccHi)
}

// MFLO copies the lower accumulator half into Rd.
func (a *ALU) MFLO(rd uint8) {
	a.regFile.WriteReg(rd, a.regFile.AccLo)
}

// MTHI copies Rs into the upper accumulator half.
func (a *ALU) MTHI(rs uint8) {
	a.regFile.AccHi = a.regFile.ReadReg(rs)
}

// MTLO copies Rs into the lower accumulator half.
func (a *ALU) MTLO(rs uint8) {
	a.regFile.AccLo = a.regFile.ReadReg(rs)
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
