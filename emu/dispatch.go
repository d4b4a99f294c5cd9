// Package emu provides functional emulation of the reduced MIPS-like
// instruction set.
package emu

import "github.com/sarchlab/mipsim/insts"

// RegisterHandler executes a register-form instruction. It receives the four
// 5-bit fields in encoding order: bits 25-21, 20-16, 15-11 and 10-6.
type RegisterHandler func(a, b, c, d uint8)

// ImmediateHandler executes an immediate-form instruction with the fields at
// bits 25-21 and 20-16 and the 16-bit immediate.
type ImmediateHandler func(a, b uint8, imm uint16)

// JumpHandler executes a jump-form instruction with its 26-bit target.
type JumpHandler func(target uint32)

type registerEntry struct {
	name string
	exec RegisterHandler
}

type immediateEntry struct {
	name string
	exec ImmediateHandler
}

type jumpEntry struct {
	name string
	exec JumpHandler
}

// dispatchTables maps opcode and function-code keys to their handlers. The
// tables are filled once by newDispatchTables and only read afterwards.
type dispatchTables struct {
	register  map[uint8]registerEntry
	immediate map[uint8]immediateEntry
	jump      map[uint8]jumpEntry
}

// newDispatchTables binds every implemented instruction to its execution
// unit. In register form, field A is the destination, B the first source,
// C the second source and D the shift amount.
func newDispatchTables(alu *ALU, mdu *MultiplyDivideUnit, branch *BranchUnit) *dispatchTables {
	rrr := func(op func(rd, rs, rt uint8)) RegisterHandler {
		return func(a, b, c, _ uint8) { op(a, b, c) }
	}
	rr := func(op func(rd, rs uint8)) RegisterHandler {
		return func(a, b, _, _ uint8) { op(a, b) }
	}
	shift := func(op func(rd, rs, shamt uint8)) RegisterHandler {
		return func(a, b, _, d uint8) { op(a, b, d) }
	}
	acc := func(op func(rs, rt uint8)) RegisterHandler {
		return func(_, b, c, _ uint8) { op(b, c) }
	}

	t := &dispatchTables{
		register: map[uint8]registerEntry{
			insts.FunctSLL:   {"sll", shift(alu.SLL)},
			insts.FunctMOV:   {"mov", rr(alu.MOV)},
			insts.FunctSRL:   {"srl", shift(alu.SRL)},
			insts.FunctSRA:   {"sra", shift(alu.SRA)},
			insts.FunctSLLV:  {"sllv", rrr(alu.SLLV)},
			insts.FunctNOT:   {"not", rr(alu.NOT)},
			insts.FunctSRLV:  {"srlv", rrr(alu.SRLV)},
			insts.FunctSRAV:  {"srav", rrr(alu.SRAV)},
			insts.FunctROTR:  {"rotr", shift(alu.ROTR)},
			insts.FunctROTRV: {"rotrv", rrr(alu.ROTRV)},
			insts.FunctMOVZ:  {"movz", rrr(alu.MOVZ)},
			insts.FunctMOVN:  {"movn", rrr(alu.MOVN)},
			insts.FunctNEGU:  {"negu", rr(alu.NEGU)},
			insts.FunctSEB:   {"seb", rr(alu.SEB)},
			insts.FunctSEH:   {"seh", rr(alu.SEH)},
			insts.FunctWSBH:  {"wsbh", rr(alu.WSBH)},
			insts.FunctMFHI:  {"mfhi", func(a, _, _, _ uint8) { alu.MFHI(a) }},
			insts.FunctMTHI:  {"mthi", func(_, b, _, _ uint8) { alu.MTHI(b) }},
			insts.FunctMFLO:  {"mflo", func(a, _, _, _ uint8) { alu.MFLO(a) }},
			insts.FunctMTLO:  {"mtlo", func(_, b, _, _ uint8) { alu.MTLO(b) }},
			insts.FunctCLO:   {"clo", rr(alu.CLO)},
			insts.FunctCLZ:   {"clz", rr(alu.CLZ)},
			insts.FunctEXT:   {"ext", alu.EXT},
			insts.FunctINS:   {"ins", alu.INS},
			insts.FunctMUL:   {"mul", rrr(alu.MUL)},
			insts.FunctDIV:   {"div", acc(mdu.DIV)},
			insts.FunctDIVU:  {"divu", acc(mdu.DIVU)},
			insts.FunctMADD:  {"madd", acc(mdu.MADD)},
			insts.FunctMADDU: {"maddu", acc(mdu.MADDU)},
			insts.FunctMSUB:  {"msub", acc(mdu.MSUB)},
			insts.FunctMSUBU: {"msubu", acc(mdu.MSUBU)},
			insts.FunctADD:   {"add", rrr(alu.ADD)},
			insts.FunctADDU:  {"addu", rrr(alu.ADDU)},
			insts.FunctSUB:   {"sub", rrr(alu.SUB)},
			insts.FunctSUBU:  {"subu", rrr(alu.SUBU)},
			insts.FunctAND:   {"and", rrr(alu.AND)},
			insts.FunctOR:    {"or", rrr(alu.OR)},
			insts.FunctXOR:   {"xor", rrr(alu.XOR)},
			insts.FunctNOR:   {"nor", rrr(alu.NOR)},
			insts.FunctSLT:   {"slt", rrr(alu.SLT)},
			insts.FunctSLTU:  {"sltu", rrr(alu.SLTU)},
		},
		immediate: map[uint8]immediateEntry{
			insts.OpcodeADDI:  {"addi", alu.ADDI},
			insts.OpcodeADDIU: {"addiu", alu.ADDIU},
			insts.OpcodeSLTI:  {"slti", alu.SLTI},
			insts.OpcodeSLTIU: {"sltiu", alu.SLTIU},
			insts.OpcodeANDI:  {"andi", alu.ANDI},
			insts.OpcodeORI:   {"ori", alu.ORI},
			insts.OpcodeXORI:  {"xori", alu.XORI},
			insts.OpcodeLUI:   {"lui", func(a, _ uint8, imm uint16) { alu.LUI(a, imm) }},
		},
		jump: map[uint8]jumpEntry{
			insts.OpcodeJ:   {"j", branch.J},
			insts.OpcodeJAL: {"jal", branch.JAL},
		},
	}

	return t
}

// lookupRegister returns the handler for a register-form function code.
func (t *dispatchTables) lookupRegister(funct uint8) (registerEntry, bool) {
	e, ok := t.register[funct]
	return e, ok
}

// lookupImmediate returns the handler for an immediate-form opcode.
func (t *dispatchTables) lookupImmediate(opcode uint8) (immediateEntry, bool) {
	e, ok := t.immediate[opcode]
	return e, ok
}

// lookupJump returns the handler for a jump-form opcode.
func (t *dispatchTables) lookupJump(opcode uint8) (jumpEntry, bool) {
	e, ok := t.jump[opcode]
	return e, ok
}
