// Package insts provides instruction encoding constants and decoding for the
// reduced MIPS-like instruction set.
package insts

// Form represents an instruction encoding form.
type Form uint8

// Instruction forms.
const (
	FormInvalid   Form = iota
	FormRegister       // opcode 0, selected by function code
	FormJump           // opcodes 1-7, 26-bit target
	FormImmediate      // opcodes 8-43, 16-bit immediate
)

// String returns the name of the form.
func (f Form) String() string {
	switch f {
	case FormRegister:
		return "register"
	case FormJump:
		return "jump"
	case FormImmediate:
		return "immediate"
	default:
		return "invalid"
	}
}

// Opcode ranges of the primary 6-bit opcode field.
const (
	OpcodeRegister  uint8 = 0
	OpcodeJumpFirst uint8 = 1
	OpcodeJumpLast  uint8 = 7
	OpcodeImmFirst  uint8 = 8
	OpcodeImmLast   uint8 = 43
)

// Bit positions and widths of the instruction fields.
const (
	OpcodeShift    = 26
	FieldAShift    = 21
	FieldBShift    = 16
	FieldCShift    = 11
	FieldDShift    = 6
	ImmediateShift = 6

	FieldMask     uint32 = 0x1F
	FunctMask     uint32 = 0x3F
	ImmediateMask uint32 = 0xFFFF
	TargetMask    uint32 = 0x3FFFFFF
)

// RegisterCount is the number of general-purpose registers.
const RegisterCount = 32

// LinkRegister receives the return address of JAL.
const LinkRegister uint8 = 31

// InstructionBytes is the size of one instruction word in bytes.
const InstructionBytes uint32 = 4

// Register-form function codes (bits 5-0 when the opcode is 0).
const (
	FunctSLL   uint8 = 0x00
	FunctMOV   uint8 = 0x01
	FunctSRL   uint8 = 0x02
	FunctSRA   uint8 = 0x03
	FunctSLLV  uint8 = 0x04
	FunctNOT   uint8 = 0x05
	FunctSRLV  uint8 = 0x06
	FunctSRAV  uint8 = 0x07
	FunctROTR  uint8 = 0x08
	FunctROTRV uint8 = 0x09
	FunctMOVZ  uint8 = 0x0A
	FunctMOVN  uint8 = 0x0B
	FunctNEGU  uint8 = 0x0C
	FunctSEB   uint8 = 0x0D
	FunctSEH   uint8 = 0x0E
	FunctWSBH  uint8 = 0x0F
	FunctMFHI  uint8 = 0x10
	FunctMTHI  uint8 = 0x11
	FunctMFLO  uint8 = 0x12
	FunctMTLO  uint8 = 0x13
	FunctCLO   uint8 = 0x14
	FunctCLZ   uint8 = 0x15
	FunctEXT   uint8 = 0x16
	FunctINS   uint8 = 0x17
	FunctMUL   uint8 = 0x18
	FunctDIV   uint8 = 0x1A
	FunctDIVU  uint8 = 0x1B
	FunctMADD  uint8 = 0x1C
	FunctMADDU uint8 = 0x1D
	FunctMSUB  uint8 = 0x1E
	FunctMSUBU uint8 = 0x1F
	FunctADD   uint8 = 0x20
	FunctADDU  uint8 = 0x21
	FunctSUB   uint8 = 0x22
	FunctSUBU  uint8 = 0x23
	FunctAND   uint8 = 0x24
	FunctOR    uint8 = 0x25
	FunctXOR   uint8 = 0x26
	FunctNOR   uint8 = 0x27
	FunctSLT   uint8 = 0x2A
	FunctSLTU  uint8 = 0x2B
)

// Jump-form opcodes.
const (
	OpcodeJ   uint8 = 0x02
	OpcodeJAL uint8 = 0x03
)

// Immediate-form opcodes.
const (
	OpcodeADDI  uint8 = 0x08
	OpcodeADDIU uint8 = 0x09
	OpcodeSLTI  uint8 = 0x0A
	OpcodeSLTIU uint8 = 0x0B
	OpcodeANDI  uint8 = 0x0C
	OpcodeORI   uint8 = 0x0D
	OpcodeXORI  uint8 = 0x0E
	OpcodeLUI   uint8 = 0x0F
)

// Instruction represents a decoded instruction word.
//
// All register fields are extracted for every word regardless of form; the
// handler chosen by the engine decides which of them it consults.
type Instruction struct {
	Word   uint32 // Raw instruction word
	Opcode uint8  // Bits 31-26
	Form   Form   // Encoding form derived from Opcode

	// Register-form fields
	Funct uint8 // Bits 5-0
	A     uint8 // Bits 25-21
	B     uint8 // Bits 20-16
	C     uint8 // Bits 15-11
	D     uint8 // Bits 10-6

	// Immediate-form field
	Imm uint16 // Bits 21-6, overlapping B and the low bit of A

	// Jump-form field
	Target uint32 // Bits 25-0
}

// Key returns the dispatch-table key for the instruction: the function code
// for register-form words and the primary opcode otherwise.
func (i *Instruction) Key() uint8 {
	if i.Form == FormRegister {
		return i.Funct
	}
	return i.Opcode
}

// Decoder decodes instruction words into their bit fields.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode splits a 32-bit instruction word into its fields.
func (d *Decoder) Decode(word uint32) *Instruction {
	opcode := uint8(word >> OpcodeShift)

	inst := &Instruction{
		Word:   word,
		Opcode: opcode,
		Form:   d.classify(opcode),
		A:      uint8((word >> FieldAShift) & FieldMask),
		B:      uint8((word >> FieldBShift) & FieldMask),
		C:      uint8((word >> FieldCShift) & FieldMask),
		D:      uint8((word >> FieldDShift) & FieldMask),
	}

	switch inst.Form {
	case FormRegister:
		inst.Funct = uint8(word & FunctMask)
	case FormJump:
		inst.Target = word & TargetMask
	case FormImmediate:
		inst.Imm = uint16((word >> ImmediateShift) & ImmediateMask)
	}

	return inst
}

// classify maps a primary opcode onto its encoding form.
func (d *Decoder) classify(opcode uint8) Form {
	switch {
	case opcode == OpcodeRegister:
		return FormRegister
	case opcode >= OpcodeJumpFirst && opcode <= OpcodeJumpLast:
		return FormJump
	case opcode >= OpcodeImmFirst && opcode <= OpcodeImmLast:
		return FormImmediate
	default:
		return FormInvalid
	}
}

// EncodeRegister packs a register-form instruction word.
func EncodeRegister(funct, a, b, c, d uint8) uint32 {
	return uint32(OpcodeRegister)<<OpcodeShift |
		(uint32(a)&FieldMask)<<FieldAShift |
		(uint32(b)&FieldMask)<<FieldBShift |
		(uint32(c)&FieldMask)<<FieldCShift |
		(uint32(d)&FieldMask)<<FieldDShift |
		uint32(funct)&FunctMask
}

// EncodeImmediate packs an immediate-form instruction word. The immediate
// occupies bits 21-6 and is written last, so it always decodes back intact.
// A and B keep their values only while the immediate fits in 10 bits.
func EncodeImmediate(opcode, a, b uint8, imm uint16) uint32 {
	word := (uint32(opcode)&FunctMask)<<OpcodeShift |
		(uint32(a)&FieldMask)<<FieldAShift |
		(uint32(b)&FieldMask)<<FieldBShift
	word &^= ImmediateMask << ImmediateShift
	return word | (uint32(imm)&ImmediateMask)<<ImmediateShift
}

// EncodeJump packs a jump-form instruction word.
func EncodeJump(opcode uint8, target uint32) uint32 {
	return (uint32(opcode)&FunctMask)<<OpcodeShift | target&TargetMask
}
