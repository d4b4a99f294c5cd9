// Package emu provides functional emulation of the reduced MIPS-like
// instruction set.
package emu

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/mipsim/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// PC is the address the instruction was fetched from.
	PC uint32

	// Word is the fetched instruction word.
	Word uint32

	// Mnemonic names the handler that ran, or is empty if none did.
	Mnemonic string

	// Err is set if the instruction could not be executed. Invalid opcodes
	// wrap ErrInvalidOpcode and are not fatal; see Fatal.
	Err error
}

// Fatal reports whether the step failed in a way that should stop a run.
// An unknown opcode is reported but execution may continue.
func (r StepResult) Fatal() bool {
	return r.Err != nil && !errors.Is(r.Err, ErrInvalidOpcode)
}

// Emulator fetches, decodes and executes instructions one at a time.
type Emulator struct {
	regFile *RegFile
	bus     *Bus
	decoder *insts.Decoder
	tables  *dispatchTables
	logger  logrus.FieldLogger

	// Execution units
	alu        *ALU
	mdu        *MultiplyDivideUnit
	branchUnit *BranchUnit

	// Execution state
	undefinedSeed    uint64
	instructionCount uint64
	invalidCount     uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithLogger sets the logger used to report invalid opcodes.
func WithLogger(logger logrus.FieldLogger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithUndefinedSeed seeds the generator that produces architecturally
// undefined results, such as the accumulator after a division by zero.
func WithUndefinedSeed(seed uint64) EmulatorOption {
	return func(e *Emulator) {
		e.undefinedSeed = seed
	}
}

// WithBus makes the emulator fetch from an existing bus instead of a fresh
// one.
func WithBus(bus *Bus) EmulatorOption {
	return func(e *Emulator) {
		e.bus = bus
	}
}

// NewEmulator creates an emulator for a program of programSize words. The
// registers, accumulators and PC start at zero.
func NewEmulator(programSize uint32, opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile: &RegFile{PB: programSize},
		decoder: insts.NewDecoder(),
		logger:  logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.bus == nil {
		e.bus = NewBus()
	}

	e.buildUnits()

	return e
}

// buildUnits creates the execution units and binds them into the dispatch
// tables.
func (e *Emulator) buildUnits() {
	e.alu = NewALU(e.regFile)
	e.mdu = NewMultiplyDivideUnit(e.regFile, e.undefinedSeed)
	e.branchUnit = NewBranchUnit(e.regFile)
	e.tables = newDispatchTables(e.alu, e.mdu, e.branchUnit)
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Bus returns the emulator's memory bus.
func (e *Emulator) Bus() *Bus {
	return e.bus
}

// ReadRegister returns the value of general-purpose register i.
func (e *Emulator) ReadRegister(i uint8) uint32 {
	return e.regFile.ReadReg(i)
}

// WriteRegister sets general-purpose register i.
func (e *Emulator) WriteRegister(i uint8, value uint32) {
	e.regFile.WriteReg(i, value)
}

// PC returns the program counter.
func (e *Emulator) PC() uint32 {
	return e.regFile.PC
}

// ProgramBreak returns the program size in words recorded at construction.
func (e *Emulator) ProgramBreak() uint32 {
	return e.regFile.PB
}

// InstructionCount returns the number of steps executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// InvalidCount returns how many steps reported an invalid opcode.
func (e *Emulator) InvalidCount() uint64 {
	return e.invalidCount
}

// LoadProgram writes words to the bus starting at address 0, sets the
// program break to len(words) and rewinds the PC.
func (e *Emulator) LoadProgram(words []uint32) error {
	if err := e.bus.LoadWords(0, words); err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}
	e.regFile.PB = uint32(len(words))
	e.regFile.PC = 0
	return nil
}

// Reset clears registers, accumulators, PC and counters. The bus contents
// and program break are kept so the loaded program can run again.
func (e *Emulator) Reset() {
	*e.regFile = RegFile{PB: e.regFile.PB}
	e.instructionCount = 0
	e.invalidCount = 0
	e.buildUnits()
}

// Step executes a single instruction: fetch at PC, decode, dispatch and
// advance PC by one word. Jump handlers set PC themselves and are not
// followed by the advance.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{PC: e.regFile.PC, Err: ErrMaxInstructions}
	}

	pc := e.regFile.PC

	// 1. Fetch
	word, err := e.bus.Read(pc)
	if err != nil {
		return StepResult{PC: pc, Err: fmt.Errorf("fetch at PC=0x%X: %w", pc, err)}
	}

	// 2. Decode
	inst := e.decoder.Decode(word)

	// 3. Execute
	result := e.execute(inst)
	result.PC = pc
	result.Word = word

	e.instructionCount++

	return result
}

// execute dispatches a decoded instruction to its handler.
func (e *Emulator) execute(inst *insts.Instruction) StepResult {
	var result StepResult

	switch inst.Form {
	case insts.FormRegister:
		if entry, ok := e.tables.lookupRegister(inst.Funct); ok {
			entry.exec(inst.A, inst.B, inst.C, inst.D)
			result.Mnemonic = entry.name
		} else {
			result.Err = e.reportInvalid(inst)
		}
	case insts.FormImmediate:
		if entry, ok := e.tables.lookupImmediate(inst.Opcode); ok {
			entry.exec(inst.A, inst.B, inst.Imm)
			result.Mnemonic = entry.name
		} else {
			result.Err = e.reportInvalid(inst)
		}
	case insts.FormJump:
		if entry, ok := e.tables.lookupJump(inst.Opcode); ok {
			entry.exec(inst.Target)
			result.Mnemonic = entry.name
			return result // PC already updated by jump
		}
		result.Err = e.reportInvalid(inst)
	default:
		result.Err = e.reportInvalid(inst)
	}

	// Advance PC by 4 (for non-jump instructions)
	e.regFile.PC += insts.InstructionBytes

	return result
}

// reportInvalid logs an instruction without a handler and returns the
// matching non-fatal error.
func (e *Emulator) reportInvalid(inst *insts.Instruction) error {
	e.invalidCount++

	fields := logrus.Fields{
		"pc":     fmt.Sprintf("0x%08X", e.regFile.PC),
		"word":   fmt.Sprintf("0x%08X", inst.Word),
		"opcode": inst.Opcode,
		"form":   inst.Form.String(),
	}
	if inst.Form == insts.FormRegister {
		fields["funct"] = inst.Funct
	}
	e.logger.WithFields(fields).Warn("invalid opcode")

	return fmt.Errorf("%w: key %d (%s form) at PC=0x%X",
		ErrInvalidOpcode, inst.Key(), inst.Form, e.regFile.PC)
}

// Run executes instructions until the PC passes the program break, the
// instruction limit is reached or a fatal error occurs. Invalid opcodes are
// reported by Step and skipped.
func (e *Emulator) Run() error {
	for uint64(e.regFile.PC) < e.programEnd() {
		result := e.Step()
		if result.Fatal() {
			return result.Err
		}
	}
	return nil
}

// programEnd returns the first byte address past the program. It is
// computed in 64 bits so large program breaks do not wrap.
func (e *Emulator) programEnd() uint64 {
	return uint64(e.regFile.PB) * uint64(insts.InstructionBytes)
}
