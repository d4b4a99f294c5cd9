// Package emu provides functional emulation of the reduced MIPS-like
// instruction set.
package emu

import "errors"

var (
	// ErrInvalidOpcode is reported when an opcode or function code has no
	// handler. It never stops execution.
	ErrInvalidOpcode = errors.New("invalid opcode")

	// ErrAddressOutOfRange is returned for bus accesses at or above 0x3FFFC.
	// It indicates a loader or program bug and is fatal to a run.
	ErrAddressOutOfRange = errors.New("address out of range")

	// ErrMaxInstructions is returned once the configured instruction limit
	// has been reached.
	ErrMaxInstructions = errors.New("max instructions reached")
)
