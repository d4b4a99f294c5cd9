// Package loader reads program images and places them on the emulator bus.
//
// Three image formats are understood:
//   - ELF32 executables for the MIPS machine type, loaded by PT_LOAD segment.
//   - Raw binary images: consecutive big-endian 32-bit words loaded at 0.
//   - Hex text images: one 32-bit hexadecimal word per line loaded at 0.
package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarchlab/mipsim/emu"
)

// MaxWords is the largest image, in words, that fits on the bus.
const MaxWords = emu.BusCapacity

// Format identifies the encoding of a program image.
type Format uint8

// Image formats.
const (
	FormatBinary Format = iota
	FormatHex
	FormatELF
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatHex:
		return "hex"
	case FormatELF:
		return "elf"
	default:
		return "binary"
	}
}

// Segment is a run of words destined for consecutive bus addresses.
type Segment struct {
	// Addr is the byte address of the first word. It is word aligned.
	Addr uint32
	// Words holds the segment contents, zero-filled past the file data.
	Words []uint32
}

// End returns the byte address just past the segment.
func (s Segment) End() uint32 {
	return s.Addr + uint32(len(s.Words))*4
}

// Program represents a loaded image ready for execution.
type Program struct {
	// Format is the image format the program was read from.
	Format Format
	// EntryPoint is the byte address where execution should begin.
	EntryPoint uint32
	// Segments contains all words to place on the bus.
	Segments []Segment
}

// Size returns the program size in words, measured from address 0 to the
// end of the highest segment. It is used as the program break.
func (p *Program) Size() uint32 {
	var end uint32
	for _, seg := range p.Segments {
		end = max(end, seg.End())
	}
	return end / 4
}

// WordLoader is implemented by stores that accept blocks of words.
type WordLoader interface {
	LoadWords(base uint32, words []uint32) error
}

// LoadInto writes every segment to dst.
func (p *Program) LoadInto(dst WordLoader) error {
	for _, seg := range p.Segments {
		if err := dst.LoadWords(seg.Addr, seg.Words); err != nil {
			return fmt.Errorf("failed to load segment at 0x%X: %w", seg.Addr, err)
		}
	}
	return nil
}

// Load reads a program image from path. ELF files are recognised by their
// magic number; otherwise a .hex or .txt extension selects the hex format
// and anything else is treated as a raw binary image.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program image: %w", err)
	}

	switch {
	case bytes.HasPrefix(data, []byte("\x7fELF")):
		return ParseELF(bytes.NewReader(data))
	case isHexPath(path):
		return ParseHex(bytes.NewReader(data))
	default:
		return ParseBinary(bytes.NewReader(data))
	}
}

func isHexPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".txt":
		return true
	default:
		return false
	}
}

// flatProgram wraps words loaded at address 0.
func flatProgram(format Format, words []uint32) (*Program, error) {
	if len(words) > MaxWords {
		return nil, fmt.Errorf("program of %d words exceeds bus capacity of %d words", len(words), MaxWords)
	}

	prog := &Program{Format: format}
	if len(words) > 0 {
		prog.Segments = []Segment{{Addr: 0, Words: words}}
	}
	return prog, nil
}
