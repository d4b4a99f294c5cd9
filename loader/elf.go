package loader

import (
	"debug/elf"
	"fmt"
	"io"
	"os"
)

// LoadELF opens and parses a 32-bit MIPS ELF executable. See ParseELF.
func LoadELF(path string) (*Program, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ParseELF(file)
}

// ParseELF parses a 32-bit MIPS ELF executable and returns its PT_LOAD
// segments as words. Segment addresses must be word aligned and fit on the
// bus.
func ParseELF(r io.ReaderAt) (*Program, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ELF file: %w", err)
	}

	// Validate ELF class (must be 32-bit)
	if f.Class != elf.ELFCLASS32 {
		return nil, fmt.Errorf("not a 32-bit ELF file")
	}

	// Validate machine type
	if f.Machine != elf.EM_MIPS {
		return nil, fmt.Errorf("not a MIPS ELF file (machine type: %v)", f.Machine)
	}

	if f.Entry%4 != 0 {
		return nil, fmt.Errorf("entry point 0x%X is not word aligned", f.Entry)
	}

	prog := &Program{
		Format:     FormatELF,
		EntryPoint: uint32(f.Entry),
	}

	for _, phdr := range f.Progs {
		if phdr.Type != elf.PT_LOAD {
			continue
		}

		if phdr.Vaddr%4 != 0 {
			return nil, fmt.Errorf("segment at 0x%x is not word aligned", phdr.Vaddr)
		}
		if phdr.Vaddr+phdr.Memsz > uint64(MaxWords)*4 {
			return nil, fmt.Errorf("segment at 0x%x with size %d does not fit on the bus", phdr.Vaddr, phdr.Memsz)
		}

		// Read segment data
		data := make([]byte, phdr.Filesz)
		if phdr.Filesz > 0 {
			n, err := phdr.ReadAt(data, 0)
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("failed to read segment at 0x%x: %w", phdr.Vaddr, err)
			}
			if uint64(n) != phdr.Filesz {
				return nil, fmt.Errorf("short read for segment at 0x%x: got %d bytes, expected %d",
					phdr.Vaddr, n, phdr.Filesz)
			}
		}

		// Zero-fill BSS (memsize > filesize) and pad to a whole word
		size := max(phdr.Memsz, phdr.Filesz)
		padded := make([]byte, (size+3)/4*4)
		copy(padded, data)

		words := make([]uint32, len(padded)/4)
		for i := range words {
			words[i] = f.ByteOrder.Uint32(padded[i*4:])
		}

		prog.Segments = append(prog.Segments, Segment{
			Addr:  uint32(phdr.Vaddr),
			Words: words,
		})
	}

	return prog, nil
}
