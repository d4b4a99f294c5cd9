package loader

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseBinary reads consecutive big-endian 32-bit words.
func ParseBinary(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read binary image: %w", err)
	}

	if len(data)%4 != 0 {
		return nil, fmt.Errorf("binary image size %d is not a multiple of 4", len(data))
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(data[i*4:])
	}

	return flatProgram(FormatBinary, words)
}

// ParseHex reads one hexadecimal word per line. Blank lines and text after
// '#' or ';' are ignored, and an optional 0x prefix is accepted.
func ParseHex(r io.Reader) (*Program, error) {
	var words []uint32

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if i := strings.IndexAny(line, "#;"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		line = strings.TrimPrefix(strings.TrimPrefix(line, "0x"), "0X")
		line = strings.ReplaceAll(line, "_", "")

		word, err := strconv.ParseUint(line, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid word %q: %w", lineNo, line, err)
		}
		words = append(words, uint32(word))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hex image: %w", err)
	}

	return flatProgram(FormatHex, words)
}
