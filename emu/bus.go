// Package emu provides functional emulation of the reduced MIPS-like
// instruction set.
package emu

import "fmt"

// BusCapacity is the number of 32-bit words the bus can hold.
const BusCapacity = 0xFFFF

// MaxAddress is the highest valid byte address on the bus. Any address at or
// above MaxAddress+4 (0x3FFFC) falls outside the store.
const MaxAddress uint32 = (BusCapacity - 1) * 4

// Bus is a flat word-addressed memory. Addresses are byte offsets; the word
// at address a lives at index a/4 and the low two bits are ignored.
type Bus struct {
	words []uint32
}

// NewBus creates a zeroed bus with BusCapacity words.
func NewBus() *Bus {
	return &Bus{words: make([]uint32, BusCapacity)}
}

// Capacity returns the number of words the bus holds.
func (b *Bus) Capacity() int {
	return len(b.words)
}

// Read returns the word stored at addr, or zero if it was never written.
func (b *Bus) Read(addr uint32) (uint32, error) {
	idx, err := b.index(addr)
	if err != nil {
		return 0, err
	}
	return b.words[idx], nil
}

// Write stores value at addr.
func (b *Bus) Write(addr uint32, value uint32) error {
	idx, err := b.index(addr)
	if err != nil {
		return err
	}
	b.words[idx] = value
	return nil
}

// LoadWords writes words to consecutive word addresses starting at base.
// Nothing is written if the block does not fit.
func (b *Bus) LoadWords(base uint32, words []uint32) error {
	if len(words) == 0 {
		return nil
	}

	last := uint64(base) + uint64(len(words)-1)*4
	if last > uint64(MaxAddress) {
		return fmt.Errorf("%w: block of %d words at 0x%X", ErrAddressOutOfRange, len(words), base)
	}

	start := int(base / 4)
	copy(b.words[start:], words)
	return nil
}

// Reset zeroes every word.
func (b *Bus) Reset() {
	clear(b.words)
}

func (b *Bus) index(addr uint32) (int, error) {
	idx := addr / 4
	if idx >= uint32(len(b.words)) {
		return 0, fmt.Errorf("%w: 0x%X", ErrAddressOutOfRange, addr)
	}
	return int(idx), nil
}
