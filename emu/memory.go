package emu

import (
	"errors"
	"fmt"
)

// Memory layout.
const (
	// MemorySize is the size of the CHIP-8 address space in bytes.
	MemorySize = 4096

	// ProgramStart is where program images are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest image that fits above ProgramStart.
	MaxProgramSize = MemorySize - ProgramStart

	// FontStart is the address of the built-in hex font.
	FontStart = 0x000

	// GlyphSize is the number of bytes (rows) per font glyph.
	GlyphSize = 5
)

// ErrAddressOutOfRange is returned for accesses past the end of memory.
var ErrAddressOutOfRange = errors.New("address out of range")

// font holds the 4x5 glyphs for hex digits 0-F.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the 4 KiB CHIP-8 address space.
type Memory struct {
	data [MemorySize]byte

	// onWrite, if set, observes every successful write.
	onWrite func(addr uint16)
}

// NewMemory creates a zeroed memory with the font installed at FontStart.
func NewMemory() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes memory and reinstalls the font. The write observer sees
// every address.
func (m *Memory) Reset() {
	m.data = [MemorySize]byte{}
	copy(m.data[FontStart:], font[:])

	if m.onWrite != nil {
		for addr := 0; addr < MemorySize; addr++ {
			m.onWrite(uint16(addr))
		}
	}
}

// GlyphAddr returns the address of the font glyph for the low nibble of digit.
func GlyphAddr(digit uint8) uint16 {
	return FontStart + uint16(digit&0xF)*GlyphSize
}

// Read8 reads a byte. Addresses past the end of memory read as zero.
func (m *Memory) Read8(addr uint16) byte {
	if int(addr) >= MemorySize {
		return 0
	}
	return m.data[addr]
}

// Write8 writes a byte. Writes past the end of memory are ignored.
func (m *Memory) Write8(addr uint16, value byte) {
	if int(addr) >= MemorySize {
		return
	}
	m.data[addr] = value
	if m.onWrite != nil {
		m.onWrite(addr)
	}
}

// ReadRange returns a copy of n bytes starting at addr.
func (m *Memory) ReadRange(addr uint16, n int) ([]byte, error) {
	if err := checkRange(addr, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, m.data[int(addr):int(addr)+n])
	return out, nil
}

// WriteRange writes data starting at addr.
func (m *Memory) WriteRange(addr uint16, data []byte) error {
	if err := checkRange(addr, len(data)); err != nil {
		return err
	}
	for i, b := range data {
		m.Write8(addr+uint16(i), b)
	}
	return nil
}

// LoadProgram copies a program image to ProgramStart.
func (m *Memory) LoadProgram(image []byte) error {
	if len(image) > MaxProgramSize {
		return fmt.Errorf("image of %d bytes exceeds %d: %w",
			len(image), MaxProgramSize, ErrAddressOutOfRange)
	}
	return m.WriteRange(ProgramStart, image)
}

// OnWrite registers an observer called after every write.
func (m *Memory) OnWrite(fn func(addr uint16)) {
	m.onWrite = fn
}

func checkRange(addr uint16, n int) error {
	if int(addr)+n > MemorySize {
		return fmt.Errorf("%d bytes at 0x%X: %w", n, addr, ErrAddressOutOfRange)
	}
	return nil
}
