// Package insts provides CHIP-8 instruction definitions and decoding.
//
// This package turns raw 16-bit CHIP-8 opcodes into structured instruction
// values. Every opcode decodes to exactly one Instruction: one of the 35
// documented forms, or OpUnknown carrying the raw word.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x6A05) // LD VA, $05
//	fmt.Printf("Op: %v, X: %d, NN: %d\n", inst.Op, inst.X, inst.NN)
package insts

// Size is the length of every CHIP-8 instruction in bytes.
const Size = 2

// Word assembles a big-endian opcode from the two bytes at PC and PC+1.
func Word(hi, lo byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}
