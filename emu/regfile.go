// Package emu provides functional CHIP-8 emulation.
package emu

import "errors"

// FlagReg is the index of VF, written as a carry, borrow, shift-out or
// collision flag.
const FlagReg = 0xF

// StackDepth is the number of return addresses the call stack can hold.
const StackDepth = 32

var (
	// ErrStackOverflow is returned when CALL finds the stack full.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned when RET finds the stack empty.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// RegFile represents the CHIP-8 register file.
// It contains 16 general-purpose 8-bit registers (V0-VF), the index
// register, the program counter and the call stack.
type RegFile struct {
	// V holds general-purpose registers V0-VF.
	V [16]uint8

	// I is the index register, used as a memory base address.
	I uint16

	// PC is the program counter.
	PC uint16

	// Stack holds return addresses; SP counts the valid entries.
	Stack [StackDepth]uint16
	SP    uint8
}

// ReadReg reads a V register. Only the low nibble of reg is used.
func (r *RegFile) ReadReg(reg uint8) uint8 {
	return r.V[reg&0xF]
}

// WriteReg writes a V register. Only the low nibble of reg is used.
func (r *RegFile) WriteReg(reg uint8, value uint8) {
	r.V[reg&0xF] = value
}

// SetFlag writes VF as a boolean.
func (r *RegFile) SetFlag(set bool) {
	if set {
		r.V[FlagReg] = 1
		return
	}
	r.V[FlagReg] = 0
}

// Push pushes a return address onto the call stack.
func (r *RegFile) Push(addr uint16) error {
	if int(r.SP) >= StackDepth {
		return ErrStackOverflow
	}
	r.Stack[r.SP] = addr
	r.SP++
	return nil
}

// Pop pops the most recent return address off the call stack.
func (r *RegFile) Pop() (uint16, error) {
	if r.SP == 0 {
		return 0, ErrStackUnderflow
	}
	r.SP--
	return r.Stack[r.SP], nil
}
