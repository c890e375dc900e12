package emu

// BranchUnit implements CHIP-8 jumps, subroutine calls and skips.
// It runs after the fetch has advanced PC past the current instruction.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// JP jumps to addr.
func (b *BranchUnit) JP(addr uint16) {
	b.regFile.PC = addr
}

// JPV0 jumps to addr + V0.
func (b *BranchUnit) JPV0(addr uint16) {
	b.regFile.PC = addr + uint16(b.regFile.V[0])
}

// CALL pushes the return address (the already-advanced PC) and jumps to addr.
func (b *BranchUnit) CALL(addr uint16) error {
	if err := b.regFile.Push(b.regFile.PC); err != nil {
		return err
	}
	b.regFile.PC = addr
	return nil
}

// RET pops the return address into PC.
func (b *BranchUnit) RET() error {
	addr, err := b.regFile.Pop()
	if err != nil {
		return err
	}
	b.regFile.PC = addr
	return nil
}

// SkipIf skips the next instruction when cond holds.
func (b *BranchUnit) SkipIf(cond bool) {
	if cond {
		b.regFile.PC += 2
	}
}

// SEImm skips if Vx == nn.
func (b *BranchUnit) SEImm(x, nn uint8) {
	b.SkipIf(b.regFile.ReadReg(x) == nn)
}

// SNEImm skips if Vx != nn.
func (b *BranchUnit) SNEImm(x, nn uint8) {
	b.SkipIf(b.regFile.ReadReg(x) != nn)
}

// SE skips if Vx == Vy.
func (b *BranchUnit) SE(x, y uint8) {
	b.SkipIf(b.regFile.ReadReg(x) == b.regFile.ReadReg(y))
}

// SNE skips if Vx != Vy.
func (b *BranchUnit) SNE(x, y uint8) {
	b.SkipIf(b.regFile.ReadReg(x) != b.regFile.ReadReg(y))
}
