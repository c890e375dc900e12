package emu

// LoadStoreUnit implements the CHIP-8 operations that move data between
// the register file and memory through the index register.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// LDI performs I = addr.
func (lsu *LoadStoreUnit) LDI(addr uint16) {
	lsu.regFile.I = addr
}

// ADDI performs I = I + Vx. VF is not affected.
func (lsu *LoadStoreUnit) ADDI(x uint8) {
	lsu.regFile.I += uint16(lsu.regFile.ReadReg(x))
}

// LDF points I at the font glyph for the low nibble of Vx.
func (lsu *LoadStoreUnit) LDF(x uint8) {
	lsu.regFile.I = GlyphAddr(lsu.regFile.ReadReg(x))
}

// LDB writes the hundreds, tens and units digits of Vx to I, I+1, I+2.
func (lsu *LoadStoreUnit) LDB(x uint8) error {
	v := lsu.regFile.ReadReg(x)
	return lsu.memory.WriteRange(lsu.regFile.I, []byte{v / 100, (v / 10) % 10, v % 10})
}

// Store writes V0 up to but not including Vx to memory starting at I.
// I is left unchanged.
func (lsu *LoadStoreUnit) Store(x uint8) error {
	n := int(x & 0xF)
	return lsu.memory.WriteRange(lsu.regFile.I, lsu.regFile.V[:n])
}

// Restore reads V0 through Vx inclusive from memory starting at I.
// I is left unchanged.
func (lsu *LoadStoreUnit) Restore(x uint8) error {
	n := int(x&0xF) + 1
	data, err := lsu.memory.ReadRange(lsu.regFile.I, n)
	if err != nil {
		return err
	}
	copy(lsu.regFile.V[:n], data)
	return nil
}

// Sprite returns the n sprite rows starting at I.
func (lsu *LoadStoreUnit) Sprite(n uint8) ([]byte, error) {
	return lsu.memory.ReadRange(lsu.regFile.I, int(n))
}
