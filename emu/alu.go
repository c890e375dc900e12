package emu

// ALU implements CHIP-8 arithmetic and logic operations on V registers.
// ADD, SUB and SUBN write VF after the result; the shifts write it before.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// LDImm performs Vx = nn.
func (a *ALU) LDImm(x, nn uint8) {
	a.regFile.WriteReg(x, nn)
}

// ADDImm performs Vx = Vx + nn, wrapping, without touching VF.
func (a *ALU) ADDImm(x, nn uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)+nn)
}

// LD performs Vx = Vy.
func (a *ALU) LD(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(y))
}

// OR performs Vx = Vx | Vy.
func (a *ALU) OR(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)|a.regFile.ReadReg(y))
}

// AND performs Vx = Vx & Vy.
func (a *ALU) AND(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)&a.regFile.ReadReg(y))
}

// XOR performs Vx = Vx ^ Vy.
func (a *ALU) XOR(x, y uint8) {
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)^a.regFile.ReadReg(y))
}

// ADD performs Vx = Vx + Vy. VF = 1 on carry out of bit 7.
func (a *ALU) ADD(x, y uint8) {
	op1 := a.regFile.ReadReg(x)
	op2 := a.regFile.ReadReg(y)
	sum := uint16(op1) + uint16(op2)

	a.regFile.WriteReg(x, uint8(sum))
	a.regFile.SetFlag(sum > 0xFF)
}

// SUB performs Vx = Vx - Vy. VF = 1 when no borrow occurred (Vx >= Vy).
func (a *ALU) SUB(x, y uint8) {
	op1 := a.regFile.ReadReg(x)
	op2 := a.regFile.ReadReg(y)

	a.regFile.WriteReg(x, op1-op2)
	a.regFile.SetFlag(op1 >= op2)
}

// SUBN performs Vx = Vy - Vx. VF = 1 when no borrow occurred (Vy >= Vx).
func (a *ALU) SUBN(x, y uint8) {
	op1 := a.regFile.ReadReg(x)
	op2 := a.regFile.ReadReg(y)

	a.regFile.WriteReg(x, op2-op1)
	a.regFile.SetFlag(op2 >= op1)
}

// SHR performs Vx = Vx >> 1. VF = the bit shifted out. VF is written
// first, so SHR VF shifts the flag.
func (a *ALU) SHR(x uint8) {
	a.regFile.V[FlagReg] = a.regFile.ReadReg(x) & 0x01
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)>>1)
}

// SHL performs Vx = Vx << 1. VF = the bit shifted out. VF is written
// first, so SHL VF shifts the flag.
func (a *ALU) SHL(x uint8) {
	a.regFile.V[FlagReg] = a.regFile.ReadReg(x) >> 7
	a.regFile.WriteReg(x, a.regFile.ReadReg(x)<<1)
}
