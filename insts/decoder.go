package insts

import "fmt"

// Op represents a CHIP-8 operation.
type Op uint8

// CHIP-8 operations.
const (
	OpUnknown Op = iota
	OpSYS        // 0nnn: legacy machine routine, ignored
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEImm      // 3xnn
	OpSNEImm     // 4xnn
	OpSEReg      // 5xy0
	OpLDImm      // 6xnn
	OpADDImm     // 7xnn
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxnn
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpStore      // Fx55
	OpRestore    // Fx65
)

var opNames = [...]string{
	OpUnknown: "UNKNOWN",
	OpSYS:     "SYS",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEImm:   "SE",
	OpSNEImm:  "SNE",
	OpSEReg:   "SE",
	OpLDImm:   "LD",
	OpADDImm:  "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpStore:   "LD",
	OpRestore: "LD",
}

// String returns the assembler mnemonic of the operation.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Format represents the operand layout of an instruction.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatNone           // no operands (CLS, RET)
	FormatAddr           // nnn
	FormatRegImm         // x, nn
	FormatRegReg         // x, y
	FormatReg            // x
	FormatDraw           // x, y, n
)

// Instruction represents a decoded CHIP-8 instruction.
type Instruction struct {
	Op     Op     // Operation
	Format Format // Operand layout
	Raw    uint16 // Opcode word as fetched

	X   uint8  // Register index from the second nibble
	Y   uint8  // Register index from the third nibble
	N   uint8  // Low nibble (sprite rows)
	NN  uint8  // Low byte immediate
	NNN uint16 // Low 12-bit address
}

// Decoder decodes CHIP-8 opcodes into instructions.
type Decoder struct{}

// NewDecoder creates a new CHIP-8 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 16-bit CHIP-8 opcode. It never fails: opcodes that match
// no known form decode to OpUnknown.
func (d *Decoder) Decode(word uint16) *Instruction {
	inst := &Instruction{
		Raw: word,
		X:   uint8(word>>8) & 0xF,
		Y:   uint8(word>>4) & 0xF,
		N:   uint8(word) & 0xF,
		NN:  uint8(word),
		NNN: word & 0x0FFF,
	}

	switch word >> 12 {
	case 0x0:
		d.decodeSystem(word, inst)
	case 0x1:
		inst.set(OpJP, FormatAddr)
	case 0x2:
		inst.set(OpCALL, FormatAddr)
	case 0x3:
		inst.set(OpSEImm, FormatRegImm)
	case 0x4:
		inst.set(OpSNEImm, FormatRegImm)
	case 0x5:
		if inst.N == 0 {
			inst.set(OpSEReg, FormatRegReg)
		}
	case 0x6:
		inst.set(OpLDImm, FormatRegImm)
	case 0x7:
		inst.set(OpADDImm, FormatRegImm)
	case 0x8:
		d.decodeArith(inst)
	case 0x9:
		if inst.N == 0 {
			inst.set(OpSNEReg, FormatRegReg)
		}
	case 0xA:
		inst.set(OpLDI, FormatAddr)
	case 0xB:
		inst.set(OpJPV0, FormatAddr)
	case 0xC:
		inst.set(OpRND, FormatRegImm)
	case 0xD:
		inst.set(OpDRW, FormatDraw)
	case 0xE:
		d.decodeKey(inst)
	case 0xF:
		d.decodeMisc(inst)
	}

	return inst
}

func (inst *Instruction) set(op Op, format Format) {
	inst.Op = op
	inst.Format = format
}

// decodeSystem handles the 0nnn group. Only 00E0 and 00EE are real
// instructions; every other word is a legacy machine routine call.
func (d *Decoder) decodeSystem(word uint16, inst *Instruction) {
	switch word {
	case 0x00E0:
		inst.set(OpCLS, FormatNone)
	case 0x00EE:
		inst.set(OpRET, FormatNone)
	default:
		inst.set(OpSYS, FormatAddr)
	}
}

// decodeArith handles the 8xyn register-register group.
func (d *Decoder) decodeArith(inst *Instruction) {
	switch inst.N {
	case 0x0:
		inst.set(OpLDReg, FormatRegReg)
	case 0x1:
		inst.set(OpOR, FormatRegReg)
	case 0x2:
		inst.set(OpAND, FormatRegReg)
	case 0x3:
		inst.set(OpXOR, FormatRegReg)
	case 0x4:
		inst.set(OpADDReg, FormatRegReg)
	case 0x5:
		inst.set(OpSUB, FormatRegReg)
	case 0x6:
		// y is ignored by the shifts
		inst.set(OpSHR, FormatReg)
	case 0x7:
		inst.set(OpSUBN, FormatRegReg)
	case 0xE:
		inst.set(OpSHL, FormatReg)
	}
}

// decodeKey handles the Exnn keypad group.
func (d *Decoder) decodeKey(inst *Instruction) {
	switch inst.NN {
	case 0x9E:
		inst.set(OpSKP, FormatReg)
	case 0xA1:
		inst.set(OpSKNP, FormatReg)
	}
}

// decodeMisc handles the Fxnn timer, keypad and memory group.
func (d *Decoder) decodeMisc(inst *Instruction) {
	switch inst.NN {
	case 0x07:
		inst.set(OpLDVxDT, FormatReg)
	case 0x0A:
		inst.set(OpLDVxK, FormatReg)
	case 0x15:
		inst.set(OpLDDTVx, FormatReg)
	case 0x18:
		inst.set(OpLDSTVx, FormatReg)
	case 0x1E:
		inst.set(OpADDI, FormatReg)
	case 0x29:
		inst.set(OpLDF, FormatReg)
	case 0x33:
		inst.set(OpLDB, FormatReg)
	case 0x55:
		inst.set(OpStore, FormatReg)
	case 0x65:
		inst.set(OpRestore, FormatReg)
	}
}
