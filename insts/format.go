package insts

import "fmt"

// String renders the instruction in conventional CHIP-8 assembler syntax.
func (inst *Instruction) String() string {
	if operands := inst.operands(); operands != "" {
		return inst.Op.String() + " " + operands
	}
	return inst.Op.String()
}

func (inst *Instruction) operands() string {
	switch inst.Op {
	case OpUnknown:
		return fmt.Sprintf("$%04X", inst.Raw)
	case OpCLS, OpRET:
		return ""
	case OpJPV0:
		return fmt.Sprintf("V0, $%03X", inst.NNN)
	case OpLDI:
		return fmt.Sprintf("I, $%03X", inst.NNN)
	case OpLDVxDT:
		return fmt.Sprintf("V%X, DT", inst.X)
	case OpLDVxK:
		return fmt.Sprintf("V%X, K", inst.X)
	case OpLDDTVx:
		return fmt.Sprintf("DT, V%X", inst.X)
	case OpLDSTVx:
		return fmt.Sprintf("ST, V%X", inst.X)
	case OpADDI:
		return fmt.Sprintf("I, V%X", inst.X)
	case OpLDF:
		return fmt.Sprintf("F, V%X", inst.X)
	case OpLDB:
		return fmt.Sprintf("B, V%X", inst.X)
	case OpStore:
		return fmt.Sprintf("[I], V%X", inst.X)
	case OpRestore:
		return fmt.Sprintf("V%X, [I]", inst.X)
	}

	switch inst.Format {
	case FormatAddr:
		return fmt.Sprintf("$%03X", inst.NNN)
	case FormatRegImm:
		return fmt.Sprintf("V%X, $%02X", inst.X, inst.NN)
	case FormatRegReg:
		return fmt.Sprintf("V%X, V%X", inst.X, inst.Y)
	case FormatReg:
		return fmt.Sprintf("V%X", inst.X)
	case FormatDraw:
		return fmt.Sprintf("V%X, V%X, $%X", inst.X, inst.Y, inst.N)
	}
	return ""
}
