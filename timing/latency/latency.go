// Package latency provides instruction execute timing for the fetch timing
// model.
//
// The latency values can be configured via TimingConfig.
package latency

import (
	"github.com/sarchlab/c8sim/insts"
)

// Table provides instruction latency lookups. It satisfies
// emu.LatencyModel.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with default timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// GetLatency returns the execute latency in cycles for the given
// instruction. DRW and the block moves scale with the bytes they touch.
func (t *Table) GetLatency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return 1
	}

	switch inst.Op {
	case insts.OpLDImm, insts.OpADDImm, insts.OpLDReg, insts.OpOR, insts.OpAND,
		insts.OpXOR, insts.OpADDReg, insts.OpSUB, insts.OpSUBN, insts.OpSHR,
		insts.OpSHL, insts.OpLDI, insts.OpADDI, insts.OpLDF:
		return t.config.ALULatency

	case insts.OpJP, insts.OpJPV0, insts.OpSEImm, insts.OpSNEImm, insts.OpSEReg,
		insts.OpSNEReg, insts.OpSKP, insts.OpSKNP:
		return t.config.BranchLatency

	case insts.OpCALL, insts.OpRET:
		return t.config.CallLatency

	case insts.OpLDB:
		return 3 * t.config.MemoryByteLatency

	case insts.OpStore:
		return uint64(inst.X) * t.config.MemoryByteLatency

	case insts.OpRestore:
		return uint64(inst.X+1) * t.config.MemoryByteLatency

	case insts.OpDRW:
		return t.config.ALULatency + uint64(inst.N)*t.config.DrawRowLatency

	case insts.OpCLS:
		return t.config.ClearLatency

	default:
		return t.config.MiscLatency
	}
}

// IsMemoryOp returns true if the instruction reads or writes memory
// through I.
func (t *Table) IsMemoryOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	switch inst.Op {
	case insts.OpLDB, insts.OpStore, insts.OpRestore, insts.OpDRW:
		return true
	default:
		return false
	}
}

// IsStoreOp returns true if the instruction writes memory.
func (t *Table) IsStoreOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Op == insts.OpLDB || inst.Op == insts.OpStore
}

// IsBranchOp returns true if the instruction can change the flow of
// control.
func (t *Table) IsBranchOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	switch inst.Op {
	case insts.OpJP, insts.OpJPV0, insts.OpCALL, insts.OpRET, insts.OpSEImm,
		insts.OpSNEImm, insts.OpSEReg, insts.OpSNEReg, insts.OpSKP, insts.OpSKNP:
		return true
	default:
		return false
	}
}

// Mix counts executed instructions by class.
type Mix struct {
	Branches  uint64 `json:"branches"`
	MemoryOps uint64 `json:"memory_ops"`
	Stores    uint64 `json:"stores"`
}

// Record classifies inst and adds it to m. Classes overlap: a store is
// also a memory op.
func (t *Table) Record(m *Mix, inst *insts.Instruction) {
	if t.IsBranchOp(inst) {
		m.Branches++
	}
	if t.IsMemoryOp(inst) {
		m.MemoryOps++
	}
	if t.IsStoreOp(inst) {
		m.Stores++
	}
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
