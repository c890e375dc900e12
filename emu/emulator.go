package emu

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/insts"
)

// ErrMaxInstructions is returned by Step once the instruction limit is hit.
var ErrMaxInstructions = errors.New("max instructions reached")

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Suspended is true if the instruction is waiting for a key release.
	// PC still points at it, so the next Step executes it again.
	Suspended bool

	// Beep is true if the sound timer expired during this step.
	Beep bool

	// Err is set if an error occurred during execution.
	Err error

	// Inst is the decoded instruction. It is nil if the step failed
	// before decode.
	Inst *insts.Instruction
}

// FetchCache models an instruction fetch path in front of memory. Fetch
// returns the opcode at addr and the number of cycles the fetch took.
type FetchCache interface {
	Fetch(addr uint16) (word uint16, latency uint64)
	Invalidate(addr uint16)
}

// LatencyModel gives the execute cost of an instruction in cycles.
type LatencyModel interface {
	GetLatency(inst *insts.Instruction) uint64
}

// Emulator executes CHIP-8 instructions functionally.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	display *Display
	keypad  *Keypad
	timers  *Timers
	decoder *insts.Decoder

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	rng        *rand.Rand
	logger     logr.Logger
	fetchCache FetchCache
	latency    LatencyModel

	// drawFlag is set by every DRW and never cleared.
	drawFlag bool

	// Execution state
	instructionCount uint64
	cycles           uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithRand sets the random source used by RND.
func WithRand(rng *rand.Rand) EmulatorOption {
	return func(e *Emulator) {
		e.rng = rng
	}
}

// WithLogger sets the logger. Each executed instruction is traced at V(1).
func WithLogger(logger logr.Logger) EmulatorOption {
	return func(e *Emulator) {
		e.logger = logger
	}
}

// WithMemory makes the emulator run on the given memory, so a fetch cache
// can be built over it before the emulator exists.
func WithMemory(memory *Memory) EmulatorOption {
	return func(e *Emulator) {
		e.memory = memory
	}
}

// WithFetchCache routes instruction fetches through a cache model.
func WithFetchCache(c FetchCache) EmulatorOption {
	return func(e *Emulator) {
		e.fetchCache = c
	}
}

// WithLatencyModel charges each executed instruction its execute cost on
// top of the fetch.
func WithLatencyModel(m LatencyModel) EmulatorOption {
	return func(e *Emulator) {
		e.latency = m
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new CHIP-8 emulator with the font loaded and PC at
// ProgramStart.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		decoder: insts.NewDecoder(),
		logger:  logr.Discard(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.memory == nil {
		e.memory = NewMemory()
	}
	if e.fetchCache != nil {
		e.memory.OnWrite(e.fetchCache.Invalidate)
	}

	e.Reset()

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Display returns the emulator's display.
func (e *Emulator) Display() *Display {
	return e.display
}

// Keypad returns the emulator's keypad.
func (e *Emulator) Keypad() *Keypad {
	return e.keypad
}

// Timers returns the emulator's delay and sound timers.
func (e *Emulator) Timers() *Timers {
	return e.timers
}

// DrawFlag reports whether any DRW has executed.
func (e *Emulator) DrawFlag() bool {
	return e.drawFlag
}

// SetKeys refreshes the key matrix from the input source.
func (e *Emulator) SetKeys(keys [NumKeys]bool) {
	e.keypad.Set(keys)
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// Cycles returns the number of cycles spent. Without a fetch cache every
// fetch costs one cycle. Execute costs are only counted with a latency
// model.
func (e *Emulator) Cycles() uint64 {
	return e.cycles
}

// LoadProgram copies a program image to ProgramStart and points PC at it.
func (e *Emulator) LoadProgram(image []byte) error {
	if err := e.memory.LoadProgram(image); err != nil {
		return err
	}
	e.regFile.PC = ProgramStart
	return nil
}

// Reset resets the emulator to its initial state.
func (e *Emulator) Reset() {
	e.regFile = &RegFile{PC: ProgramStart}
	e.memory.Reset()
	e.display = &Display{}
	e.keypad = &Keypad{}
	e.timers = &Timers{}
	e.drawFlag = false
	e.instructionCount = 0
	e.cycles = 0

	// Recreate execution units
	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.branchUnit = NewBranchUnit(e.regFile)
}

// Step executes a single cycle: fetch, advance PC, decode, execute, then
// tick both timers.
func (e *Emulator) Step() StepResult {
	// Check instruction limit before executing
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Err: ErrMaxInstructions}
	}

	pc := e.regFile.PC

	// 1. Fetch: Read 2 bytes at PC
	word, err := e.fetch(pc)
	if err != nil {
		return StepResult{Err: fmt.Errorf("fetch at PC=0x%03X: %w", pc, err)}
	}
	e.regFile.PC = pc + insts.Size

	// 2. Decode
	inst := e.decoder.Decode(word)
	if log := e.logger.V(1); log.Enabled() {
		log.Info("exec", "pc", fmt.Sprintf("0x%03X", pc),
			"opcode", fmt.Sprintf("0x%04X", word), "inst", inst.String())
	}

	// 3. Execute
	result := e.execute(inst)
	result.Inst = inst
	if result.Err != nil {
		result.Err = fmt.Errorf("%s at PC=0x%03X: %w", inst, pc, result.Err)
		return result
	}
	if result.Suspended {
		e.regFile.PC = pc
	}

	e.instructionCount++
	if e.latency != nil {
		e.cycles += e.latency.GetLatency(inst)
	}

	// 4. Timers
	result.Beep = e.timers.Tick()

	return result
}

func (e *Emulator) fetch(pc uint16) (uint16, error) {
	if err := checkRange(pc, insts.Size); err != nil {
		return 0, err
	}

	if e.fetchCache != nil {
		word, latency := e.fetchCache.Fetch(pc)
		e.cycles += latency
		return word, nil
	}

	e.cycles++
	return insts.Word(e.memory.Read8(pc), e.memory.Read8(pc+1)), nil
}

// execute dispatches and executes a decoded instruction. PC has already
// been advanced past it.
func (e *Emulator) execute(inst *insts.Instruction) StepResult {
	x, y := inst.X, inst.Y

	switch inst.Op {
	case insts.OpUnknown:
		e.logger.V(1).Info("unknown opcode ignored", "opcode", fmt.Sprintf("0x%04X", inst.Raw))
	case insts.OpSYS:
		// Machine routines only existed on the original hardware.
	case insts.OpCLS:
		e.display.Clear()
	case insts.OpRET:
		return StepResult{Err: e.branchUnit.RET()}
	case insts.OpJP:
		e.branchUnit.JP(inst.NNN)
	case insts.OpJPV0:
		e.branchUnit.JPV0(inst.NNN)
	case insts.OpCALL:
		return StepResult{Err: e.branchUnit.CALL(inst.NNN)}
	case insts.OpSEImm:
		e.branchUnit.SEImm(x, inst.NN)
	case insts.OpSNEImm:
		e.branchUnit.SNEImm(x, inst.NN)
	case insts.OpSEReg:
		e.branchUnit.SE(x, y)
	case insts.OpSNEReg:
		e.branchUnit.SNE(x, y)
	case insts.OpLDImm:
		e.alu.LDImm(x, inst.NN)
	case insts.OpADDImm:
		e.alu.ADDImm(x, inst.NN)
	case insts.OpLDReg:
		e.alu.LD(x, y)
	case insts.OpOR:
		e.alu.OR(x, y)
	case insts.OpAND:
		e.alu.AND(x, y)
	case insts.OpXOR:
		e.alu.XOR(x, y)
	case insts.OpADDReg:
		e.alu.ADD(x, y)
	case insts.OpSUB:
		e.alu.SUB(x, y)
	case insts.OpSUBN:
		e.alu.SUBN(x, y)
	case insts.OpSHR:
		e.alu.SHR(x)
	case insts.OpSHL:
		e.alu.SHL(x)
	case insts.OpLDI:
		e.lsu.LDI(inst.NNN)
	case insts.OpRND:
		e.regFile.WriteReg(x, uint8(e.rng.Uint32())&inst.NN)
	case insts.OpDRW:
		return StepResult{Err: e.executeDRW(inst)}
	case insts.OpSKP:
		key := e.regFile.ReadReg(x)
		e.branchUnit.SkipIf(key < NumKeys && e.keypad.Pressed(key))
	case insts.OpSKNP:
		// A key value of 16 or more never skips, pressed or not.
		key := e.regFile.ReadReg(x)
		e.branchUnit.SkipIf(key < NumKeys && !e.keypad.Pressed(key))
	case insts.OpLDVxDT:
		e.regFile.WriteReg(x, e.timers.Delay)
	case insts.OpLDVxK:
		key, ok := e.keypad.TakeReleased()
		if !ok {
			return StepResult{Suspended: true}
		}
		e.regFile.WriteReg(x, key)
	case insts.OpLDDTVx:
		e.timers.Delay = e.regFile.ReadReg(x)
	case insts.OpLDSTVx:
		e.timers.Sound = e.regFile.ReadReg(x)
	case insts.OpADDI:
		e.lsu.ADDI(x)
	case insts.OpLDF:
		e.lsu.LDF(x)
	case insts.OpLDB:
		return StepResult{Err: e.lsu.LDB(x)}
	case insts.OpStore:
		return StepResult{Err: e.lsu.Store(x)}
	case insts.OpRestore:
		return StepResult{Err: e.lsu.Restore(x)}
	default:
		return StepResult{Err: fmt.Errorf("unimplemented op %v", inst.Op)}
	}

	return StepResult{}
}

// executeDRW draws N sprite rows from I at (Vx, Vy). VF = 1 on collision.
func (e *Emulator) executeDRW(inst *insts.Instruction) error {
	x := e.regFile.ReadReg(inst.X)
	y := e.regFile.ReadReg(inst.Y)

	e.regFile.SetFlag(false)
	e.drawFlag = true

	sprite, err := e.lsu.Sprite(inst.N)
	if err != nil {
		return err
	}

	e.regFile.SetFlag(e.display.DrawSprite(x, y, sprite))
	return nil
}
