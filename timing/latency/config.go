package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds execute latencies for the CHIP-8 instruction classes.
// The values describe a simple in-order interpreter, not any one machine.
type TimingConfig struct {
	// ALULatency covers register moves, arithmetic, logic, shifts and the
	// index register operations. Default: 1 cycle.
	ALULatency uint64 `json:"alu_latency"`

	// BranchLatency covers jumps and skips. Default: 1 cycle.
	BranchLatency uint64 `json:"branch_latency"`

	// CallLatency covers CALL and RET, which touch the stack.
	// Default: 2 cycles.
	CallLatency uint64 `json:"call_latency"`

	// MemoryByteLatency is charged per byte moved by LD B, store and
	// restore. Default: 1 cycle.
	MemoryByteLatency uint64 `json:"memory_byte_latency"`

	// DrawRowLatency is charged per sprite row on top of ALULatency.
	// Default: 2 cycles.
	DrawRowLatency uint64 `json:"draw_row_latency"`

	// ClearLatency is the cost of CLS. Default: 8 cycles.
	ClearLatency uint64 `json:"clear_latency"`

	// MiscLatency covers timers, keys, RND, SYS and unknown opcodes.
	// Default: 1 cycle.
	MiscLatency uint64 `json:"misc_latency"`
}

// DefaultTimingConfig returns a TimingConfig with the default values.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		ALULatency:        1,
		BranchLatency:     1,
		CallLatency:       2,
		MemoryByteLatency: 1,
		DrawRowLatency:    2,
		ClearLatency:      8,
		MiscLatency:       1,
	}
}

// LoadConfig loads a TimingConfig from a JSON file.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that every fixed latency is > 0. Per-row and per-byte
// costs may be 0.
func (c *TimingConfig) Validate() error {
	if c.ALULatency == 0 {
		return fmt.Errorf("alu_latency must be > 0")
	}
	if c.BranchLatency == 0 {
		return fmt.Errorf("branch_latency must be > 0")
	}
	if c.CallLatency == 0 {
		return fmt.Errorf("call_latency must be > 0")
	}
	if c.ClearLatency == 0 {
		return fmt.Errorf("clear_latency must be > 0")
	}
	if c.MiscLatency == 0 {
		return fmt.Errorf("misc_latency must be > 0")
	}
	return nil
}

// Clone returns a copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
