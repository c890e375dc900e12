// Package config holds the run configuration of the simulator.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sarchlab/c8sim/timing/cache"
	"github.com/sarchlab/c8sim/timing/latency"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings of a run.
type Config struct {
	// CycleIntervalMicros is the pause between two cycles. Default: 2000,
	// which gives roughly 500 instructions per second. 0 runs unthrottled.
	CycleIntervalMicros uint64 `json:"cycle_interval_micros"`

	// KeyHoldPolls is how many input polls a terminal key press stays held
	// before it is released. Default: 8.
	KeyHoldPolls int `json:"key_hold_polls"`

	// MaxInstructions stops the run after this many instructions.
	// 0 means no limit.
	MaxInstructions uint64 `json:"max_instructions"`

	// EnableFetchCache routes instruction fetches through the cache model.
	EnableFetchCache bool `json:"enable_fetch_cache"`

	// FetchCache is the geometry and latency of the fetch cache.
	FetchCache cache.Config `json:"fetch_cache"`

	// EnableLatency charges execute latencies on top of fetch cycles.
	EnableLatency bool `json:"enable_latency"`

	// Latency holds the execute latencies.
	Latency latency.TimingConfig `json:"latency"`
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() *Config {
	return &Config{
		CycleIntervalMicros: 2000,
		KeyHoldPolls:        8,
		FetchCache:          cache.DefaultConfig(),
		Latency:             *latency.DefaultTimingConfig(),
	}
}

// CycleInterval returns the pause between cycles.
func (c *Config) CycleInterval() time.Duration {
	return time.Duration(c.CycleIntervalMicros) * time.Microsecond
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the settings can drive a run.
func (c *Config) Validate() error {
	if c.KeyHoldPolls <= 0 {
		return fmt.Errorf("key_hold_polls must be > 0: %w", ErrInvalidConfig)
	}

	if c.EnableLatency {
		if err := c.Latency.Validate(); err != nil {
			return fmt.Errorf("latency: %w: %w", err, ErrInvalidConfig)
		}
	}

	if !c.EnableFetchCache {
		return nil
	}

	fc := c.FetchCache
	if fc.Size <= 0 || fc.Associativity <= 0 || fc.BlockSize <= 0 {
		return fmt.Errorf("fetch_cache size, associativity and block_size must be > 0: %w",
			ErrInvalidConfig)
	}
	if fc.BlockSize&(fc.BlockSize-1) != 0 {
		return fmt.Errorf("fetch_cache block_size must be a power of two: %w", ErrInvalidConfig)
	}
	if fc.Size%(fc.Associativity*fc.BlockSize) != 0 {
		return fmt.Errorf("fetch_cache size must be a multiple of associativity * block_size: %w",
			ErrInvalidConfig)
	}
	if fc.HitLatency == 0 {
		return fmt.Errorf("fetch_cache hit_latency must be > 0: %w", ErrInvalidConfig)
	}
	if fc.MissLatency < fc.HitLatency {
		return fmt.Errorf("fetch_cache miss_latency must be >= hit_latency: %w", ErrInvalidConfig)
	}

	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
