package runner

import (
	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/timing/cache"
	"github.com/sarchlab/c8sim/timing/latency"
)

// NewEmulator builds an emulator as cfg describes. The returned cache is
// nil unless cfg enables the fetch cache. opts are applied after the
// options derived from cfg.
func NewEmulator(cfg *config.Config, opts ...emu.EmulatorOption) (*emu.Emulator, *cache.Cache) {
	memory := emu.NewMemory()

	base := []emu.EmulatorOption{emu.WithMemory(memory)}
	if cfg.MaxInstructions > 0 {
		base = append(base, emu.WithMaxInstructions(cfg.MaxInstructions))
	}

	var fetchCache *cache.Cache
	if cfg.EnableFetchCache {
		fetchCache = cache.New(cfg.FetchCache, cache.NewMemoryBacking(memory))
		base = append(base, emu.WithFetchCache(fetchCache))
	}

	if cfg.EnableLatency {
		base = append(base, emu.WithLatencyModel(latency.NewTableWithConfig(cfg.Latency.Clone())))
	}

	return emu.NewEmulator(append(base, opts...)...), fetchCache
}
