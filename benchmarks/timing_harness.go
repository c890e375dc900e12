package benchmarks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/runner"
	"github.com/sarchlab/c8sim/timing/cache"
	"github.com/sarchlab/c8sim/timing/latency"
)

// ErrNoHalt is reported when a benchmark hits the instruction limit
// before reaching its self-jump.
var ErrNoHalt = errors.New("benchmark did not halt")

// BenchmarkResult holds the timing results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// Cycles is the total cycle count: fetch, plus execute when latencies
	// are enabled
	Cycles uint64 `json:"cycles"`

	// Instructions is the number of executed instructions, including the
	// final self-jump
	Instructions uint64 `json:"instructions"`

	// CPI is cycles per instruction
	CPI float64 `json:"cpi"`

	// Mix counts branches, memory ops and stores
	Mix latency.Mix `json:"mix"`

	// Fetch cache statistics (if cache enabled)
	FetchHits          uint64  `json:"fetch_hits,omitempty"`
	FetchMisses        uint64  `json:"fetch_misses,omitempty"`
	FetchEvictions     uint64  `json:"fetch_evictions,omitempty"`
	FetchInvalidations uint64  `json:"fetch_invalidations,omitempty"`
	FetchHitRate       float64 `json:"fetch_hit_rate,omitempty"`

	// Result is V0 at the halt
	Result uint8 `json:"result"`

	// Error is set if the benchmark failed to run to its halt
	Error string `json:"error,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Setup prepares the emulator state after the program is loaded
	Setup func(e *emu.Emulator)

	// Program is the CHIP-8 image, loaded at 0x200
	Program []byte

	// ExpectedResult is the expected value of V0 at the halt
	ExpectedResult uint8
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// EnableFetchCache routes fetches through the cache model
	EnableFetchCache bool

	// FetchCache is the cache geometry and latency
	FetchCache cache.Config

	// EnableLatency charges execute latencies on top of fetch cycles
	EnableLatency bool

	// Latency holds the execute latencies
	Latency latency.TimingConfig

	// MaxInstructions bounds each run
	MaxInstructions uint64

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose enables detailed output
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		EnableFetchCache: true,
		FetchCache:       cache.DefaultConfig(),
		EnableLatency:    false,
		Latency:          *latency.DefaultTimingConfig(),
		MaxInstructions:  1_000_000,
		Output:           os.Stdout,
		Verbose:          false,
	}
}

// Harness runs benchmarks and collects timing results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll runs all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		result := h.runBenchmark(bench)
		results = append(results, result)
	}

	return results
}

func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	cfg := config.DefaultConfig()
	cfg.EnableFetchCache = h.config.EnableFetchCache
	cfg.FetchCache = h.config.FetchCache
	cfg.EnableLatency = h.config.EnableLatency
	cfg.Latency = h.config.Latency
	cfg.MaxInstructions = h.config.MaxInstructions

	// Fixed seed so RND-using benchmarks are repeatable.
	e, c := runner.NewEmulator(cfg, emu.WithRand(rand.New(rand.NewPCG(1, 2))))

	result := BenchmarkResult{
		Name:        bench.Name,
		Description: bench.Description,
	}

	if err := e.LoadProgram(bench.Program); err != nil {
		result.Error = err.Error()
		return result
	}
	if bench.Setup != nil {
		bench.Setup(e)
	}

	start := time.Now()
	err := RunToHalt(e, &result.Mix)
	result.WallTime = time.Since(start)

	if err != nil {
		result.Error = err.Error()
	}

	result.Cycles = e.Cycles()
	result.Instructions = e.InstructionCount()
	if result.Instructions > 0 {
		result.CPI = float64(result.Cycles) / float64(result.Instructions)
	}
	result.Result = e.RegFile().ReadReg(0)

	if c != nil {
		stats := c.Stats()
		result.FetchHits = stats.Hits
		result.FetchMisses = stats.Misses
		result.FetchEvictions = stats.Evictions
		result.FetchInvalidations = stats.Invalidations
		result.FetchHitRate = stats.HitRate()
	}

	if h.config.Verbose {
		_, _ = fmt.Fprintf(h.config.Output, "ran %s: %d instructions\n",
			bench.Name, result.Instructions)
	}

	return result
}

// RunToHalt steps e until it executes a jump to itself. Key waits are not
// halts. If mix is not nil, executed instructions are counted into it.
func RunToHalt(e *emu.Emulator, mix *latency.Mix) error {
	classes := latency.NewTable()

	for {
		pc := e.RegFile().PC

		result := e.Step()
		if result.Err != nil {
			if errors.Is(result.Err, emu.ErrMaxInstructions) {
				return fmt.Errorf("%w: %w", ErrNoHalt, result.Err)
			}
			return result.Err
		}

		if result.Suspended {
			continue
		}
		if mix != nil {
			classes.Record(mix, result.Inst)
		}
		if e.RegFile().PC == pc {
			return nil
		}
	}
}

// PrintResults prints benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== C8Sim Fetch Timing Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Result (V0): %d\n", r.Result)
		if r.Error != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error: %s\n", r.Error)
		}
		_, _ = fmt.Fprintln(h.config.Output, "  --- Timing ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Cycles:       %d\n", r.Cycles)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions: %d\n", r.Instructions)
		_, _ = fmt.Fprintf(h.config.Output, "  CPI:          %.3f\n", r.CPI)
		_, _ = fmt.Fprintf(h.config.Output, "  Branches:     %d\n", r.Mix.Branches)
		_, _ = fmt.Fprintf(h.config.Output, "  Memory ops:   %d (%d stores)\n", r.Mix.MemoryOps, r.Mix.Stores)

		if r.FetchHits > 0 || r.FetchMisses > 0 {
			_, _ = fmt.Fprintln(h.config.Output, "  --- Fetch Cache ---")
			_, _ = fmt.Fprintf(h.config.Output, "  Hits:          %d\n", r.FetchHits)
			_, _ = fmt.Fprintf(h.config.Output, "  Misses:        %d\n", r.FetchMisses)
			_, _ = fmt.Fprintf(h.config.Output, "  Evictions:     %d\n", r.FetchEvictions)
			_, _ = fmt.Fprintf(h.config.Output, "  Invalidations: %d\n", r.FetchInvalidations)
			_, _ = fmt.Fprintf(h.config.Output, "  Hit Rate:      %.1f%%\n", 100*r.FetchHitRate)
		}

		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV prints benchmark results in CSV format.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,cycles,instructions,cpi,branches,memory_ops,stores,fetch_hits,fetch_misses,fetch_evictions,fetch_invalidations,result")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f,%d,%d,%d,%d,%d,%d,%d,%d\n",
			r.Name,
			r.Cycles,
			r.Instructions,
			r.CPI,
			r.Mix.Branches,
			r.Mix.MemoryOps,
			r.Mix.Stores,
			r.FetchHits,
			r.FetchMisses,
			r.FetchEvictions,
			r.FetchInvalidations,
			r.Result,
		)
	}
}

// PrintJSON prints benchmark results as an indented JSON array.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	enc := json.NewEncoder(h.config.Output)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
