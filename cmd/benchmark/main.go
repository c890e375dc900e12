// Command benchmark runs the C8Sim fetch timing benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv       Output results in CSV format (default: human-readable)
//	-json      Output results as JSON
//	-no-cache  Disable the fetch cache model
//	-timing    Charge execute latencies on top of fetch cycles
//	-core      Run only the core benchmarks
//	-config    Take the fetch cache geometry from a config file
//
// Example:
//
//	# Compare runs with and without the fetch cache
//	go run ./cmd/benchmark -csv > cached.csv
//	go run ./cmd/benchmark -csv -no-cache > plain.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/c8sim/benchmarks"
	"github.com/sarchlab/c8sim/config"
)

func main() {
	// Parse flags
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results as JSON")
	noCache := flag.Bool("no-cache", false, "Disable the fetch cache model")
	timing := flag.Bool("timing", false, "Charge execute latencies on top of fetch cycles")
	coreOnly := flag.Bool("core", false, "Run only the core benchmarks")
	configPath := flag.String("config", "", "Path to configuration JSON file")
	flag.Parse()

	// Configure harness
	hc := benchmarks.DefaultConfig()
	hc.EnableFetchCache = !*noCache
	hc.EnableLatency = *timing
	hc.Output = os.Stdout

	if *configPath != "" {
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		hc.FetchCache = cfg.FetchCache
		hc.Latency = cfg.Latency
	}

	// Create harness and add benchmarks
	harness := benchmarks.NewHarness(hc)
	if *coreOnly {
		harness.AddBenchmarks(benchmarks.GetCoreBenchmarks())
	} else {
		harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())
	}

	// Print configuration
	if !*csvOutput && !*jsonOutput {
		fmt.Println("C8Sim Fetch Timing Benchmark Harness")
		fmt.Println("====================================")
		fmt.Printf("Fetch cache: %v\n", hc.EnableFetchCache)
		fmt.Printf("Execute latencies: %v\n", hc.EnableLatency)
		if hc.EnableFetchCache {
			fc := hc.FetchCache
			fmt.Printf("  %dB, %d-way, %dB lines, hit %d / miss %d cycles\n",
				fc.Size, fc.Associativity, fc.BlockSize, fc.HitLatency, fc.MissLatency)
		}
		fmt.Println("")
	}

	// Run benchmarks
	results := harness.RunAll()

	// Output results
	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}

	for _, r := range results {
		if r.Error != "" {
			os.Exit(1)
		}
	}
}
