// Package main provides a profiling wrapper for C8Sim to identify performance bottlenecks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/frontend/headless"
	"github.com/sarchlab/c8sim/loader"
	"github.com/sarchlab/c8sim/runner"
)

var (
	fetchCache  = flag.Bool("cache", false, "Enable the instruction fetch cache model")
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile  = flag.String("memprofile", "", "write memory profile to file")
	duration    = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	instruction = flag.Uint64("max-instr", 1000000, "max instructions to execute (0 = unlimited)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <rom>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)
	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded: %s (%d bytes)\n", programPath, prog.Size())

	// Start CPU profiling if requested
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	cfg := config.DefaultConfig()
	cfg.CycleIntervalMicros = 0
	cfg.MaxInstructions = *instruction
	cfg.EnableFetchCache = *fetchCache

	emulator, c := runner.NewEmulator(cfg)
	if err := emulator.LoadProgram(prog.Data); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	opts := []runner.Option{}
	if c != nil {
		opts = append(opts, runner.WithFetchCache(c))
	}
	r := runner.New(emulator, headless.NewRenderer(), headless.NewHoldingInput(nil), opts...)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	stats, runErr := r.Run(ctx)
	elapsed := time.Since(start)

	// Write memory profile if requested
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	fmt.Printf("\nProfiling Results:\n")
	fmt.Printf("Stopped: %s\n", stats.Reason)
	if runErr != nil {
		fmt.Printf("Error: %v\n", runErr)
	}
	fmt.Printf("Instructions executed: %d\n", stats.Instructions)
	fmt.Printf("Frames rendered: %d\n", stats.Frames)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if stats.Instructions > 0 {
		fmt.Printf("Instructions/second: %.0f\n", float64(stats.Instructions)/elapsed.Seconds())
	}
	if stats.FetchCache != nil {
		fmt.Printf("Fetch cache hit rate: %.1f%%\n", 100*stats.FetchCache.HitRate())
	}
}
