// Package main provides the entry point for C8Sim, a CHIP-8 virtual machine.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/sarchlab/c8sim/config"
	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/frontend/headless"
	"github.com/sarchlab/c8sim/frontend/termbox"
	"github.com/sarchlab/c8sim/loader"
	"github.com/sarchlab/c8sim/runner"
)

var (
	debug      = flag.Bool("debug", false, "Log every decoded instruction before it executes")
	configPath = flag.String("config", "", "Path to configuration JSON file")
	headlessOn = flag.Bool("headless", false, "Run without a terminal display")
	keyScript  = flag.String("keys", "", "Headless key script, e.g. \"5,5,,A\"")
	fetchCache = flag.Bool("cache", false, "Enable the instruction fetch cache model")
	timing     = flag.Bool("timing", false, "Charge execute latencies on top of fetch cycles")
	maxInstr   = flag.Uint64("max-instr", 0, "Max instructions to execute (0 = unlimited)")
	fgColor    = flag.String("fg", "default", "Terminal color of lit pixels")
	bgColor    = flag.String("bg", "default", "Terminal background color")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: c8sim [options] <rom>\n")
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	programPath := flag.Arg(0)
	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(cfg, prog))
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
	}

	if *fetchCache {
		cfg.EnableFetchCache = true
	}
	if *timing {
		cfg.EnableLatency = true
	}
	if *maxInstr > 0 {
		cfg.MaxInstructions = *maxInstr
	}

	return cfg, cfg.Validate()
}

func newLogger() logr.Logger {
	verbosity := 0
	if *debug {
		verbosity = 1
	}

	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: verbosity})
}

func run(cfg *config.Config, prog *loader.Program) int {
	logger := newLogger()

	emulator, c := runner.NewEmulator(cfg, emu.WithLogger(logger.WithName("emu")))
	if err := emulator.LoadProgram(prog.Data); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		return 1
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Loaded: %s (%d bytes)\n", prog.Path, prog.Size())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []runner.Option{
		runner.WithInterval(cfg.CycleInterval()),
		runner.WithLogger(logger.WithName("runner").V(1)),
	}
	if c != nil {
		opts = append(opts, runner.WithFetchCache(c))
	}

	var (
		stats runner.Stats
		err   error
	)
	if *headlessOn {
		stats, err = runHeadless(ctx, emulator, opts)
	} else {
		stats, err = runTerminal(ctx, emulator, cfg, logger, opts)
	}

	if *verbose {
		printStats(prog.Path, stats)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func runHeadless(
	ctx context.Context,
	emulator *emu.Emulator,
	opts []runner.Option,
) (runner.Stats, error) {
	script, err := headless.ParseScript(*keyScript)
	if err != nil {
		return runner.Stats{}, err
	}

	renderer := headless.NewRenderer()
	beeper := &headless.Beeper{}
	opts = append(opts, runner.WithBeeper(beeper))

	stats, err := runner.New(emulator, renderer, headless.NewHoldingInput(script), opts...).Run(ctx)

	if *verbose && renderer.Frames() > 0 {
		_ = renderer.Dump(os.Stdout)
	}

	return stats, err
}

func runTerminal(
	ctx context.Context,
	emulator *emu.Emulator,
	cfg *config.Config,
	logger logr.Logger,
	opts []runner.Option,
) (runner.Stats, error) {
	colors, err := screenColors()
	if err != nil {
		return runner.Stats{}, err
	}

	screen, err := termbox.Open(cfg.KeyHoldPolls, colors, termbox.WithLogger(logger.WithName("termbox")))
	if errors.Is(err, termbox.ErrNotTerminal) {
		return runner.Stats{}, fmt.Errorf("%w; use -headless", err)
	}
	if err != nil {
		return runner.Stats{}, err
	}
	defer screen.Close()

	opts = append(opts, runner.WithBeeper(screen))

	return runner.New(emulator, screen, screen, opts...).Run(ctx)
}

// screenColors turns the -fg and -bg flags into a screen option.
func screenColors() (termbox.Option, error) {
	fg, err := termbox.ParseColor(*fgColor)
	if err != nil {
		return nil, fmt.Errorf("-fg: %w", err)
	}
	bg, err := termbox.ParseColor(*bgColor)
	if err != nil {
		return nil, fmt.Errorf("-bg: %w", err)
	}
	return termbox.WithColors(fg, bg), nil
}

func printStats(programPath string, stats runner.Stats) {
	fmt.Fprintf(os.Stderr, "\nProgram: %s\n", programPath)
	fmt.Fprintf(os.Stderr, "Stopped: %s\n", stats.Reason)
	fmt.Fprintf(os.Stderr, "Instructions executed: %d\n", stats.Instructions)
	fmt.Fprintf(os.Stderr, "Cycles: %d (CPI %.2f)\n", stats.Cycles, stats.CPI())
	fmt.Fprintf(os.Stderr, "Branches: %d, memory ops: %d (%d stores)\n",
		stats.Mix.Branches, stats.Mix.MemoryOps, stats.Mix.Stores)
	fmt.Fprintf(os.Stderr, "Key wait cycles: %d\n", stats.Suspended)
	fmt.Fprintf(os.Stderr, "Frames: %d\n", stats.Frames)
	fmt.Fprintf(os.Stderr, "Beeps: %d\n", stats.Beeps)

	if fc := stats.FetchCache; fc != nil {
		fmt.Fprintf(os.Stderr, "\nFetch cache:\n")
		fmt.Fprintf(os.Stderr, "  Reads:         %d\n", fc.Reads)
		fmt.Fprintf(os.Stderr, "  Hits:          %d (%.1f%%)\n", fc.Hits, 100*fc.HitRate())
		fmt.Fprintf(os.Stderr, "  Misses:        %d\n", fc.Misses)
		fmt.Fprintf(os.Stderr, "  Evictions:     %d\n", fc.Evictions)
		fmt.Fprintf(os.Stderr, "  Invalidations: %d\n", fc.Invalidations)
	}
}
