// Package runner drives an emulator cycle by cycle against a display, a
// key source and a speaker.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/sarchlab/c8sim/emu"
	"github.com/sarchlab/c8sim/timing/cache"
	"github.com/sarchlab/c8sim/timing/latency"
)

// Renderer presents a frame. A true pixel is lit.
type Renderer interface {
	Render(frame emu.Frame) error
}

// Input refreshes the key matrix. ok is false when the user asked to quit.
type Input interface {
	Poll() (keys [emu.NumKeys]bool, ok bool)
}

// Beeper emits a tone.
type Beeper interface {
	Beep()
}

// StopReason tells why a run ended.
type StopReason int

const (
	// StopQuit means the input source asked to quit.
	StopQuit StopReason = iota
	// StopCanceled means the context was canceled.
	StopCanceled
	// StopMaxInstructions means the instruction limit was reached.
	StopMaxInstructions
	// StopError means a cycle or the renderer failed.
	StopError
)

func (r StopReason) String() string {
	switch r {
	case StopQuit:
		return "quit"
	case StopCanceled:
		return "canceled"
	case StopMaxInstructions:
		return "max instructions"
	case StopError:
		return "error"
	}
	return fmt.Sprintf("StopReason(%d)", int(r))
}

// Stats holds run statistics.
type Stats struct {
	Instructions uint64
	Cycles       uint64

	// Suspended counts cycles spent waiting for a key release.
	Suspended uint64
	Frames    uint64
	Beeps     uint64

	// Mix counts the executed instructions by class.
	Mix latency.Mix

	// FetchCache is set when the runner was given a cache to report on.
	// It covers fetches made during this run only.
	FetchCache *cache.Statistics

	Reason StopReason
}

// CPI returns fetch cycles per instruction.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Runner runs an emulator until the input quits, the context is canceled
// or a cycle fails.
type Runner struct {
	emulator *emu.Emulator
	renderer Renderer
	input    Input
	beeper   Beeper

	interval   time.Duration
	logger     logr.Logger
	fetchCache *cache.Cache
	classes    *latency.Table

	stats Stats
}

// Option is a functional option for configuring the Runner.
type Option func(*Runner)

// WithInterval sets the pause between cycles. 0 runs unthrottled.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		r.interval = d
	}
}

// WithBeeper sets the speaker. Without one, beeps are only counted.
func WithBeeper(b Beeper) Option {
	return func(r *Runner) {
		r.beeper = b
	}
}

// WithLogger sets the logger.
func WithLogger(logger logr.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithFetchCache adds the statistics of c to the run statistics.
func WithFetchCache(c *cache.Cache) Option {
	return func(r *Runner) {
		r.fetchCache = c
	}
}

// New creates a runner for e.
func New(e *emu.Emulator, renderer Renderer, input Input, opts ...Option) *Runner {
	r := &Runner{
		emulator: e,
		renderer: renderer,
		input:    input,
		logger:   logr.Discard(),
		classes:  latency.NewTable(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes cycles until the run ends. Each cycle steps the emulator,
// forwards a beep, renders the display once anything has been drawn,
// waits the cycle interval and then polls the input. Quitting, canceling
// and reaching the instruction limit end the run without an error.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	r.stats = Stats{}
	if r.fetchCache != nil {
		r.fetchCache.ResetStats()
	}

	for {
		if ctx.Err() != nil {
			return r.finish(StopCanceled, nil)
		}

		result := r.emulator.Step()
		if result.Err != nil {
			if errors.Is(result.Err, emu.ErrMaxInstructions) {
				return r.finish(StopMaxInstructions, nil)
			}
			return r.finish(StopError, result.Err)
		}

		if result.Suspended {
			r.stats.Suspended++
		} else {
			r.classes.Record(&r.stats.Mix, result.Inst)
		}

		if result.Beep {
			r.stats.Beeps++
			if r.beeper != nil {
				r.beeper.Beep()
			}
		}

		if r.emulator.DrawFlag() {
			if err := r.renderer.Render(r.emulator.Display().Frame()); err != nil {
				return r.finish(StopError, fmt.Errorf("render: %w", err))
			}
			r.stats.Frames++
		}

		if !r.wait(ctx) {
			return r.finish(StopCanceled, nil)
		}

		keys, ok := r.input.Poll()
		if !ok {
			return r.finish(StopQuit, nil)
		}
		r.emulator.SetKeys(keys)
	}
}

// wait sleeps for the cycle interval. It returns false if ctx was canceled
// first.
func (r *Runner) wait(ctx context.Context) bool {
	if r.interval <= 0 {
		return true
	}

	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (r *Runner) finish(reason StopReason, err error) (Stats, error) {
	r.stats.Instructions = r.emulator.InstructionCount()
	r.stats.Cycles = r.emulator.Cycles()
	r.stats.Reason = reason

	if r.fetchCache != nil {
		cs := r.fetchCache.Stats()
		r.stats.FetchCache = &cs
	}

	r.logger.Info("run ended", "reason", reason.String(),
		"instructions", r.stats.Instructions, "frames", r.stats.Frames)

	return r.stats, err
}
