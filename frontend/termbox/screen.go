// Package termbox renders the display in a terminal and reads the keypad
// from the keyboard.
package termbox

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	tb "github.com/nsf/termbox-go"

	"github.com/sarchlab/c8sim/emu"
)

const pixel = '█'

// Screen is a terminal frontend. It satisfies runner.Renderer,
// runner.Input and runner.Beeper.
type Screen struct {
	fg, bg tb.Attribute

	hold   *Hold
	events chan tb.Event
	done   chan struct{}
	quit   bool

	bell   io.Writer
	logger logr.Logger
}

// Option is a functional option for configuring the Screen.
type Option func(*Screen)

// WithColors sets the lit and background colors.
func WithColors(fg, bg tb.Attribute) Option {
	return func(s *Screen) {
		s.fg, s.bg = fg, bg
	}
}

// WithLogger sets the logger.
func WithLogger(logger logr.Logger) Option {
	return func(s *Screen) {
		s.logger = logger
	}
}

// Open takes over the terminal. Each key press stays held for holdPolls
// polls. Close must be called to restore the terminal.
func Open(holdPolls int, opts ...Option) (*Screen, error) {
	s := &Screen{
		fg:     tb.ColorDefault,
		bg:     tb.ColorDefault,
		hold:   NewHold(holdPolls),
		events: make(chan tb.Event, 64),
		done:   make(chan struct{}),
		bell:   os.Stdout,
		logger: logr.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if !IsTerminal(os.Stdin) || !IsTerminal(os.Stdout) {
		return nil, fmt.Errorf("failed to open terminal: %w", ErrNotTerminal)
	}
	if err := tb.Init(); err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	tb.SetInputMode(tb.InputEsc)

	go s.pump()

	return s, nil
}

// pump forwards terminal events until Close interrupts it.
func (s *Screen) pump() {
	for {
		ev := tb.PollEvent()
		if ev.Type == tb.EventInterrupt {
			return
		}

		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Close restores the terminal.
func (s *Screen) Close() {
	close(s.done)
	tb.Interrupt()
	tb.Close()
}

// Render draws each pixel as two cells so the picture keeps its aspect.
func (s *Screen) Render(frame emu.Frame) error {
	if err := tb.Clear(s.bg, s.bg); err != nil {
		return err
	}

	for y := 0; y < emu.DisplayHeight; y++ {
		for x := 0; x < emu.DisplayWidth; x++ {
			if frame.At(x, y) {
				tb.SetCell(2*x, y, pixel, s.fg, s.bg)
				tb.SetCell(2*x+1, y, pixel, s.fg, s.bg)
			}
		}
	}

	return tb.Flush()
}

// Poll applies pending key events. Esc and Ctrl-C quit.
func (s *Screen) Poll() ([emu.NumKeys]bool, bool) {
drain:
	for {
		select {
		case ev := <-s.events:
			s.handle(ev)
		default:
			break drain
		}
	}

	return s.hold.Next(), !s.quit
}

func (s *Screen) handle(ev tb.Event) {
	switch ev.Type {
	case tb.EventKey:
		if ev.Key == tb.KeyEsc || ev.Key == tb.KeyCtrlC {
			s.quit = true
			return
		}
		if key, ok := KeyFor(ev.Ch); ok {
			s.hold.Press(key)
		}
	case tb.EventError:
		s.logger.Error(ev.Err, "terminal input failed")
		s.quit = true
	}
}

// Beep rings the terminal bell.
func (s *Screen) Beep() {
	_, _ = io.WriteString(s.bell, "\a")
}
