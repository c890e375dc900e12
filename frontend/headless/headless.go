// Package headless provides display, key and speaker stand-ins that run
// without a terminal. They back scripted runs and tests.
package headless

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/c8sim/emu"
)

// ErrBadScript is returned by ParseScript.
var ErrBadScript = errors.New("bad key script")

// Input replays a fixed list of key matrices, one per poll.
type Input struct {
	script [][emu.NumKeys]bool
	next   int
	hold   bool
	polls  uint64
}

// NewInput returns an Input that quits once the script is exhausted.
func NewInput(script [][emu.NumKeys]bool) *Input {
	return &Input{script: script}
}

// NewHoldingInput returns an Input that keeps reporting the last scripted
// state once the script is exhausted and never quits. An empty script
// holds no keys.
func NewHoldingInput(script [][emu.NumKeys]bool) *Input {
	return &Input{script: script, hold: true}
}

// Poll returns the next scripted key matrix.
func (in *Input) Poll() ([emu.NumKeys]bool, bool) {
	in.polls++

	if in.next < len(in.script) {
		keys := in.script[in.next]
		in.next++
		return keys, true
	}

	if !in.hold {
		return [emu.NumKeys]bool{}, false
	}
	if len(in.script) == 0 {
		return [emu.NumKeys]bool{}, true
	}
	return in.script[len(in.script)-1], true
}

// Polls returns how many times Poll was called.
func (in *Input) Polls() uint64 {
	return in.polls
}

// ParseScript parses a key script: comma-separated steps, each listing
// the hex keys held during that poll. "5,5,,A" holds key 5 for two polls,
// releases everything, then holds key A.
func ParseScript(s string) ([][emu.NumKeys]bool, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	steps := strings.Split(s, ",")
	script := make([][emu.NumKeys]bool, len(steps))
	for i, step := range steps {
		for _, r := range strings.TrimSpace(step) {
			key, err := strconv.ParseUint(string(r), 16, 8)
			if err != nil {
				return nil, fmt.Errorf("step %d: key %q: %w", i, r, ErrBadScript)
			}
			script[i][key] = true
		}
	}

	return script, nil
}

// Renderer keeps the most recent frame.
type Renderer struct {
	last   emu.Frame
	frames uint64
}

// NewRenderer creates an empty Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render records frame.
func (r *Renderer) Render(frame emu.Frame) error {
	r.last = frame
	r.frames++
	return nil
}

// Last returns the most recent frame.
func (r *Renderer) Last() emu.Frame {
	return r.last
}

// Frames returns how many frames were rendered.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Dump writes the most recent frame as text, '#' for lit pixels.
func (r *Renderer) Dump(w io.Writer) error {
	var sb strings.Builder
	for y := 0; y < emu.DisplayHeight; y++ {
		for x := 0; x < emu.DisplayWidth; x++ {
			if r.last.At(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Beeper counts beeps.
type Beeper struct {
	count uint64
}

// Beep records a beep.
func (b *Beeper) Beep() {
	b.count++
}

// Count returns how many beeps were recorded.
func (b *Beeper) Count() uint64 {
	return b.count
}
