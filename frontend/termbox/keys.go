package termbox

import (
	"unicode"

	"github.com/sarchlab/c8sim/emu"
)

// keymap lays the hex keypad over the left of a QWERTY keyboard:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var keymap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// KeyFor returns the keypad key bound to ch.
func KeyFor(ch rune) (uint8, bool) {
	key, ok := keymap[unicode.ToLower(ch)]
	return key, ok
}

// Hold turns key presses into held keys. Terminals report presses only,
// so a press is held for a fixed number of polls and then released.
type Hold struct {
	polls int
	left  [emu.NumKeys]int
}

// NewHold creates a Hold that keeps each press down for polls polls.
func NewHold(polls int) *Hold {
	return &Hold{polls: max(polls, 1)}
}

// Press starts or restarts the hold on key.
func (h *Hold) Press(key uint8) {
	if int(key) < emu.NumKeys {
		h.left[key] = h.polls
	}
}

// Next returns the keys held during this poll and ages every hold by one.
func (h *Hold) Next() [emu.NumKeys]bool {
	var keys [emu.NumKeys]bool
	for i := range h.left {
		if h.left[i] > 0 {
			keys[i] = true
			h.left[i]--
		}
	}
	return keys
}
