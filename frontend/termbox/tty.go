package termbox

import (
	"errors"
	"os"
)

// ErrNotTerminal is returned by Open when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isTerminal(int(f.Fd()))
}
