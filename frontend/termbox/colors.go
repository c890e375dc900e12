package termbox

import (
	"errors"
	"fmt"
	"strings"

	tb "github.com/nsf/termbox-go"
)

// ErrUnknownColor is returned by ParseColor for names it does not know.
var ErrUnknownColor = errors.New("unknown color")

var colors = map[string]tb.Attribute{
	"default": tb.ColorDefault,
	"black":   tb.ColorBlack,
	"red":     tb.ColorRed,
	"green":   tb.ColorGreen,
	"yellow":  tb.ColorYellow,
	"blue":    tb.ColorBlue,
	"magenta": tb.ColorMagenta,
	"cyan":    tb.ColorCyan,
	"white":   tb.ColorWhite,
}

// ParseColor looks up a terminal color by name, ignoring case.
func ParseColor(name string) (tb.Attribute, error) {
	c, ok := colors[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}
