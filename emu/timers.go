package emu

// Timers holds the delay and sound timers. Both count down once per cycle.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements each non-zero timer by one. It reports a beep when the
// sound timer goes from 1 to 0.
func (t *Timers) Tick() (beep bool) {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		beep = t.Sound == 1
		t.Sound--
	}
	return beep
}
