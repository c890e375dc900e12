package emu

// NumKeys is the number of keys on the CHIP-8 hex keypad.
const NumKeys = 16

// Keypad holds the 16-key matrix and the keys released by the most recent
// refresh.
type Keypad struct {
	keys     [NumKeys]bool
	released [NumKeys]bool
}

// Set replaces the key matrix. Keys held before and not held now become
// the pending releases; releases from earlier refreshes are dropped.
func (k *Keypad) Set(keys [NumKeys]bool) {
	for i := range keys {
		k.released[i] = k.keys[i] && !keys[i]
	}
	k.keys = keys
}

// Pressed reports whether key is held. Values of 16 and above are never
// pressed.
func (k *Keypad) Pressed(key uint8) bool {
	if int(key) >= NumKeys {
		return false
	}
	return k.keys[key]
}

// TakeReleased returns the lowest released key and clears all pending
// releases.
func (k *Keypad) TakeReleased() (uint8, bool) {
	for i, r := range k.released {
		if r {
			k.released = [NumKeys]bool{}
			return uint8(i), true
		}
	}
	return 0, false
}
