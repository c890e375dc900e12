package emu

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Frame is a row-major snapshot of the display; true is a lit pixel.
type Frame [DisplayWidth * DisplayHeight]bool

// At reports whether the pixel at (x, y) is lit.
func (f *Frame) At(x, y int) bool {
	return f[y*DisplayWidth+x]
}

// Display is the 64x32 monochrome frame buffer.
type Display struct {
	pixels Frame
}

// Clear unsets every pixel.
func (d *Display) Clear() {
	d.pixels = Frame{}
}

// Frame returns a copy of the current pixels.
func (d *Display) Frame() Frame {
	return d.pixels
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates wrap.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[index(x, y)]
}

// DrawSprite XORs an 8-pixel-wide sprite onto the display with its top-left
// corner at (x, y). Each byte of sprite is one row, most significant bit
// leftmost. Coordinates wrap around both edges. It reports whether any lit
// pixel was turned off.
func (d *Display) DrawSprite(x, y uint8, sprite []byte) bool {
	collision := false

	for row, bits := range sprite {
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			i := index(int(x)+col, int(y)+row)
			if d.pixels[i] {
				collision = true
			}
			d.pixels[i] = !d.pixels[i]
		}
	}

	return collision
}

func index(x, y int) int {
	return (y%DisplayHeight)*DisplayWidth + x%DisplayWidth
}
