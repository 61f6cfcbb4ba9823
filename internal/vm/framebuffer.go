package vm

import (
	"math/bits"
)

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Framebuffer is the monochrome display. Each row is a 64-bit word with
// column 0 in the most significant bit.
type Framebuffer [Height]uint64

// Pixel returns whether the pixel at column x and row y is lit.
// Coordinates outside of the display are never lit.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f[y]>>(Width-1-x)&1 == 1
}

// Lit returns the number of lit pixels.
func (f *Framebuffer) Lit() int {
	n := 0
	for _, row := range f {
		n += bits.OnesCount64(row)
	}
	return n
}

// drawRow XORs an 8 pixel sprite row onto display row y starting at column
// x, wrapping around the right edge. It returns true if a lit pixel was
// turned off.
func (f *Framebuffer) drawRow(x, y int, sprite byte) bool {
	mask := bits.RotateLeft64(uint64(sprite)<<(Width-8), -x)
	row := y % Height
	collision := f[row]&mask != 0
	f[row] ^= mask
	return collision
}
