package flick

import (
	"math/rand"

	"github.com/twotone/flick/rgb565"
)

// Palette holds the foreground and background colors applied during
// decode plus an invert flag that swaps their roles. Mutations happen
// only between frames; Sample reads all three at once so a frame never
// mixes two palettes.
type Palette struct {
	fg     uint16
	bg     uint16
	invert bool
}

// NewPalette returns the startup palette, white on black.
func NewPalette() Palette {
	return Palette{fg: rgb565.White, bg: rgb565.Black}
}

// SetForeground sets the color mapped from bit 1.
func (p *Palette) SetForeground(c uint16) {
	p.fg = c
}

// SetBackground sets the color mapped from bit 0.
func (p *Palette) SetBackground(c uint16) {
	p.bg = c
}

// ToggleInvert swaps which bit maps to which color from the next decode
// onward.
func (p *Palette) ToggleInvert() {
	p.invert = !p.invert
}

// Inverted reports whether the palette is inverted.
func (p *Palette) Inverted() bool {
	return p.invert
}

// Sample returns the colors for one decode in one read.
func (p *Palette) Sample() (fg, bg uint16, invert bool) {
	return p.fg, p.bg, p.invert
}

// Background returns the color currently representing emptiness: the
// background, or the foreground while inverted. Rotation-exposed display
// area and the between-pass blank use it.
func (p *Palette) Background() uint16 {
	if p.invert {
		return p.fg
	}
	return p.bg
}

// Randomize picks a contrasting pair: a fully saturated foreground on a
// uniformly random hue, and a dimmer background offset by 120 to 239
// degrees so the two never sit close on the wheel.
func (p *Palette) Randomize(rng *rand.Rand) {
	h1 := uint16(rng.Intn(360))
	h2 := (h1 + 120 + uint16(rng.Intn(120))) % 360
	p.fg = rgb565.FromHSV(h1, 255, 255)
	p.bg = rgb565.FromHSV(h2, 255, 80)
}
