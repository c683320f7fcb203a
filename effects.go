package flick

import "math/rand"

const (
	angleSmoothing = 0.25
	glitchDensity  = 8 // one pixel in eight flips per burst
)

// Glitch corrupts pix in place, flipping roughly one in eight pixels by
// XOR. Bursts may hit the same pixel twice and cancel out; the effect is
// cosmetic and heals on the next decode.
func Glitch(pix []uint16, rng *rand.Rand) {
	for i := 0; i < len(pix)/glitchDensity; i++ {
		pix[rng.Intn(len(pix))] ^= 0xffff
	}
}

// smoothAngle advances current a quarter of the way toward target along
// the shortest arc, normalized to [0,360).
func smoothAngle(current, target float64) float64 {
	diff := target - current
	for diff > 180 {
		diff -= 360
	}
	for diff < -180 {
		diff += 360
	}

	current += diff * angleSmoothing
	for current >= 360 {
		current -= 360
	}
	for current < 0 {
		current += 360
	}
	return current
}
