package flick

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmoothAngle(t *testing.T) {
	tables := []struct {
		name     string
		current  float64
		target   float64
		expected float64
	}{
		{"settled", 90, 90, 90},
		{"quarter step", 0, 90, 22.5},
		{"half circle", 0, 180, 45},
		{"wraps forward through zero", 350, 10, 355},
		{"wraps backward through zero", 10, 350, 5},
		{"short way past half", 0, 181, 315.25},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.InDelta(t, table.expected, smoothAngle(table.current, table.target), 1e-9)
		})
	}
}

func TestSmoothAngleConverges(t *testing.T) {
	a := 350.0
	for i := 0; i < 200; i++ {
		a = smoothAngle(a, 10)
	}
	assert.InDelta(t, 10, a, 1e-6)
}

func TestGlitch(t *testing.T) {
	pix := make([]uint16, 64)
	echo := make([]uint16, 64)

	Glitch(pix, rand.New(rand.NewSource(3)))

	// Same seed, same burst: the effect is nothing more than XOR at
	// rng-chosen positions.
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < len(echo)/glitchDensity; i++ {
		echo[rng.Intn(len(echo))] ^= 0xffff
	}
	assert.Equal(t, echo, pix)

	changed := 0
	for _, p := range pix {
		if p != 0 {
			changed++
		}
	}
	assert.LessOrEqual(t, changed, len(pix)/glitchDensity)
}

func TestGlitchSmallBuffers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.NotPanics(t, func() { Glitch(nil, rng) })

	pix := []uint16{1, 2, 3}
	Glitch(pix, rng)
	assert.Equal(t, []uint16{1, 2, 3}, pix, "buffers under one burst unit stay untouched")
}
