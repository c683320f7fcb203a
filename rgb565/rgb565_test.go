package rgb565

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack(t *testing.T) {
	tables := []struct {
		r, g, b uint8
		packed  uint16
	}{
		{0x00, 0x00, 0x00, 0x0000},
		{0xff, 0xff, 0xff, 0xffff},
		{0xff, 0x00, 0x00, 0xf800},
		{0x00, 0xff, 0x00, 0x07e0},
		{0x00, 0x00, 0xff, 0x001f},
		{0x08, 0x04, 0x08, 0x0821}, // lowest non-zero step per channel
		{0x07, 0x03, 0x07, 0x0000}, // below the quantization step
	}

	for _, table := range tables {
		assert.Equal(t, table.packed, Pack(table.r, table.g, table.b))
	}
}

func TestFromColor(t *testing.T) {
	assert.Equal(t, White, FromColor(color.RGBA{0xff, 0xff, 0xff, 0xff}))
	assert.Equal(t, Black, FromColor(color.RGBA{0x00, 0x00, 0x00, 0xff}))
	assert.Equal(t, uint16(0xf800), FromColor(color.RGBA{0xff, 0x00, 0x00, 0xff}))
}

func TestRGBA(t *testing.T) {
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, RGBA(0xffff))
	assert.Equal(t, color.RGBA{0x00, 0x00, 0x00, 0xff}, RGBA(0x0000))
	assert.Equal(t, color.RGBA{0xff, 0x00, 0x00, 0xff}, RGBA(0xf800))

	// Expanding and repacking is lossless for every packed value.
	for p := 0; p <= 0xffff; p++ {
		c := RGBA(uint16(p))
		require.Equal(t, uint16(p), Pack(c.R, c.G, c.B))
	}
}

func TestFromHSV(t *testing.T) {
	tables := []struct {
		name    string
		h       uint16
		s, v    uint8
		packed  uint16
	}{
		{"red", 0, 255, 255, 0xf800},
		{"green", 120, 255, 255, 0x07e0},
		{"blue", 240, 255, 255, 0x001f},
		{"wrapped red", 360, 255, 255, 0xf800},
		{"black", 200, 255, 0, 0x0000},
		{"dim red", 0, 255, 80, 0x5000},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.packed, FromHSV(table.h, table.s, table.v))
		})
	}
}

func TestFromHSVSectorBoundary(t *testing.T) {
	// Crossing from sector 0 into sector 1 must not jump by more than
	// the channel quantization.
	a := RGBA(FromHSV(59, 255, 255))
	b := RGBA(FromHSV(60, 255, 255))

	for _, d := range []int{
		int(a.R) - int(b.R),
		int(a.G) - int(b.G),
		int(a.B) - int(b.B),
	} {
		if d < 0 {
			d = -d
		}
		assert.LessOrEqual(t, d, 8)
	}
}
