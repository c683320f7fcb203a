package video_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twotone/flick/video"
)

const (
	fgTest = uint16(0xaaaa)
	bgTest = uint16(0x5555)
)

func fill(c uint16, n int) []uint16 {
	p := make([]uint16, n)
	for i := range p {
		p[i] = c
	}
	return p
}

func TestDecodeFrame(t *testing.T) {
	tables := []struct {
		name   string
		enc    []byte
		pixels int
		invert bool
		want   []uint16
	}{
		{
			name:   "exact sum",
			enc:    []byte{0x01, 0x05, 0x00, 0x07, 0x00},
			pixels: 12,
			want:   append(fill(fgTest, 5), fill(bgTest, 7)...),
		},
		{
			name:   "exact sum inverted",
			enc:    []byte{0x01, 0x05, 0x00, 0x07, 0x00},
			pixels: 12,
			invert: true,
			want:   append(fill(bgTest, 5), fill(fgTest, 7)...),
		},
		{
			name:   "starting bit zero",
			enc:    []byte{0x00, 0x03, 0x00, 0x02, 0x00},
			pixels: 5,
			want:   append(fill(bgTest, 3), fill(fgTest, 2)...),
		},
		{
			name:   "under-run fills background",
			enc:    []byte{0x01, 0x03, 0x00},
			pixels: 8,
			want:   append(fill(fgTest, 3), fill(bgTest, 5)...),
		},
		{
			name:   "under-run fills post-invert background",
			enc:    []byte{0x01, 0x03, 0x00},
			pixels: 8,
			invert: true,
			want:   append(fill(bgTest, 3), fill(fgTest, 5)...),
		},
		{
			name:   "empty input",
			enc:    nil,
			pixels: 6,
			want:   fill(bgTest, 6),
		},
		{
			name:   "empty input inverted",
			enc:    nil,
			pixels: 6,
			invert: true,
			want:   fill(fgTest, 6),
		},
		{
			name:   "final run clamped",
			enc:    []byte{0x00, 0x02, 0x00, 0xff, 0xff},
			pixels: 6,
			want:   append(fill(bgTest, 2), fill(fgTest, 4)...),
		},
		{
			name:   "zero length run",
			enc:    []byte{0x01, 0x00, 0x00, 0x04, 0x00},
			pixels: 4,
			want:   fill(bgTest, 4),
		},
		{
			name:   "trailing odd byte ignored",
			enc:    []byte{0x01, 0x02, 0x00, 0x09},
			pixels: 5,
			want:   append(fill(fgTest, 2), fill(bgTest, 3)...),
		},
		{
			name:   "runs beyond target ignored",
			enc:    []byte{0x01, 0x04, 0x00, 0x04, 0x00, 0x04, 0x00},
			pixels: 4,
			want:   fill(fgTest, 4),
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			// Poison the buffer so stale content is caught.
			pix := fill(0xdead, table.pixels)
			video.DecodeFrame(table.enc, pix, fgTest, bgTest, table.invert)
			assert.Equal(t, table.want, pix)
		})
	}
}

// TestDecodeFrameVector runs the reference resource end to end: a 64x48
// frame whose stream covers only 24 of 3072 pixels.
func TestDecodeFrameVector(t *testing.T) {
	raw := buildResource(t, 64, 48, 10, [][]byte{
		{0x00, 0x0c, 0x00, 0x0c, 0x00},
		{0x01, 0x00, 0x0c},
	})

	r, err := video.NewReader(bytes.NewReader(raw))
	require.NoError(t, err)

	enc := make([]byte, video.MaxEncodedFrame)
	n, err := r.ReadFrame(0, enc)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	pix := fill(0xdead, r.Header().Pixels())
	video.DecodeFrame(enc[:n], pix, fgTest, bgTest, false)

	for i, p := range pix {
		var want uint16
		switch {
		case i < 12:
			want = bgTest
		case i < 24:
			want = fgTest
		default:
			want = bgTest
		}
		require.Equalf(t, want, p, "pixel %d", i)
	}
}

func TestDecodeFrameNoOverflow(t *testing.T) {
	// A stream declaring far more pixels than the target must stay
	// inside the buffers handed to it.
	enc := []byte{0x01, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	guard := fill(0xbeef, 4+8)
	pix := guard[4 : 4+4 : 4+4]

	video.DecodeFrame(enc, pix, fgTest, bgTest, false)

	assert.Equal(t, fill(fgTest, 4), pix)
	assert.Equal(t, fill(0xbeef, 4), guard[:4])
	assert.Equal(t, fill(0xbeef, 4), guard[8:])
}

func BenchmarkDecodeFrame(b *testing.B) {
	// A typical mid-detail frame: alternating 45 pixel runs across a
	// 240x135 frame.
	pixels := 240 * 135
	enc := []byte{0x00}
	for covered := 0; covered < pixels; covered += 45 {
		enc = append(enc, 45, 0x00)
	}
	pix := make([]uint16, pixels)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		video.DecodeFrame(enc, pix, fgTest, bgTest, i&1 == 0)
	}
}
