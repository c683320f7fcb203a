package flick

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twotone/flick/video"
)

func TestExportFrames(t *testing.T) {
	frames := [][]byte{
		{0x01, 0x10, 0x00},             // all foreground
		nil,                            // all background
		{0x00, 0x08, 0x00, 0x08, 0x00}, // top half background
	}
	v := buildVideo(t, 4, 4, 10, frames)
	dir := t.TempDir()

	require.NoError(t, ExportFrames(v, dir, nil))

	at := func(frame, x, y int) (r, g, b uint32) {
		f, err := os.Open(filepath.Join(dir, fmt.Sprintf("frame-%05d.png", frame)))
		require.NoError(t, err)
		defer f.Close()

		img, err := png.Decode(f)
		require.NoError(t, err)
		require.Equal(t, 4, img.Bounds().Dx())
		require.Equal(t, 4, img.Bounds().Dy())

		r, g, b, _ = img.At(x, y).RGBA()
		return r >> 8, g >> 8, b >> 8
	}

	r, g, b := at(0, 0, 0)
	assert.Equal(t, [3]uint32{255, 255, 255}, [3]uint32{r, g, b})

	r, g, b = at(1, 2, 2)
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})

	// Frame 2 runs 8 background pixels then 8 foreground: rows 0-1
	// dark, rows 2-3 light.
	r, g, b = at(2, 3, 0)
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})
	r, g, b = at(2, 0, 2)
	assert.Equal(t, [3]uint32{255, 255, 255}, [3]uint32{r, g, b})
}

func TestExportFramesBadDir(t *testing.T) {
	v := buildVideo(t, 4, 4, 10, [][]byte{nil})

	occupied := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(occupied, []byte("x"), 0o644))

	assert.Error(t, ExportFrames(v, occupied, nil))
}

func TestExportFramesReadError(t *testing.T) {
	frames := [][]byte{{0x01, 0x10, 0x00}, {0x00, 0x08, 0x00, 0x08, 0x00}}
	raw := buildResource(4, 4, 10, frames)
	sr := &shrinkReader{data: raw, limit: len(raw)}
	v, err := video.NewReader(sr)
	require.NoError(t, err)

	// The index parsed against the full size; the last frame is now
	// short and the export must surface that rather than report success.
	sr.shrink(len(raw) - 2)
	assert.Error(t, ExportFrames(v, t.TempDir(), nil))
}
