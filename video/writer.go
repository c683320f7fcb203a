package video

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

const maxRun = 0xffff

var (
	errFrameSize = errors.New("video: frame is wrong size")
	errNoFrames  = errors.New("video: no frames")
)

// Encoder builds a video resource from a sequence of frames. Each frame
// is reduced to two tones and run-length encoded as it is added; WriteTo
// then emits the header, frame index and frame data in one pass.
type Encoder struct {
	width  int
	height int
	fps    int
	frames [][]byte
}

// NewEncoder returns an Encoder for the given geometry and frame rate.
func NewEncoder(width, height, fps int) (*Encoder, error) {
	if width <= 0 || width > 0xffff || height <= 0 || height > 0xffff {
		return nil, fmt.Errorf("video: invalid frame size %dx%d", width, height)
	}
	if fps <= 0 || fps > 0xffff {
		return nil, fmt.Errorf("video: invalid frame rate %d", fps)
	}
	return &Encoder{width: width, height: height, fps: fps}, nil
}

// Rec. 601 luma, matching the grayscale conversion of the usual frame
// extraction tools.
func luma(c color.Color) int {
	r, g, b, _ := c.RGBA()
	return (299*int(r>>8) + 587*int(g>>8) + 114*int(b>>8)) / 1000
}

// AddFrame reduces m to two tones and appends its run-length stream.
// The image is quantized down to a two-color palette; pixels whose tone
// is darker than mid-gray encode as bit 1.
func (e *Encoder) AddFrame(m image.Image) error {
	b := m.Bounds()
	if b.Dx() != e.width || b.Dy() != e.height {
		return errFrameSize
	}

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 2), m)

	bits := make([]byte, len(p))
	for i, c := range p {
		if luma(c) < 128 {
			bits[i] = 1
		}
	}

	// First byte is patched to the starting bit once it is known.
	stream := make([]byte, 1, 1+2*e.width)
	var cur byte
	run := 0

	flush := func() {
		for run > maxRun {
			stream = binary.LittleEndian.AppendUint16(stream, maxRun)
			stream = binary.LittleEndian.AppendUint16(stream, 0)
			run -= maxRun
		}
		stream = binary.LittleEndian.AppendUint16(stream, uint16(run))
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			bit := bits[p.Index(m.At(x, y))]
			if run == 0 {
				cur = bit
				stream[0] = bit
			}
			if bit != cur {
				flush()
				cur = bit
				run = 1
			} else {
				run++
			}
		}
	}
	flush()

	e.frames = append(e.frames, stream)
	return nil
}

// Frames returns the number of frames added so far.
func (e *Encoder) Frames() int {
	return len(e.frames)
}

// WriteTo writes the header, frame index and frame data to w. It
// implements io.WriterTo.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	if len(e.frames) == 0 {
		return 0, errNoFrames
	}

	var total int64

	var hdr [headerLen]byte
	binary.LittleEndian.PutUint16(hdr[0:2], uint16(e.width))
	binary.LittleEndian.PutUint16(hdr[2:4], uint16(e.height))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(e.frames)))
	binary.LittleEndian.PutUint16(hdr[8:10], uint16(e.fps))
	binary.LittleEndian.PutUint16(hdr[10:12], 0)

	n, err := w.Write(hdr[:])
	total += int64(n)
	if err != nil {
		return total, err
	}

	index := make([]byte, 4*len(e.frames))
	var off uint64
	for i, f := range e.frames {
		if off > 0xffffffff {
			return total, errors.New("video: frame data exceeds 4 GiB")
		}
		binary.LittleEndian.PutUint32(index[i*4:], uint32(off))
		off += uint64(len(f))
	}

	n, err = w.Write(index)
	total += int64(n)
	if err != nil {
		return total, err
	}

	for _, f := range e.frames {
		n, err = w.Write(f)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
