package video

import (
	"encoding/binary"
	"fmt"
	"io"
)

// LoadError reports a video resource that cannot be used: missing or
// truncated data, or header and index fields that fail validation. It is
// fatal; playback must never continue with partial data.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video: %s: %v", e.Reason, e.Err)
	}
	return "video: " + e.Reason
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Header is the fixed resource header. It is immutable once parsed and
// sizes every buffer used during playback.
type Header struct {
	Width  uint16
	Height uint16
	Frames uint32
	FPS    uint16
	Flags  uint16 // reserved
}

// Pixels returns the number of pixels in one decoded frame.
func (h Header) Pixels() int {
	return int(h.Width) * int(h.Height)
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Reader provides random access to the frames of a video resource. The
// header and frame index are read once at construction; frame data is
// read on demand. A Reader is driven by a single goroutine.
type Reader struct {
	r         io.ReadSeeker
	header    Header
	index     []uint32
	dataStart int64
	dataLen   int64
}

// NewReader parses the header and frame index from r. r is retained for
// frame reads and must stay open for the lifetime of the Reader.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, &LoadError{Reason: "unseekable resource", Err: err}
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, &LoadError{Reason: "unseekable resource", Err: err}
	}

	var buf [headerLen]byte
	if err := readFull(r, buf[:]); err != nil {
		return nil, &LoadError{Reason: "truncated header", Err: err}
	}

	header := Header{
		Width:  binary.LittleEndian.Uint16(buf[0:2]),
		Height: binary.LittleEndian.Uint16(buf[2:4]),
		Frames: binary.LittleEndian.Uint32(buf[4:8]),
		FPS:    binary.LittleEndian.Uint16(buf[8:10]),
		Flags:  binary.LittleEndian.Uint16(buf[10:12]),
	}
	if header.Width == 0 || header.Height == 0 || header.Frames == 0 || header.FPS == 0 {
		return nil, &LoadError{
			Reason: fmt.Sprintf("invalid header: %dx%d, %d frames, %d fps",
				header.Width, header.Height, header.Frames, header.FPS),
		}
	}

	// The index must fit between the header and the end of the resource
	// before anything is sized from it.
	dataStart := int64(headerLen) + int64(header.Frames)*4
	if dataStart > size {
		return nil, &LoadError{Reason: "truncated frame index"}
	}

	index := make([]uint32, header.Frames)
	if err := binary.Read(r, binary.LittleEndian, index); err != nil {
		return nil, &LoadError{Reason: "truncated frame index", Err: err}
	}

	dataLen := size - dataStart
	var prev uint32
	for i, off := range index {
		if off < prev || int64(off) > dataLen {
			return nil, &LoadError{Reason: fmt.Sprintf("invalid offset for frame %d", i)}
		}
		prev = off
	}

	return &Reader{
		r:         r,
		header:    header,
		index:     index,
		dataStart: dataStart,
		dataLen:   dataLen,
	}, nil
}

// Header returns the parsed resource header.
func (r *Reader) Header() Header {
	return r.header
}

// FrameCount returns the number of frames in the resource.
func (r *Reader) FrameCount() int {
	return int(r.header.Frames)
}

// FrameSize returns the encoded length in bytes of frame i.
func (r *Reader) FrameSize(i int) int {
	end := r.dataLen
	if i+1 < len(r.index) {
		end = int64(r.index[i+1])
	}
	return int(end - int64(r.index[i]))
}

// ReadFrame reads the encoded stream of frame i into dst, truncated to
// the capacity of dst, and returns the number of bytes read. A read that
// comes up short surfaces io.ErrUnexpectedEOF; callers treat any read
// error as end of stream, not as a fault.
func (r *Reader) ReadFrame(i int, dst []byte) (int, error) {
	if i < 0 || i >= len(r.index) {
		return 0, &LoadError{Reason: fmt.Sprintf("frame %d out of range", i)}
	}

	n := r.FrameSize(i)
	if n > len(dst) {
		n = len(dst)
	}

	if _, err := r.r.Seek(r.dataStart+int64(r.index[i]), io.SeekStart); err != nil {
		return 0, err
	}

	m, err := io.ReadFull(r.r, dst[:n])
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return m, err
}
