/*
Package flick is a playback engine for two-tone run-length encoded video
on small fixed-resolution displays.

The engine reads frames from a video.Reader, decodes them through the
active palette into a reused pixel buffer, composes them onto an
off-screen display buffer with arbitrary rotation and scale, and presents
the result through a Surface under real-time pacing. Every buffer is
sized once from the resource header; the per-frame path allocates
nothing. Control events arrive on a channel and are applied only at
frame boundaries, so palette and playback state never change mid-frame.
*/
package flick

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/twotone/flick/video"
)

const (
	// DefaultMemoryBudget bounds the bytes of index and pixel buffers
	// derived from a resource header before playback refuses to start.
	DefaultMemoryBudget = 16 << 20

	// DefaultHold is how long the blanked display is held between
	// playback passes.
	DefaultHold = time.Second
)

// AllocationError reports buffer demands beyond the memory budget. It is
// fatal: the caller must halt visibly rather than play with partial
// buffers.
type AllocationError struct {
	Need   int64
	Budget int64
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("flick: %d buffer bytes exceed budget of %d", e.Need, e.Budget)
}

// Config carries the collaborators and geometry for a Player. Zero
// values select working defaults where noted.
type Config struct {
	// Width and Height define the display surface in pixels.
	Width  int
	Height int

	// Angle and Scale set the initial presentation transform, in
	// degrees and as a multiplier. A zero Scale means 1.0.
	Angle float64
	Scale float64

	// Events delivers pre-resolved input edges. The player drains it at
	// frame boundaries; senders should drop rather than block when it
	// is full. May be nil for unattended playback.
	Events <-chan Event

	// FrameCapacity caps the bytes fetched for one encoded frame.
	// Longer frames are truncated, a defined degrade. Zero selects
	// video.MaxEncodedFrame.
	FrameCapacity int

	// MemoryBudget bounds the derived allocations. Zero selects
	// DefaultMemoryBudget.
	MemoryBudget int

	// Hold is the blank time between passes. Zero selects DefaultHold.
	Hold time.Duration

	Clock  Clock       // nil selects the system clock
	Rand   *rand.Rand  // nil selects a time-seeded source
	Logger *log.Logger // nil discards
}

// Stats are playback counters accumulated across passes.
type Stats struct {
	Frames   uint64 // frames presented
	Passes   uint64 // completed passes
	Overruns uint64 // frames that blew their time budget
}

// Player owns the playback state machine: palette, playback position,
// presentation transform and the fixed frame buffers. All mutable state
// is confined to the goroutine running Run; the only exceptions are the
// atomic controls RotateTo and TriggerGlitch.
type Player struct {
	video    *video.Reader
	renderer *Renderer
	clock    Clock
	rng      *rand.Rand
	logger   *log.Logger
	events   <-chan Event

	palette Palette
	state   State
	frame   int
	budget  time.Duration
	hold    time.Duration

	angle float64
	scale float64

	enc []byte
	pix []uint16

	// A long press on ControlA consumes the eventual release so one
	// gesture never both pauses and inverts.
	aConsumed bool

	target atomic.Uint64 // rotation target, float64 bits
	glitch atomic.Int32  // frames of glitch left to apply

	stats Stats
}

// New builds a Player for v presenting on surface. Every allocation the
// player will ever make happens here, so sizing problems surface before
// playback, never during it.
func New(v *video.Reader, surface Surface, cfg Config) (*Player, error) {
	if v == nil {
		return nil, errors.New("flick: nil video")
	}
	if surface == nil {
		return nil, errors.New("flick: nil surface")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("flick: invalid display size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FrameCapacity < 0 {
		return nil, fmt.Errorf("flick: invalid frame capacity %d", cfg.FrameCapacity)
	}

	hdr := v.Header()

	capacity := cfg.FrameCapacity
	if capacity == 0 {
		capacity = video.MaxEncodedFrame
	}
	budget := cfg.MemoryBudget
	if budget == 0 {
		budget = DefaultMemoryBudget
	}

	need := int64(hdr.Frames)*4 + int64(capacity) +
		int64(hdr.Pixels())*2 + int64(cfg.Width)*int64(cfg.Height)*2
	if need > int64(budget) {
		return nil, &AllocationError{Need: need, Budget: int64(budget)}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	scale := cfg.Scale
	if scale == 0 {
		scale = 1
	}
	hold := cfg.Hold
	if hold == 0 {
		hold = DefaultHold
	}

	p := &Player{
		video:    v,
		renderer: NewRenderer(surface, cfg.Width, cfg.Height),
		clock:    clock,
		rng:      rng,
		logger:   logger,
		events:   cfg.Events,
		palette:  NewPalette(),
		budget:   time.Second / time.Duration(hdr.FPS),
		hold:     hold,
		angle:    cfg.Angle,
		scale:    scale,
		enc:      make([]byte, capacity),
		pix:      make([]uint16, hdr.Pixels()),
	}
	p.target.Store(math.Float64bits(cfg.Angle))

	logger.Printf("video: %dx%d, %d frames, %d fps", hdr.Width, hdr.Height, hdr.Frames, hdr.FPS)

	return p, nil
}
