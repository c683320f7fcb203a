package flick

import (
	"context"
	"math"

	"github.com/twotone/flick/video"
)

// State is the playback mode.
type State uint8

const (
	Playing State = iota
	Paused
	Done
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Done:
		return "done"
	}
	return "unknown"
}

// Run plays the resource until ctx is done, looping passes with a
// blanked hold between them. The calling goroutine owns all playback
// state; events and the atomic controls are folded in only at frame
// boundaries.
func (p *Player) Run(ctx context.Context) error {
	for {
		if err := p.playPass(ctx); err != nil {
			return err
		}

		p.stats.Passes++
		p.logger.Printf("pass %d: %d frames presented, %d overruns",
			p.stats.Passes, p.stats.Frames, p.stats.Overruns)

		p.renderer.Clear(p.palette.Background())
		if err := p.renderer.Present(); err != nil {
			return err
		}

		select {
		case <-p.clock.After(p.hold):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// playPass plays frames 0..N-1 once, ending early on a short read.
func (p *Player) playPass(ctx context.Context) error {
	p.state = Playing

	for p.frame = 0; p.frame < p.video.FrameCount(); p.frame++ {
		done, err := p.step(ctx)
		if err != nil {
			return err
		}
		if done {
			break
		}
	}

	p.state = Done
	return nil
}

// step runs one frame: events, pause, fetch, decode, compose, present,
// pace. It reports whether the pass ended early.
func (p *Player) step(ctx context.Context) (bool, error) {
	start := p.clock.Now()

	p.drainEvents()
	if p.state == Paused {
		if err := p.waitResume(ctx); err != nil {
			return false, err
		}
		// Paused time never counts against the frame budget.
		start = p.clock.Now()
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	n, err := p.video.ReadFrame(p.frame, p.enc)
	if err != nil {
		p.logger.Printf("frame %d: end of stream: %v", p.frame, err)
		return true, nil
	}

	fg, bg, invert := p.palette.Sample()
	video.DecodeFrame(p.enc[:n], p.pix, fg, bg, invert)

	if g := p.glitch.Load(); g > 0 {
		Glitch(p.pix, p.rng)
		p.glitch.Store(g - 1)
	}

	hdr := p.video.Header()
	p.angle = smoothAngle(p.angle, math.Float64frombits(p.target.Load()))
	p.renderer.Compose(p.pix, int(hdr.Width), int(hdr.Height), p.angle, p.scale, p.palette.Background())
	if err := p.renderer.Present(); err != nil {
		return false, err
	}
	p.stats.Frames++

	elapsed := p.clock.Now().Sub(start)
	switch {
	case elapsed < p.budget:
		select {
		case <-p.clock.After(p.budget - elapsed):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	case elapsed > p.budget:
		// No sleep and no catch-up; the cadence drifts.
		p.stats.Overruns++
	}

	return false, nil
}

// drainEvents applies every queued input edge without blocking.
func (p *Player) drainEvents() {
	if p.events == nil {
		return
	}
	for {
		select {
		case ev := <-p.events:
			p.apply(ev)
		default:
			return
		}
	}
}

// waitResume blocks until an event resumes playback or ctx ends. The
// channel wait wakes on the first edge, so pause exits promptly without
// polling.
func (p *Player) waitResume(ctx context.Context) error {
	for p.state == Paused {
		if p.events == nil {
			p.state = Playing
			return nil
		}
		select {
		case ev := <-p.events:
			p.apply(ev)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// apply folds one input edge into palette and playback state.
func (p *Player) apply(ev Event) {
	switch {
	case ev.Control == ControlA && ev.Kind == LongPress:
		p.aConsumed = true
		switch p.state {
		case Playing:
			p.state = Paused
			p.logger.Printf("paused at frame %d", p.frame)
		case Paused:
			p.state = Playing
			p.logger.Printf("resumed at frame %d", p.frame)
		}
	case ev.Control == ControlA && ev.Kind == Release:
		if !p.aConsumed {
			p.palette.ToggleInvert()
			p.logger.Printf("invert: %v", p.palette.Inverted())
		}
		p.aConsumed = false
	case ev.Control == ControlB && ev.Kind == Press:
		p.palette.Randomize(p.rng)
	}
}

// Stats returns the playback counters. Read them from the playback
// goroutine or after Run has returned.
func (p *Player) Stats() Stats {
	return p.stats
}

// RotateTo steers the presentation toward a new angle in degrees. The
// transition is smoothed over the following frames. Safe to call from
// any goroutine.
func (p *Player) RotateTo(deg float64) {
	p.target.Store(math.Float64bits(deg))
}

// TriggerGlitch corrupts the next n decoded frames for a transient
// visual glitch. Safe to call from any goroutine.
func (p *Player) TriggerGlitch(n int) {
	p.glitch.Store(int32(n))
}
