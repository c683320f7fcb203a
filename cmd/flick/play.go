package main

import (
	"context"
	"errors"
	"image/color"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/twotone/flick"
	"github.com/twotone/flick/rgb565"
	"github.com/twotone/flick/video"
	"github.com/urfave/cli/v2"
)

const (
	// longPressTicks is 600ms at the default 60 ticks per second.
	longPressTicks = 36
	glitchFrames   = 8
	rotateStep     = 15.0
)

// displaySurface stages flushed frames as RGBA bytes for the render
// thread. The player converts and publishes under the lock, the draw
// side blits whole frames only, so a presented frame never tears.
type displaySurface struct {
	mu  sync.Mutex
	pix []byte
}

func (s *displaySurface) Flush(pix []uint16, width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pix) != width*height*4 {
		s.pix = make([]byte, width*height*4)
	}
	for i, p := range pix {
		c := rgb565.RGBA(p)
		s.pix[i*4] = c.R
		s.pix[i*4+1] = c.G
		s.pix[i*4+2] = c.B
		s.pix[i*4+3] = 0xff
	}
	return nil
}

func (s *displaySurface) draw(screen *ebiten.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pix != nil {
		screen.WritePixels(s.pix)
	}
}

// game adapts key edges to player events and blits the staged frame.
type game struct {
	player  *flick.Player
	surface *displaySurface
	events  chan<- flick.Event
	done    chan error
	err     error

	width  int
	height int
	angle  float64
}

// send drops the event when the queue is full; the player applies
// whatever it has at the next frame boundary.
func (g *game) send(ev flick.Event) {
	select {
	case g.events <- ev:
	default:
	}
}

func (g *game) Update() error {
	if g.done != nil {
		select {
		case err := <-g.done:
			g.done = nil
			if err != nil && !errors.Is(err, context.Canceled) {
				g.err = err
			}
		default:
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.err != nil {
		// Halted: keep the error on screen until the window closes.
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.send(flick.Event{Control: flick.ControlA, Kind: flick.Press})
	}
	if inpututil.KeyPressDuration(ebiten.KeySpace) == longPressTicks {
		g.send(flick.Event{Control: flick.ControlA, Kind: flick.LongPress})
	}
	if inpututil.IsKeyJustReleased(ebiten.KeySpace) {
		g.send(flick.Event{Control: flick.ControlA, Kind: flick.Release})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.send(flick.Event{Control: flick.ControlB, Kind: flick.Press})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.player.TriggerGlitch(glitchFrames)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.angle -= rotateStep
		g.player.RotateTo(g.angle)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.angle += rotateStep
		g.player.RotateTo(g.angle)
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.err != nil {
		screen.Fill(color.RGBA{R: 0x99, A: 0xff})
		ebitenutil.DebugPrint(screen, g.err.Error())
		return
	}
	g.surface.draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// showError halts into a red screen holding the message until the
// window closes, so a fatal load problem is seen rather than logged
// into the void.
func showError(err error) error {
	ebiten.SetWindowSize(480, 270)
	ebiten.SetWindowTitle("flick: error")
	if rerr := ebiten.RunGame(&game{err: err, width: 240, height: 135}); rerr != nil {
		return cli.Exit(rerr, 1)
	}
	return cli.Exit(err, 1)
}

var playCommand = &cli.Command{
	Name:      "play",
	Usage:     "Play a video resource in a window",
	ArgsUsage: "FILE",
	Description: "Space inverts the palette, holding it pauses, B picks a random\n" +
		"palette, G glitches, the arrow keys rotate, Escape quits.",
	Flags: []cli.Flag{
		&cli.Float64Flag{
			Name:  "angle",
			Usage: "initial rotation in degrees",
		},
		&cli.Float64Flag{
			Name:  "scale",
			Value: 1,
			Usage: "source to display scale factor",
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "display width, 0 follows the video",
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "display height, 0 follows the video",
		},
		&cli.IntFlag{
			Name:  "zoom",
			Value: 2,
			Usage: "window pixels per display pixel",
		},
		&cli.DurationFlag{
			Name:  "hold",
			Usage: "blank time between passes",
		},
		&cli.IntFlag{
			Name:  "glitch",
			Usage: "corrupt the first N frames",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}

		logger := log.New(io.Discard, "", 0)
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}

		f, err := os.Open(c.Args().First())
		if err != nil {
			return showError(err)
		}
		defer f.Close()

		v, err := video.NewReader(f)
		if err != nil {
			return showError(err)
		}
		hdr := v.Header()

		width, height := c.Int("width"), c.Int("height")
		if width == 0 || height == 0 {
			w, h := int(hdr.Width), int(hdr.Height)
			// A sideways start fits better in swapped dimensions.
			if a := math.Mod(math.Abs(c.Float64("angle")), 180); a > 45 && a < 135 {
				w, h = h, w
			}
			if width == 0 {
				width = w
			}
			if height == 0 {
				height = h
			}
		}
		zoom := c.Int("zoom")
		if zoom < 1 {
			zoom = 1
		}

		surface := &displaySurface{}
		events := make(chan flick.Event, 16)

		p, err := flick.New(v, surface, flick.Config{
			Width:  width,
			Height: height,
			Angle:  c.Float64("angle"),
			Scale:  c.Float64("scale"),
			Events: events,
			Hold:   c.Duration("hold"),
			Logger: logger,
		})
		if err != nil {
			return showError(err)
		}
		if n := c.Int("glitch"); n > 0 {
			p.TriggerGlitch(n)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() { done <- p.Run(ctx) }()

		g := &game{
			player:  p,
			surface: surface,
			events:  events,
			done:    done,
			width:   width,
			height:  height,
			angle:   c.Float64("angle"),
		}

		ebiten.SetWindowSize(width*zoom, height*zoom)
		ebiten.SetWindowTitle("flick: " + filepath.Base(c.Args().First()))

		runErr := ebiten.RunGame(g)
		cancel()

		perr := g.err
		if g.done != nil {
			if err := <-g.done; err != nil && !errors.Is(err, context.Canceled) {
				perr = err
			}
		}
		if runErr != nil {
			return cli.Exit(runErr, 1)
		}
		if perr != nil {
			return cli.Exit(perr, 1)
		}

		st := p.Stats()
		logger.Printf("%d frames over %d passes, %d overruns", st.Frames, st.Passes, st.Overruns)

		return nil
	},
}
