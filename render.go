package flick

import "math"

// Surface is the presentation collaborator: one atomic rectangular blit
// of a completed frame. Implementations must not retain pix past the
// call.
type Surface interface {
	Flush(pix []uint16, width, height int) error
}

// Renderer composes decoded frames onto an off-screen display buffer and
// presents it in a single flush, so a partial frame can never become
// visible.
type Renderer struct {
	surface Surface
	width   int
	height  int
	buf     []uint16
}

// NewRenderer allocates the display buffer once; Compose and Present
// reuse it for every frame.
func NewRenderer(surface Surface, width, height int) *Renderer {
	return &Renderer{
		surface: surface,
		width:   width,
		height:  height,
		buf:     make([]uint16, width*height),
	}
}

// Clear fills the display buffer with c.
func (r *Renderer) Clear(c uint16) {
	for i := range r.buf {
		r.buf[i] = c
	}
}

// Compose draws src, srcW by srcH, rotated clockwise by angle degrees,
// scaled, and centered on the display midpoint. Display area the source
// does not cover is filled with bg. Each display pixel is carried back
// into source space and sampled nearest, so any angle and scale compose
// without seams or overdraw.
func (r *Renderer) Compose(src []uint16, srcW, srcH int, angle, scale float64, bg uint16) {
	if scale <= 0 {
		scale = 1
	}

	rad := angle * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	inv := 1 / scale

	cx, cy := float64(r.width)/2, float64(r.height)/2
	scx, scy := float64(srcW)/2, float64(srcH)/2

	for y := 0; y < r.height; y++ {
		dy := float64(y) + 0.5 - cy
		for x := 0; x < r.width; x++ {
			dx := float64(x) + 0.5 - cx

			sx := (dx*cos+dy*sin)*inv + scx
			sy := (-dx*sin+dy*cos)*inv + scy

			c := bg
			if sx >= 0 && sy >= 0 {
				ix, iy := int(sx), int(sy)
				if ix < srcW && iy < srcH {
					c = src[iy*srcW+ix]
				}
			}
			r.buf[y*r.width+x] = c
		}
	}
}

// Present flushes the composed buffer to the surface.
func (r *Renderer) Present() error {
	return r.surface.Flush(r.buf, r.width, r.height)
}
