package tui

import (
	"math"
	"strings"

	"keypointview/internal/render"
)

// brailleCanvas rasterizes render segments onto the braille microgrid. Its
// viewport is measured in micro-pixels.
type brailleCanvas struct {
	buf *brailleBuf
}

func newBrailleCanvas(w, h int) *brailleCanvas {
	return &brailleCanvas{buf: newBrailleBuf(w, h)}
}

func (c *brailleCanvas) Viewport() render.Viewport {
	w, h := c.buf.microSize()
	return render.Viewport{Width: float64(w), Height: float64(h)}
}

func (c *brailleCanvas) DrawLine(s render.Segment) {
	w, h := c.buf.microSize()
	a, b, ok := clipSegment(s.From, s.To, float64(w-1), float64(h-1))
	if !ok {
		return
	}
	c.buf.drawLineMicro(int(math.Round(a.X)), int(math.Round(a.Y)), int(math.Round(b.X)), int(math.Round(b.Y)), s.Color.Clamped().Hex())
}

func (c *brailleCanvas) String() string { return strings.Join(c.buf.toLines(), "\n") }

// clipSegment trims ab to the rectangle [0,maxX]x[0,maxY] (Liang-Barsky).
func clipSegment(a, b render.Point, maxX, maxY float64) (render.Point, render.Point, bool) {
	for _, v := range []float64{a.X, a.Y, b.X, b.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return a, b, false
		}
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X},
		{dx, maxX - a.X},
		{-dy, a.Y},
		{dy, maxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return render.Point{X: a.X + t0*dx, Y: a.Y + t0*dy}, render.Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}

// renderCanvas draws the session's active mode into a w x h cell canvas.
func (m Model) renderCanvas(w, h int) string {
	c := newBrailleCanvas(w, h)
	m.sess.Render(c, c.Viewport(), m.yaw)
	return c.String()
}
