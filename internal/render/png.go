package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
)

// PNGCanvas rasterizes segments with antialiased round-capped strokes.
type PNGCanvas struct {
	dc *gg.Context
}

func NewPNGCanvas(width, height int, bg color.Color) *PNGCanvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	dc.SetLineCapRound()
	return &PNGCanvas{dc: dc}
}

func (c *PNGCanvas) Viewport() Viewport {
	return Viewport{Width: float64(c.dc.Width()), Height: float64(c.dc.Height())}
}

func (c *PNGCanvas) DrawLine(s Segment) {
	c.dc.SetColor(s.Color)
	c.dc.SetLineWidth(s.Width)
	c.dc.DrawLine(s.From.X, s.From.Y, s.To.X, s.To.Y)
	c.dc.Stroke()
}

func (c *PNGCanvas) Image() image.Image { return c.dc.Image() }

func (c *PNGCanvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

func (c *PNGCanvas) SavePNG(path string) error { return c.dc.SavePNG(path) }
