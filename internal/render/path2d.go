package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"keypointview/internal/keypoint"
)

// LineWidth is the stroke width of 2D path segments.
const LineWidth = 2.0

// ScreenPoint maps a roughly [-1,1] point onto the viewport: the viewport
// center plus the coordinate times half the viewport size times zoom.
func ScreenPoint(p keypoint.Point2D, zoom float64, vp Viewport) Point {
	c := vp.Center()
	return Point{
		X: c.X + p.X*(vp.Width/2)*zoom,
		Y: c.Y + p.Y*(vp.Height/2)*zoom,
	}
}

// SegmentColor is the red-to-green gradient colour of segment i on a path of
// n points.
func SegmentColor(i, n int) colorful.Color {
	if n <= 0 {
		return colorful.Color{G: 1}
	}
	t := float64(i) / float64(n)
	return colorful.Color{R: t, G: 1 - t, B: 0}
}

// Segments2D connects consecutive points. Fewer than two points yield none.
func Segments2D(points []keypoint.Point2D, zoom float64, vp Viewport) []Segment {
	if len(points) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		out = append(out, Segment{
			From:  ScreenPoint(points[i], zoom, vp),
			To:    ScreenPoint(points[i+1], zoom, vp),
			Color: SegmentColor(i, len(points)),
			Width: LineWidth,
		})
	}
	return out
}

// Render2D draws the 2D path onto c and returns the number of segments drawn.
func Render2D(c Canvas, points []keypoint.Point2D, zoom float64, vp Viewport) int {
	segs := Segments2D(points, zoom, vp)
	for _, s := range segs {
		c.DrawLine(s)
	}
	return len(segs)
}
