// Package render turns projected keypoints into line primitives and a 3D
// scene of tubes, and draws those primitives onto canvases.
package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Point is a position on a drawing surface, origin top-left, y down.
type Point struct {
	X float64
	Y float64
}

// Segment is one stroked line.
type Segment struct {
	From  Point
	To    Point
	Color colorful.Color
	Width float64
}

// Viewport is the size of the drawing surface in its own units.
type Viewport struct {
	Width  float64
	Height float64
}

func (v Viewport) Center() Point { return Point{X: v.Width / 2, Y: v.Height / 2} }

// Canvas receives line primitives.
type Canvas interface {
	DrawLine(s Segment)
}

// Recorder is a Canvas that keeps every segment it is given.
type Recorder struct {
	Segments []Segment
}

func (r *Recorder) DrawLine(s Segment) { r.Segments = append(r.Segments, s) }

// Reset drops recorded segments but keeps the backing array.
func (r *Recorder) Reset() { r.Segments = r.Segments[:0] }
