package keypoint

import "math"

// SceneScale is the edge length of the cube 3D points are normalized into.
const SceneScale = 5.0

// Extent is the closed [Min, Max] interval of one axis.
type Extent struct {
	Min float64
	Max float64
}

func (e Extent) Range() float64  { return e.Max - e.Min }
func (e Extent) Center() float64 { return (e.Max + e.Min) / 2 }

// Degenerate reports a zero-width axis (single point or constant value).
func (e Extent) Degenerate() bool { return e.Max == e.Min }

func (e *Extent) include(v float64, first bool) {
	if first {
		e.Min, e.Max = v, v
		return
	}
	if v < e.Min {
		e.Min = v
	}
	if v > e.Max {
		e.Max = v
	}
}

type Bounds2D struct {
	X Extent
	Y Extent
}

type Bounds3D struct {
	X Extent
	Y Extent
	Z Extent
}

// BoundsOf2D returns the per-axis extents; ok is false for no points.
func BoundsOf2D(points []Point2D) (b Bounds2D, ok bool) {
	for i, p := range points {
		b.X.include(p.X, i == 0)
		b.Y.include(p.Y, i == 0)
	}
	return b, len(points) > 0
}

// BoundsOf3D returns the per-axis extents; ok is false for no points.
func BoundsOf3D(points []Point3D) (b Bounds3D, ok bool) {
	for i, p := range points {
		b.X.include(p.X, i == 0)
		b.Y.include(p.Y, i == 0)
		b.Z.include(p.Z, i == 0)
	}
	return b, len(points) > 0
}

// NormalizeValue maps v into [-scale/2, scale/2] around the extent's center.
// A degenerate or non-finite extent maps every value to 0.
func NormalizeValue(v float64, e Extent, scale float64) float64 {
	r := e.Range()
	if r == 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return (v - e.Center()) / r * scale
}

// Normalize3D centers the points on the origin, scales every axis
// independently to scale and flips Y so larger input Y ends up lower.
func Normalize3D(points []Point3D, scale float64) []Point3D {
	b, ok := BoundsOf3D(points)
	if !ok {
		return nil
	}
	out := make([]Point3D, len(points))
	for i, p := range points {
		out[i] = Point3D{
			X: NormalizeValue(p.X, b.X, scale),
			Y: -NormalizeValue(p.Y, b.Y, scale),
			Z: NormalizeValue(p.Z, b.Z, scale),
		}
	}
	return out
}

// Normalize2D is the bounding-box normalization applied to 2D points. The 2D
// renderer does not use it; it scales raw coordinates by the viewport instead.
func Normalize2D(points []Point2D, scale float64) []Point2D {
	b, ok := BoundsOf2D(points)
	if !ok {
		return nil
	}
	out := make([]Point2D, len(points))
	for i, p := range points {
		out[i] = Point2D{X: NormalizeValue(p.X, b.X, scale), Y: NormalizeValue(p.Y, b.Y, scale)}
	}
	return out
}
