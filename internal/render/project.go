package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// nearPlane is the closest depth in front of the camera that is drawn.
const nearPlane = 0.01

// Project draws the scene's tubes as lines seen from its camera, looking down
// -Z with a FieldOfView vertical opening. yaw turns the model about the world
// Y axis (radians) before projection. Segments crossing the near plane are
// clipped; tubes entirely behind it are skipped.
func Project(s *Scene, vp Viewport, yaw float64) []Segment {
	if len(s.tubes) == 0 || vp.Width <= 0 || vp.Height <= 0 {
		return nil
	}
	spin := r3.NewRotation(yaw, r3.Vec{Y: 1})
	cam := s.camera.Position
	focal := (vp.Height / 2) / math.Tan(FieldOfView*math.Pi/360)
	c := vp.Center()
	toScreen := func(v r3.Vec) Point {
		depth := -v.Z
		return Point{X: c.X + focal*v.X/depth, Y: c.Y - focal*v.Y/depth}
	}
	out := make([]Segment, 0, len(s.tubes))
	for _, t := range s.tubes {
		a, b := t.Ends()
		a = r3.Sub(spin.Rotate(a), cam)
		b = r3.Sub(spin.Rotate(b), cam)
		a, b, ok := clipNear(a, b)
		if !ok {
			continue
		}
		out = append(out, Segment{From: toScreen(a), To: toScreen(b), Color: t.Color, Width: LineWidth})
	}
	return out
}

// clipNear trims the camera-space segment ab to the part in front of the
// near plane.
func clipNear(a, b r3.Vec) (r3.Vec, r3.Vec, bool) {
	da, db := -a.Z, -b.Z
	switch {
	case da < nearPlane && db < nearPlane:
		return a, b, false
	case da < nearPlane:
		t := (nearPlane - da) / (db - da)
		a = r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
	case db < nearPlane:
		t := (nearPlane - db) / (da - db)
		b = r3.Add(b, r3.Scale(t, r3.Sub(a, b)))
	}
	return a, b, true
}

// Render3D draws the projected scene onto c and returns the segment count.
func Render3D(c Canvas, s *Scene, vp Viewport, yaw float64) int {
	segs := Project(s, vp, yaw)
	for _, seg := range segs {
		c.DrawLine(seg)
	}
	return len(segs)
}
