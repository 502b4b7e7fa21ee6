package render

import (
	"reflect"
	"testing"

	"keypointview/internal/keypoint"
)

func TestScreenPointScenario(t *testing.T) {
	got := ScreenPoint(keypoint.Point2D{X: 0.5, Y: -0.5}, 2, Viewport{Width: 100, Height: 100})
	if got != (Point{X: 100, Y: 0}) {
		t.Fatalf("ScreenPoint = %+v, want (100, 0)", got)
	}
}

func TestSegments2DCount(t *testing.T) {
	vp := Viewport{Width: 640, Height: 480}
	for n := 0; n < 8; n++ {
		pts := make([]keypoint.Point2D, n)
		for i := range pts {
			pts[i] = keypoint.Point2D{X: float64(i) / 10, Y: -float64(i) / 10}
		}
		var rec Recorder
		drawn := Render2D(&rec, pts, 3, vp)
		want := n - 1
		if n < 2 {
			want = 0
		}
		if drawn != want || len(rec.Segments) != want {
			t.Errorf("n=%d: drew %d (recorded %d), want %d", n, drawn, len(rec.Segments), want)
		}
	}
}

func TestSegments2DGradient(t *testing.T) {
	pts := []keypoint.Point2D{{X: 0, Y: 0}, {X: 0.1, Y: 0}, {X: 0.2, Y: 0}, {X: 0.3, Y: 0}}
	segs := Segments2D(pts, 1, Viewport{Width: 10, Height: 10})
	for i, s := range segs {
		wantR := float64(i) / 4
		if s.Color.R != wantR || s.Color.G != 1-wantR || s.Color.B != 0 {
			t.Errorf("segment %d colour = %+v", i, s.Color)
		}
		if s.Width != LineWidth {
			t.Errorf("segment %d width = %v", i, s.Width)
		}
	}
	if segs[0].To != segs[1].From {
		t.Errorf("segments are not connected: %+v -> %+v", segs[0].To, segs[1].From)
	}
}

func TestRender2DIdempotent(t *testing.T) {
	pts := []keypoint.Point2D{{X: -0.2, Y: 0.1}, {X: 0.3, Y: 0.3}, {X: 0.1, Y: -0.4}}
	vp := Viewport{Width: 200, Height: 120}
	var a, b Recorder
	Render2D(&a, pts, 2.5, vp)
	Render2D(&b, pts, 2.5, vp)
	if !reflect.DeepEqual(a.Segments, b.Segments) {
		t.Fatalf("renders differ:\n%+v\n%+v", a.Segments, b.Segments)
	}
	b.Reset()
	Render2D(&b, pts, 2.5, vp)
	if !reflect.DeepEqual(a.Segments, b.Segments) {
		t.Fatal("render after Reset differs")
	}
}

func TestZoomScalesAroundCenter(t *testing.T) {
	vp := Viewport{Width: 100, Height: 100}
	p := keypoint.Point2D{X: 0.2, Y: 0.4}
	if got := ScreenPoint(p, 0, vp); got != vp.Center() {
		t.Errorf("zoom 0 should collapse to center, got %+v", got)
	}
	a := ScreenPoint(p, 1, vp)
	b := ScreenPoint(p, 2, vp)
	if b.X-50 != 2*(a.X-50) || b.Y-50 != 2*(a.Y-50) {
		t.Errorf("zoom not linear: %+v %+v", a, b)
	}
}
