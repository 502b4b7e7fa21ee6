package session

import (
	"bytes"
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"keypointview/internal/keypoint"
	"keypointview/internal/logging"
	"keypointview/internal/render"
	"keypointview/internal/source"
)

func testSources() source.Memory {
	return source.Memory{
		"flat":    []byte(`[{"id": 2, "keypoints": [0.5, 0.5]}, {"id": 0, "keypoints": [0, 0]}, {"id": 1, "keypoints": [-0.5, 0.25]}]`),
		"space":   []byte(`[{"id": 1, "keypoints": [0, 0, 0]}, {"id": 0, "keypoints": [2, 2, 2]}, {"id": 2, "keypoints": [1, 1]}]`),
		"short":   []byte(`[{"id": 0, "keypoints": [1]}, {"id": 1, "keypoints": [1, 2]}, {"id": 2, "keypoints": [3, 4]}]`),
		"broken":  []byte(`[{"id": 0, "keypoints": [1, 2]`),
		"csv":     []byte("id,x,y,z\n1,0,0,0\n0,1,1,1\n"),
		"mixed3d": []byte(`[{"id": 0, "keypoints": [0, 0, 0]}, {"keypoints": [1, 1, 1]}, {"id": 2, "keypoints": [1, 1, 1]}]`),
	}
}

func TestLoadAndProject2D(t *testing.T) {
	p, err := LoadAndProject(context.Background(), testSources(), "flat", keypoint.Mode2D, keypoint.FailFast, nil)
	if err != nil {
		t.Fatalf("LoadAndProject: %v", err)
	}
	want := []keypoint.Point2D{{X: 0, Y: 0}, {X: -0.5, Y: 0.25}, {X: 0.5, Y: 0.5}}
	if !reflect.DeepEqual(p.Points2D, want) {
		t.Errorf("points = %+v, want %+v", p.Points2D, want)
	}
	if p.Len() != 3 || p.Records[0].ID != 0 {
		t.Errorf("projection = %+v", p)
	}
}

func TestLoadAndProject3D(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, -8)
	p, err := LoadAndProject(context.Background(), testSources(), "space", keypoint.Mode3D, keypoint.SkipInvalid, log)
	if err != nil {
		t.Fatalf("LoadAndProject: %v", err)
	}
	if len(p.Raw3D) != 2 || p.Raw3D[0] != (keypoint.Point3D{X: 2, Y: 2, Z: 2}) {
		t.Fatalf("raw = %+v", p.Raw3D)
	}
	if p.Points3D[0] != (keypoint.Point3D{X: 2.5, Y: -2.5, Z: 2.5}) || p.Points3D[1] != (keypoint.Point3D{X: -2.5, Y: 2.5, Z: -2.5}) {
		t.Errorf("normalized = %+v", p.Points3D)
	}
	if len(p.Report.Dropped) != 1 {
		t.Errorf("dropped = %v", p.Report.Dropped)
	}
	if !strings.Contains(buf.String(), "dropped keypoint record") {
		t.Errorf("dropped record not logged: %q", buf.String())
	}
}

func TestLoadAndProjectErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		source string
		mode   keypoint.Mode
		policy keypoint.Policy
		want   error
	}{
		{"missing", "nope", keypoint.Mode2D, keypoint.FailFast, ErrSourceNotFound},
		{"malformed json", "broken", keypoint.Mode3D, keypoint.SkipInvalid, keypoint.ErrDecode},
		{"short 2d strict", "short", keypoint.Mode2D, keypoint.FailFast, keypoint.ErrInsufficientCoordinates},
		{"missing id strict", "mixed3d", keypoint.Mode3D, keypoint.FailFast, keypoint.ErrDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := LoadAndProject(ctx, testSources(), tt.source, tt.mode, tt.policy, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if p != nil {
				t.Errorf("partial projection returned: %+v", p)
			}
		})
	}
}

func TestLoadAndProjectLenient(t *testing.T) {
	p, err := LoadAndProject(context.Background(), testSources(), "short", keypoint.Mode2D, keypoint.SkipInvalid, nil)
	if err != nil {
		t.Fatalf("LoadAndProject: %v", err)
	}
	if len(p.Points2D) != 2 || !p.Report.Degraded() {
		t.Errorf("projection = %+v", p)
	}
	p, err = LoadAndProject(context.Background(), testSources(), "csv", keypoint.Mode3D, keypoint.SkipInvalid, nil)
	if err != nil || len(p.Points3D) != 2 {
		t.Fatalf("csv projection = %+v, %v", p, err)
	}
}

func TestLoadAndProjectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadAndProject(ctx, testSources(), "flat", keypoint.Mode2D, keypoint.FailFast, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSessionRender2D(t *testing.T) {
	s := New(testSources())
	if err := s.Load(context.Background(), "flat", keypoint.Mode2D); err != nil {
		t.Fatalf("Load: %v", err)
	}
	vp := render.Viewport{Width: 100, Height: 100}
	var a render.Recorder
	if n := s.Render(&a, vp, 0); n != 2 {
		t.Fatalf("segments = %d, want 2", n)
	}
	if s.UpdateZoom(2) != 2 {
		t.Fatal("zoom not applied")
	}
	var b render.Recorder
	s.Render2D(&b, vp)
	if b.Segments[1].To != (render.Point{X: 100, Y: 100}) {
		t.Errorf("last point at zoom 2 = %+v", b.Segments[1].To)
	}
	var c render.Recorder
	s.Render2D(&c, vp)
	if !reflect.DeepEqual(b.Segments, c.Segments) {
		t.Error("re-render with identical parameters differs")
	}
}

func TestSessionFit(t *testing.T) {
	s := New(source.Memory{"big": []byte(`[{"id":0,"keypoints":[100,10]},{"id":1,"keypoints":[300,30]}]`)},
		WithState(State{Mode: keypoint.Mode2D, Zoom: 1}))
	if err := s.Load(context.Background(), "big", keypoint.Mode2D); err != nil {
		t.Fatal(err)
	}
	s.Handle(Event{Kind: FitToggled})
	var rec render.Recorder
	s.Render2D(&rec, render.Viewport{Width: 100, Height: 100})
	seg := rec.Segments[0]
	if seg.From != (render.Point{X: 0, Y: 0}) || seg.To != (render.Point{X: 100, Y: 100}) {
		t.Errorf("fitted segment = %+v", seg)
	}
}

func TestSessionCameraSingleton(t *testing.T) {
	s := New(testSources())
	if err := s.Load(context.Background(), "space", keypoint.Mode3D); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cam := s.Scene().Camera()
	for _, d := range []float64{10, 20, 45, -3} {
		s.UpdateCameraDistance(d)
	}
	if cmd := s.Handle(Event{Kind: CameraDistanceChanged, Value: 7}); cmd.Kind != MoveCamera {
		t.Fatalf("command = %v", cmd.Kind)
	}
	cams := 0
	for _, n := range s.Scene().Nodes() {
		if n.Kind == render.CameraNode {
			cams++
			if n != cam {
				t.Error("camera node replaced")
			}
		}
	}
	if cams != 1 || len(s.Scene().Tubes()) != 1 {
		t.Fatalf("cameras=%d tubes=%d", cams, len(s.Scene().Tubes()))
	}
	if s.Scene().CameraDistance() != 7 {
		t.Errorf("camera distance = %v", s.Scene().CameraDistance())
	}
	if err := s.Load(context.Background(), "space", keypoint.Mode3D); err != nil {
		t.Fatal(err)
	}
	if len(s.Scene().Nodes()) != 4 {
		t.Errorf("nodes after reload = %d, want camera + 2 lights + 1 tube", len(s.Scene().Nodes()))
	}
}

func TestCameraDistanceSetIn2DCarriesInto3D(t *testing.T) {
	s := New(testSources())
	if cmd := s.Handle(Event{Kind: CameraDistanceChanged, Value: 10}); cmd.Kind != NoOp {
		t.Fatalf("2D distance change command = %v, want noop", cmd.Kind)
	}
	s.Handle(Event{Kind: ModeSelected, Mode: keypoint.Mode3D})
	if err := s.Load(context.Background(), "space", keypoint.Mode3D); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.State().CameraDistance; got != 10 {
		t.Fatalf("state distance = %v, want 10", got)
	}
	if got := s.Scene().CameraDistance(); got != 10 {
		t.Fatalf("camera distance = %v, want 10", got)
	}
}

func TestLoadCSVNonFiniteDropped(t *testing.T) {
	f := source.Memory{"bad": []byte("id,x,y,z\n0,NaN,0,0\n1,1,1,1\n2,Inf,2,2\n3,3,3,3\n")}
	p, err := LoadAndProject(context.Background(), f, "bad", keypoint.Mode3D, keypoint.SkipInvalid, nil)
	if err != nil {
		t.Fatalf("LoadAndProject: %v", err)
	}
	if len(p.Report.Dropped) != 2 || len(p.Points3D) != 2 {
		t.Fatalf("dropped=%d points=%d, want 2 and 2", len(p.Report.Dropped), len(p.Points3D))
	}
	for _, pt := range p.Points3D {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsNaN(pt.Z) {
			t.Fatalf("non-finite point %+v", pt)
		}
	}
}

func TestSessionFailedLoadClears(t *testing.T) {
	s := New(testSources())
	if err := s.Load(context.Background(), "space", keypoint.Mode3D); err != nil {
		t.Fatal(err)
	}
	err := s.Load(context.Background(), "missing", keypoint.Mode3D)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("err = %v", err)
	}
	if s.Projection() != nil || len(s.Scene().Tubes()) != 0 {
		t.Error("failed load left a partial render behind")
	}
	var rec render.Recorder
	if s.Render(&rec, render.Viewport{Width: 10, Height: 10}, 0) != 0 {
		t.Error("rendered after failed load")
	}
}

func TestSessionSupersededLoad(t *testing.T) {
	s := New(testSources())
	ctx1, gen1 := s.Begin(context.Background())
	_, gen2 := s.Begin(context.Background())
	if ctx1.Err() == nil {
		t.Error("first load not cancelled by the second Begin")
	}
	p1, _ := LoadAndProject(context.Background(), testSources(), "flat", keypoint.Mode2D, keypoint.FailFast, nil)
	if err := s.Apply(gen1, p1, nil); !errors.Is(err, ErrStale) {
		t.Fatalf("stale apply err = %v", err)
	}
	if s.Projection() != nil {
		t.Fatal("stale result installed")
	}
	p2, _ := LoadAndProject(context.Background(), testSources(), "space", keypoint.Mode3D, keypoint.SkipInvalid, nil)
	if err := s.Apply(gen2, p2, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.State().Source != "space" || s.State().Mode != keypoint.Mode3D {
		t.Errorf("state = %+v", s.State())
	}
}

func TestPolicyOverride(t *testing.T) {
	s := New(testSources(), WithPolicy(keypoint.Mode2D, keypoint.SkipInvalid))
	if err := s.Load(context.Background(), "short", keypoint.Mode2D); err != nil {
		t.Fatalf("Load with lenient 2D policy: %v", err)
	}
	if s.Policy(keypoint.Mode3D) != keypoint.SkipInvalid {
		t.Error("3D default policy changed")
	}
}
