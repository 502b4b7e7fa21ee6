// Package session holds the view state behind one keypoint view: the loaded
// projection, the interactive parameters and the 3D scene.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"keypointview/internal/keypoint"
	"keypointview/internal/logging"
	"keypointview/internal/render"
	"keypointview/internal/source"
)

var (
	// ErrSourceNotFound is source.ErrNotFound, re-exported for shells.
	ErrSourceNotFound = source.ErrNotFound
	// ErrStale is returned by Apply for a load that a newer Begin superseded.
	ErrStale = errors.New("stale load")
)

// Projection is the outcome of one load: ordered records and the points the
// active mode draws.
type Projection struct {
	Source  string
	Mode    keypoint.Mode
	Records []keypoint.Record // ascending by id
	// Points2D holds raw 2D points in 2D mode.
	Points2D []keypoint.Point2D
	// Raw3D and Points3D hold the 3D points before and after normalization.
	Raw3D    []keypoint.Point3D
	Points3D []keypoint.Point3D
	Report   keypoint.Report
}

// Len is the number of projected points.
func (p *Projection) Len() int {
	if p.Mode == keypoint.Mode3D {
		return len(p.Points3D)
	}
	return len(p.Points2D)
}

// LoadAndProject fetches a source, decodes it, orders it by id and projects it
// for mode. 3D points are normalized to keypoint.SceneScale.
func LoadAndProject(ctx context.Context, f source.Fetcher, name string, mode keypoint.Mode, policy keypoint.Policy, log *slog.Logger) (*Projection, error) {
	log = logging.OrNop(log)
	data, err := f.Fetch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs, rep, err := keypoint.Parse(data, policy)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	p := &Projection{Source: name, Mode: mode, Records: keypoint.Sort(recs)}
	var prep keypoint.Report
	switch mode {
	case keypoint.Mode3D:
		p.Raw3D, prep, err = keypoint.Project3D(p.Records, policy)
		p.Points3D = keypoint.Normalize3D(p.Raw3D, keypoint.SceneScale)
	default:
		p.Points2D, prep, err = keypoint.Project2D(p.Records, policy)
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	rep.Merge(prep)
	p.Report = rep
	for _, d := range rep.Dropped {
		log.Warn("dropped keypoint record", "source", name, "mode", mode, "err", d)
	}
	log.Info("loaded keypoints", "source", name, "mode", mode, "policy", policy,
		"records", len(p.Records), "points", p.Len(), "dropped", len(rep.Dropped))
	return p, nil
}

// Session is the state of one active view. It is not safe for concurrent use;
// shells call it from their event loop.
type Session struct {
	fetcher  source.Fetcher
	policies map[keypoint.Mode]keypoint.Policy
	log      *slog.Logger

	state State
	proj  *Projection
	scene *render.Scene

	gen    uint64
	cancel context.CancelFunc
}

type Option func(*Session)

func WithLogger(l *slog.Logger) Option { return func(s *Session) { s.log = logging.OrNop(l) } }

// WithPolicy overrides the record policy of one mode.
func WithPolicy(m keypoint.Mode, p keypoint.Policy) Option {
	return func(s *Session) { s.policies[m] = p }
}

// WithState seeds the interactive parameters.
func WithState(st State) Option { return func(s *Session) { s.state = st } }

func New(f source.Fetcher, opts ...Option) *Session {
	s := &Session{
		fetcher: f,
		policies: map[keypoint.Mode]keypoint.Policy{
			keypoint.Mode2D: keypoint.DefaultPolicy(keypoint.Mode2D),
			keypoint.Mode3D: keypoint.DefaultPolicy(keypoint.Mode3D),
		},
		log:   logging.Nop(),
		state: State{Mode: keypoint.Mode2D, Zoom: DefaultZoom, CameraDistance: DefaultCameraDistance},
	}
	for _, o := range opts {
		o(s)
	}
	s.state.Zoom = clamp(s.state.Zoom, MinZoom, MaxZoom)
	s.state.CameraDistance = clamp(s.state.CameraDistance, MinCameraDistance, MaxCameraDistance)
	s.scene = render.NewScene(s.state.CameraDistance)
	return s
}

func (s *Session) State() State                           { return s.state }
func (s *Session) Projection() *Projection                { return s.proj }
func (s *Session) Scene() *render.Scene                   { return s.scene }
func (s *Session) Fetcher() source.Fetcher                { return s.fetcher }
func (s *Session) Logger() *slog.Logger                   { return s.log }
func (s *Session) Policy(m keypoint.Mode) keypoint.Policy { return s.policies[m] }

// Begin starts a load: it cancels the previous in-flight load and returns the
// context and generation to pass to Apply.
func (s *Session) Begin(parent context.Context) (context.Context, uint64) {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.gen++
	s.cancel = cancel
	return ctx, s.gen
}

// Apply installs the result of the load started with generation gen.
// Results of superseded loads return ErrStale and change nothing. A failed
// load clears the projection and the scene's tubes.
func (s *Session) Apply(gen uint64, p *Projection, err error) error {
	if gen != s.gen {
		s.log.Debug("discarding superseded load", "gen", gen, "current", s.gen)
		return ErrStale
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if err != nil {
		s.proj = nil
		s.scene.Build(nil)
		s.log.Error("load failed", "source", s.state.Source, "err", err)
		return err
	}
	s.proj = p
	s.state.Source = p.Source
	s.state.Mode = p.Mode
	s.scene.SetCameraDistance(s.state.CameraDistance)
	if p.Mode == keypoint.Mode3D {
		s.scene.Build(p.Points3D)
	} else {
		s.scene.Build(nil)
	}
	return nil
}

// Load fetches and projects name for mode synchronously.
func (s *Session) Load(ctx context.Context, name string, mode keypoint.Mode) error {
	s.state.Source, s.state.Mode = name, mode
	ctx, gen := s.Begin(ctx)
	p, err := LoadAndProject(ctx, s.fetcher, name, mode, s.policies[mode], s.log)
	return s.Apply(gen, p, err)
}

// UpdateZoom sets the 2D zoom factor, clamped to [MinZoom, MaxZoom].
func (s *Session) UpdateZoom(z float64) float64 {
	s.state, _ = OnParameterChange(s.state, Event{Kind: ZoomChanged, Value: z})
	return s.state.Zoom
}

// UpdateCameraDistance moves the scene's camera, clamped to
// [MinCameraDistance, MaxCameraDistance].
func (s *Session) UpdateCameraDistance(d float64) float64 {
	s.state, _ = OnParameterChange(s.state, Event{Kind: CameraDistanceChanged, Value: d})
	s.scene.SetCameraDistance(s.state.CameraDistance)
	return s.state.CameraDistance
}

// Handle applies an event and performs the in-memory part of its command.
// Reload commands are returned for the caller to run (see Begin/Apply).
func (s *Session) Handle(ev Event) RenderCommand {
	var cmd RenderCommand
	s.state, cmd = OnParameterChange(s.state, ev)
	// the camera follows the state in every mode, so a later switch to 3D
	// starts from the distance the user chose
	s.scene.SetCameraDistance(s.state.CameraDistance)
	return cmd
}

// Points2D returns the 2D points to draw, fitted to [-1, 1] when Fit is on.
func (s *Session) Points2D() []keypoint.Point2D {
	if s.proj == nil {
		return nil
	}
	if s.state.Fit {
		return keypoint.Normalize2D(s.proj.Points2D, FitScale)
	}
	return s.proj.Points2D
}

// Render2D draws the current 2D path at the session zoom.
func (s *Session) Render2D(c render.Canvas, vp render.Viewport) int {
	return render.Render2D(c, s.Points2D(), s.state.Zoom, vp)
}

// Render3D draws the scene from the session camera, turned by yaw radians.
func (s *Session) Render3D(c render.Canvas, vp render.Viewport, yaw float64) int {
	return render.Render3D(c, s.scene, vp, yaw)
}

// Render draws whichever mode is active.
func (s *Session) Render(c render.Canvas, vp render.Viewport, yaw float64) int {
	if s.state.Mode == keypoint.Mode3D {
		return s.Render3D(c, vp, yaw)
	}
	return s.Render2D(c, vp)
}
