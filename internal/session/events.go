package session

import (
	"math"

	"keypointview/internal/keypoint"
)

const (
	MinZoom     = 0.0
	MaxZoom     = 5.0
	DefaultZoom = 3.0

	MinCameraDistance     = 0.0
	MaxCameraDistance     = 40.0
	DefaultCameraDistance = 30.0

	// FitScale is the span raw 2D points are fitted into when fitting is on,
	// matching the [-1, 1] range the 2D renderer expects.
	FitScale = 2.0
)

// State is the interactive view state a shell drives.
type State struct {
	Source         string
	Mode           keypoint.Mode
	Zoom           float64
	CameraDistance float64
	Fit            bool // normalize raw 2D points before drawing
}

type EventKind int

const (
	ZoomChanged EventKind = iota
	CameraDistanceChanged
	SourceSelected
	ModeSelected
	FitToggled
)

type Event struct {
	Kind   EventKind
	Value  float64 // zoom or camera distance
	Source string
	Mode   keypoint.Mode
}

type CommandKind int

const (
	NoOp CommandKind = iota
	Redraw2D
	MoveCamera
	Reload
)

func (k CommandKind) String() string {
	switch k {
	case NoOp:
		return "noop"
	case Redraw2D:
		return "redraw-2d"
	case MoveCamera:
		return "move-camera"
	case Reload:
		return "reload"
	}
	return "unknown"
}

// RenderCommand tells the shell what to do after an event.
type RenderCommand struct {
	Kind           CommandKind
	Source         string
	Mode           keypoint.Mode
	Zoom           float64
	CameraDistance float64
}

// OnParameterChange folds an event into the state and returns the new state
// with the work it requires. It has no side effects.
func OnParameterChange(st State, ev Event) (State, RenderCommand) {
	noop := RenderCommand{Kind: NoOp}
	switch ev.Kind {
	case ZoomChanged:
		if !finite(ev.Value) {
			return st, noop
		}
		st.Zoom = clamp(ev.Value, MinZoom, MaxZoom)
		if st.Mode != keypoint.Mode2D {
			return st, noop
		}
		return st, command(Redraw2D, st)
	case CameraDistanceChanged:
		if !finite(ev.Value) {
			return st, noop
		}
		st.CameraDistance = clamp(ev.Value, MinCameraDistance, MaxCameraDistance)
		if st.Mode != keypoint.Mode3D {
			return st, noop
		}
		return st, command(MoveCamera, st)
	case SourceSelected:
		if ev.Source == "" {
			return st, noop
		}
		st.Source = ev.Source
		return st, command(Reload, st)
	case ModeSelected:
		if ev.Mode != keypoint.Mode2D && ev.Mode != keypoint.Mode3D {
			return st, noop
		}
		st.Mode = ev.Mode
		if st.Source == "" {
			return st, noop
		}
		return st, command(Reload, st)
	case FitToggled:
		st.Fit = !st.Fit
		if st.Mode != keypoint.Mode2D {
			return st, noop
		}
		return st, command(Redraw2D, st)
	}
	return st, noop
}

func command(k CommandKind, st State) RenderCommand {
	return RenderCommand{Kind: k, Source: st.Source, Mode: st.Mode, Zoom: st.Zoom, CameraDistance: st.CameraDistance}
}

func clamp(v, lo, hi float64) float64 { return math.Min(hi, math.Max(lo, v)) }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
