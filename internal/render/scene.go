package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r3"

	"keypointview/internal/keypoint"
)

const (
	// TubeRadius is the radius of every path cylinder.
	TubeRadius = 0.05
	// FieldOfView is the camera's vertical field of view in degrees.
	FieldOfView = 60.0
)

type NodeKind int

const (
	CameraNode NodeKind = iota
	LightNode
	TubeNode
)

func (k NodeKind) String() string {
	switch k {
	case CameraNode:
		return "camera"
	case LightNode:
		return "light"
	case TubeNode:
		return "tube"
	}
	return "unknown"
}

type LightKind int

const (
	OmniLight LightKind = iota
	AmbientLight
)

type Light struct {
	Kind  LightKind
	Color colorful.Color
}

// Cylinder is centered on its node with its axis along local +Y.
type Cylinder struct {
	Radius float64
	Height float64
}

type Node struct {
	Kind        NodeKind
	Position    r3.Vec
	Orientation r3.Rotation
	Cylinder    *Cylinder
	Light       *Light
	Color       colorful.Color
}

// Axis is the node's local +Y axis in world space.
func (n *Node) Axis() r3.Vec { return n.Orientation.Rotate(r3.Vec{Y: 1}) }

// Ends returns the centers of a tube's two caps.
func (n *Node) Ends() (r3.Vec, r3.Vec) {
	if n.Cylinder == nil {
		return n.Position, n.Position
	}
	half := r3.Scale(n.Cylinder.Height/2, n.Axis())
	return r3.Sub(n.Position, half), r3.Add(n.Position, half)
}

var (
	tubeColor    = colorful.Color{G: 1}
	omniColor    = colorful.Color{R: 1, G: 1, B: 1}
	ambientColor = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
)

// Scene holds one camera and the light rig for the lifetime of a view, plus
// the tubes of the most recent Build.
type Scene struct {
	camera *Node
	lights []*Node
	tubes  []*Node
}

// NewScene sets up the camera at (0, 0, distance) and the two lights.
func NewScene(distance float64) *Scene {
	s := &Scene{
		camera: &Node{Kind: CameraNode, Orientation: identity()},
	}
	s.SetCameraDistance(distance)
	s.lights = []*Node{
		{
			Kind:        LightNode,
			Position:    r3.Vec{Y: 10, Z: 10},
			Orientation: identity(),
			Light:       &Light{Kind: OmniLight, Color: omniColor},
		},
		{
			Kind:        LightNode,
			Orientation: identity(),
			Light:       &Light{Kind: AmbientLight, Color: ambientColor},
		},
	}
	return s
}

// SetCameraDistance moves the existing camera along the view axis.
func (s *Scene) SetCameraDistance(d float64) {
	s.camera.Position = r3.Vec{Z: d}
}

func (s *Scene) CameraDistance() float64 { return s.camera.Position.Z }

func (s *Scene) Camera() *Node   { return s.camera }
func (s *Scene) Lights() []*Node { return s.lights }
func (s *Scene) Tubes() []*Node  { return s.tubes }

// Nodes returns camera, lights and tubes in that order.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, 0, 1+len(s.lights)+len(s.tubes))
	out = append(out, s.camera)
	out = append(out, s.lights...)
	return append(out, s.tubes...)
}

// Build replaces the tubes with one cylinder per consecutive pair of points.
// Fewer than two points leave the scene without tubes.
func (s *Scene) Build(points []keypoint.Point3D) int {
	s.tubes = make([]*Node, 0, max(0, len(points)-1))
	for i := 1; i < len(points); i++ {
		s.tubes = append(s.tubes, Tube(vec(points[i-1]), vec(points[i])))
	}
	return len(s.tubes)
}

// Tube is a cylinder from a to b: centered on the midpoint, as tall as the
// distance and turned so its axis points at b.
func Tube(a, b r3.Vec) *Node {
	d := r3.Sub(b, a)
	return &Node{
		Kind:        TubeNode,
		Position:    r3.Scale(0.5, r3.Add(a, b)),
		Orientation: lookAt(d),
		Cylinder:    &Cylinder{Radius: TubeRadius, Height: r3.Norm(d)},
		Color:       tubeColor,
	}
}

// lookAt returns the rotation taking +Y onto dir. A zero dir keeps identity.
func lookAt(dir r3.Vec) r3.Rotation {
	n := r3.Norm(dir)
	if n == 0 {
		return identity()
	}
	u := r3.Scale(1/n, dir)
	up := r3.Vec{Y: 1}
	cos := r3.Dot(up, u)
	switch {
	case cos >= 1-1e-12:
		return identity()
	case cos <= -1+1e-12:
		return r3.NewRotation(math.Pi, r3.Vec{X: 1})
	}
	return r3.NewRotation(math.Acos(cos), r3.Cross(up, u))
}

func identity() r3.Rotation { return r3.NewRotation(0, r3.Vec{Y: 1}) }

func vec(p keypoint.Point3D) r3.Vec { return r3.Vec{X: p.X, Y: p.Y, Z: p.Z} }
