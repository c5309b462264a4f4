package render

import "github.com/go-gl/mathgl/mgl32"

// Model supplies the unit-cube parameterization for a cross-section kind:
// a triangle list of (u,v,w) texture coordinates in [0,1]^3. The vertex
// count depends only on the model, never on field resolution. Kind keys
// the shared shader program; models of the same kind share one program.
type Model interface {
	Kind() string
	BaseModel() []mgl32.Vec3
}

// Axis selects a field axis for plane cross-sections.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// Plane is an axis-aligned slicing plane at a normalized position along
// its axis.
type Plane struct {
	Axis     Axis
	Position float32
}

// NewPlane returns a plane perpendicular to axis at normalized position
// t, clamped to [0,1].
func NewPlane(axis Axis, t float32) *Plane {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return &Plane{Axis: axis, Position: t}
}

func (p *Plane) Kind() string { return "plane" }

// BaseModel returns the two triangles of the plane: the unit square in
// the two free axes with the fixed axis pinned at Position.
func (p *Plane) BaseModel() []mgl32.Vec3 {
	corners := [6][2]float32{
		{0, 0}, {1, 0}, {1, 1},
		{0, 0}, {1, 1}, {0, 1},
	}
	out := make([]mgl32.Vec3, 6)
	for i, c := range corners {
		switch p.Axis {
		case AxisX:
			out[i] = mgl32.Vec3{p.Position, c[0], c[1]}
		case AxisY:
			out[i] = mgl32.Vec3{c[0], p.Position, c[1]}
		default:
			out[i] = mgl32.Vec3{c[0], c[1], p.Position}
		}
	}
	return out
}

// Box is the six-faced shell of the unit cube, showing the field values
// on the volume boundary.
type Box struct{}

// NewBox returns a box-shell model.
func NewBox() *Box { return &Box{} }

func (b *Box) Kind() string { return "box" }

// BaseModel returns the 36 vertices of the cube shell as a triangle list.
func (b *Box) BaseModel() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, 36)
	// Two faces per axis, at 0 and 1.
	for axis := 0; axis < 3; axis++ {
		for _, pos := range []float32{0, 1} {
			face := Plane{Axis: Axis(axis), Position: pos}
			out = append(out, face.BaseModel()...)
		}
	}
	return out
}
