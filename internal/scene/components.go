package scene

import (
	"math"

	"chosenoffset.com/umbra/internal/core/shadows"
)

// Transform places an entity in world space.
type Transform struct {
	Translation shadows.Point
	Rotation    float64 // radians, counter-clockwise
}

// At returns a transform translated to p.
func At(x, y float64) Transform {
	return Transform{Translation: shadows.Point{X: x, Y: y}}
}

// TransformPoint maps a point from local to world space.
func (t Transform) TransformPoint(p shadows.Point) shadows.Point {
	if t.Rotation != 0 {
		sin, cos := math.Sincos(t.Rotation)
		p.X, p.Y = p.X*cos-p.Y*sin, p.X*sin+p.Y*cos
	}
	return p.Add(t.Translation)
}

// Footprint is the rectangular sprite extent used for shadow containment.
type Footprint struct {
	Width, Height float64
}

// Corners returns the four footprint corners in world space:
// top-left, top-right, bottom-right, bottom-left.
func (f Footprint) Corners(t Transform) [4]shadows.Point {
	hw, hh := f.Width/2, f.Height/2
	return [4]shadows.Point{
		t.TransformPoint(shadows.Point{X: -hw, Y: hh}),
		t.TransformPoint(shadows.Point{X: hw, Y: hh}),
		t.TransformPoint(shadows.Point{X: hw, Y: -hh}),
		t.TransformPoint(shadows.Point{X: -hw, Y: -hh}),
	}
}

// Sighted marks an entity that can act as a viewer. FOV and Range only drive the
// field-of-view overlay; visibility queries ignore them.
type Sighted struct {
	FOV     float64 // radians, 0 for none
	Range   float64
	Heading float64 // radians, counter-clockwise from +X
}

// Visible marks an entity that is eligible to be seen.
type Visible struct{}

// Player marks the entity whose viewpoint drives shadow synthesis.
type Player struct{}

// Kinematics is the host-side movement state of an entity.
type Kinematics struct {
	Speed     float64
	Direction shadows.Point
}

// Kind names what an entity is, for renderers.
type Kind int

const (
	KindNone Kind = iota
	KindPlayer
	KindWall
	KindNPC
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindWall:
		return "wall"
	case KindNPC:
		return "npc"
	case KindObject:
		return "object"
	default:
		return "none"
	}
}
