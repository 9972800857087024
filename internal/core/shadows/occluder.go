package shadows

import (
	"errors"
	"fmt"
)

// ErrInvalidOccluder is returned when an occluder's corners are not upper-left and lower-right.
var ErrInvalidOccluder = errors.New("invalid occluder")

// Edge indexes an occluder boundary segment. The order is fixed and consumers
// rely on it when iterating segments pairwise.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return fmt.Sprintf("edge(%d)", int(e))
	}
}

// Occluder is an axis-aligned rectangle that blocks line of sight.
// TopLeft.X < BottomRight.X and TopLeft.Y > BottomRight.Y (y points up).
type Occluder struct {
	TopLeft     Point
	BottomRight Point
}

// NewOccluder builds an occluder from its two opposite corners.
func NewOccluder(topLeft, bottomRight Point) (Occluder, error) {
	if !(topLeft.X < bottomRight.X) || !(topLeft.Y > bottomRight.Y) {
		return Occluder{}, fmt.Errorf("%w: top-left (%.2f, %.2f) is not above and left of bottom-right (%.2f, %.2f)",
			ErrInvalidOccluder, topLeft.X, topLeft.Y, bottomRight.X, bottomRight.Y)
	}
	return Occluder{TopLeft: topLeft, BottomRight: bottomRight}, nil
}

// OccluderFromRect builds an occluder covering a width x height rectangle centered on center.
func OccluderFromRect(center Point, width, height float64) (Occluder, error) {
	return NewOccluder(
		Point{X: center.X - width/2, Y: center.Y + height/2, Z: center.Z},
		Point{X: center.X + width/2, Y: center.Y - height/2, Z: center.Z},
	)
}

// Width returns the horizontal extent.
func (o Occluder) Width() float64 {
	return o.BottomRight.X - o.TopLeft.X
}

// Height returns the vertical extent.
func (o Occluder) Height() float64 {
	return o.TopLeft.Y - o.BottomRight.Y
}

// Center returns the rectangle's midpoint.
func (o Occluder) Center() Point {
	return Point{
		X: (o.TopLeft.X + o.BottomRight.X) / 2,
		Y: (o.TopLeft.Y + o.BottomRight.Y) / 2,
		Z: o.TopLeft.Z,
	}
}

// Segment returns one boundary segment.
func (o Occluder) Segment(e Edge) Segment {
	tl, br := o.TopLeft, o.BottomRight
	switch e {
	case EdgeTop:
		return Segment{A: tl, B: Point{X: br.X, Y: tl.Y, Z: tl.Z}}
	case EdgeBottom:
		return Segment{A: Point{X: tl.X, Y: br.Y, Z: br.Z}, B: br}
	case EdgeLeft:
		return Segment{A: tl, B: Point{X: tl.X, Y: br.Y, Z: tl.Z}}
	case EdgeRight:
		return Segment{A: Point{X: br.X, Y: tl.Y, Z: br.Z}, B: br}
	default:
		panic(fmt.Sprintf("shadows: unknown occluder %v", e))
	}
}

// Segments returns the four boundary segments in the order top, bottom, left, right.
func (o Occluder) Segments() [4]Segment {
	return [4]Segment{
		o.Segment(EdgeTop),
		o.Segment(EdgeBottom),
		o.Segment(EdgeLeft),
		o.Segment(EdgeRight),
	}
}

// HasCorner reports whether p lies exactly on one of the four corners. Z is ignored.
func (o Occluder) HasCorner(p Point) bool {
	return (p.X == o.TopLeft.X || p.X == o.BottomRight.X) &&
		(p.Y == o.TopLeft.Y || p.Y == o.BottomRight.Y)
}

// SegmentCrossesOccluder reports whether seg intersects any of the occluder's boundary segments.
func SegmentCrossesOccluder(seg Segment, o Occluder) bool {
	for _, edge := range o.Segments() {
		if SegmentsIntersect(seg, edge) {
			return true
		}
	}
	return false
}
