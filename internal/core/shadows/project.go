package shadows

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrZeroDirection is the panic cause for a ray without a planar direction.
	ErrZeroDirection = errors.New("ray direction is zero")
	// ErrOriginOutsideViewport is the panic cause for a ray anchored off-screen.
	ErrOriginOutsideViewport = errors.New("ray origin outside viewport")
)

// Ray is the half-line Origin + t*Direction, t >= 0.
type Ray struct {
	Origin    Point
	Direction Point
}

// At returns the point at distance parameter t along the ray.
func (r Ray) At(t float64) Point {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ProjectRayToEdge returns the parameter t at which the ray reaches the viewport boundary.
//
// Each axis contributes the larger of its two edge crossings (the one in front
// of the origin), or nothing when the direction has no component on that axis.
// When both axes contribute, the larger value is used.
//
// The origin must lie inside the viewport and the direction must be non-zero in
// the plane. Violations are programming errors and panic with an error wrapping
// ErrOriginOutsideViewport or ErrZeroDirection.
func ProjectRayToEdge(vp Viewport, ray Ray) float64 {
	if ray.Direction.X == 0 && ray.Direction.Y == 0 {
		panic(fmt.Errorf("shadows: %w", ErrZeroDirection))
	}
	if !vp.Contains(ray.Origin) {
		panic(fmt.Errorf("shadows: %w: (%.2f, %.2f) not in %.0fx%.0f",
			ErrOriginOutsideViewport, ray.Origin.X, ray.Origin.Y, vp.Width, vp.Height))
	}

	halfW, halfH := vp.Width/2, vp.Height/2

	tLeftRight, hasLeftRight := 0.0, false
	if ray.Direction.X != 0 {
		tLeftRight = math.Max(
			(-halfW-ray.Origin.X)/ray.Direction.X,
			(halfW-ray.Origin.X)/ray.Direction.X,
		)
		hasLeftRight = true
	}

	tTopBottom, hasTopBottom := 0.0, false
	if ray.Direction.Y != 0 {
		tTopBottom = math.Max(
			(-halfH-ray.Origin.Y)/ray.Direction.Y,
			(halfH-ray.Origin.Y)/ray.Direction.Y,
		)
		hasTopBottom = true
	}

	switch {
	case hasLeftRight && hasTopBottom:
		return math.Max(tLeftRight, tTopBottom)
	case hasLeftRight:
		return tLeftRight
	default:
		return tTopBottom
	}
}

// ProjectPointThroughPoint extends the ray from -> through out to the viewport boundary
// and returns the point it lands on.
func ProjectPointThroughPoint(vp Viewport, from, through Point) Point {
	ray := Ray{Origin: from, Direction: through.Sub(from)}
	return ray.At(ProjectRayToEdge(vp, ray))
}
