package shadows

// Point represents a 2D point in world space. Z only carries draw order and
// is ignored by every geometric routine in this package.
type Point struct {
	X, Y, Z float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p * s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s, p.Z * s}
}

// IsZero reports whether all three components are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}

// Coord represents a tile coordinate
type Coord struct {
	X, Y int
}

// Segment is the ordered pair (A, B), parameterized as A + s*(B-A) for s in [0, 1].
// Intersection tests treat it as undirected; projection uses A as the near endpoint.
type Segment struct {
	A, B Point
}

// Viewport is the visible window, centered on the world origin with y pointing up.
type Viewport struct {
	Width, Height float64
}

// Contains reports whether p lies inside the viewport, edges included.
func (v Viewport) Contains(p Point) bool {
	return -v.Width/2 <= p.X && p.X <= v.Width/2 &&
		-v.Height/2 <= p.Y && p.Y <= v.Height/2
}

// Clamp returns p moved to the nearest point inside the viewport.
func (v Viewport) Clamp(p Point) Point {
	p.X = clamp(p.X, -v.Width/2, v.Width/2)
	p.Y = clamp(p.Y, -v.Height/2, v.Height/2)
	return p
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
