package shadows

// SegmentsIntersect reports whether segments a and b share a point.
//
// Writing a as f(s) = a.A + s*(a.B-a.A) and b as g(t) = b.A + t*(b.B-b.A), the
// segments intersect when f(s) = g(t) has a solution with s and t in [0, 1]:
//
//	s = ((b1.y-b0.y)(a0.x-b0.x) - (b1.x-b0.x)(a0.y-b0.y)) / ((a1.y-a0.y)(b1.x-b0.x) - (a1.x-a0.x)(b1.y-b0.y))
//	t = ((a1.y-a0.y)(b0.x-a0.x) + (a1.x-a0.x)(a0.y-b0.y)) / ((a1.x-a0.x)(b1.y-b0.y) - (a1.y-a0.y)(b1.x-b0.x))
//
// Parallel and collinear segments (including identical ones) never intersect:
// a zero denominator short-circuits to false. The zero check is exact.
func SegmentsIntersect(a, b Segment) bool {
	adx := a.B.X - a.A.X
	ady := a.B.Y - a.A.Y
	bdx := b.B.X - b.A.X
	bdy := b.B.Y - b.A.Y

	sNumerator := bdy*(a.A.X-b.A.X) - bdx*(a.A.Y-b.A.Y)
	sDenominator := ady*bdx - adx*bdy
	if sDenominator == 0 {
		return false
	}

	tNumerator := ady*(b.A.X-a.A.X) + adx*(a.A.Y-b.A.Y)
	tDenominator := adx*bdy - ady*bdx
	if tDenominator == 0 {
		return false
	}

	s := sNumerator / sDenominator
	t := tNumerator / tDenominator

	return 0 <= s && s <= 1 && 0 <= t && t <= 1
}

// cross returns the z component of (b-a) x (p-a).
func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}
