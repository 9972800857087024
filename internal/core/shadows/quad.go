package shadows

import (
	"math"
	"sort"
)

// QuadIndices triangulates a quad stored in counter-clockwise order.
var QuadIndices = [6]uint16{0, 1, 2, 0, 2, 3}

// AngleCCW returns the counter-clockwise angle in [0, 2*pi) from the +X axis
// to the vector centre -> p.
func AngleCCW(centre, p Point) float64 {
	angle := math.Atan2(p.Y-centre.Y, p.X-centre.X)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// Quad is a quadrilateral whose vertices are sorted counter-clockwise around their centroid.
type Quad struct {
	Vertices [4]Point
}

// NewQuad sorts v1..v4 counter-clockwise around their centroid. The input order
// after projection is not a reliable winding, so the sort is always applied.
func NewQuad(v1, v2, v3, v4 Point) Quad {
	q := Quad{Vertices: [4]Point{v1, v2, v3, v4}}
	centre := q.Centroid()

	var angles [4]float64
	for i, v := range q.Vertices {
		angles[i] = AngleCCW(centre, v)
	}
	order := []int{0, 1, 2, 3}
	sort.SliceStable(order, func(i, j int) bool {
		return angles[order[i]] < angles[order[j]]
	})

	var sorted [4]Point
	for i, idx := range order {
		sorted[i] = q.Vertices[idx]
	}
	q.Vertices = sorted
	return q
}

// Centroid returns the average of the four vertices.
func (q Quad) Centroid() Point {
	return q.Vertices[0].Add(q.Vertices[1]).Add(q.Vertices[2]).Add(q.Vertices[3]).Scale(0.25)
}

// ContainsPoint reports whether p is on the inner side of all four edges.
// Points on an edge count as inside.
func (q Quad) ContainsPoint(p Point) bool {
	for i := range q.Vertices {
		a := q.Vertices[i]
		b := q.Vertices[(i+1)%len(q.Vertices)]
		if cross(a, b, p) < 0 {
			return false
		}
	}
	return true
}
