package shadows

import "math"

// sectorFullCircleVertices is the perimeter resolution of a full 2*pi sector.
const sectorFullCircleVertices = 64

// Sector is a circular field-of-view wedge centered on the +X axis.
type Sector struct {
	Radius float64
	Angle  float64
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Point
	Indices  []uint16
}

// Mesh builds a fan with the apex at the origin followed by the perimeter
// vertices from -Angle/2 to +Angle/2.
func (s Sector) Mesh() Mesh {
	perimeter := int(math.Ceil(sectorFullCircleVertices * s.Angle / (2 * math.Pi)))
	if perimeter < 2 {
		perimeter = 2
	}

	vertices := make([]Point, 0, 1+perimeter)
	vertices = append(vertices, Point{})
	for i := 0; i < perimeter; i++ {
		angle := float64(i)/float64(perimeter-1)*s.Angle - s.Angle/2
		vertices = append(vertices, Point{
			X: s.Radius * math.Cos(angle),
			Y: s.Radius * math.Sin(angle),
		})
	}

	indices := make([]uint16, 0, 3*(perimeter-1))
	for i := 1; i < perimeter; i++ {
		indices = append(indices, 0, uint16(i), uint16(i+1))
	}

	return Mesh{Vertices: vertices, Indices: indices}
}

// Rotate returns the mesh rotated by angle radians about the origin and moved to at.
func (m Mesh) Rotate(angle float64, at Point) Mesh {
	sin, cos := math.Sincos(angle)
	out := Mesh{Vertices: make([]Point, len(m.Vertices)), Indices: m.Indices}
	for i, v := range m.Vertices {
		out.Vertices[i] = Point{
			X: at.X + v.X*cos - v.Y*sin,
			Y: at.Y + v.X*sin + v.Y*cos,
			Z: at.Z + v.Z,
		}
	}
	return out
}
