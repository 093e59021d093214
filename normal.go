package stl

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec returns v as a gonum vector.
func (v Vertex) Vec() r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func vertexOf(v r3.Vec) Vertex {
	return Vertex{float32(v.X), float32(v.Y), float32(v.Z)}
}

// R3 returns t's vertices as a gonum triangle.
func (t Triangle) R3() r3.Triangle {
	return r3.Triangle{t.Vertices[0].Vec(), t.Vertices[1].Vec(), t.Vertices[2].Vec()}
}

// ComputeNormal returns the unit normal of t by the right-hand rule,
// (v1 - v0) × (v2 - v0) normalized. If the vertices are collinear or
// coincident, the cross product has zero length and ComputeNormal
// returns the zero vector and false. The same happens if a coordinate
// is infinite or NaN.
func (t Triangle) ComputeNormal() (n Vertex, ok bool) {
	cross := t.R3().Normal()
	l := r3.Norm(cross)
	if l == 0 || math.IsInf(l, 0) || math.IsNaN(l) {
		return Vertex{}, false
	}
	return vertexOf(r3.Scale(1/l, cross)), true
}
