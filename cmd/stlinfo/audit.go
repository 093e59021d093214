package main

import (
	"math"

	"github.com/aclements/stl"
	"gonum.org/v1/gonum/spatial/r3"
)

// unitTolerance is how far from 1 a stored normal's length may be
// before it is reported.
const unitTolerance = 1e-4

// A normalAudit compares the normals stored in a mesh with the normals
// computed from its vertices.
type normalAudit struct {
	n int // Triangles examined

	// Indexes of triangles with problems.
	nonUnit    []int // Stored normal is not unit length
	deviant    []int // Stored normal is more than the tolerance off
	degenerate []int // Vertices don't determine a normal

	// deviation is the angle in degrees between the stored and
	// computed normal of every triangle where both are usable.
	deviation []float64
}

func auditNormals(m *stl.Mesh, toleranceDeg float64) *normalAudit {
	a := new(normalAudit)
	it := m.Triangles()
	for i := 0; ; i++ {
		tri, ok := it.Next()
		if !ok {
			break
		}
		a.n++

		stored := tri.Normal.Vec()
		l := r3.Norm(stored)
		if math.Abs(l-1) > unitTolerance {
			a.nonUnit = append(a.nonUnit, i)
		}
		computed, ok := tri.ComputeNormal()
		if !ok {
			a.degenerate = append(a.degenerate, i)
			continue
		}
		if l == 0 || math.IsInf(l, 0) || math.IsNaN(l) {
			// Many exporters write a zero normal.
			continue
		}
		cos := math.Max(-1, math.Min(1, r3.Cos(stored, computed.Vec())))
		dev := math.Acos(cos) * 180 / math.Pi
		a.deviation = append(a.deviation, dev)
		if dev > toleranceDeg {
			a.deviant = append(a.deviant, i)
		}
	}
	return a
}

// ok reports whether the audit found no problems.
func (a *normalAudit) ok() bool {
	return len(a.nonUnit) == 0 && len(a.deviant) == 0 && len(a.degenerate) == 0
}
