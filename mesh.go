package stl

// A Vertex is a point or direction in model space.
type Vertex struct {
	X, Y, Z float32
}

// A Triangle is one facet of a mesh. Vertices are in the winding order
// given by the file.
type Triangle struct {
	Normal   Vertex
	Vertices [3]Vertex
}

// A Mesh is an ordered list of triangles decoded from an STL file.
//
// Triangles are stored contiguously in file order. A Mesh is not
// modified after decoding except by RecomputeNormals.
type Mesh struct {
	format Format
	name   string
	tris   []Triangle
}

func newMesh(format Format, name string, sizeHint int) *Mesh {
	return &Mesh{format: format, name: name, tris: make([]Triangle, 0, sizeHint)}
}

func (m *Mesh) add(t Triangle) {
	m.tris = append(m.tris, t)
}

// Format returns the variant m was decoded from.
func (m *Mesh) Format() Format {
	return m.format
}

// Name returns the solid name of a text file, or the header of a binary
// file with trailing NULs and spaces removed.
func (m *Mesh) Name() string {
	return m.name
}

// Len returns the number of triangles in m.
func (m *Mesh) Len() int {
	return len(m.tris)
}

// At returns a copy of the i'th triangle. It panics if i is out of
// range.
func (m *Mesh) At(i int) Triangle {
	return m.tris[i]
}

// Triangles returns a new cursor positioned before the first triangle.
func (m *Mesh) Triangles() *Iter {
	return &Iter{m: m}
}

// RecomputeNormals replaces the normal of every triangle with the unit
// normal computed from its vertices. It returns the number of
// degenerate triangles, whose normal is set to the zero vector.
func (m *Mesh) RecomputeNormals() (degenerate int) {
	for i := range m.tris {
		t := &m.tris[i]
		n, ok := t.ComputeNormal()
		if !ok {
			degenerate++
		}
		t.Normal = n
	}
	return degenerate
}

// An Iter is a forward cursor over the triangles of a Mesh.
//
//	it := m.Triangles()
//	for t, ok := it.Next(); ok; t, ok = it.Next() {
//		...
//	}
type Iter struct {
	m   *Mesh
	pos int
}

// Next returns the next triangle and true, or the zero Triangle and
// false once the triangles are exhausted. After returning false, Next
// always returns false.
func (it *Iter) Next() (Triangle, bool) {
	if it.pos >= len(it.m.tris) {
		return Triangle{}, false
	}
	t := it.m.tris[it.pos]
	it.pos++
	return t, true
}
