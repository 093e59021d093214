// Package stl decodes STL (stereolithography) triangle meshes.
//
// Both variants of the format are supported: the text variant, which
// starts with "solid", and the little-endian binary variant with an 80
// byte header. The variant is detected from the data itself.
//
// Coordinates are in whatever units the file was written in. STL has
// no unit field.
package stl

import (
	"bufio"
	"io"
	"os"
)

// NormalPolicy says what a Decoder does with the facet normals stored
// in a file.
type NormalPolicy int

const (
	// TrustNormals keeps stored normals exactly as decoded.
	TrustNormals NormalPolicy = iota
	// RecomputeNormals discards stored normals and derives each one
	// from its triangle's vertices. See Triangle.ComputeNormal.
	RecomputeNormals
)

// A Decoder decodes STL files. The zero Decoder trusts stored normals.
type Decoder struct {
	Normals NormalPolicy
}

// Load reads the named STL file.
//
// If the file cannot be opened, the error is a PathError. Any error is
// an *Error, and no mesh is returned with it.
func (d *Decoder) Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: PathError, Path: path, Err: err}
	}
	defer f.Close()
	m, err := d.Decode(f)
	if err != nil {
		return nil, withPath(err, path)
	}
	return m, nil
}

// Decode reads an STL file from r, detecting its variant with Sniff.
func (d *Decoder) Decode(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)
	format, err := Sniff(br)
	if err != nil {
		return nil, err
	}
	var m *Mesh
	switch format {
	case Text:
		m, err = DecodeText(br)
	case Binary:
		m, err = DecodeBinary(br)
	}
	if err != nil {
		return nil, err
	}
	if d.Normals == RecomputeNormals {
		m.RecomputeNormals()
	}
	return m, nil
}

// Load reads the named STL file with trusted normals.
func Load(path string) (*Mesh, error) {
	return new(Decoder).Load(path)
}

// Decode reads an STL file from r with trusted normals.
func Decode(r io.Reader) (*Mesh, error) {
	return new(Decoder).Decode(r)
}
