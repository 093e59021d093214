package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// recordSize is the size of one binary triangle record: a normal and
// three vertices of three float32s each, then a 2 byte attribute.
const recordSize = 4*3*4 + 2

// maxPrealloc bounds how many triangles are allocated up front from
// the declared count, which comes from untrusted input.
const maxPrealloc = 1 << 16

// DecodeBinary decodes a binary STL file from r.
//
// The triangle count in the header is authoritative. If r ends before
// that many records have been read, DecodeBinary returns a ReadError
// and no mesh. Data after the last record is ignored.
func DecodeBinary(r io.Reader) (*Mesh, error) {
	var header struct {
		H    [headerSize]byte
		NTri uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, &Error{Kind: ReadError, Err: fmt.Errorf("reading header: %w", unexpectedEOF(err))}
	}
	name := string(bytes.TrimRight(header.H[:], "\x00 "))

	n := int(header.NTri)
	m := newMesh(Binary, name, min(n, maxPrealloc))

	var tri Triangle
	triBuf := make([]byte, recordSize)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(r, triBuf); err != nil {
			return nil, &Error{Kind: ReadError, Err: fmt.Errorf("reading triangle %d of %d: %w", i, n, unexpectedEOF(err))}
		}
		tri.Normal = readVertex(triBuf[0:])
		for v := range tri.Vertices {
			tri.Vertices[v] = readVertex(triBuf[12+12*v:])
		}
		// The trailing attribute byte count is ignored.
		m.add(tri)
	}
	return m, nil
}

func readVertex(b []byte) Vertex {
	return Vertex{
		math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}

// unexpectedEOF converts io.EOF to io.ErrUnexpectedEOF. Running out of
// input anywhere in a binary file means it is truncated.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
