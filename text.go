package stl

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
)

const maxLineSize = 1 << 20

// DecodeText decodes a text STL file from r. The grammar is
//
//	solid <name>
//	  facet normal <nx> <ny> <nz>
//	    outer loop
//	      vertex <x> <y> <z>
//	      vertex <x> <y> <z>
//	      vertex <x> <y> <z>
//	    endloop
//	  endfacet
//	  ...
//	endsolid <name>
//
// Only the facet, vertex, and endfacet lines carry data. Every other
// line is skipped, and decoding stops at the end of r whether or not
// endsolid was seen. Keywords are matched without regard to case.
//
// A coordinate that is not a number is a FormatError. One that is a
// number but overflows float32, such as 1e39, decodes as ±Inf.
//
// A NUL byte anywhere in the input is a FormatError. This rejects
// binary files that Sniff misclassified as text.
func DecodeText(r io.Reader) (*Mesh, error) {
	m := newMesh(Text, "", 0)
	haveName := false

	var (
		tri     Triangle
		inFacet bool
		nVert   int
		lineNo  int
		err     error
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	for scanner.Scan() {
		lineNo++
		if bytes.IndexByte(scanner.Bytes(), 0) >= 0 {
			// Most likely a binary file whose header starts with "solid".
			return nil, errorf(FormatError, lineNo, "NUL byte in text STL")
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "solid":
			if !haveName {
				m.name = strings.Join(fields[1:], " ")
				haveName = true
			}

		case "facet":
			if inFacet {
				return nil, errorf(StructuralError, lineNo, "facet inside unterminated facet")
			}
			if len(fields) != 5 || !strings.EqualFold(fields[1], "normal") {
				return nil, errorf(StructuralError, lineNo, "want \"facet normal <nx> <ny> <nz>\", got %q", scanner.Text())
			}
			if tri.Normal, err = parseVertex(fields[2:], lineNo); err != nil {
				return nil, err
			}
			inFacet, nVert = true, 0

		case "vertex":
			if !inFacet {
				return nil, errorf(StructuralError, lineNo, "vertex outside facet")
			}
			if len(fields) != 4 {
				return nil, errorf(StructuralError, lineNo, "want \"vertex <x> <y> <z>\", got %q", scanner.Text())
			}
			if nVert >= len(tri.Vertices) {
				return nil, errorf(StructuralError, lineNo, "more than %d vertices in facet", len(tri.Vertices))
			}
			if tri.Vertices[nVert], err = parseVertex(fields[1:], lineNo); err != nil {
				return nil, err
			}
			nVert++

		case "endfacet":
			if !inFacet {
				return nil, errorf(StructuralError, lineNo, "endfacet outside facet")
			}
			if nVert != len(tri.Vertices) {
				return nil, errorf(StructuralError, lineNo, "endfacet after %d of %d vertices", nVert, len(tri.Vertices))
			}
			m.add(tri)
			inFacet = false
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{Kind: ReadError, Line: lineNo + 1, Err: err}
	}
	if inFacet {
		return nil, errorf(StructuralError, lineNo, "unexpected end of input inside facet")
	}
	return m, nil
}

// parseVertex parses three coordinates. Numbers too large for a
// float32 become ±Inf.
func parseVertex(fields []string, lineNo int) (Vertex, error) {
	var xyz [3]float32
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Vertex{}, &Error{Kind: FormatError, Line: lineNo, Err: err}
		}
		xyz[i] = float32(x)
	}
	return Vertex{xyz[0], xyz[1], xyz[2]}, nil
}
