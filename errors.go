package stl

import (
	"fmt"
	"strings"
)

// Kind classifies the ways loading an STL file can fail. A Kind is
// itself an error so it can be used as the target of errors.Is:
//
//	if errors.Is(err, stl.ReadError) { ... }
type Kind int

const (
	// PathError means the file could not be opened.
	PathError Kind = iota + 1
	// ReadError means an I/O failure or fewer bytes than the format
	// requires at that point (truncation).
	ReadError
	// FormatError means the bytes are not valid for the variant being
	// decoded, such as a coordinate that is not a number.
	FormatError
	// StructuralError means the text grammar was violated: the wrong
	// token count on a facet or vertex line, a fourth vertex, or an
	// endfacet before three vertices.
	StructuralError
)

func (k Kind) String() string {
	switch k {
	case PathError:
		return "path error"
	case ReadError:
		return "read error"
	case FormatError:
		return "format error"
	case StructuralError:
		return "structural error"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Error() string {
	return k.String()
}

// Error is the error returned by every decoding operation in this
// package.
type Error struct {
	Kind Kind
	Path string // File path, if known
	Line int    // 1-based line in a text file, or 0
	Err  error  // Underlying cause
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("stl: ")
	if e.Path != "" {
		b.WriteString(e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	} else if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Kind.String())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is e's Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func errorf(kind Kind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Err: fmt.Errorf(format, args...)}
}

// withPath sets the path on err if it is an *Error without one.
func withPath(err error, path string) error {
	if e, ok := err.(*Error); ok && e.Path == "" {
		e.Path = path
	}
	return err
}
