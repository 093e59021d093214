package stl

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// Format is the variant of an STL file.
type Format int

const (
	Text Format = iota + 1
	Binary
)

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case Binary:
		return "binary"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

const (
	headerSize = 80
	keyword    = "solid"
)

// Sniff classifies the STL data at the start of r without consuming
// it.
//
// Leading white space within the 80 byte header is skipped, and the
// next len("solid") bytes are examined. If they are valid UTF-8 and
// spell "solid" in any case, the data is Text. Otherwise it is Binary.
// The rest of the header is not inspected, so text files whose solid
// name is not UTF-8 are still Text. Data shorter than len("solid") is
// a ReadError.
//
// Binary files are free to begin their header with "solid", and some
// exporters do. Sniff reports those as Text; the text decoder will
// then reject them.
func Sniff(r *bufio.Reader) (Format, error) {
	probe, err := r.Peek(headerSize)
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		return 0, &Error{Kind: ReadError, Err: fmt.Errorf("reading header: %w", err)}
	}
	if len(probe) < len(keyword) {
		return 0, &Error{Kind: ReadError, Err: fmt.Errorf("reading header: got %d bytes, need at least %d: %w", len(probe), len(keyword), io.ErrUnexpectedEOF)}
	}
	return classify(probe), nil
}

func classify(probe []byte) Format {
	probe = bytes.TrimLeftFunc(probe, unicode.IsSpace)
	if len(probe) > len(keyword) {
		probe = probe[:len(keyword)]
	}
	probe = trimPartialRune(probe)
	if _, _, err := transform.Bytes(encoding.UTF8Validator, probe); err != nil {
		return Binary
	}
	if cases.Lower(language.Und).String(string(probe)) == keyword {
		return Text
	}
	return Binary
}

// trimPartialRune drops an incomplete UTF-8 sequence cut off at the end
// of b by the probe length.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			break
		}
	}
	return b
}

// SniffFile opens the named file and classifies it as Sniff does.
func SniffFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &Error{Kind: PathError, Path: path, Err: err}
	}
	defer f.Close()
	format, err := Sniff(bufio.NewReader(f))
	return format, withPath(err, path)
}
