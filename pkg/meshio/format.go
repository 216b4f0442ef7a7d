// Package meshio selects a file format and routes loading and saving to the
// matching parser or writer.
package meshio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is one of the supported mesh encodings
type Format int

const (
	FormatASCIISTL Format = iota
	FormatBinarySTL
	FormatOBJ
)

// ErrUnsupportedFormat is returned for file extensions and format names
// that no parser handles.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

func (f Format) String() string {
	switch f {
	case FormatASCIISTL:
		return "stl-ascii"
	case FormatBinarySTL:
		return "stl-binary"
	case FormatOBJ:
		return "obj"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the canonical file extension for the format
func (f Format) Extension() string {
	if f == FormatOBJ {
		return ".obj"
	}
	return ".stl"
}

// FormatFromPath picks the format from the file extension, ignoring case.
// STL files map to FormatASCIISTL; parsing still falls back to binary when
// the content is not ASCII.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl", ".stla":
		return FormatASCIISTL, nil
	case ".obj":
		return FormatOBJ, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected .stl, .stla or .obj)", ErrUnsupportedFormat, ext)
	}
}

// ParseFormat maps a user-supplied format name to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "stl", "stl-ascii", "ascii":
		return FormatASCIISTL, nil
	case "stl-binary", "binary":
		return FormatBinarySTL, nil
	case "obj":
		return FormatOBJ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}
