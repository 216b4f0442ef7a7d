package meshio

import (
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/meshview/pkg/mesh"
	"github.com/philipparndt/meshview/pkg/obj"
	"github.com/philipparndt/meshview/pkg/stl"
)

// Write encodes raw in the given format
func Write(w io.Writer, format Format, raw *mesh.RawMesh) error {
	switch format {
	case FormatASCIISTL:
		return stl.WriteASCII(w, raw)
	case FormatBinarySTL:
		return stl.WriteBinary(w, raw)
	case FormatOBJ:
		return obj.Write(w, raw)
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
}

// Save writes raw to path in the given format
func Save(path string, format Format, raw *mesh.RawMesh) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return &mesh.ParseError{Kind: mesh.ErrIOFailure, Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &mesh.ParseError{Kind: mesh.ErrIOFailure, Path: path, Err: cerr}
		}
	}()

	if err := Write(file, format, raw); err != nil {
		return mesh.WithPath(err, path)
	}
	return nil
}
