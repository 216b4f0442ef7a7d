// Package obj reads and writes the polygon subset of Wavefront OBJ files:
// vertex positions and faces. Texture coordinates, normals, groups and
// materials are skipped.
package obj

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/philipparndt/meshview/pkg/mesh"
)

const (
	formatName    = "obj"
	maxLineLength = 1 << 20
)

// faceRef remembers where a face index came from so a dangling forward
// reference can be reported against its source line.
type faceRef struct {
	face  int
	line  int
	token string
}

// Parse reads an OBJ file. Faces keep their arity; for every face token
// only the vertex index before the first '/' is used. Indices are rebased to
// 0; negative indices count back from the most recent vertex.
func Parse(ctx context.Context, reader io.Reader) (*mesh.RawMesh, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	raw := &mesh.RawMesh{}
	var refs []faceRef
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("obj: parsing canceled at line %d: %w", lineNo, err)
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				err.Line = lineNo
				return nil, err
			}
			raw.Vertices = append(raw.Vertices, v)

		case "f":
			if len(fields) < 4 {
				return nil, &mesh.ParseError{
					Kind:   mesh.ErrDegenerateFace,
					Format: formatName,
					Line:   lineNo,
					Err:    fmt.Errorf("face has %d vertices, need at least 3", len(fields)-1),
				}
			}
			face := make(mesh.Face, len(fields)-1)
			for i, token := range fields[1:] {
				idx, err := parseIndex(token, len(raw.Vertices))
				if err != nil {
					err.Line = lineNo
					return nil, err
				}
				face[i] = idx
				if idx >= len(raw.Vertices) {
					refs = append(refs, faceRef{face: len(raw.Faces), line: lineNo, token: token})
				}
			}
			raw.Faces = append(raw.Faces, face)

		case "o":
			if raw.Name == "" {
				raw.Name = strings.Join(fields[1:], " ")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		kind := mesh.ErrIOFailure
		if errors.Is(err, bufio.ErrTooLong) {
			kind = mesh.ErrInvalidNumber
			err = fmt.Errorf("line longer than %d bytes: %w", maxLineLength, err)
		}
		return nil, &mesh.ParseError{Kind: kind, Format: formatName, Line: lineNo + 1, Err: err}
	}

	// Forward references are legal as long as the vertex exists by the end of the file
	for _, ref := range refs {
		for _, idx := range raw.Faces[ref.face] {
			if idx >= len(raw.Vertices) {
				return nil, &mesh.ParseError{Kind: mesh.ErrIndexOutOfRange, Format: formatName, Line: ref.line, Token: ref.token}
			}
		}
	}

	return raw, nil
}

func parseVertex(args []string) (geometry.Vector3, *mesh.ParseError) {
	if len(args) < 3 {
		return geometry.Vector3{}, &mesh.ParseError{
			Kind:   mesh.ErrInvalidNumber,
			Format: formatName,
			Err:    fmt.Errorf("expected 3 coordinates, got %d", len(args)),
		}
	}

	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return geometry.Vector3{}, &mesh.ParseError{Kind: mesh.ErrInvalidNumber, Format: formatName, Token: args[i], Err: err}
		}
		c[i] = f
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// parseIndex converts a face token such as "7", "7/3", "7//2" or "-1/-1/-1"
// to a 0-based vertex index. seen is the number of vertices read so far.
func parseIndex(token string, seen int) (int, *mesh.ParseError) {
	head, _, _ := strings.Cut(token, "/")

	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, &mesh.ParseError{Kind: mesh.ErrInvalidNumber, Format: formatName, Token: token, Err: err}
	}

	switch {
	case n > 0:
		return n - 1, nil
	case n < 0 && seen+n >= 0:
		return seen + n, nil
	}
	return 0, &mesh.ParseError{Kind: mesh.ErrIndexOutOfRange, Format: formatName, Token: token}
}
