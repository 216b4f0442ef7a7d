package stl

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/philipparndt/meshview/pkg/mesh"
)

const (
	formatName = "stl"

	binaryHeaderSize = 80
	binaryPrefixSize = binaryHeaderSize + 4
	// normal + 3 vertices (12 float32) + attribute byte count (uint16)
	binaryRecordSize = 12*4 + 2

	maxLineLength = 1 << 20
)

// Parse decodes STL content in two explicit stages. Content without NUL
// bytes is parsed as ASCII STL and its result, error included, is final.
// Anything else is decoded as binary STL; binary files whose header starts
// with "solid" land here because the count and record bytes hold zeros.
func Parse(ctx context.Context, data []byte) (*mesh.RawMesh, error) {
	if !isText(data) {
		return ParseBinary(ctx, data)
	}
	return ParseASCII(ctx, bytes.NewReader(data))
}

// isText reports whether data can be read as ASCII STL. Only the keywords
// and numbers must be ASCII; names and comments may use any encoding.
func isText(data []byte) bool {
	return len(data) > 0 && bytes.IndexByte(data, 0) < 0
}

// binaryTriangleCount returns the triangle count declared in a binary STL
// header, or -1 if the size of data does not match that count.
func binaryTriangleCount(data []byte) int64 {
	if len(data) < binaryPrefixSize {
		return -1
	}
	count := int64(binary.LittleEndian.Uint32(data[binaryHeaderSize:binaryPrefixSize]))
	if int64(len(data)) != binaryPrefixSize+count*binaryRecordSize {
		return -1
	}
	return count
}

// ParseASCII parses an ASCII STL file.
//
// Every facet whose loop holds exactly three vertices becomes one triangle
// with three fresh vertices; coincident vertices of neighboring facets are
// not merged. Loops with any other number of vertices are dropped without
// an error.
func ParseASCII(ctx context.Context, reader io.Reader) (*mesh.RawMesh, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	raw := &mesh.RawMesh{}
	loop := make([]geometry.Vector3, 0, 3)
	headerSeen := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("stl: parsing canceled at line %d: %w", lineNo, err)
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if !headerSeen {
			if fields[0] != "solid" {
				return nil, &mesh.ParseError{Kind: mesh.ErrMalformedHeader, Format: formatName, Line: lineNo, Token: fields[0]}
			}
			headerSeen = true
			raw.Name = strings.Join(fields[1:], " ")
			continue
		}

		switch fields[0] {
		case "facet":
			loop = loop[:0]

		case "vertex":
			v, err := parseVertex(fields[1:])
			if err != nil {
				err.Format = formatName
				err.Line = lineNo
				return nil, err
			}
			loop = append(loop, v)

		case "endloop":
			if len(loop) == 3 {
				base := len(raw.Vertices)
				raw.Vertices = append(raw.Vertices, loop...)
				raw.Faces = append(raw.Faces, mesh.Face{base, base + 1, base + 2})
			}
			loop = loop[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		kind := mesh.ErrIOFailure
		if errors.Is(err, bufio.ErrTooLong) {
			kind = mesh.ErrInvalidNumber
			if !headerSeen {
				kind = mesh.ErrMalformedHeader
			}
			err = fmt.Errorf("line longer than %d bytes: %w", maxLineLength, err)
		}
		return nil, &mesh.ParseError{Kind: kind, Format: formatName, Line: lineNo + 1, Err: err}
	}
	if !headerSeen {
		return nil, &mesh.ParseError{Kind: mesh.ErrMalformedHeader, Format: formatName, Err: errors.New("missing solid header")}
	}

	return raw, nil
}

// parseVertex reads the three coordinates following a "vertex" token
func parseVertex(args []string) (geometry.Vector3, *mesh.ParseError) {
	if len(args) < 3 {
		return geometry.Vector3{}, &mesh.ParseError{
			Kind: mesh.ErrInvalidNumber,
			Err:  fmt.Errorf("expected 3 coordinates, got %d", len(args)),
		}
	}

	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return geometry.Vector3{}, &mesh.ParseError{Kind: mesh.ErrInvalidNumber, Token: args[i], Err: err}
		}
		c[i] = f
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// ParseBinary decodes a binary STL file: an 80-byte header, a little-endian
// triangle count and one 50-byte record per triangle. The data size must
// match the declared count exactly.
func ParseBinary(ctx context.Context, data []byte) (*mesh.RawMesh, error) {
	if len(data) < binaryPrefixSize {
		return nil, &mesh.ParseError{
			Kind:   mesh.ErrMalformedHeader,
			Format: formatName,
			Err:    fmt.Errorf("%d bytes is shorter than the %d-byte binary header", len(data), binaryPrefixSize),
		}
	}

	count := binaryTriangleCount(data)
	if count < 0 {
		declared := binary.LittleEndian.Uint32(data[binaryHeaderSize:binaryPrefixSize])
		return nil, &mesh.ParseError{
			Kind:   mesh.ErrMalformedHeader,
			Format: formatName,
			Err: fmt.Errorf("%d triangles need %d bytes, file has %d",
				declared, binaryPrefixSize+int64(declared)*binaryRecordSize, len(data)),
		}
	}

	raw := &mesh.RawMesh{
		Name:     strings.TrimRight(string(data[:binaryHeaderSize]), "\x00 "),
		Vertices: make([]geometry.Vector3, 0, 3*count),
		Faces:    make([]mesh.Face, 0, count),
	}

	for i := int64(0); i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("stl: parsing canceled at triangle %d: %w", i, err)
		}

		record := data[binaryPrefixSize+i*binaryRecordSize:]
		base := len(raw.Vertices)
		for v := 0; v < 3; v++ {
			// Skip the normal; it is recomputed when needed
			const start = 3 * 4
			raw.Vertices = append(raw.Vertices, geometry.NewVector3(
				readFloat32(record, start+12*v),
				readFloat32(record, start+12*v+4),
				readFloat32(record, start+12*v+8),
			))
		}
		raw.Faces = append(raw.Faces, mesh.Face{base, base + 1, base + 2})
	}

	return raw, nil
}

func readFloat32(b []byte, offset int) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b[offset:])))
}
