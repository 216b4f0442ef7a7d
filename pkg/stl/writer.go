package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/philipparndt/meshview/pkg/mesh"
)

// triangles fan-triangulates every face of raw. STL can only hold triangles.
func triangles(raw *mesh.RawMesh) [][3]geometry.Vector3 {
	var out [][3]geometry.Vector3
	for _, face := range raw.Faces {
		for i := 1; i < len(face)-1; i++ {
			out = append(out, [3]geometry.Vector3{
				raw.Vertices[face[0]],
				raw.Vertices[face[i]],
				raw.Vertices[face[i+1]],
			})
		}
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteASCII writes raw as an ASCII STL file. Polygons with more than three
// vertices are split into a triangle fan.
func WriteASCII(w io.Writer, raw *mesh.RawMesh) error {
	if err := mesh.Validate(raw); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	header := "solid"
	if raw.Name != "" {
		header += " " + raw.Name
	}
	fmt.Fprintln(bw, header)

	for _, tri := range triangles(raw) {
		n := geometry.TriangleNormal(tri[0], tri[1], tri[2])
		fmt.Fprintf(bw, "  facet normal %s %s %s\n", formatFloat(n.X), formatFloat(n.Y), formatFloat(n.Z))
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range tri {
			fmt.Fprintf(bw, "      vertex %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}

	fmt.Fprintln(bw, "end"+header)
	return bw.Flush()
}

// WriteBinary writes raw as a binary STL file. Coordinates are stored as
// float32 as the format requires.
func WriteBinary(w io.Writer, raw *mesh.RawMesh) error {
	if err := mesh.Validate(raw); err != nil {
		return err
	}

	tris := triangles(raw)
	if uint64(len(tris)) > math.MaxUint32 {
		return fmt.Errorf("stl: %d triangles exceed the binary format limit", len(tris))
	}

	bw := bufio.NewWriter(w)

	var prefix [binaryPrefixSize]byte
	copy(prefix[:binaryHeaderSize], raw.Name)
	binary.LittleEndian.PutUint32(prefix[binaryHeaderSize:], uint32(len(tris)))
	if _, err := bw.Write(prefix[:]); err != nil {
		return err
	}

	var record [binaryRecordSize]byte
	for _, tri := range tris {
		n := geometry.TriangleNormal(tri[0], tri[1], tri[2])
		putVector(record[0:], n)
		putVector(record[12:], tri[0])
		putVector(record[24:], tri[1])
		putVector(record[36:], tri[2])
		binary.LittleEndian.PutUint16(record[48:], 0)
		if _, err := bw.Write(record[:]); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func putVector(b []byte, v geometry.Vector3) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}
