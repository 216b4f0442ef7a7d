package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/philipparndt/meshview/pkg/mesh"
)

// Write writes raw as an OBJ file with 1-based face indices
func Write(w io.Writer, raw *mesh.RawMesh) error {
	if err := mesh.Validate(raw); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if raw.Name != "" {
		fmt.Fprintf(bw, "o %s\n", raw.Name)
	}

	for _, v := range raw.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n",
			strconv.FormatFloat(v.X, 'g', -1, 64),
			strconv.FormatFloat(v.Y, 'g', -1, 64),
			strconv.FormatFloat(v.Z, 'g', -1, 64))
	}

	for _, face := range raw.Faces {
		bw.WriteString("f")
		for _, idx := range face {
			bw.WriteString(" ")
			bw.WriteString(strconv.Itoa(idx + 1))
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}
