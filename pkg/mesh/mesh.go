package mesh

import (
	"slices"
	"strconv"
	"sync"

	"github.com/philipparndt/meshview/pkg/geometry"
)

// Face is a polygon given as 0-based indices into a vertex list.
// Index i connects to index (i+1) % len(face).
type Face []int

// RawMesh is the output of a format parser: a flat vertex list and the faces
// referencing it.
type RawMesh struct {
	Name     string
	Vertices []geometry.Vector3
	Faces    []Face
}

// Edge is an undirected vertex index pair with A <= B
type Edge struct {
	A, B int
}

func newEdge(i, j int) Edge {
	if j < i {
		i, j = j, i
	}
	return Edge{A: i, B: j}
}

// Mesh is a validated, immutable RawMesh together with its derived geometry
type Mesh struct {
	name        string
	vertices    []geometry.Vector3
	faces       []Face
	boundingBox geometry.BoundingBox

	edgesOnce sync.Once
	edges     []Edge
}

// New validates raw and builds a Mesh from it. The mesh takes ownership of
// raw's slices; the caller must not modify them afterwards.
func New(raw *RawMesh) (*Mesh, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}

	m := &Mesh{
		name:     raw.Name,
		vertices: raw.Vertices,
		faces:    raw.Faces,
	}
	m.boundingBox = m.computeBoundingBox()
	return m, nil
}

// Validate checks that every face has at least 3 indices and that every index
// refers to an existing vertex.
func Validate(raw *RawMesh) error {
	n := len(raw.Vertices)
	for fi, face := range raw.Faces {
		if len(face) < 3 {
			return &ParseError{Kind: ErrDegenerateFace, Token: faceToken(fi)}
		}
		for _, idx := range face {
			if idx < 0 || idx >= n {
				return &ParseError{Kind: ErrIndexOutOfRange, Token: faceToken(fi)}
			}
		}
	}
	return nil
}

func faceToken(fi int) string {
	return "face " + strconv.Itoa(fi)
}

// computeBoundingBox spans only the vertices referenced by at least one face
func (m *Mesh) computeBoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, face := range m.faces {
		for _, idx := range face {
			bbox.Extend(m.vertices[idx])
		}
	}
	return bbox
}

// Name returns the solid or object name found in the source file, if any
func (m *Mesh) Name() string {
	return m.name
}

// Vertices returns the vertex list. The returned slice must not be modified.
func (m *Mesh) Vertices() []geometry.Vector3 {
	return m.vertices
}

// Faces returns the face list. The returned slice must not be modified.
func (m *Mesh) Faces() []Face {
	return m.faces
}

// BoundingBox returns the box spanned by all face-referenced vertices.
// It is empty for a mesh without faces.
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return m.boundingBox
}

// FaceVertices expands every face to the coordinates of its vertices, in
// traversal order. This is the input for surface rendering.
func (m *Mesh) FaceVertices() [][]geometry.Vector3 {
	out := make([][]geometry.Vector3, len(m.faces))
	for i, face := range m.faces {
		polygon := make([]geometry.Vector3, len(face))
		for j, idx := range face {
			polygon[j] = m.vertices[idx]
		}
		out[i] = polygon
	}
	return out
}

// Edges returns the deduplicated set of undirected edges implied by the face
// boundaries. An edge shared by two faces appears once. The order of the
// returned edges is unspecified.
func (m *Mesh) Edges() []Edge {
	m.edgesOnce.Do(func() {
		seen := make(map[Edge]struct{})
		for _, face := range m.faces {
			for i := range face {
				e := newEdge(face[i], face[(i+1)%len(face)])
				if _, ok := seen[e]; ok {
					continue
				}
				seen[e] = struct{}{}
				m.edges = append(m.edges, e)
			}
		}
	})
	return slices.Clone(m.edges)
}

// Segments resolves Edges to their endpoint coordinates. This is the input for
// wireframe rendering.
func (m *Mesh) Segments() []geometry.Segment {
	edges := m.Edges()
	segments := make([]geometry.Segment, len(edges))
	for i, e := range edges {
		segments[i] = geometry.Segment{A: m.vertices[e.A], B: m.vertices[e.B]}
	}
	return segments
}

// Raw returns a deep copy of the mesh's vertices and faces, e.g. for writing
// the mesh back to a file.
func (m *Mesh) Raw() *RawMesh {
	faces := make([]Face, len(m.faces))
	for i, f := range m.faces {
		faces[i] = slices.Clone(f)
	}
	return &RawMesh{
		Name:     m.name,
		Vertices: slices.Clone(m.vertices),
		Faces:    faces,
	}
}
