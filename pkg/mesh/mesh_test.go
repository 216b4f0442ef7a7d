package mesh

import (
	"errors"
	"testing"

	"github.com/philipparndt/meshview/pkg/geometry"
)

func translatedCube(dx, dy, dz float64) *Mesh {
	raw := UnitCubeRaw()
	offset := geometry.NewVector3(dx, dy, dz)
	for i, v := range raw.Vertices {
		raw.Vertices[i] = v.Add(offset)
	}
	m, err := New(raw)
	if err != nil {
		panic(err)
	}
	return m
}

func TestUnitCubeEdges(t *testing.T) {
	cube := UnitCube()

	edges := cube.Edges()
	if len(edges) != 18 {
		t.Fatalf("Edges failed: expected 18 unique edges, got %d", len(edges))
	}

	seen := make(map[Edge]bool)
	for _, e := range edges {
		if e.A > e.B {
			t.Errorf("edge %v is not normalized", e)
		}
		if seen[e] {
			t.Errorf("edge %v returned twice", e)
		}
		seen[e] = true
	}
}

func TestEdgesIdempotent(t *testing.T) {
	cube := UnitCube()
	first := cube.Edges()
	second := cube.Edges()

	if len(first) != len(second) {
		t.Fatalf("Edges not idempotent: %d vs %d", len(first), len(second))
	}
	set := make(map[Edge]bool)
	for _, e := range first {
		set[e] = true
	}
	for _, e := range second {
		if !set[e] {
			t.Errorf("edge %v missing from first call", e)
		}
	}
}

func TestEdgesIndependentOfFaceOrder(t *testing.T) {
	raw := UnitCubeRaw()
	for i, j := 0, len(raw.Faces)-1; i < j; i, j = i+1, j-1 {
		raw.Faces[i], raw.Faces[j] = raw.Faces[j], raw.Faces[i]
	}
	// Reverse the winding of one face too
	raw.Faces[0] = Face{raw.Faces[0][2], raw.Faces[0][1], raw.Faces[0][0]}

	m, err := New(raw)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := len(m.Edges()); got != 18 {
		t.Errorf("Edges failed: expected 18, got %d", got)
	}
}

func TestEdgesPolygonWithRepeatedIndex(t *testing.T) {
	raw := &RawMesh{
		Vertices: []geometry.Vector3{{X: 0}, {X: 1}, {Y: 1}},
		Faces:    []Face{{0, 1, 2, 1}},
	}
	m, err := New(raw)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// 0-1, 1-2, 2-1 (same as 1-2), 1-0 (same as 0-1)
	if got := len(m.Edges()); got != 2 {
		t.Errorf("Edges failed: expected 2, got %d", got)
	}
}

func TestSegmentsResolveCoordinates(t *testing.T) {
	raw := &RawMesh{
		Vertices: []geometry.Vector3{{X: 0}, {X: 3}, {Y: 4}},
		Faces:    []Face{{0, 1, 2}},
	}
	m, err := New(raw)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	total := 0.0
	for _, s := range m.Segments() {
		total += s.Length()
	}
	if total != 12 {
		t.Errorf("Segments failed: expected perimeter 12, got %v", total)
	}
}

func TestUnitCubeBoundingBox(t *testing.T) {
	expected := [3][2]float64{{0, 1}, {0, 1}, {0, 1}}
	if got := UnitCube().BoundingBox().Axes(); got != expected {
		t.Errorf("BoundingBox failed: expected %v, got %v", expected, got)
	}
}

func TestBoundingBoxIgnoresUnreferencedVertices(t *testing.T) {
	raw := &RawMesh{
		Vertices: []geometry.Vector3{{X: 0}, {X: 1}, {Y: 1}, {X: 100, Y: 100, Z: 100}},
		Faces:    []Face{{0, 1, 2}},
	}
	m, err := New(raw)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	expected := [3][2]float64{{0, 1}, {0, 1}, {0, 0}}
	if got := m.BoundingBox().Axes(); got != expected {
		t.Errorf("BoundingBox failed: expected %v, got %v", expected, got)
	}
}

func TestMeshWithoutFaces(t *testing.T) {
	m, err := New(&RawMesh{Vertices: []geometry.Vector3{{X: 1}}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !m.BoundingBox().IsEmpty() {
		t.Errorf("mesh without faces should have an empty bounding box")
	}
	if len(m.Edges()) != 0 {
		t.Errorf("mesh without faces should have no edges")
	}
}

func TestNewRejectsIndexOutOfRange(t *testing.T) {
	raw := &RawMesh{
		Vertices: []geometry.Vector3{{X: 0}, {X: 1}, {Y: 1}},
		Faces:    []Face{{0, 1, 3}},
	}
	if _, err := New(raw); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}

	raw.Faces = []Face{{-1, 1, 2}}
	if _, err := New(raw); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange for negative index, got %v", err)
	}
}

func TestNewRejectsDegenerateFace(t *testing.T) {
	raw := &RawMesh{
		Vertices: []geometry.Vector3{{X: 0}, {X: 1}},
		Faces:    []Face{{0, 1}},
	}
	if _, err := New(raw); !errors.Is(err, ErrDegenerateFace) {
		t.Errorf("expected ErrDegenerateFace, got %v", err)
	}
}

func TestFaceVertices(t *testing.T) {
	cube := UnitCube()
	polygons := cube.FaceVertices()

	if len(polygons) != 12 {
		t.Fatalf("FaceVertices failed: expected 12 polygons, got %d", len(polygons))
	}
	expected := []geometry.Vector3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}}
	for i, v := range polygons[0] {
		if v != expected[i] {
			t.Errorf("FaceVertices[0][%d] failed: expected %v, got %v", i, expected[i], v)
		}
	}
}

func TestRawIsDeepCopy(t *testing.T) {
	cube := UnitCube()
	raw := cube.Raw()
	raw.Vertices[0] = geometry.NewVector3(-5, -5, -5)
	raw.Faces[0][0] = 7

	if cube.Vertices()[0] != (geometry.Vector3{}) {
		t.Errorf("modifying Raw() changed mesh vertices")
	}
	if cube.Faces()[0][0] != 0 {
		t.Errorf("modifying Raw() changed mesh faces")
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Kind: ErrInvalidNumber, Format: "obj", Line: 3, Token: "abc"}
	err2 := WithPath(err, "model.obj")

	expected := `model.obj: obj: line 3: invalid number "abc"`
	if err2.Error() != expected {
		t.Errorf("Error failed: expected %q, got %q", expected, err2.Error())
	}
	if !errors.Is(err2, ErrInvalidNumber) {
		t.Errorf("annotated error lost its kind")
	}
	if err.Path != "" {
		t.Errorf("WithPath modified the original error")
	}
}
