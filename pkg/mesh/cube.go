package mesh

import "github.com/philipparndt/meshview/pkg/geometry"

// UnitCubeRaw returns the unit cube [0,1]^3 as 8 shared vertices and 12
// triangles. It is the model shown before any file is opened.
func UnitCubeRaw() *RawMesh {
	return &RawMesh{
		Name: "unit cube",
		Vertices: []geometry.Vector3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
		},
		Faces: []Face{
			{0, 1, 2}, {0, 2, 3}, // bottom
			{0, 1, 5}, {0, 5, 4}, // front
			{1, 2, 6}, {1, 6, 5}, // right
			{2, 3, 7}, {2, 7, 6}, // back
			{3, 0, 4}, {3, 4, 7}, // left
			{4, 5, 6}, {4, 6, 7}, // top
		},
	}
}

// UnitCube returns UnitCubeRaw as a Mesh
func UnitCube() *Mesh {
	m, err := New(UnitCubeRaw())
	if err != nil {
		panic(err)
	}
	return m
}
