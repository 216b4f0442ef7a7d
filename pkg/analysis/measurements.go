package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/philipparndt/meshview/pkg/mesh"
)

// EdgeInfo contains information about one wireframe edge
type EdgeInfo struct {
	Start     geometry.Vector3
	End       geometry.Vector3
	Length    float64
	MeshIndex int
}

// MeasurementResult contains various measurements of one or more meshes
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	MeshCount     int
	VertexCount   int
	FaceCount     int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// Analyze measures a single mesh
func Analyze(m *mesh.Mesh) *MeasurementResult {
	result := newResult()
	result.add(0, m)
	result.finish()
	return result
}

// AnalyzeModel measures every mesh of the model together. Edges keep the
// index of the mesh they belong to.
func AnalyzeModel(model *mesh.Model) (*MeasurementResult, error) {
	bbox, err := model.BoundingBox()
	if err != nil {
		return nil, err
	}

	result := newResult()
	for i, m := range model.Meshes() {
		result.add(i, m)
	}
	result.BoundingBox = bbox
	result.finish()
	return result, nil
}

func newResult() *MeasurementResult {
	return &MeasurementResult{
		BoundingBox:   geometry.NewBoundingBox(),
		AllEdges:      make([]EdgeInfo, 0),
		MinEdgeLength: math.MaxFloat64,
	}
}

func (r *MeasurementResult) add(index int, m *mesh.Mesh) {
	r.MeshCount++
	r.VertexCount += len(m.Vertices())
	r.FaceCount += len(m.Faces())
	r.BoundingBox = r.BoundingBox.Union(m.BoundingBox())
	r.SurfaceArea += SurfaceArea(m)

	for _, segment := range m.Segments() {
		length := segment.Length()
		r.AllEdges = append(r.AllEdges, EdgeInfo{
			Start:     segment.A,
			End:       segment.B,
			Length:    length,
			MeshIndex: index,
		})
		r.AvgEdgeLength += length // summed here, divided in finish
		if length < r.MinEdgeLength {
			r.MinEdgeLength = length
		}
		if length > r.MaxEdgeLength {
			r.MaxEdgeLength = length
		}
	}
}

func (r *MeasurementResult) finish() {
	r.Dimensions = r.BoundingBox.Size()
	r.Volume = r.BoundingBox.Volume()
	r.EdgeCount = len(r.AllEdges)
	if r.EdgeCount > 0 {
		r.AvgEdgeLength /= float64(r.EdgeCount)
	} else {
		r.MinEdgeLength = 0
	}
}

// SurfaceArea sums the area of every face, splitting polygons into a
// triangle fan.
func SurfaceArea(m *mesh.Mesh) float64 {
	total := 0.0
	for _, polygon := range m.FaceVertices() {
		for i := 1; i < len(polygon)-1; i++ {
			total += geometry.TriangleArea(polygon[0], polygon[i], polygon[i+1])
		}
	}
	return total
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}
	if count < 0 {
		count = 0
	}
	return edges[:count]
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

// FormatRange formats one axis of a bounding box
func FormatRange(min, max float64) string {
	return fmt.Sprintf("[%.6f, %.6f]", min, max)
}
