package mesh

import (
	"slices"
	"sync"

	"github.com/philipparndt/meshview/pkg/geometry"
)

// Model is the ordered collection of loaded meshes. Order is load order.
// It is safe for concurrent use; the meshes themselves are immutable.
type Model struct {
	mu     sync.RWMutex
	meshes []*Mesh
}

// NewModel creates a model holding the given meshes
func NewModel(meshes ...*Mesh) *Model {
	m := &Model{}
	m.Replace(meshes...)
	return m
}

// Append adds a mesh after all previously loaded ones
func (m *Model) Append(mesh *Mesh) {
	if mesh == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meshes = append(m.meshes, mesh)
}

// Clear drops all meshes
func (m *Model) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meshes = nil
}

// Replace swaps the whole collection in one step, so observers never see
// the cleared intermediate state.
func (m *Model) Replace(meshes ...*Mesh) {
	next := make([]*Mesh, 0, len(meshes))
	for _, mesh := range meshes {
		if mesh != nil {
			next = append(next, mesh)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.meshes = next
}

// Len returns the number of meshes in the model
func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.meshes)
}

// Meshes returns a snapshot of the collection in load order
func (m *Model) Meshes() []*Mesh {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.meshes)
}

// BoundingBox returns the box enclosing every mesh in the model, starting
// from the first mesh and widening per axis with each following one.
// It fails with ErrEmptyModel when nothing is loaded.
func (m *Model) BoundingBox() (geometry.BoundingBox, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.meshes) == 0 {
		return geometry.NewBoundingBox(), ErrEmptyModel
	}

	bbox := m.meshes[0].BoundingBox()
	for _, mesh := range m.meshes[1:] {
		bbox = bbox.Union(mesh.BoundingBox())
	}
	return bbox, nil
}
