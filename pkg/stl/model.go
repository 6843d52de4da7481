package stl

import (
	"fmt"

	"github.com/philipparndt/gostitch/pkg/geometry"
	"github.com/philipparndt/gostitch/pkg/mesh"
)

// Model represents a complete STL model: a named soup of facets
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// FromMesh flattens a mesh into facets, computing each normal from the
// vertex order.
func FromMesh(name string, m *mesh.Mesh) *Model {
	model := &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0, m.TriangleCount()),
	}
	for _, f := range m.Faces() {
		model.AddTriangle(m.FaceTriangle(f))
	}
	return model
}

// ToMesh rebuilds shared vertices and edge uses from the facets. Facets that
// are degenerate after float32 rounding are skipped and counted.
func (m *Model) ToMesh(opts ...mesh.Option) (*mesh.Mesh, int, error) {
	out := mesh.New(opts...)
	skipped := 0
	for i, t := range m.Triangles {
		if _, err := out.InsertTriangle(t.V1, t.V2, t.V3); err != nil {
			if isDegenerate(err) {
				skipped++
				continue
			}
			return nil, skipped, fmt.Errorf("facet %d: %w", i, err)
		}
	}
	return out, skipped, nil
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}
