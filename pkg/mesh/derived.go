package mesh

import (
	"fmt"

	"github.com/philipparndt/gostitch/pkg/geometry"
)

// Mirror builds a new mesh by reflecting every vertex of src across plane
// and inserting the triangles again. Reflection turns the winding inside
// out; pass flip to restore outward normals.
func Mirror(src *Mesh, plane geometry.Plane, flip bool) (*Mesh, error) {
	out := New(WithTolerance(float64(src.tol)))
	// source vertices closer than the tolerance merge, so indices can differ
	remap := make([]int, len(src.verts.points))
	for ix, p := range src.verts.points {
		remap[ix] = out.InsertVertex(plane.Mirror(p))
	}

	for _, f := range src.Faces() {
		a, b, c := out.Vertex(remap[f.V[0]]), out.Vertex(remap[f.V[1]]), out.Vertex(remap[f.V[2]])
		if flip {
			b, c = c, b
		}
		if _, err := out.InsertTriangle(a, b, c); err != nil {
			return nil, fmt.Errorf("mirror triangle %d: %w", f.ID, err)
		}
	}
	return out, nil
}

// Absorb inserts every triangle of src into dst. Shared vertices merge by
// tolerance and shared edges are counted. If any triangle is rejected dst is
// left as it was.
func Absorb(dst, src *Mesh) error {
	return dst.Batch(func(dst *Mesh) error {
		for _, f := range src.Faces() {
			t := src.FaceTriangle(f)
			if _, err := dst.InsertTriangle(t.V1, t.V2, t.V3); err != nil {
				return fmt.Errorf("absorb triangle %d: %w", f.ID, err)
			}
		}
		return nil
	})
}

// Validate recounts every edge from the stored triangles and compares the
// result with the ledger.
func (m *Mesh) Validate() error {
	uses := make(map[Edge]int)
	for _, f := range m.Faces() {
		for _, ix := range f.V {
			if ix < 0 || ix >= len(m.verts.points) {
				return fmt.Errorf("triangle %d references vertex %d of %d", f.ID, ix, len(m.verts.points))
			}
		}
		for _, e := range triangleEdges(f.V) {
			uses[e]++
		}
	}

	for e, n := range uses {
		if n > 2 {
			return fmt.Errorf("%w: edge %d-%d used by %d triangles", ErrEdgeOverflow, e.A, e.B, n)
		}
		if got := m.ledger.UseCount(e.A, e.B); got != n {
			return fmt.Errorf("edge %d-%d used by %d triangles but recorded %d times", e.A, e.B, n, got)
		}
	}
	if len(uses) != m.ledger.SingleCount()+m.ledger.DoubleCount() {
		return fmt.Errorf("ledger holds %d edges, triangles use %d",
			m.ledger.SingleCount()+m.ledger.DoubleCount(), len(uses))
	}
	return nil
}
