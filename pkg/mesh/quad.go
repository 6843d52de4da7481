package mesh

import (
	"fmt"

	"github.com/philipparndt/gostitch/pkg/geometry"
)

// InsertQuad splits the quadrilateral a, b, c, d into two triangles along
// the shorter diagonal. Both triangles keep the winding a→b→c→d. The quad
// must be simple: the ray from b toward d (dropped onto the plane of a, b, c)
// has to cross the diagonal a–c exactly once, and the rungs a→b and c→d have
// to run in opposite directions.
func (m *Mesh) InsertQuad(a, b, c, d geometry.Vector3) ([2]TriangleID, error) {
	var ids [2]TriangleID
	if !m.tol.AllDistinct(a, b, c, d) {
		return ids, fmt.Errorf("%w: quad %s, %s, %s, %s", ErrCoincidentPoints, a, b, c, d)
	}

	board, err := geometry.PlaneFromPoints(a, b, c, m.tol)
	if err != nil {
		return ids, fmt.Errorf("%w: quad %s, %s, %s, %s: %v", ErrDegenerateTriangle, a, b, c, d, err)
	}
	onboard := board.Project(d)
	if m.tol.Equal(b, onboard) {
		return ids, fmt.Errorf("%w: quad %s, %s, %s, %s folds onto itself", ErrTwistedOrder, a, b, c, d)
	}
	hits := geometry.NewLineSeg(a, c).IntersectRay(b, b.Direction(onboard), m.tol)
	if len(hits) != 1 {
		return ids, fmt.Errorf("%w: quad %s, %s, %s, %s", ErrTwistedOrder, a, b, c, d)
	}
	if a.Direction(b).Dot(c.Direction(d)) >= 0 {
		return ids, fmt.Errorf("%w: rungs %s→%s and %s→%s run the same way", ErrNonOrthogonal, a, b, c, d)
	}

	first, second := [3]geometry.Vector3{b, c, d}, [3]geometry.Vector3{d, a, b}
	if a.Distance(c) < b.Distance(d) {
		first, second = [3]geometry.Vector3{a, b, c}, [3]geometry.Vector3{c, d, a}
	}

	err = m.Batch(func(m *Mesh) error {
		var err error
		if ids[0], err = m.InsertTriangle(first[0], first[1], first[2]); err != nil {
			return err
		}
		ids[1], err = m.InsertTriangle(second[0], second[1], second[2])
		return err
	})
	return ids, err
}

// RemoveTriangleAt removes the triangle whose last index sits at the given
// position of the index list.
func (m *Mesh) RemoveTriangleAt(position int) error {
	id, err := m.TriangleAt(position)
	if err != nil {
		return err
	}
	return m.RemoveTriangle(id)
}
