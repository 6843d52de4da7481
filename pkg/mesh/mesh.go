// Package mesh holds the triangle mesh topology kernel: a deduplicated
// vertex table, triangles as vertex index triples, and an edge ledger that
// keeps every edge shared by at most two triangles.
//
// A Mesh is not safe for concurrent use. Build independent meshes in
// parallel if needed and merge them with Absorb.
package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gostitch/pkg/geometry"
)

// TriangleID identifies a stored triangle for its whole lifetime. IDs are
// never reused within one Mesh.
type TriangleID int

// Face is a stored triangle: its ID and three vertex indices in winding order
type Face struct {
	ID TriangleID
	V  [3]int
}

// Option configures a new Mesh
type Option func(*Mesh)

// WithTolerance sets the distance under which two points are the same vertex
func WithTolerance(eps float64) Option {
	return func(m *Mesh) {
		m.tol = geometry.Tolerance(eps)
	}
}

// Mesh owns a vertex table, the triangles referencing it, and the edge
// ledger that tracks how often each edge is used.
type Mesh struct {
	tol    geometry.Tolerance
	verts  *vertexTable
	slots  [][3]int
	alive  []bool
	live   int
	ledger *EdgeLedger

	batchDepth int
	journal    []TriangleID
}

// New creates an empty mesh
func New(opts ...Option) *Mesh {
	m := &Mesh{ledger: NewEdgeLedger()}
	for _, opt := range opts {
		opt(m)
	}
	m.verts = newVertexTable(m.tol)
	return m
}

// Tolerance returns the vertex equality threshold
func (m *Mesh) Tolerance() geometry.Tolerance {
	return m.tol
}

// VertexCount returns the number of stored vertices
func (m *Mesh) VertexCount() int {
	return len(m.verts.points)
}

// TriangleCount returns the number of stored triangles
func (m *Mesh) TriangleCount() int {
	return m.live
}

// Vertex returns the coordinates of a vertex index
func (m *Mesh) Vertex(ix int) geometry.Vector3 {
	return m.verts.points[ix]
}

// Vertices returns a copy of the vertex table in index order
func (m *Mesh) Vertices() []geometry.Vector3 {
	out := make([]geometry.Vector3, len(m.verts.points))
	copy(out, m.verts.points)
	return out
}

// Indices returns the flat index list, three entries per triangle in
// insertion order.
func (m *Mesh) Indices() []int {
	out := make([]int, 0, 3*m.live)
	for slot, v := range m.slots {
		if m.alive[slot] {
			out = append(out, v[0], v[1], v[2])
		}
	}
	return out
}

// Faces returns every stored triangle in insertion order
func (m *Mesh) Faces() []Face {
	out := make([]Face, 0, m.live)
	for slot, v := range m.slots {
		if m.alive[slot] {
			out = append(out, Face{ID: TriangleID(slot), V: v})
		}
	}
	return out
}

// Face returns the triangle with the given ID
func (m *Mesh) Face(id TriangleID) (Face, bool) {
	if !m.isAlive(id) {
		return Face{}, false
	}
	return Face{ID: id, V: m.slots[id]}, true
}

// Triangle resolves a stored triangle to its coordinates
func (m *Mesh) Triangle(id TriangleID) (geometry.Triangle, bool) {
	f, ok := m.Face(id)
	if !ok {
		return geometry.Triangle{}, false
	}
	return m.FaceTriangle(f), true
}

// FaceTriangle resolves a face's indices through the vertex table
func (m *Mesh) FaceTriangle(f Face) geometry.Triangle {
	p := m.verts.points
	return geometry.TriangleFromPoints(p[f.V[0]], p[f.V[1]], p[f.V[2]])
}

// FindVertex returns the index of a stored point equal to p
func (m *Mesh) FindVertex(p geometry.Vector3) (int, bool) {
	ix := m.verts.find(p)
	return ix, ix >= 0
}

// InsertVertex returns the index of a stored point equal to p, appending p
// first if there is none. This is the only way the vertex table grows.
func (m *Mesh) InsertVertex(p geometry.Vector3) int {
	if ix := m.verts.find(p); ix >= 0 {
		return ix
	}
	return m.verts.append(p)
}

// RemoveVertex deletes the vertex equal to p and reports whether one was
// found. Every later vertex index shifts down by one; triangles and edges
// that reference those indices are not renumbered, so only use this on a
// mesh whose triangles will be rebuilt.
func (m *Mesh) RemoveVertex(p geometry.Vector3) bool {
	ix := m.verts.find(p)
	if ix < 0 {
		return false
	}
	m.verts.removeAt(ix)
	return true
}

// InsertTriangle stores the triangle a, b, c in the given winding order,
// creating vertices as needed. Either the triangle with all three edge uses
// is recorded, or nothing changes.
func (m *Mesh) InsertTriangle(a, b, c geometry.Vector3) (TriangleID, error) {
	if !m.tol.AllDistinct(a, b, c) {
		return 0, fmt.Errorf("%w: triangle %s, %s, %s", ErrCoincidentPoints, a, b, c)
	}
	if m.tol.Collinear(a, b, c) {
		return 0, fmt.Errorf("%w: %s, %s, %s are collinear", ErrDegenerateTriangle, a, b, c)
	}

	// Resolve indices without touching the table; new points get the
	// indices they will receive when appended in order.
	pts := [3]geometry.Vector3{a, b, c}
	var v [3]int
	var fresh []geometry.Vector3
	for k, p := range pts {
		if ix := m.verts.find(p); ix >= 0 {
			v[k] = ix
			continue
		}
		v[k] = len(m.verts.points) + len(fresh)
		fresh = append(fresh, p)
	}
	if v[0] == v[1] || v[1] == v[2] || v[2] == v[0] {
		return 0, fmt.Errorf("%w: triangle %s, %s, %s resolves to a repeated vertex", ErrCoincidentPoints, a, b, c)
	}

	if err := m.ledger.RecordTriangle(v); err != nil {
		return 0, fmt.Errorf("insert triangle %s, %s, %s: %w", a, b, c, err)
	}
	for _, p := range fresh {
		m.verts.append(p)
	}
	return m.appendSlot(v), nil
}

// RemoveTriangle deletes a stored triangle and releases its edges. The
// vertices stay in the table.
func (m *Mesh) RemoveTriangle(id TriangleID) error {
	if !m.isAlive(id) {
		return fmt.Errorf("%w: no triangle with id %d", ErrEdgeUnderflow, id)
	}
	if err := m.ledger.ReleaseTriangle(m.slots[id]); err != nil {
		return fmt.Errorf("remove triangle %d: %w", id, err)
	}
	m.alive[id] = false
	m.live--
	if m.batchDepth > 0 {
		m.journal = append(m.journal, id)
	}
	return nil
}

// TriangleAt maps a position in the index list to the triangle stored
// there. The position must address the last index of a triangle, so
// position % 3 == 2.
func (m *Mesh) TriangleAt(position int) (TriangleID, error) {
	if position < 0 || position%3 != 2 || position >= 3*m.live {
		return 0, fmt.Errorf("%w: index list position %d does not end a triangle", ErrEdgeUnderflow, position)
	}
	want := position / 3
	seen := 0
	for slot := range m.slots {
		if !m.alive[slot] {
			continue
		}
		if seen == want {
			return TriangleID(slot), nil
		}
		seen++
	}
	return 0, fmt.Errorf("%w: index list position %d does not end a triangle", ErrEdgeUnderflow, position)
}

// ReverseOrientation flips the winding of every triangle by swapping its
// second and third vertex. Edge uses are orientation independent.
func (m *Mesh) ReverseOrientation() {
	for slot := range m.slots {
		m.slots[slot][1], m.slots[slot][2] = m.slots[slot][2], m.slots[slot][1]
	}
}

// Transform moves every vertex; the topology stays as it is
func (m *Mesh) Transform(t geometry.Transform) {
	for ix, p := range m.verts.points {
		m.verts.points[ix] = t.Apply(p)
	}
	m.verts.reindex()
}

// EdgeUseCount returns how many triangles use the edge between two vertex indices
func (m *Mesh) EdgeUseCount(a, b int) int {
	return m.ledger.UseCount(a, b)
}

// BoundaryEdgeIndices returns the edges used by exactly one triangle
func (m *Mesh) BoundaryEdgeIndices() []Edge {
	return m.ledger.Single()
}

// InteriorEdgeIndices returns the edges used by exactly two triangles
func (m *Mesh) InteriorEdgeIndices() []Edge {
	return m.ledger.Double()
}

// BoundaryEdges returns the single-use edges as segments
func (m *Mesh) BoundaryEdges() []geometry.LineSeg {
	return m.segments(m.ledger.Single())
}

// InteriorEdges returns the double-use edges as segments
func (m *Mesh) InteriorEdges() []geometry.LineSeg {
	return m.segments(m.ledger.Double())
}

// IsWatertight reports whether the mesh has triangles and every edge is
// shared by exactly two of them.
func (m *Mesh) IsWatertight() bool {
	return m.live > 0 && m.ledger.SingleCount() == 0
}

// Clone returns an independent deep copy
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		tol:    m.tol,
		verts:  m.verts.clone(),
		slots:  make([][3]int, len(m.slots)),
		alive:  make([]bool, len(m.alive)),
		live:   m.live,
		ledger: m.ledger.Clone(),
	}
	copy(out.slots, m.slots)
	copy(out.alive, m.alive)
	return out
}

// Batch runs fn as one unit. If fn fails, every triangle inserted or
// removed and every vertex added inside it is undone before the error is
// returned. Vertex moves from Transform, ReverseOrientation and
// RemoveVertex are not undone.
func (m *Mesh) Batch(fn func(m *Mesh) error) error {
	cp := checkpoint{
		verts:   len(m.verts.points),
		slots:   len(m.slots),
		journal: len(m.journal),
	}
	m.batchDepth++
	err := fn(m)
	m.batchDepth--

	if err != nil {
		if rerr := m.restore(cp); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}
	if m.batchDepth == 0 {
		m.journal = m.journal[:0]
	}
	return err
}

type checkpoint struct {
	verts   int
	slots   int
	journal int
}

func (m *Mesh) restore(cp checkpoint) error {
	for slot := len(m.slots) - 1; slot >= cp.slots; slot-- {
		if !m.alive[slot] {
			continue
		}
		if err := m.ledger.ReleaseTriangle(m.slots[slot]); err != nil {
			return fmt.Errorf("roll back triangle %d: %w", slot, err)
		}
		m.live--
	}
	m.slots = m.slots[:cp.slots]
	m.alive = m.alive[:cp.slots]

	for k := len(m.journal) - 1; k >= cp.journal; k-- {
		id := m.journal[k]
		if int(id) >= cp.slots {
			continue
		}
		if err := m.ledger.RecordTriangle(m.slots[id]); err != nil {
			return fmt.Errorf("restore triangle %d: %w", id, err)
		}
		m.alive[id] = true
		m.live++
	}
	m.journal = m.journal[:cp.journal]

	m.verts.truncate(cp.verts)
	return nil
}

func (m *Mesh) appendSlot(v [3]int) TriangleID {
	m.slots = append(m.slots, v)
	m.alive = append(m.alive, true)
	m.live++
	return TriangleID(len(m.slots) - 1)
}

func (m *Mesh) isAlive(id TriangleID) bool {
	return id >= 0 && int(id) < len(m.slots) && m.alive[id]
}

func (m *Mesh) segments(edges []Edge) []geometry.LineSeg {
	out := make([]geometry.LineSeg, len(edges))
	for i, e := range edges {
		out[i] = geometry.NewLineSeg(m.verts.points[e.A], m.verts.points[e.B])
	}
	return out
}
