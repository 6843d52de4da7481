package mesh

import "github.com/philipparndt/gostitch/pkg/geometry"

// vertexTable is the ordered, deduplicated store of mesh points. Lookups go
// through a hash grid whose cell size equals the tolerance, so a match can
// only sit in the point's own cell or one of its 26 neighbours.
type vertexTable struct {
	tol    geometry.Tolerance
	points []geometry.Vector3
	grid   map[[3]int64][]int
}

func newVertexTable(tol geometry.Tolerance) *vertexTable {
	return &vertexTable{
		tol:  tol,
		grid: make(map[[3]int64][]int),
	}
}

// find returns the index of a point equal to p, or -1
func (vt *vertexTable) find(p geometry.Vector3) int {
	cell := vt.tol.Cell(p)
	found := -1
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				key := [3]int64{cell[0] + dx, cell[1] + dy, cell[2] + dz}
				for _, ix := range vt.grid[key] {
					if vt.tol.Equal(vt.points[ix], p) && (found < 0 || ix < found) {
						found = ix
					}
				}
			}
		}
	}
	return found
}

func (vt *vertexTable) append(p geometry.Vector3) int {
	ix := len(vt.points)
	vt.points = append(vt.points, p)
	cell := vt.tol.Cell(p)
	vt.grid[cell] = append(vt.grid[cell], ix)
	return ix
}

// truncate drops every point from index n on
func (vt *vertexTable) truncate(n int) {
	if n >= len(vt.points) {
		return
	}
	vt.points = vt.points[:n]
	vt.reindex()
}

func (vt *vertexTable) removeAt(ix int) {
	vt.points = append(vt.points[:ix], vt.points[ix+1:]...)
	vt.reindex()
}

// reindex rebuilds the grid after points moved or shifted
func (vt *vertexTable) reindex() {
	vt.grid = make(map[[3]int64][]int, len(vt.points))
	for ix, p := range vt.points {
		cell := vt.tol.Cell(p)
		vt.grid[cell] = append(vt.grid[cell], ix)
	}
}

func (vt *vertexTable) clone() *vertexTable {
	out := &vertexTable{
		tol:    vt.tol,
		points: make([]geometry.Vector3, len(vt.points)),
	}
	copy(out.points, vt.points)
	out.reindex()
	return out
}
