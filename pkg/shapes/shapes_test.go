package shapes

import (
	"math"
	"testing"

	"github.com/philipparndt/gostitch/pkg/geometry"
	"github.com/philipparndt/gostitch/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	v    = geometry.NewVector3
	upZ  = geometry.NewVector3(0, 0, 1)
	zero = geometry.Vector3{}
)

func area(m *mesh.Mesh) float64 {
	sum := 0.0
	for _, f := range m.Faces() {
		sum += m.FaceTriangle(f).Area()
	}
	return sum
}

func TestFanFullCircle(t *testing.T) {
	circle, err := geometry.NewCircle(v(1, 1, 1), upZ, 2.0)
	require.NoError(t, err)
	rim, err := circle.ApproximateRing(0.01)
	require.NoError(t, err)

	m, err := Fan(circle, false, 0.01)
	require.NoError(t, err)

	assert.Equal(t, len(rim)+1, m.VertexCount())
	assert.Equal(t, len(rim), m.TriangleCount())
	assert.Len(t, m.BoundaryEdges(), len(rim))
	assert.Len(t, m.InteriorEdges(), len(rim))
	assert.Less(t, area(m), 4*math.Pi)
	assert.Greater(t, area(m), 0.99*4*math.Pi)
	for _, f := range m.Faces() {
		assert.Greater(t, m.FaceTriangle(f).Normal.Z, 0.99)
	}

	flipped, err := Fan(circle, true, 0.01)
	require.NoError(t, err)
	for _, f := range flipped.Faces() {
		assert.Less(t, flipped.FaceTriangle(f).Normal.Z, -0.99)
	}
}

func TestFanPartialArc(t *testing.T) {
	arc, err := geometry.NewArc(zero, upZ, v(1, 0, 0), math.Pi/2)
	require.NoError(t, err)
	rim, err := arc.ApproximateRing(0.01)
	require.NoError(t, err)

	m, err := Fan(arc, false, 0.01)
	require.NoError(t, err)
	assert.Equal(t, len(rim)-1, m.TriangleCount())
	assert.Len(t, m.BoundaryEdges(), len(rim)+1)
}

func TestFanRejectsBadCrown(t *testing.T) {
	circle, _ := geometry.NewCircle(zero, upZ, 1)
	_, err := Fan(circle, false, 0)
	assert.ErrorIs(t, err, ErrNotPositive)
}

func TestCylinderOutward(t *testing.T) {
	circle, err := geometry.NewCircle(zero, upZ, 1.0)
	require.NoError(t, err)
	ring, _ := circle.ApproximateRing(0.01)

	m, err := Cylinder(circle, 2.0, 0.01, true)
	require.NoError(t, err)

	assert.Len(t, m.BoundaryEdges(), 2*len(ring))
	require.NoError(t, m.Validate())
	for _, f := range m.Faces() {
		tri := m.FaceTriangle(f)
		radial := v(tri.Center().X, tri.Center().Y, 0)
		assert.Greater(t, tri.Normal.Dot(radial), 0.0)
	}

	perimeter := float64(len(ring)) * ring[0].Distance(ring[1])
	assert.InDelta(t, perimeter*2.0, area(m), 1e-9)

	inward, err := Cylinder(circle, 2.0, 0.01, false)
	require.NoError(t, err)
	for _, f := range inward.Faces() {
		tri := inward.FaceTriangle(f)
		radial := v(tri.Center().X, tri.Center().Y, 0)
		assert.Less(t, tri.Normal.Dot(radial), 0.0)
	}
}

func TestCylinderPartialArc(t *testing.T) {
	arc, err := geometry.NewArc(zero, upZ, v(0.5, 0, 0), math.Pi)
	require.NoError(t, err)

	m, err := Cylinder(arc, 1.0, 0.01, true)
	require.NoError(t, err)
	assert.Greater(t, m.TriangleCount(), 0)
	require.NoError(t, m.Validate())
	assert.False(t, m.IsWatertight())
}

func TestCylinderRejectsBadLength(t *testing.T) {
	circle, _ := geometry.NewCircle(zero, upZ, 1)
	_, err := Cylinder(circle, -1, 0.01, true)
	assert.ErrorIs(t, err, ErrNotPositive)
}

func TestCappedCylinderIsWatertight(t *testing.T) {
	m, err := CappedCylinder(v(1, 2, 3), v(0, 1, 0), 0.5, 3.0, 0.01)
	require.NoError(t, err)

	assert.True(t, m.IsWatertight())
	assert.Empty(t, m.BoundaryEdges())
	require.NoError(t, m.Validate())

	euler := m.VertexCount() - len(m.InteriorEdges()) + m.TriangleCount()
	assert.Equal(t, 2, euler)

	// Every normal faces away from the axis or out of the end caps
	mid := v(1, 3.5, 3)
	for _, f := range m.Faces() {
		tri := m.FaceTriangle(f)
		assert.Greater(t, tri.Normal.Dot(tri.Center().Sub(mid)), 0.0, "face %d", f.ID)
	}
}

func TestAnnulus(t *testing.T) {
	m, err := Annulus(v(1, 1, 1), upZ, 1.0, 1.5, 0.02)
	require.NoError(t, err)

	band := math.Pi * (1.5*1.5 - 1.0)
	assert.Greater(t, area(m), 0.97*band)
	assert.Less(t, area(m), band)
	for _, f := range m.Faces() {
		assert.Greater(t, m.FaceTriangle(f).Normal.Z, 0.99)
	}

	_, err = Annulus(zero, upZ, 2.0, 1.0, 0.01)
	assert.ErrorIs(t, err, ErrNotPositive)
}

func TestFilletRing(t *testing.T) {
	diameter, fillet := 2.0, 0.25

	m, blend, err := FilletRing(diameter, fillet, 0.01)
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	for _, p := range blend {
		assert.InDelta(t, 1.25, math.Hypot(p.X, p.Y), 1e-9)
		assert.InDelta(t, 0.0, p.Z, 1e-9)
	}

	r := diameter / 2
	want := 2 * math.Pi * fillet * ((r+fillet)*math.Pi/2 - fillet)
	assert.InEpsilon(t, want, area(m), 0.03)

	// The blend is a closed band: only the floor and shaft rings are open
	assert.Len(t, m.BoundaryEdges(), 2*len(blend))
}
