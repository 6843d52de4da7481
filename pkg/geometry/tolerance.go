package geometry

import "math"

// DefaultEpsilon is the separation below which two points are considered equal
const DefaultEpsilon = 1e-6

// Tolerance is the equality threshold used to compare coordinates.
// A zero Tolerance falls back to DefaultEpsilon.
type Tolerance float64

// Epsilon returns the effective threshold
func (t Tolerance) Epsilon() float64 {
	if t <= 0 {
		return DefaultEpsilon
	}
	return float64(t)
}

// Equal reports whether two points are within the tolerance of each other
func (t Tolerance) Equal(a, b Vector3) bool {
	return a.Distance(b) <= t.Epsilon()
}

// IsZero reports whether a vector is shorter than the tolerance
func (t Tolerance) IsZero(v Vector3) bool {
	return v.Length() <= t.Epsilon()
}

// AllDistinct reports whether no two of the given points are equal
func (t Tolerance) AllDistinct(points ...Vector3) bool {
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if t.Equal(points[i], points[j]) {
				return false
			}
		}
	}
	return true
}

// Collinear reports whether three points lie on one line.
// The height of the triangle over its longest side is compared to the tolerance,
// which keeps the test independent of the triangle's overall size.
func (t Tolerance) Collinear(a, b, c Vector3) bool {
	longest := math.Max(a.Distance(b), math.Max(b.Distance(c), c.Distance(a)))
	if longest <= t.Epsilon() {
		return true
	}
	doubleArea := b.Sub(a).Cross(c.Sub(a)).Length()
	return doubleArea/longest <= t.Epsilon()
}

// Cell returns the integer grid cell that contains the point, using the
// tolerance as cell size. Points that are Equal always lie in the same or
// in neighbouring cells.
func (t Tolerance) Cell(p Vector3) [3]int64 {
	eps := t.Epsilon()
	return [3]int64{
		int64(math.Floor(p.X / eps)),
		int64(math.Floor(p.Y / eps)),
		int64(math.Floor(p.Z / eps)),
	}
}
