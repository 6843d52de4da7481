package geometry

import (
	"fmt"
	"math"
)

// Arc is a circular arc swept around Axis through Center, beginning at Start.
// A positive Sweep runs counter-clockwise when looking against the axis.
type Arc struct {
	Center Vector3
	Axis   Vector3
	Start  Vector3
	Sweep  float64
}

// NewArc creates an arc. The start point must not sit on the axis.
func NewArc(center, axis, start Vector3, sweep float64) (Arc, error) {
	if axis.Length() == 0 {
		return Arc{}, fmt.Errorf("arc axis must not be zero")
	}
	arc := Arc{Center: center, Axis: axis.Normalize(), Start: start, Sweep: sweep}
	if arc.Radius() == 0 {
		return Arc{}, fmt.Errorf("arc start %s lies on the axis", start)
	}
	if sweep == 0 {
		return Arc{}, fmt.Errorf("arc sweep must not be zero")
	}
	return arc, nil
}

// NewCircle creates a full circle of the given radius. The start point is
// chosen on an arbitrary direction perpendicular to the axis.
func NewCircle(center, axis Vector3, radius float64) (Arc, error) {
	if radius <= 0 {
		return Arc{}, fmt.Errorf("circle radius must be positive, got %v", radius)
	}
	n := axis.Normalize()
	ref := NewVector3(1, 0, 0)
	if math.Abs(n.Dot(ref)) > 0.9 {
		ref = NewVector3(0, 1, 0)
	}
	radial := n.Cross(ref).Cross(n).Normalize()
	return NewArc(center, axis, center.Add(radial.Mul(radius)), 2*math.Pi)
}

// CircleThrough computes the circle passing through three points.
// It returns the full circle starting at p1, with the axis following the
// right-hand rule over p1, p2, p3.
//
// Uses the vector form of the circumcenter:
//
//	a = p1-p3, b = p2-p3
//	center = p3 + ((|a|² b - |b|² a) × (a × b)) / (2 |a × b|²)
func CircleThrough(p1, p2, p3 Vector3, tol Tolerance) (Arc, error) {
	if tol.Collinear(p1, p2, p3) {
		return Arc{}, fmt.Errorf("points are collinear")
	}
	a := p1.Sub(p3)
	b := p2.Sub(p3)
	axb := a.Cross(b)
	num := b.Mul(a.Dot(a)).Sub(a.Mul(b.Dot(b))).Cross(axb)
	center := p3.Add(num.Mul(1.0 / (2.0 * axb.Dot(axb))))
	return NewArc(center, axb, p1, 2*math.Pi)
}

// Radius returns the distance of the start point from the axis
func (a Arc) Radius() float64 {
	_, perp := a.resolveStart()
	return perp.Length()
}

// IsFull reports whether the arc closes on itself
func (a Arc) IsFull() bool {
	return math.Abs(math.Abs(a.Sweep)-2*math.Pi) < 1e-9
}

// PointAtAngle returns the point reached after rotating the start by theta
func (a Arc) PointAtAngle(theta float64) Vector3 {
	return Rotation(a.Center, a.Axis, theta).Apply(a.Start)
}

// End returns the final point of the arc
func (a Arc) End() Vector3 {
	return a.PointAtAngle(a.Sweep)
}

// SegmentCount returns how many equal chords keep the gap between chord and
// arc at or below allowableCrown.
func (a Arc) SegmentCount(allowableCrown float64) (int, error) {
	r := a.Radius()
	if allowableCrown <= 0 {
		return 0, fmt.Errorf("allowable crown must be positive, got %v", allowableCrown)
	}
	if allowableCrown >= r {
		return 1, nil
	}
	maxSwing := 2.0 * math.Acos(1.0-allowableCrown/r)
	return int(math.Ceil(math.Abs(a.Sweep) / maxSwing)), nil
}

// Approximate returns points along the arc, start and end included, spaced
// so no chord strays further than allowableCrown from the curve. A full
// circle repeats its start point at the end.
func (a Arc) Approximate(allowableCrown float64) ([]Vector3, error) {
	count, err := a.SegmentCount(allowableCrown)
	if err != nil {
		return nil, err
	}
	if a.IsFull() && count < 3 {
		count = 3
	}
	step := a.Sweep / float64(count)
	points := make([]Vector3, 0, count+1)
	for i := 0; i <= count; i++ {
		points = append(points, a.PointAtAngle(float64(i)*step))
	}
	return points, nil
}

// ApproximateRing is Approximate without the repeated closing point, which
// is the form closed-ring stitching expects.
func (a Arc) ApproximateRing(allowableCrown float64) ([]Vector3, error) {
	points, err := a.Approximate(allowableCrown)
	if err != nil {
		return nil, err
	}
	if a.IsFull() {
		points = points[:len(points)-1]
	}
	return points, nil
}

func (a Arc) resolveStart() (along, perp Vector3) {
	rel := a.Start.Sub(a.Center)
	along = a.Axis.Mul(rel.Dot(a.Axis))
	return along, rel.Sub(along)
}
