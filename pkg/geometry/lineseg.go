package geometry

// LineSeg is a straight segment between two points
type LineSeg struct {
	Start Vector3
	End   Vector3
}

// NewLineSeg creates a segment
func NewLineSeg(start, end Vector3) LineSeg {
	return LineSeg{Start: start, End: end}
}

// Length returns the distance between the end points
func (s LineSeg) Length() float64 {
	return s.Start.Distance(s.End)
}

// Direction returns the unit vector from Start to End
func (s LineSeg) Direction() Vector3 {
	return s.Start.Direction(s.End)
}

// Midpoint returns the point halfway along the segment
func (s LineSeg) Midpoint() Vector3 {
	return s.Start.Add(s.End).Mul(0.5)
}

// Resolve splits the vector from Start to p into a component along the
// segment's line and a component perpendicular to it.
func (s LineSeg) Resolve(p Vector3) (along, perp Vector3) {
	dir := s.Direction()
	rel := p.Sub(s.Start)
	along = dir.Mul(rel.Dot(dir))
	perp = rel.Sub(along)
	return along, perp
}

// IntersectRay counts the crossings of a ray (origin, direction) with the
// segment. Both are assumed to be coplanar. Parallel or overlapping
// configurations count as zero crossings, and so does a ray that only
// starts on the segment.
func (s LineSeg) IntersectRay(origin, dir Vector3, tol Tolerance) []Vector3 {
	u := s.End.Sub(s.Start)
	n := u.Cross(dir)
	denom := n.Dot(n)
	if denom <= tol.Epsilon()*tol.Epsilon()*u.Dot(u) {
		return nil
	}

	r := origin.Sub(s.Start)
	param := r.Cross(dir).Dot(n) / denom // along the segment, 0..1
	reach := r.Cross(u).Dot(n) / denom   // along the ray

	eps := tol.Epsilon() / u.Length()
	if param < -eps || param > 1+eps || reach <= tol.Epsilon() {
		return nil
	}
	return []Vector3{s.Start.Add(u.Mul(param))}
}
