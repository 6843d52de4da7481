package geometry

import "fmt"

// Plane is an infinite flat surface through Origin with unit Normal
type Plane struct {
	Origin Vector3
	Normal Vector3
}

// NewPlane creates a plane through a point with the given normal direction
func NewPlane(origin, normal Vector3) (Plane, error) {
	if normal.Length() == 0 {
		return Plane{}, fmt.Errorf("plane normal must not be zero")
	}
	return Plane{Origin: origin, Normal: normal.Normalize()}, nil
}

// PlaneFromPoints creates the plane through three non-collinear points.
// The normal follows the right-hand rule over a, b, c.
func PlaneFromPoints(a, b, c Vector3, tol Tolerance) (Plane, error) {
	if tol.Collinear(a, b, c) {
		return Plane{}, fmt.Errorf("points %s, %s, %s are collinear", a, b, c)
	}
	return Plane{Origin: a, Normal: b.Sub(a).Cross(c.Sub(a)).Normalize()}, nil
}

// Resolve splits the vector from the plane origin to p into an in-plane
// component and a component along the normal.
func (pl Plane) Resolve(p Vector3) (inPlane, perp Vector3) {
	rel := p.Sub(pl.Origin)
	perp = pl.Normal.Mul(rel.Dot(pl.Normal))
	return rel.Sub(perp), perp
}

// SignedDistance returns the distance of p from the plane, positive on the normal side
func (pl Plane) SignedDistance(p Vector3) float64 {
	return p.Sub(pl.Origin).Dot(pl.Normal)
}

// Project drops p onto the plane
func (pl Plane) Project(p Vector3) Vector3 {
	return p.Sub(pl.Normal.Mul(pl.SignedDistance(p)))
}

// Mirror reflects p across the plane
func (pl Plane) Mirror(p Vector3) Vector3 {
	return p.Sub(pl.Normal.Mul(2 * pl.SignedDistance(p)))
}
