// Package shapes assembles primitive solids from stitched point chains
package shapes

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gostitch/pkg/geometry"
	"github.com/philipparndt/gostitch/pkg/mesh"
	"github.com/philipparndt/gostitch/pkg/stitch"
)

// ErrNotPositive is returned for a size or crown that has to be greater than zero
var ErrNotPositive = errors.New("value must be positive")

// maxAspect limits how much longer than wide the side triangles of a
// cylinder may get.
const maxAspect = 4.0

// FanPoints fills the polygon rim with triangles around center. With
// closed set the last rim point connects back to the first. Triangles follow
// the rim order, so a counter-clockwise rim seen from above gives upward
// normals; reverse flips them.
func FanPoints(m *mesh.Mesh, center geometry.Vector3, rim []geometry.Vector3, closed, reverse bool) error {
	if len(rim) < 2 {
		return fmt.Errorf("%w: fan rim has %d points", mesh.ErrShortChain, len(rim))
	}
	return m.Batch(func(m *mesh.Mesh) error {
		count := len(rim)
		if !closed {
			count--
		}
		for g := 0; g < count; g++ {
			a, b := rim[g], rim[(g+1)%len(rim)]
			if reverse {
				a, b = b, a
			}
			if _, err := m.InsertTriangle(center, a, b); err != nil {
				return fmt.Errorf("fan triangle %d: %w", g, err)
			}
		}
		return nil
	})
}

// Fan covers the sector swept by perim with triangles meeting at its
// centre. A full circle gives a round cap.
func Fan(perim geometry.Arc, reverse bool, crown float64, opts ...mesh.Option) (*mesh.Mesh, error) {
	if crown <= 0 {
		return nil, fmt.Errorf("%w: crown %v", ErrNotPositive, crown)
	}
	rim, err := perim.ApproximateRing(crown)
	if err != nil {
		return nil, err
	}
	m := mesh.New(opts...)
	if err := FanPoints(m, perim.Center, rim, perim.IsFull(), reverse); err != nil {
		return nil, err
	}
	return m, nil
}

// Cylinder builds the side wall swept by moving ring length units along its
// axis. The wall is split into as many bands as needed to keep triangles
// no more than four times longer than wide. Outward selects normals that
// point away from the axis; a partial ring gives an open curved wall.
func Cylinder(ring geometry.Arc, length, crown float64, outward bool, opts ...mesh.Option) (*mesh.Mesh, error) {
	if crown <= 0 {
		return nil, fmt.Errorf("%w: crown %v", ErrNotPositive, crown)
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: length %v", ErrNotPositive, length)
	}

	lower, err := ring.ApproximateRing(crown)
	if err != nil {
		return nil, err
	}
	m := mesh.New(opts...)
	if _, err := wall(m, lower, ring.Axis, length, ring.IsFull()); err != nil {
		return nil, err
	}
	if !outward {
		m.ReverseOrientation()
	}
	return m, nil
}

// wall stitches bands up from lower and returns the top ring
func wall(m *mesh.Mesh, lower []geometry.Vector3, axis geometry.Vector3, length float64, closed bool) ([]geometry.Vector3, error) {
	chord := lower[0].Distance(lower[1])
	bands := int(length/(chord*maxAspect) + 0.5)
	if bands < 1 {
		bands = 1
	}
	moveUp := geometry.Translation(axis.Normalize().Mul(length / float64(bands)))

	err := m.Batch(func(m *mesh.Mesh) error {
		for g := 0; g < bands; g++ {
			upper := moveUp.ApplyAll(lower)
			var err error
			if closed {
				err = stitch.ClosedRings(m, upper, lower)
			} else {
				err = stitch.OpenChains(m, upper, lower)
			}
			if err != nil {
				return fmt.Errorf("band %d: %w", g, err)
			}
			lower = upper
		}
		return nil
	})
	return lower, err
}

// CappedCylinder builds a closed cylinder standing on the circle of radius
// around center, extending length along axis. Every normal points outward.
func CappedCylinder(center, axis geometry.Vector3, radius, length, crown float64, opts ...mesh.Option) (*mesh.Mesh, error) {
	if crown <= 0 || radius <= 0 || length <= 0 {
		return nil, fmt.Errorf("%w: radius %v, length %v, crown %v", ErrNotPositive, radius, length, crown)
	}
	circle, err := geometry.NewCircle(center, axis, radius)
	if err != nil {
		return nil, err
	}
	bottom, err := circle.ApproximateRing(crown)
	if err != nil {
		return nil, err
	}

	m := mesh.New(opts...)
	err = m.Batch(func(m *mesh.Mesh) error {
		top, err := wall(m, bottom, circle.Axis, length, true)
		if err != nil {
			return err
		}
		if err := FanPoints(m, center, bottom, true, true); err != nil {
			return fmt.Errorf("bottom cap: %w", err)
		}
		lid := center.Add(circle.Axis.Mul(length))
		if err := FanPoints(m, lid, top, true, false); err != nil {
			return fmt.Errorf("top cap: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Annulus fills the flat ring between two concentric circles. Normals
// follow the axis.
func Annulus(center, axis geometry.Vector3, inner, outer, crown float64, opts ...mesh.Option) (*mesh.Mesh, error) {
	if crown <= 0 || inner <= 0 || outer <= inner {
		return nil, fmt.Errorf("%w: radii %v and %v, crown %v", ErrNotPositive, inner, outer, crown)
	}
	small, err := geometry.NewCircle(center, axis, inner)
	if err != nil {
		return nil, err
	}
	large, err := geometry.NewCircle(center, axis, outer)
	if err != nil {
		return nil, err
	}
	innerPts, err := small.ApproximateRing(crown)
	if err != nil {
		return nil, err
	}
	outerPts, err := large.ApproximateRing(crown)
	if err != nil {
		return nil, err
	}
	// The inner ring never has more points, so it is always the port side
	m := mesh.New(opts...)
	err = stitch.ClosedRings(m, innerPts, outerPts)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// FilletRing builds the concave quarter-round blend between a shaft of
// the given diameter standing on the z=0 floor and the floor itself. It
// returns the mesh and the ring of points where the blend meets the floor.
func FilletRing(diameter, fillet, crown float64, opts ...mesh.Option) (*mesh.Mesh, []geometry.Vector3, error) {
	if diameter <= 0 || fillet <= 0 || crown <= 0 {
		return nil, nil, fmt.Errorf("%w: diameter %v, fillet %v, crown %v", ErrNotPositive, diameter, fillet, crown)
	}
	up := geometry.NewVector3(0, 0, 1)
	radius := diameter / 2

	shaft, err := geometry.NewArc(geometry.Vector3{}, up, geometry.NewVector3(radius, 0, 0), 2*math.Pi)
	if err != nil {
		return nil, nil, err
	}
	profile, err := shaft.SegmentCount(crown)
	if err != nil {
		return nil, nil, err
	}
	if profile < 3 {
		profile = 3
	}

	m := mesh.New(opts...)
	var blend []geometry.Vector3
	var first, previous []geometry.Vector3

	err = m.Batch(func(m *mesh.Mesh) error {
		for g := 0; g < profile; g++ {
			theta := float64(g) * 2 * math.Pi / float64(profile)
			out := geometry.NewVector3(math.Cos(theta), math.Sin(theta), 0)

			hump, err := filletHump(out, up, radius, fillet, crown)
			if err != nil {
				return err
			}
			blend = append(blend, hump[0])

			if g == 0 {
				first = hump
			} else if err := stitch.OpenChains(m, previous, hump); err != nil {
				return fmt.Errorf("fillet step %d: %w", g, err)
			}
			previous = hump
		}
		return stitch.OpenChains(m, previous, first)
	})
	if err != nil {
		return nil, nil, err
	}
	return m, blend, nil
}

// filletHump approximates the quarter circle in the plane of out and up,
// from the floor at radius+fillet up to the shaft at height fillet. It
// always has at least three segments.
func filletHump(out, up geometry.Vector3, radius, fillet, crown float64) ([]geometry.Vector3, error) {
	center := out.Mul(radius + fillet).Add(up.Mul(fillet))
	arc, err := geometry.NewArc(center, up.Cross(out), out.Mul(radius+fillet), math.Pi/2)
	if err != nil {
		return nil, err
	}
	count, err := arc.SegmentCount(crown)
	if err != nil {
		return nil, err
	}
	if count < 3 {
		count = 3
	}
	pts := make([]geometry.Vector3, 0, count+1)
	for i := 0; i <= count; i++ {
		pts = append(pts, arc.PointAtAngle(float64(i)*arc.Sweep/float64(count)))
	}
	return pts, nil
}
