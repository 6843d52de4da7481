// Package stitch skins the surface between two point chains with triangles.
//
// Both chains have to run the same way. Looking at the finished surface
// from its outer side, the port chain lies to the left of the starboard
// chain when walking along them; swapping the two flips every normal.
package stitch

import (
	"fmt"

	"github.com/philipparndt/gostitch/pkg/geometry"
	"github.com/philipparndt/gostitch/pkg/mesh"
)

// OpenChains fills the ribbon between two open chains of at least two
// points each. Where one chain is denser than the other, fan triangles let
// the lagging side catch up so both chains advance at the same normalized
// arc length. The ribbon always holds len(port)+len(starboard)-2
// triangles. If any triangle is rejected the mesh is left as it was.
func OpenChains(m *mesh.Mesh, port, starboard []geometry.Vector3) error {
	if len(port) < 2 {
		return fmt.Errorf("%w: port chain has %d points, need 2", mesh.ErrShortChain, len(port))
	}
	if len(starboard) < 2 {
		return fmt.Errorf("%w: starboard chain has %d points, need 2", mesh.ErrShortChain, len(starboard))
	}

	cumP := geometry.CumulativeLengths(port)
	cumS := geometry.CumulativeLengths(starboard)
	lenP, lenS := cumP[len(cumP)-1], cumS[len(cumS)-1]
	if lenP == 0 || lenS == 0 {
		return fmt.Errorf("%w: chain of zero length", mesh.ErrCoincidentPoints)
	}
	progP := func(i int) float64 { return cumP[i] / lenP }
	progS := func(j int) float64 { return cumS[j] / lenS }

	lastP, lastS := len(port)-1, len(starboard)-1

	return m.Batch(func(m *mesh.Mesh) error {
		i, j := 0, 0

		fanPort := func() error {
			_, err := m.InsertTriangle(starboard[j], port[i+1], port[i])
			i++
			return err
		}
		fanStarboard := func() error {
			_, err := m.InsertTriangle(port[i], starboard[j], starboard[j+1])
			j++
			return err
		}

		for i < lastP || j < lastS {
			switch {
			case i == lastP:
				if err := fanStarboard(); err != nil {
					return err
				}
			case j == lastS:
				if err := fanPort(); err != nil {
					return err
				}
			default:
				i++
				j++
				if _, err := m.InsertQuad(port[i], port[i-1], starboard[j-1], starboard[j]); err != nil {
					return fmt.Errorf("rung %d/%d: %w", i, j, err)
				}

				for i < lastP && j < lastS && progP(i+1) < progS(j) {
					if err := fanPort(); err != nil {
						return err
					}
				}
				for j < lastS && i < lastP && progS(j+1) < progP(i) {
					if err := fanStarboard(); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

// ClosedRings fills the band between two closed rings of at least three
// points each, without the first point repeated at the end. The ring with
// fewer points is taken as the port side. The other ring is re-indexed to
// start at its point nearest to the port ring's first point, then the band
// is stitched like an open ribbon and closed with one more quad.
//
// Progress along each ring ignores its closing segment, so the two closing
// segments drift apart as the point counts diverge. Around one to five
// still closes cleanly. Far beyond that (three points against forty) the
// closing quad crosses itself and ClosedRings fails with
// mesh.ErrTwistedOrder, leaving the mesh untouched.
func ClosedRings(m *mesh.Mesh, ringA, ringB []geometry.Vector3) error {
	if len(ringA) < 3 {
		return fmt.Errorf("%w: ring has %d points, need 3", mesh.ErrShortChain, len(ringA))
	}
	if len(ringB) < 3 {
		return fmt.Errorf("%w: ring has %d points, need 3", mesh.ErrShortChain, len(ringB))
	}

	smaller, larger := ringA, ringB
	if len(ringB) < len(ringA) {
		smaller, larger = ringB, ringA
	}
	aligned := Rotate(larger, Nearest(larger, smaller[0]))

	return m.Batch(func(m *mesh.Mesh) error {
		if err := OpenChains(m, smaller, aligned); err != nil {
			return err
		}
		_, err := m.InsertQuad(smaller[len(smaller)-1], aligned[len(aligned)-1], aligned[0], smaller[0])
		if err != nil {
			return fmt.Errorf("closing quad: %w", err)
		}
		return nil
	})
}

// Nearest returns the index of the chain point closest to p, the first one on ties
func Nearest(chain []geometry.Vector3, p geometry.Vector3) int {
	best, bestDist := -1, 0.0
	for ix, q := range chain {
		if d := q.Distance(p); best < 0 || d < bestDist {
			best, bestDist = ix, d
		}
	}
	return best
}

// Rotate returns a copy of ring that starts at index start
func Rotate(ring []geometry.Vector3, start int) []geometry.Vector3 {
	out := make([]geometry.Vector3, 0, len(ring))
	out = append(out, ring[start:]...)
	return append(out, ring[:start]...)
}
