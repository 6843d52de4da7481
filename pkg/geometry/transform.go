package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type stageKind int

const (
	stageTranslate stageKind = iota
	stageRotate
	stageScale
)

type stage struct {
	kind   stageKind
	vector Vector3
	pivot  Vector3
	rot    r3.Rotation
}

// Transform is an ordered sequence of translations, rotations and scalings.
// The zero value is the identity.
type Transform struct {
	stages []stage
}

// Identity returns a transform that leaves points unchanged
func Identity() Transform {
	return Transform{}
}

// Translation moves points by offset
func Translation(offset Vector3) Transform {
	return Transform{stages: []stage{{kind: stageTranslate, vector: offset}}}
}

// Rotation turns points by angle radians around the axis through pivot,
// counter-clockwise when looking down the axis towards the pivot.
func Rotation(pivot, axis Vector3, angle float64) Transform {
	a := axis.Normalize()
	rot := r3.NewRotation(angle, r3.Vec{X: a.X, Y: a.Y, Z: a.Z})
	return Transform{stages: []stage{{kind: stageRotate, pivot: pivot, rot: rot}}}
}

// RotationDegrees is Rotation with the angle given in degrees
func RotationDegrees(pivot, axis Vector3, degrees float64) Transform {
	return Rotation(pivot, axis, degrees*math.Pi/180.0)
}

// Scaling stretches points away from the origin by per-axis factors
func Scaling(factors Vector3) Transform {
	return Transform{stages: []stage{{kind: stageScale, vector: factors}}}
}

// Then returns a transform that applies t first and next afterwards
func (t Transform) Then(next Transform) Transform {
	stages := make([]stage, 0, len(t.stages)+len(next.stages))
	stages = append(stages, t.stages...)
	stages = append(stages, next.stages...)
	return Transform{stages: stages}
}

// IsIdentity reports whether the transform has no stages
func (t Transform) IsIdentity() bool {
	return len(t.stages) == 0
}

// Apply maps a point through every stage in order
func (t Transform) Apply(p Vector3) Vector3 {
	for _, s := range t.stages {
		switch s.kind {
		case stageTranslate:
			p = p.Add(s.vector)
		case stageRotate:
			rel := p.Sub(s.pivot)
			out := s.rot.Rotate(r3.Vec{X: rel.X, Y: rel.Y, Z: rel.Z})
			p = Vector3{X: out.X, Y: out.Y, Z: out.Z}.Add(s.pivot)
		case stageScale:
			p = Vector3{X: p.X * s.vector.X, Y: p.Y * s.vector.Y, Z: p.Z * s.vector.Z}
		}
	}
	return p
}

// ApplyAll maps every point of a chain
func (t Transform) ApplyAll(points []Vector3) []Vector3 {
	out := make([]Vector3, len(points))
	for i, p := range points {
		out[i] = t.Apply(p)
	}
	return out
}
