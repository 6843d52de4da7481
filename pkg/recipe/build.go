package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/gostitch/pkg/geometry"
	"github.com/philipparndt/gostitch/pkg/mesh"
	"github.com/philipparndt/gostitch/pkg/shapes"
	"github.com/philipparndt/gostitch/pkg/stitch"
)

// Options control a build. Tolerance and Crown override the recipe's own
// settings; the Default values apply only when neither sets one. Anything
// still zero falls back to the package defaults.
type Options struct {
	Tolerance float64
	Crown     float64

	DefaultTolerance float64
	DefaultCrown     float64

	Parallel bool
	Logger   *slog.Logger
}

// ShapeReport describes one built shape
type ShapeReport struct {
	Name      string
	Kind      string
	Triangles int
	Duration  time.Duration
}

// Result is a finished build
type Result struct {
	BuildID  string
	Name     string
	Mesh     *mesh.Mesh
	Shapes   []ShapeReport
	Duration time.Duration
}

const defaultCrown = 0.01

// Build builds every shape into its own mesh, in parallel when asked, and
// then merges them in recipe order. Shared edges between shapes are
// counted, so shapes may close each other's boundaries.
func Build(ctx context.Context, r *Recipe, opts Options) (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	tol := firstPositive(opts.Tolerance, r.Tolerance, opts.DefaultTolerance, geometry.DefaultEpsilon)
	crown := firstPositive(opts.Crown, r.Crown, opts.DefaultCrown, defaultCrown)

	result := &Result{
		BuildID: uuid.NewString(),
		Name:    r.Name,
		Shapes:  make([]ShapeReport, len(r.Shapes)),
	}
	log = log.With("build", result.BuildID, "recipe", r.Name)
	log.Info("build started", "shapes", len(r.Shapes), "parallel", opts.Parallel)
	started := time.Now()

	parts := make([]*mesh.Mesh, len(r.Shapes))
	g, gctx := errgroup.WithContext(ctx)
	if !opts.Parallel {
		g.SetLimit(1)
	}
	for i, s := range r.Shapes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			shapeStarted := time.Now()
			m, err := buildShape(s, tol, crown)
			if err != nil {
				return fmt.Errorf("shape %s: %w", s.Label(i), err)
			}
			parts[i] = m
			result.Shapes[i] = ShapeReport{
				Name:      s.Label(i),
				Kind:      s.Kind,
				Triangles: m.TriangleCount(),
				Duration:  time.Since(shapeStarted),
			}
			log.Debug("shape built", "shape", s.Label(i), "kind", s.Kind, "triangles", m.TriangleCount())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("build failed", "error", err)
		return nil, err
	}

	merged := mesh.New(mesh.WithTolerance(tol))
	for i, part := range parts {
		if err := mesh.Absorb(merged, part); err != nil {
			log.Error("merge failed", "shape", result.Shapes[i].Name, "error", err)
			return nil, fmt.Errorf("merge shape %s: %w", result.Shapes[i].Name, err)
		}
	}

	result.Mesh = merged
	result.Duration = time.Since(started)
	log.Info("build finished",
		"vertices", merged.VertexCount(),
		"triangles", merged.TriangleCount(),
		"watertight", merged.IsWatertight(),
		"duration", result.Duration)
	return result, nil
}

func buildShape(s Shape, tol, crown float64) (*mesh.Mesh, error) {
	if s.Crown != nil {
		crown = *s.Crown
	}
	opt := mesh.WithTolerance(tol)

	var m *mesh.Mesh
	var err error
	switch s.Kind {
	case KindTriangles:
		m = mesh.New(opt)
		err = m.Batch(func(m *mesh.Mesh) error {
			for j, f := range s.Faces {
				if _, err := m.InsertTriangle(f[0].point(), f[1].point(), f[2].point()); err != nil {
					return fmt.Errorf("face %d: %w", j, err)
				}
			}
			return nil
		})
	case KindQuads:
		m = mesh.New(opt)
		err = m.Batch(func(m *mesh.Mesh) error {
			for j, f := range s.Faces {
				if _, err := m.InsertQuad(f[0].point(), f[1].point(), f[2].point(), f[3].point()); err != nil {
					return fmt.Errorf("face %d: %w", j, err)
				}
			}
			return nil
		})
	case KindRibbon:
		m = mesh.New(opt)
		err = stitch.OpenChains(m, points(s.Port), points(s.Starboard))
	case KindBand:
		m = mesh.New(opt)
		err = stitch.ClosedRings(m, points(s.Port), points(s.Starboard))
	case KindArcRibbon:
		m, err = arcRibbon(s, crown, opt)
	case KindFan:
		var arc geometry.Arc
		if arc, err = fanArc(s); err == nil {
			m, err = shapes.Fan(arc, s.Reverse, crown, opt)
		}
	case KindCylinder:
		var ring geometry.Arc
		if ring, err = geometry.NewCircle(s.Center.point(), axisOrZ(s.Axis), s.Radius); err == nil {
			m, err = shapes.Cylinder(ring, s.Length, crown, !s.Inward, opt)
		}
	case KindCappedCylinder:
		m, err = shapes.CappedCylinder(s.Center.point(), axisOrZ(s.Axis), s.Radius, s.Length, crown, opt)
	case KindAnnulus:
		m, err = shapes.Annulus(s.Center.point(), axisOrZ(s.Axis), s.Inner, s.Outer, crown, opt)
	case KindFilletRing:
		m, _, err = shapes.FilletRing(s.Diameter, s.Fillet, crown, opt)
	default:
		err = fmt.Errorf("%w: unknown kind %q", ErrInvalid, s.Kind)
	}
	if err != nil {
		return nil, err
	}

	// Fan applies Reverse itself
	if s.Reverse && s.Kind != KindFan {
		m.ReverseOrientation()
	}
	if s.Placement != nil {
		m.Transform(s.Placement.transform())
	}
	if s.Mirror != nil {
		plane, err := geometry.NewPlane(s.Mirror.Origin.point(), s.Mirror.Normal.point())
		if err != nil {
			return nil, fmt.Errorf("mirror: %w", err)
		}
		mirrored, err := mesh.Mirror(m, plane, true)
		if err != nil {
			return nil, fmt.Errorf("mirror: %w", err)
		}
		if err := mesh.Absorb(m, mirrored); err != nil {
			return nil, fmt.Errorf("mirror: %w", err)
		}
	}
	return m, nil
}

func arcRibbon(s Shape, crown float64, opt mesh.Option) (*mesh.Mesh, error) {
	port, err := s.PortArc.arc()
	if err != nil {
		return nil, fmt.Errorf("port arc: %w", err)
	}
	stbd, err := s.StarboardArc.arc()
	if err != nil {
		return nil, fmt.Errorf("starboard arc: %w", err)
	}
	portPts, err := port.Approximate(crown)
	if err != nil {
		return nil, err
	}
	stbdPts, err := stbd.Approximate(crown)
	if err != nil {
		return nil, err
	}

	m := mesh.New(opt)
	if port.IsFull() && stbd.IsFull() {
		err = stitch.ClosedRings(m, portPts[:len(portPts)-1], stbdPts[:len(stbdPts)-1])
	} else {
		err = stitch.OpenChains(m, portPts, stbdPts)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func fanArc(s Shape) (geometry.Arc, error) {
	if s.Arc != nil {
		return s.Arc.arc()
	}
	return geometry.NewCircle(s.Center.point(), axisOrZ(s.Axis), s.Radius)
}

func (a *ArcSpec) arc() (geometry.Arc, error) {
	sweep := a.Sweep
	if sweep == 0 {
		sweep = 360
	}
	return geometry.NewArc(a.Center.point(), axisOrZ(a.Axis), a.Start.point(), sweep*math.Pi/180)
}

func (p *Placement) transform() geometry.Transform {
	t := geometry.Identity()
	if p.Scale != nil {
		t = t.Then(geometry.Scaling(p.Scale.point()))
	}
	if p.Rotate != nil {
		t = t.Then(geometry.RotationDegrees(p.Rotate.Pivot.point(), axisOrZ(p.Rotate.Axis), p.Rotate.Degrees))
	}
	if p.Translate != nil {
		t = t.Then(geometry.Translation(p.Translate.point()))
	}
	return t
}

func (v Vec) point() geometry.Vector3 {
	return geometry.NewVector3(v[0], v[1], v[2])
}

func points(vs []Vec) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(vs))
	for i, v := range vs {
		out[i] = v.point()
	}
	return out
}

func axisOrZ(v Vec) geometry.Vector3 {
	if v == (Vec{}) {
		return geometry.NewVector3(0, 0, 1)
	}
	return v.point()
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
