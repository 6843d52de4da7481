// Package recipe describes meshes as YAML lists of shapes and builds them
package recipe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for recipes that cannot be built
var ErrInvalid = errors.New("invalid recipe")

// Shape kinds
const (
	KindTriangles      = "triangles"
	KindQuads          = "quads"
	KindRibbon         = "ribbon"
	KindBand           = "band"
	KindArcRibbon      = "arc-ribbon"
	KindFan            = "fan"
	KindCylinder       = "cylinder"
	KindCappedCylinder = "capped-cylinder"
	KindAnnulus        = "annulus"
	KindFilletRing     = "fillet-ring"
)

// Vec is a point or direction written as [x, y, z]
type Vec [3]float64

// ArcSpec is a circular arc: centre, axis, start point and sweep in degrees
type ArcSpec struct {
	Center Vec     `yaml:"center"`
	Axis   Vec     `yaml:"axis"`
	Start  Vec     `yaml:"start"`
	Sweep  float64 `yaml:"sweep"`
}

// Rotate is a rotation in degrees around an axis through a pivot
type Rotate struct {
	Pivot   Vec     `yaml:"pivot"`
	Axis    Vec     `yaml:"axis"`
	Degrees float64 `yaml:"degrees"`
}

// Placement moves a finished shape: scale first, then rotate, then translate
type Placement struct {
	Scale     *Vec    `yaml:"scale,omitempty"`
	Rotate    *Rotate `yaml:"rotate,omitempty"`
	Translate *Vec    `yaml:"translate,omitempty"`
}

// MirrorSpec adds a reflected copy of a shape across a plane
type MirrorSpec struct {
	Origin Vec `yaml:"origin"`
	Normal Vec `yaml:"normal"`
}

// Shape is one part of a recipe. Which fields are read depends on Kind.
type Shape struct {
	Name  string   `yaml:"name"`
	Kind  string   `yaml:"kind"`
	Crown *float64 `yaml:"crown,omitempty"`

	// triangles, quads
	Faces [][]Vec `yaml:"faces,omitempty"`

	// ribbon, band
	Port      []Vec `yaml:"port,omitempty"`
	Starboard []Vec `yaml:"starboard,omitempty"`

	// arc-ribbon, fan
	PortArc      *ArcSpec `yaml:"port_arc,omitempty"`
	StarboardArc *ArcSpec `yaml:"starboard_arc,omitempty"`
	Arc          *ArcSpec `yaml:"arc,omitempty"`

	// cylinder, capped-cylinder, annulus, fillet-ring
	Center   Vec     `yaml:"center"`
	Axis     Vec     `yaml:"axis"`
	Radius   float64 `yaml:"radius,omitempty"`
	Inner    float64 `yaml:"inner,omitempty"`
	Outer    float64 `yaml:"outer,omitempty"`
	Length   float64 `yaml:"length,omitempty"`
	Diameter float64 `yaml:"diameter,omitempty"`
	Fillet   float64 `yaml:"fillet,omitempty"`
	Inward   bool    `yaml:"inward,omitempty"`

	Reverse   bool        `yaml:"reverse,omitempty"`
	Placement *Placement  `yaml:"placement,omitempty"`
	Mirror    *MirrorSpec `yaml:"mirror,omitempty"`
}

// Recipe is a named list of shapes merged into one mesh
type Recipe struct {
	Name      string   `yaml:"name"`
	Tolerance float64  `yaml:"tolerance,omitempty"`
	Crown     float64  `yaml:"crown,omitempty"`
	Include   []string `yaml:"include,omitempty"`
	Shapes    []Shape  `yaml:"shapes"`

	// Files lists the recipe file and every file it includes, in load order
	Files []string `yaml:"-"`
}

// Parse decodes a single recipe document without following includes
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return &r, nil
}

// Load reads a recipe file and appends the shapes of every included file,
// depth first. Include paths are relative to the including file, and a
// file is read once even if included several times.
func Load(path string) (*Recipe, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	visited := make(map[string]bool)
	root, err := loadRecursive(abs, visited)
	if err != nil {
		return nil, err
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	return root, nil
}

func loadRecursive(path string, visited map[string]bool) (*Recipe, error) {
	visited[path] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.Files = []string{path}

	dir := filepath.Dir(path)
	for _, inc := range r.Include {
		incPath := inc
		if !filepath.IsAbs(incPath) {
			incPath = filepath.Clean(filepath.Join(dir, inc))
		}
		if visited[incPath] {
			continue
		}
		sub, err := loadRecursive(incPath, visited)
		if err != nil {
			return nil, err
		}
		r.Shapes = append(r.Shapes, sub.Shapes...)
		r.Files = append(r.Files, sub.Files...)
	}
	return r, nil
}

// Validate checks that every shape has the fields its kind needs
func (r *Recipe) Validate() error {
	if len(r.Shapes) == 0 {
		return fmt.Errorf("%w: no shapes", ErrInvalid)
	}
	if r.Tolerance < 0 || r.Crown < 0 {
		return fmt.Errorf("%w: tolerance and crown must not be negative", ErrInvalid)
	}
	for i, s := range r.Shapes {
		if err := s.validate(); err != nil {
			return fmt.Errorf("%w: shape %d (%s): %v", ErrInvalid, i, s.Label(i), err)
		}
	}
	return nil
}

// Label returns the shape name, or its kind and position when unnamed
func (s Shape) Label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("%s#%d", s.Kind, i)
}

func (s Shape) validate() error {
	if s.Crown != nil && *s.Crown <= 0 {
		return fmt.Errorf("crown must be positive")
	}
	switch s.Kind {
	case KindTriangles, KindQuads:
		want := 3
		if s.Kind == KindQuads {
			want = 4
		}
		if len(s.Faces) == 0 {
			return fmt.Errorf("no faces")
		}
		for j, f := range s.Faces {
			if len(f) != want {
				return fmt.Errorf("face %d has %d points, want %d", j, len(f), want)
			}
		}
	case KindRibbon, KindBand:
		if len(s.Port) == 0 || len(s.Starboard) == 0 {
			return fmt.Errorf("port and starboard are required")
		}
	case KindArcRibbon:
		if s.PortArc == nil || s.StarboardArc == nil {
			return fmt.Errorf("port_arc and starboard_arc are required")
		}
	case KindFan:
		if s.Arc == nil && s.Radius <= 0 {
			return fmt.Errorf("arc or radius is required")
		}
	case KindCylinder, KindCappedCylinder:
		if s.Radius <= 0 || s.Length <= 0 {
			return fmt.Errorf("radius and length must be positive")
		}
	case KindAnnulus:
		if s.Inner <= 0 || s.Outer <= s.Inner {
			return fmt.Errorf("need 0 < inner < outer")
		}
	case KindFilletRing:
		if s.Diameter <= 0 || s.Fillet <= 0 {
			return fmt.Errorf("diameter and fillet must be positive")
		}
	default:
		return fmt.Errorf("unknown kind %q", s.Kind)
	}
	return nil
}
