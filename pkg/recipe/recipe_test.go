package recipe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gostitch/pkg/geometry"
	"github.com/philipparndt/gostitch/pkg/mesh"
	"github.com/philipparndt/gostitch/pkg/stl"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const ladder = `
name: ladder
shapes:
  - name: rungs
    kind: ribbon
    port: [[0, 0, 0], [1, 0, 0], [2, 0, 0], [3, 0, 0]]
    starboard: [[0, 1, 0], [1, 1, 0], [2, 1, 0], [3, 1, 0]]
`

func TestParseAndValidate(t *testing.T) {
	r, err := Parse([]byte(ladder))
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	assert.Equal(t, "ladder", r.Name)
	require.Len(t, r.Shapes, 1)
	assert.Equal(t, KindRibbon, r.Shapes[0].Kind)
	assert.Equal(t, Vec{3, 1, 0}, r.Shapes[0].Starboard[3])
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no shapes", "name: empty\n"},
		{"unknown kind", "shapes:\n  - kind: torus\n"},
		{"short face", "shapes:\n  - kind: triangles\n    faces: [[[0,0,0],[1,0,0]]]\n"},
		{"quad with three points", "shapes:\n  - kind: quads\n    faces: [[[0,0,0],[1,0,0],[1,1,0]]]\n"},
		{"ribbon without starboard", "shapes:\n  - kind: ribbon\n    port: [[0,0,0],[1,0,0]]\n"},
		{"annulus inverted", "shapes:\n  - kind: annulus\n    inner: 2\n    outer: 1\n"},
		{"cylinder without length", "shapes:\n  - kind: cylinder\n    radius: 1\n"},
		{"bad crown", "shapes:\n  - kind: fan\n    radius: 1\n    crown: -1\n"},
		{"negative tolerance", "tolerance: -1\nshapes:\n  - kind: fan\n    radius: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			assert.ErrorIs(t, r.Validate(), ErrInvalid)
		})
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("shapes: [unclosed"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadFollowsIncludes(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.yaml")
	writeFile(t, main, `
name: assembly
include: [parts/cap.yaml]
shapes:
  - kind: fan
    radius: 1
`)
	// the include points back at main; it must be read only once
	writeFile(t, filepath.Join(dir, "parts", "cap.yaml"), `
include: [../main.yaml, wall.yaml]
shapes:
  - kind: annulus
    inner: 1
    outer: 2
`)
	writeFile(t, filepath.Join(dir, "parts", "wall.yaml"), `
shapes:
  - kind: cylinder
    radius: 2
    length: 1
`)

	r, err := Load(main)
	require.NoError(t, err)

	kinds := make([]string, len(r.Shapes))
	for i, s := range r.Shapes {
		kinds[i] = s.Kind
	}
	assert.Equal(t, []string{KindFan, KindAnnulus, KindCylinder}, kinds)
	assert.Len(t, r.Files, 3)
	assert.Equal(t, "assembly", r.Name)
}

func TestLoadMissingInclude(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.yaml")
	writeFile(t, main, "include: [nope.yaml]\nshapes:\n  - kind: fan\n    radius: 1\n")

	_, err := Load(main)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildRibbon(t *testing.T) {
	r, err := Parse([]byte(ladder))
	require.NoError(t, err)

	res, err := Build(context.Background(), r, Options{})
	require.NoError(t, err)

	assert.NotEmpty(t, res.BuildID)
	assert.Equal(t, 8, res.Mesh.VertexCount())
	assert.Equal(t, 6, res.Mesh.TriangleCount())
	require.Len(t, res.Shapes, 1)
	assert.Equal(t, "rungs", res.Shapes[0].Name)
	assert.Equal(t, 6, res.Shapes[0].Triangles)
	assert.NoError(t, res.Mesh.Validate())
}

func TestBuildParallelMatchesSequential(t *testing.T) {
	doc := `
name: can
crown: 0.05
shapes:
  - kind: cylinder
    radius: 2
    length: 3
  - kind: fan
    radius: 2
    reverse: true
  - kind: fan
    center: [0, 0, 3]
    radius: 2
`
	r, err := Parse([]byte(doc))
	require.NoError(t, err)

	seq, err := Build(context.Background(), r, Options{Parallel: false})
	require.NoError(t, err)
	par, err := Build(context.Background(), r, Options{Parallel: true})
	require.NoError(t, err)

	assert.Equal(t, seq.Mesh.Indices(), par.Mesh.Indices())
	assert.Equal(t, seq.Mesh.Vertices(), par.Mesh.Vertices())
	assert.NotEqual(t, seq.BuildID, par.BuildID)
	assert.True(t, par.Mesh.IsWatertight())
}

func TestBuildMirror(t *testing.T) {
	doc := `
shapes:
  - kind: triangles
    faces: [[[0, 0, 0], [1, 0, 0], [0, 1, 0]]]
    mirror:
      origin: [0, 0, 0]
      normal: [1, 0, 0]
`
	r, err := Parse([]byte(doc))
	require.NoError(t, err)

	res, err := Build(context.Background(), r, Options{})
	require.NoError(t, err)

	m := res.Mesh
	assert.Equal(t, 2, m.TriangleCount())
	assert.Len(t, m.InteriorEdges(), 1)
	for _, f := range m.Faces() {
		n := m.FaceTriangle(f).CalculateNormal()
		assert.InDelta(t, 1.0, n.Z, 1e-9)
	}
}

func TestBuildPlacement(t *testing.T) {
	doc := `
shapes:
  - kind: triangles
    faces: [[[0, 0, 0], [1, 0, 0], [0, 1, 0]]]
    placement:
      scale: [2, 2, 2]
      translate: [1, 0, 0]
`
	r, err := Parse([]byte(doc))
	require.NoError(t, err)

	res, err := Build(context.Background(), r, Options{})
	require.NoError(t, err)

	_, ok := res.Mesh.FindVertex(geometry.NewVector3(3, 0, 0))
	assert.True(t, ok)
	_, ok = res.Mesh.FindVertex(geometry.NewVector3(1, 2, 0))
	assert.True(t, ok)
}

func TestBuildSettingPrecedence(t *testing.T) {
	// (0.005, 0, 0) merges into the origin at tolerance 0.01 but not at 1e-6
	const faces = `
shapes:
  - kind: triangles
    faces:
      - [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
      - [[0.005, 0, 0], [0, -1, 0], [1, 0, 0]]
`
	withTolerance := "tolerance: 0.000001\n" + faces

	tests := []struct {
		name     string
		doc      string
		opts     Options
		vertices int
	}{
		{"flag overrides recipe", withTolerance, Options{Tolerance: 0.01}, 4},
		{"recipe overrides config", withTolerance, Options{DefaultTolerance: 0.01}, 5},
		{"config used when recipe is silent", faces, Options{DefaultTolerance: 0.01}, 4},
		{"package default", faces, Options{}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse([]byte(tt.doc))
			require.NoError(t, err)

			res, err := Build(context.Background(), r, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.vertices, res.Mesh.VertexCount())
		})
	}
}

func TestBuildCrownFlagOverridesRecipe(t *testing.T) {
	r, err := Parse([]byte("crown: 0.1\nshapes:\n  - kind: fan\n    radius: 2\n"))
	require.NoError(t, err)

	coarse, err := Build(context.Background(), r, Options{DefaultCrown: 0.001})
	require.NoError(t, err)
	fine, err := Build(context.Background(), r, Options{Crown: 0.001})
	require.NoError(t, err)

	assert.Greater(t, fine.Mesh.TriangleCount(), coarse.Mesh.TriangleCount())
}

func TestBuildShapeError(t *testing.T) {
	doc := `
shapes:
  - name: bowtie
    kind: quads
    faces: [[[0, 0, 0], [1, 1, 0], [1, 0, 0], [0, 1, 0]]]
`
	r, err := Parse([]byte(doc))
	require.NoError(t, err)

	_, err = Build(context.Background(), r, Options{Parallel: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bowtie")
}

func TestBuildMergeOverflow(t *testing.T) {
	doc := `
shapes:
  - kind: triangles
    faces: [[[0, 0, 0], [1, 0, 0], [0, 1, 0]]]
  - kind: triangles
    faces: [[[1, 0, 0], [0, 0, 0], [0, -1, 0]]]
  - kind: triangles
    faces: [[[0, 0, 0], [1, 0, 0], [0, 0, 1]]]
`
	r, err := Parse([]byte(doc))
	require.NoError(t, err)

	_, err = Build(context.Background(), r, Options{})
	assert.ErrorIs(t, err, mesh.ErrEdgeOverflow)
}

func TestBuildCancelled(t *testing.T) {
	r, err := Parse([]byte(ladder))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Build(ctx, r, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExportFormats(t *testing.T) {
	r, err := Parse([]byte(ladder))
	require.NoError(t, err)
	res, err := Build(context.Background(), r, Options{})
	require.NoError(t, err)

	dir := t.TempDir()
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, format+Extension(format))
			require.NoError(t, Export(res.Mesh, "ladder", path, format))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}

	model, err := stl.Parse(filepath.Join(dir, "stl.stl"))
	require.NoError(t, err)
	assert.Equal(t, 6, model.TriangleCount())

	assert.Error(t, Export(res.Mesh, "ladder", filepath.Join(dir, "x.obj"), "obj"))
}

func TestFormatFromPath(t *testing.T) {
	f, ok := FormatFromPath("part.STL")
	assert.True(t, ok)
	assert.Equal(t, FormatSTL, f)

	_, ok = FormatFromPath("part.obj")
	assert.False(t, ok)
}
