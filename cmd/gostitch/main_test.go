package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error"))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestBuildInfoConvert(t *testing.T) {
	dir := t.TempDir()
	recipePath := filepath.Join(dir, "can.yaml")
	require.NoError(t, os.WriteFile(recipePath, []byte(`
name: can
crown: 0.1
shapes:
  - kind: capped-cylinder
    radius: 1
    length: 2
`), 0o644))

	stlPath := filepath.Join(dir, "can.stl")
	out := run(t, "build", recipePath, "-o", stlPath)
	assert.Contains(t, out, "watertight: true")

	out = run(t, "info", stlPath)
	assert.Contains(t, out, "Watertight: true")
	assert.Contains(t, out, "Euler characteristic: 2")

	out = run(t, "edges", stlPath, "--boundary")
	assert.Contains(t, out, "No edges found")

	scadPath := filepath.Join(dir, "can.scad")
	run(t, "convert", stlPath, scadPath)
	data, err := os.ReadFile(scadPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "polyhedron(")
}

func TestOutputTarget(t *testing.T) {
	cfg.Format = "dxf"
	buildFormat, buildOutput = "", ""
	defer func() { cfg.Format = "" }()

	format, output := outputTarget(filepath.Join("parts", "lid.yaml"), "")
	assert.Equal(t, "dxf", format)
	assert.Equal(t, filepath.Join("parts", "lid.dxf"), output)

	buildOutput = "x.scad"
	defer func() { buildOutput = "" }()
	format, output = outputTarget("lid.yaml", "lid")
	assert.Equal(t, "scad", format)
	assert.Equal(t, "x.scad", output)
}

func TestBuildOptionsKeepFlagsSeparateFromConfig(t *testing.T) {
	saved := cfg
	defer func() { cfg, buildTolerance, buildCrown = saved, 0, 0 }()

	cfg.Tolerance, cfg.Crown = 1e-6, 0.01
	buildTolerance, buildCrown = 0, 0
	opts := buildOptions()
	assert.Zero(t, opts.Tolerance)
	assert.Zero(t, opts.Crown)
	assert.Equal(t, 1e-6, opts.DefaultTolerance)
	assert.Equal(t, 0.01, opts.DefaultCrown)

	buildTolerance, buildCrown = 0.5, 0.2
	opts = buildOptions()
	assert.Equal(t, 0.5, opts.Tolerance)
	assert.Equal(t, 0.2, opts.Crown)
}
