// Package openscad exports meshes as OpenSCAD polyhedron() source
package openscad

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/philipparndt/gostitch/pkg/mesh"
)

// WritePolyhedron writes the mesh as one polyhedron() call. OpenSCAD wants
// faces listed clockwise when seen from outside, so every triangle is
// written in reverse order.
func WritePolyhedron(w io.Writer, name string, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	if name != "" {
		fmt.Fprintf(bw, "// %s\n", name)
	}
	fmt.Fprintf(bw, "polyhedron(\n  points = [\n")
	vertices := m.Vertices()
	for i, p := range vertices {
		fmt.Fprintf(bw, "    [%s, %s, %s]%s\n", num(p.X), num(p.Y), num(p.Z), sep(i, len(vertices)))
	}
	fmt.Fprintf(bw, "  ],\n  faces = [\n")
	faces := m.Faces()
	for i, f := range faces {
		fmt.Fprintf(bw, "    [%d, %d, %d]%s\n", f.V[0], f.V[2], f.V[1], sep(i, len(faces)))
	}
	fmt.Fprintf(bw, "  ],\n  convexity = 10\n);\n")

	return bw.Flush()
}

// WriteFile writes the polyhedron into a .scad file
func WriteFile(filename, name string, m *mesh.Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := WritePolyhedron(file, name, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}
