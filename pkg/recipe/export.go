package recipe

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gostitch/pkg/dxf"
	"github.com/philipparndt/gostitch/pkg/mesh"
	"github.com/philipparndt/gostitch/pkg/openscad"
	"github.com/philipparndt/gostitch/pkg/stl"
)

// Output formats
const (
	FormatSTL      = "stl"
	FormatSTLASCII = "stl-ascii"
	FormatDXF      = "dxf"
	FormatSCAD     = "scad"
)

// Formats lists every output format Export accepts
var Formats = []string{FormatSTL, FormatSTLASCII, FormatDXF, FormatSCAD}

// Extension returns the file extension written for a format
func Extension(format string) string {
	switch format {
	case FormatSTL, FormatSTLASCII:
		return ".stl"
	case FormatDXF:
		return ".dxf"
	case FormatSCAD:
		return ".scad"
	}
	return ""
}

// FormatFromPath guesses the output format from a file extension
func FormatFromPath(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return FormatSTL, true
	case ".dxf":
		return FormatDXF, true
	case ".scad":
		return FormatSCAD, true
	}
	return "", false
}

// Export writes m to path in the given format
func Export(m *mesh.Mesh, name, path, format string) error {
	switch format {
	case FormatSTL:
		return stl.WriteFile(path, stl.FromMesh(name, m), stl.FormatBinary)
	case FormatSTLASCII:
		return stl.WriteFile(path, stl.FromMesh(name, m), stl.FormatASCII)
	case FormatDXF:
		return dxf.Export(path, m, dxf.Options{Boundary: true})
	case FormatSCAD:
		return openscad.WriteFile(path, name, m)
	}
	return fmt.Errorf("unknown output format %q", format)
}
