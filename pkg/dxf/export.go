// Package dxf exports meshes as DXF drawings of 3DFACE entities
package dxf

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/philipparndt/gostitch/pkg/analysis"
	"github.com/philipparndt/gostitch/pkg/geometry"
	"github.com/philipparndt/gostitch/pkg/mesh"
)

// Layer names used in exported drawings
const (
	LayerFaces    = "MESH"
	LayerBoundary = "BOUNDARY"
	LayerBristles = "NORMALS"
)

// Options selects the extra layers of an export
type Options struct {
	// Boundary draws every single-use edge as a line
	Boundary bool
	// BristleLength draws one normal bristle per face when positive
	BristleLength float64
}

// Export writes the mesh to a DXF file: one 3DFACE per triangle on the
// MESH layer, plus the optional boundary and normal layers.
func Export(filename string, m *mesh.Mesh, opts Options) error {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	if _, err := d.AddLayer(LayerFaces, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerFaces, err)
	}
	for _, f := range m.Faces() {
		t := m.FaceTriangle(f)
		// A triangle is a 3DFACE with the last corner repeated
		points := [][]float64{corner(t.V1), corner(t.V2), corner(t.V3), corner(t.V3)}
		if _, err := d.ThreeDFace(points); err != nil {
			return fmt.Errorf("failed to add face %d: %w", f.ID, err)
		}
	}

	if opts.Boundary {
		if err := addLines(d, LayerBoundary, color.Red, m.BoundaryEdges()); err != nil {
			return err
		}
	}
	if opts.BristleLength > 0 {
		if err := addLines(d, LayerBristles, color.Cyan, analysis.Bristles(m, opts.BristleLength)); err != nil {
			return err
		}
	}

	if err := d.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return nil
}

func addLines(d *drawing.Drawing, layer string, cl color.ColorNumber, segs []geometry.LineSeg) error {
	if _, err := d.AddLayer(layer, cl, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layer, err)
	}
	for _, s := range segs {
		if _, err := d.Line(s.Start.X, s.Start.Y, s.Start.Z, s.End.X, s.End.Y, s.End.Z); err != nil {
			return fmt.Errorf("failed to add line on %s: %w", layer, err)
		}
	}
	return nil
}

func corner(p geometry.Vector3) []float64 {
	return []float64{p.X, p.Y, p.Z}
}
