package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gostitch/pkg/analysis"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display topology and measurements of an STL file",
	Long: `Rebuild shared vertices and edges from an STL file and show dimensions,
surface area, edge use counts and whether the mesh is watertight.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, m, err := loadMesh(filename)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("edge ledger check failed: %w", err)
	}
	result := analysis.AnalyzeMesh(m)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Mesh Information")
	fmt.Fprintln(out, "================")
	if model.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Topology:")
	fmt.Fprintf(out, "  Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Edges: %d (%d interior, %d boundary)\n", result.EdgeCount, result.InteriorEdgeCount, result.BoundaryEdgeCount)
	fmt.Fprintf(out, "  Euler characteristic: %d\n", result.EulerCharacteristic)
	fmt.Fprintf(out, "  Watertight: %v\n\n", result.Watertight)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Fprintf(out, "  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Fprintf(out, "  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Fprintf(out, "  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n", result.SurfaceArea)
	if result.Watertight {
		fmt.Fprintf(out, "  Enclosed Volume: %.6f cubic units\n\n", result.Volume)
	} else {
		fmt.Fprintf(out, "  Box Volume: %.6f cubic units\n\n", result.BoxVolume)
	}

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n", result.AvgEdgeLength)
	return nil
}
