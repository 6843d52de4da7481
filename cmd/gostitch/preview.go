package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gostitch/pkg/preview"
)

var previewOpts = preview.DefaultOptions()

var previewCmd = &cobra.Command{
	Use:   "preview [input.stl] [output.png]",
	Short: "Render an STL file to a PNG image",
	Long: `Render a shaded view of an STL file. Triangles seen from behind are drawn
in red and boundary edges in yellow, so reversed windings and holes stand out.`,
	Args: cobra.ExactArgs(2),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntVar(&previewOpts.Width, "width", previewOpts.Width, "Image width in pixels")
	previewCmd.Flags().IntVar(&previewOpts.Height, "height", previewOpts.Height, "Image height in pixels")
	previewCmd.Flags().Float64Var(&previewOpts.Elevation, "elevation", previewOpts.Elevation, "Camera elevation in degrees")
	previewCmd.Flags().Float64Var(&previewOpts.Azimuth, "azimuth", previewOpts.Azimuth, "Camera azimuth in degrees")
	previewCmd.Flags().BoolVar(&previewOpts.Boundary, "boundary", previewOpts.Boundary, "Draw boundary edges")
}

func runPreview(cmd *cobra.Command, args []string) error {
	_, m, err := loadMesh(args[0])
	if err != nil {
		return err
	}
	stats, err := preview.WritePNG(args[1], m, previewOpts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d front facing, %d back facing, %d boundary edges\n",
		args[1], stats.FrontFacing, stats.BackFacing, stats.Boundary)
	return nil
}
