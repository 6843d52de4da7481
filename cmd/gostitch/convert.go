package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gostitch/pkg/recipe"
)

var (
	convertFormat  string
	convertReverse bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [input.stl] [output]",
	Short: "Convert an STL file to another output format",
	Long: `Rebuild the mesh of an STL file and write it as binary or ASCII STL, DXF
or an OpenSCAD polyhedron. The format is taken from --format or the output
file extension.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "Output format: "+strings.Join(recipe.Formats, ", "))
	convertCmd.Flags().BoolVar(&convertReverse, "reverse", false, "Flip the winding of every triangle")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	format := convertFormat
	if format == "" {
		f, ok := recipe.FormatFromPath(output)
		if !ok {
			return fmt.Errorf("cannot tell the output format of %s; use --format", output)
		}
		format = f
	}

	model, m, err := loadMesh(input)
	if err != nil {
		return err
	}
	if convertReverse {
		m.ReverseOrientation()
	}

	name := model.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	if err := recipe.Export(m, name, output, format); err != nil {
		return err
	}
	logger.Info("converted", "input", input, "output", output, "format", format, "triangles", m.TriangleCount())
	return nil
}
