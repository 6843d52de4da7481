package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gostitch/pkg/recipe"
)

var (
	buildOutput     string
	buildFormat     string
	buildSequential bool
	buildTolerance  float64
	buildCrown      float64
)

var buildCmd = &cobra.Command{
	Use:   "build [recipe]",
	Short: "Build a mesh from a YAML recipe",
	Long: `Build every shape of a recipe, merge them into one mesh and write it out.
Shapes are built in parallel unless --sequential is given. The output format
follows --format, then the output file extension, then the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	addBuildFlags(buildCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output file (default: recipe name with the format's extension)")
	cmd.Flags().StringVarP(&buildFormat, "format", "f", "", "Output format: "+strings.Join(recipe.Formats, ", "))
	cmd.Flags().BoolVar(&buildSequential, "sequential", false, "Build shapes one at a time")
	cmd.Flags().Float64Var(&buildTolerance, "tolerance", 0, "Vertex merge distance (overrides recipe and config)")
	cmd.Flags().Float64Var(&buildCrown, "crown", 0, "Allowable crown for arcs (overrides recipe and config)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	_, err := buildOnce(cmd, args[0])
	return err
}

// buildOnce loads, builds and writes a recipe, returning the files it read
func buildOnce(cmd *cobra.Command, path string) ([]string, error) {
	r, err := recipe.Load(path)
	if err != nil {
		return nil, err
	}

	opts := buildOptions()

	res, err := recipe.Build(cmd.Context(), r, opts)
	if err != nil {
		return r.Files, err
	}

	format, output := outputTarget(path, r.Name)
	if err := recipe.Export(res.Mesh, r.Name, output, format); err != nil {
		return r.Files, fmt.Errorf("failed to write %s: %w", output, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Built %s in %v\n", output, res.Duration)
	for _, s := range res.Shapes {
		fmt.Fprintf(out, "  %-24s %-16s %6d triangles  %v\n", s.Name, s.Kind, s.Triangles, s.Duration)
	}
	m := res.Mesh
	fmt.Fprintf(out, "  vertices: %d, triangles: %d, boundary edges: %d, watertight: %v\n",
		m.VertexCount(), m.TriangleCount(), len(m.BoundaryEdgeIndices()), m.IsWatertight())
	return r.Files, nil
}

// buildOptions passes flags as overrides and the config as the fallback
// for recipes that set no tolerance or crown of their own.
func buildOptions() recipe.Options {
	return recipe.Options{
		Tolerance:        buildTolerance,
		Crown:            buildCrown,
		DefaultTolerance: cfg.Tolerance,
		DefaultCrown:     cfg.Crown,
		Parallel:         cfg.Parallel && !buildSequential,
		Logger:           logger,
	}
}

func outputTarget(recipePath, name string) (format, output string) {
	format = buildFormat
	output = buildOutput
	if format == "" && output != "" {
		if f, ok := recipe.FormatFromPath(output); ok {
			format = f
		}
	}
	if format == "" {
		format = cfg.Format
	}
	if output == "" {
		base := name
		if base == "" {
			base = strings.TrimSuffix(filepath.Base(recipePath), filepath.Ext(recipePath))
		}
		output = filepath.Join(filepath.Dir(recipePath), base+recipe.Extension(format))
	}
	return format, output
}
