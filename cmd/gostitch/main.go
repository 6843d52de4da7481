package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gostitch/internal/config"
	"github.com/philipparndt/gostitch/internal/logging"
	"github.com/philipparndt/gostitch/pkg/mesh"
	"github.com/philipparndt/gostitch/pkg/stl"
	"github.com/philipparndt/gostitch/version"
)

var (
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gostitch",
	Short: "Build and inspect triangle meshes stitched from point chains",
	Long: `gostitch builds watertight triangle meshes from YAML recipes of ribbons,
bands, fans, cylinders and rings, and inspects the edge topology of STL files.
Output can be written as binary or ASCII STL, DXF or an OpenSCAD polyhedron.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}

	l, lerr := logging.New(os.Stderr, level)
	if lerr != nil {
		return lerr
	}
	setLogger(l)
	if err != nil {
		logger.Warn("using default config", "error", err)
	}
	return nil
}

func setLogger(l *slog.Logger) {
	logger = l
	slog.SetDefault(l)
}

// loadMesh reads an STL file and rebuilds its shared vertices and edges
func loadMesh(filename string) (*stl.Model, *mesh.Mesh, error) {
	model, err := stl.Parse(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	m, skipped, err := model.ToMesh(mesh.WithTolerance(cfg.Tolerance))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to rebuild mesh from %s: %w", filename, err)
	}
	if skipped > 0 {
		logger.Warn("skipped degenerate facets", "file", filename, "count", skipped)
	}
	return model, m, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
