package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gostitch/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [recipe]",
	Short: "Rebuild a recipe whenever it or an included file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addBuildFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	fw, err := watcher.NewFileWatcher(cfg.Debounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	rebuild := func() {
		files, err := buildOnce(cmd, path)
		if err != nil {
			logger.Error("build failed", "recipe", path, "error", err)
		}
		if len(files) == 0 {
			files = []string{path}
		}
		// includes may have changed
		if err := fw.RemoveAll(); err != nil {
			logger.Warn("failed to reset watches", "error", err)
		}
		if err := fw.Watch(files); err != nil {
			logger.Error("failed to watch", "error", err)
		}
	}

	rebuild()
	logger.Info("watching for changes", "recipe", path)
	return fw.Run(ctx, func(ctx context.Context, changed string) {
		rebuild()
	})
}
