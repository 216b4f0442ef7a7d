package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/philipparndt/meshview/pkg/analysis"
	"github.com/philipparndt/meshview/pkg/mesh"
	"github.com/philipparndt/meshview/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <file>...",
	Short: "Reload mesh files when they change and print the new bounding box",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Wait this long after the last change before reloading")
}

func runWatch(cmd *cobra.Command, args []string) error {
	model, err := loadModel(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	logf := func(format string, a ...any) { fmt.Fprintf(out, format, a...) }
	printBBox(logf, model)

	reloader, err := watcher.New(model, watchDebounce, logf)
	if err != nil {
		return err
	}
	if err := reloader.Watch(args...); err != nil {
		return err
	}
	reloader.OnReload(func(err error) {
		if err == nil {
			printBBox(logf, model)
		}
	})

	fmt.Fprintf(out, "Watching %d file(s) for changes, press Ctrl+C to stop\n", len(args))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if err := reloader.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printBBox(logf func(string, ...any), model *mesh.Model) {
	bbox, err := model.BoundingBox()
	if err != nil {
		logf("Bounding box: %v\n", err)
		return
	}
	logf("Bounding box: min %s max %s\n", analysis.FormatVector(bbox.Min), analysis.FormatVector(bbox.Max))
}
