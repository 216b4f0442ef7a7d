package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/philipparndt/meshview/pkg/mesh"
	"github.com/philipparndt/meshview/pkg/meshio"
	"github.com/philipparndt/meshview/version"
	"github.com/spf13/cobra"
)

var loadTimeout time.Duration

var rootCmd = &cobra.Command{
	Use:   "meshview",
	Short: "Inspect, convert and snapshot STL and OBJ meshes",
	Long: `meshview loads ASCII/binary STL and ASCII OBJ files and reports the
geometry a viewer needs: bounding boxes, wireframe edges and camera offsets.
It can also convert between formats and render headless PNG snapshots.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&loadTimeout, "timeout", 0, "Abort loading after this duration (0 = no limit)")
}

// loadContext bounds file parsing by the --timeout flag
func loadContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if loadTimeout > 0 {
		return context.WithTimeout(ctx, loadTimeout)
	}
	return context.WithCancel(ctx)
}

// loadModel parses all files into a fresh model
func loadModel(cmd *cobra.Command, files []string) (*mesh.Model, error) {
	ctx, cancel := loadContext(cmd)
	defer cancel()

	model := mesh.NewModel()
	if err := meshio.LoadInto(ctx, model, true, files...); err != nil {
		return nil, err
	}
	return model, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
