package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/meshview/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	snapshotOutput string
	snapshotView   string
	snapshotMode   string
	snapshotWidth  int
	snapshotHeight int
	snapshotLabel  bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <file>...",
	Short: "Render mesh files to a PNG image",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	defaults := viewer.DefaultOptions()
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "output", "o", "snapshot.png", "Output PNG file")
	snapshotCmd.Flags().StringVar(&snapshotView, "view", "reset", "View preset: xy, xz, yz or reset")
	snapshotCmd.Flags().StringVar(&snapshotMode, "mode", defaults.Mode.String(), `Display mode: "solid", "wireframe" or "solid + wireframe"`)
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", defaults.Width, "Image width in pixels")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", defaults.Height, "Image height in pixels")
	snapshotCmd.Flags().BoolVar(&snapshotLabel, "label", true, "Draw the file names and view onto the image")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	opts := viewer.DefaultOptions()
	var err error
	if opts.View, err = viewer.ParseView(snapshotView); err != nil {
		return err
	}
	if opts.Mode, err = viewer.ParseMode(snapshotMode); err != nil {
		return err
	}
	opts.Width, opts.Height = snapshotWidth, snapshotHeight

	if snapshotLabel {
		names := make([]string, len(args))
		for i, arg := range args {
			names[i] = filepath.Base(arg)
		}
		opts.Caption = fmt.Sprintf("%s [%s]", strings.Join(names, ", "), opts.View)
	}

	model, err := loadModel(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := loadContext(cmd)
	defer cancel()
	img, err := viewer.Render(ctx, model, opts)
	if err != nil {
		return err
	}

	file, err := os.Create(snapshotOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", snapshotOutput, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", snapshotOutput, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", snapshotOutput, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d, %s, %s)\n", snapshotOutput, opts.Width, opts.Height, opts.View, opts.Mode)
	return nil
}
