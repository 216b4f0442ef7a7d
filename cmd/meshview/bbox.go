package main

import (
	"fmt"

	"github.com/philipparndt/meshview/pkg/analysis"
	"github.com/philipparndt/meshview/pkg/viewer"
	"github.com/spf13/cobra"
)

var bboxCmd = &cobra.Command{
	Use:   "bbox <file>...",
	Short: "Print the aggregate bounding box and camera offsets",
	Long: `Print the bounding box over all given files, one (min, max) pair per axis,
followed by the camera eye offset of each view preset.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBBox,
}

func init() {
	rootCmd.AddCommand(bboxCmd)
}

func runBBox(cmd *cobra.Command, args []string) error {
	model, err := loadModel(cmd, args)
	if err != nil {
		return err
	}

	bbox, err := model.BoundingBox()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if bbox.IsEmpty() {
		fmt.Fprintln(out, "No faces loaded, bounding box is empty")
		return nil
	}

	for i, axis := range []string{"X", "Y", "Z"} {
		lo, hi := bbox.Axis(i)
		fmt.Fprintf(out, "%s: %s\n", axis, analysis.FormatRange(lo, hi))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Camera eye offsets:")
	for _, view := range []viewer.View{viewer.ViewXY, viewer.ViewXZ, viewer.ViewYZ, viewer.ViewReset} {
		fmt.Fprintf(out, "  %-5s %s\n", view, analysis.FormatVector(viewer.EyeOffset(view, bbox)))
	}
	return nil
}
