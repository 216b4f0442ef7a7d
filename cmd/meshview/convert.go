package main

import (
	"fmt"

	"github.com/philipparndt/meshview/pkg/meshio"
	"github.com/spf13/cobra"
)

var convertFormat string

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a mesh between STL and OBJ",
	Long: `Convert a mesh file. The output format follows the output extension unless
--format is given (stl, stl-binary or obj). Polygons are split into triangle
fans when writing STL.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "Output format: stl, stl-binary or obj")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	var format meshio.Format
	var err error
	if convertFormat != "" {
		format, err = meshio.ParseFormat(convertFormat)
	} else {
		format, err = meshio.FormatFromPath(output)
	}
	if err != nil {
		return err
	}

	ctx, cancel := loadContext(cmd)
	defer cancel()

	m, err := meshio.Load(ctx, input)
	if err != nil {
		return err
	}

	if err := meshio.Save(output, format, m.Raw()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %d faces)\n", output, format, len(m.Faces()))
	return nil
}
