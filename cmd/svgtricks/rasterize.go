package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benoitkugler/svgtricks/svgdoc"
)

var (
	rasterizeOutput string
	rasterizeFormat string
)

// rasterizeCmd renders an existing SVG file
var rasterizeCmd = &cobra.Command{
	Use:   "rasterize IN.svg",
	Short: "Render an SVG file to PNG or PDF",
	Long: `Renders an SVG file. Only the elements written by svgtricks are supported
(groups, basic shapes and text); the others are handled according to --error-mode.

Example:
  svgtricks rasterize drawing.svg -o drawing.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runRasterize,
}

func init() {
	rasterizeCmd.Flags().StringVarP(&rasterizeOutput, "output", "o", "", "Output file (required)")
	rasterizeCmd.Flags().StringVarP(&rasterizeFormat, "format", "f", "", "Output format: png, pdf or svg")
	rasterizeCmd.MarkFlagRequired("output")
}

func runRasterize(cmd *cobra.Command, args []string) error {
	doc, err := svgdoc.ParseFile(args[0])
	if err != nil {
		return err
	}
	logger.Debug("parsed svg", zap.String("path", args[0]))
	return emit(cmd, doc, rasterizeOutput, rasterizeFormat)
}
