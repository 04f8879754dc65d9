package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/benoitkugler/svgtricks/scene"
)

var (
	renderOutput string
	renderFormat string
	renderFit    bool
)

// renderCmd builds a scene file
var renderCmd = &cobra.Command{
	Use:   "render SCENE",
	Short: "Build a YAML or TOML scene into SVG, PNG or PDF",
	Long: `Builds the scene file into an SVG document, written to stdout or to --output.
The format is given by --format, or by the extension of the output file.

Example:
  svgtricks render plan.yaml -o plan.png --fit`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default: stdout)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "Output format: svg, png or pdf")
	renderCmd.Flags().BoolVar(&renderFit, "fit", false, "Resize the document to its content")
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := scene.Load(args[0])
	if err != nil {
		return err
	}
	logger.Debug("loaded scene", zap.String("path", args[0]), zap.Int("nodes", len(s.Nodes)))

	doc, err := s.Build(cfg.ruleOptions()...)
	if err != nil {
		return err
	}
	if renderFit {
		if err := fitDocument(doc, cfg.Margin); err != nil {
			return err
		}
	}
	return emit(cmd, doc, renderOutput, renderFormat)
}
