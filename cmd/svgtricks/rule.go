package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgtricks/svgdoc"
	"github.com/benoitkugler/svgtricks/svgrule"
)

var (
	ruleVertical bool
	ruleCoords   []float64
	ruleAt       float64
	ruleSide     string
	ruleWidth    float64
	ruleHeight   float64
	ruleOutput   string
	ruleFormat   string
)

// ruleCmd draws a standalone ruler
var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Draw a measurement ruler",
	Long: `Draws an horizontal (default) or vertical ruler through the given coordinates.
Without --width and --height, the document is fitted to the ruler.

Example:
  svgtricks rule --coords 0,120,300 --at 50 --side top -o rule.svg`,
	Args: cobra.NoArgs,
	RunE: runRule,
}

func init() {
	ruleCmd.Flags().BoolVar(&ruleVertical, "vertical", false, "Draw a vertical ruler")
	ruleCmd.Flags().Float64SliceVar(&ruleCoords, "coords", nil, "Coordinates along the ruler (required)")
	ruleCmd.Flags().Float64Var(&ruleAt, "at", 0, "y of an horizontal ruler, x of a vertical one")
	ruleCmd.Flags().StringVar(&ruleSide, "side", "", "Label side: bottom or top (horizontal), right or left (vertical)")
	ruleCmd.Flags().Float64Var(&ruleWidth, "width", 0, "Canvas width")
	ruleCmd.Flags().Float64Var(&ruleHeight, "height", 0, "Canvas height")
	ruleCmd.Flags().StringVarP(&ruleOutput, "output", "o", "", "Output file (default: stdout)")
	ruleCmd.Flags().StringVarP(&ruleFormat, "format", "f", "", "Output format: svg, png or pdf")
	ruleCmd.MarkFlagRequired("coords")
}

func runRule(cmd *cobra.Command, args []string) error {
	if len(ruleCoords) == 0 {
		return errors.New("--coords needs at least one value")
	}
	opts := cfg.ruleOptions()
	if ruleSide != "" {
		side, ok := svgrule.ParseSide(ruleSide)
		if !ok {
			return fmt.Errorf("invalid --side %q", ruleSide)
		}
		horizontal := side == svgrule.Top || side == svgrule.Bottom
		if horizontal == ruleVertical {
			orientation := "horizontal"
			if ruleVertical {
				orientation = "vertical"
			}
			return fmt.Errorf("--side %s is not valid for a %s ruler", side, orientation)
		}
		opts = append(opts, svgrule.WithSide(side))
	}

	doc := svgdoc.New()
	if ruleVertical {
		svgrule.VRule(doc, ruleAt, ruleCoords, opts...)
	} else {
		svgrule.HRule(doc, ruleCoords, ruleAt, opts...)
	}

	if ruleWidth > 0 && ruleHeight > 0 {
		doc.Canvas(ruleWidth, ruleHeight)
	} else {
		// leave room for the labels, which are not measured
		if err := fitDocument(doc, cfg.Margin+cfg.FontSize*2); err != nil {
			return err
		}
	}
	return emit(cmd, doc, ruleOutput, ruleFormat)
}
