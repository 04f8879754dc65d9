// Draws measurement rulers: a line through sorted coordinates,
// a tick at each coordinate and the length of each segment as label.
package svgrule

import (
	"math"
	"sort"

	"github.com/benoitkugler/svgtricks/svgdoc"
)

// Side selects where the labels of a rule go.
type Side uint8

const (
	Bottom Side = iota // default for HRule
	Top
	Right // default for VRule
	Left
)

func (s Side) String() string {
	switch s {
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	case Right:
		return "right"
	case Left:
		return "left"
	default:
		return "<unknown Side>"
	}
}

const (
	DefaultRuleLength = 20
	DefaultFontSize   = 42
)

// label placement, in user units
const (
	hLabelAbove = 20
	hLabelBelow = 80
	vLabelGap   = 10
	vLabelShift = 20
)

type options struct {
	side       Side
	ruleLength float64
	fontSize   float64
	label      func(length float64) string
}

// Option customizes a rule.
type Option func(*options)

// WithSide places the labels above (Top) or below (Bottom) an horizontal rule,
// left (Left) or right (Right) of a vertical one.
func WithSide(s Side) Option {
	return func(o *options) { o.side = s }
}

// WithRuleLength sets the half length of the ticks.
func WithRuleLength(l float64) Option {
	return func(o *options) { o.ruleLength = l }
}

// WithFontSize sets the font size of the labels.
func WithFontSize(size float64) Option {
	return func(o *options) { o.fontSize = size }
}

// WithLabel replaces the default label formatting (svgdoc.FormatNumber).
func WithLabel(format func(length float64) string) Option {
	return func(o *options) { o.label = format }
}

func newOptions(defaultSide Side, opts []Option) options {
	o := options{
		side:       defaultSide,
		ruleLength: DefaultRuleLength,
		fontSize:   DefaultFontSize,
		label:      svgdoc.FormatNumber,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func ruleStyle() svgdoc.Style {
	return svgdoc.Style{"stroke": "black", "stroke-width": 2}
}

func labelStyle(fontSize float64, anchor string) svgdoc.Style {
	return svgdoc.Style{"font-size": fontSize, "fill": "black", "stroke": "none", "text-anchor": anchor}
}

// sorted returns a sorted copy of coords
func sorted(coords []float64) []float64 {
	out := append([]float64(nil), coords...)
	sort.Float64s(out)
	return out
}

// HRule draws an horizontal rule at height y through the xs coordinates,
// in a group appended to the current context of doc. The group is returned.
func HRule(doc *svgdoc.Document, xs []float64, y float64, opts ...Option) *svgdoc.Element {
	o := newOptions(Bottom, opts)
	xs = sorted(xs)

	group := doc.Group(svgdoc.Class("hrule"), svgdoc.StyleAttr(ruleStyle()))
	doc.Within(group, func() {
		textY := y + hLabelBelow
		if o.side == Top {
			textY = y - hLabelAbove
		}
		for i := 0; i < len(xs)-1; i++ {
			x1, x2 := xs[i], xs[i+1]
			doc.Line(svgdoc.Pt(x1, y), svgdoc.Pt(x2, y))
			doc.Text(svgdoc.Pt((x1+x2)/2, textY), o.label(math.Abs(x2-x1)),
				svgdoc.StyleAttr(labelStyle(o.fontSize, "middle")))
		}
		for _, x := range xs {
			doc.Line(svgdoc.Pt(x, y-o.ruleLength), svgdoc.Pt(x, y+o.ruleLength))
		}
	})
	return group
}

// VRule draws a vertical rule at abscissa x through the ys coordinates,
// in a group appended to the current context of doc. The group is returned.
func VRule(doc *svgdoc.Document, x float64, ys []float64, opts ...Option) *svgdoc.Element {
	o := newOptions(Right, opts)
	ys = sorted(ys)

	group := doc.Group(svgdoc.Class("vrule"), svgdoc.StyleAttr(ruleStyle()))
	doc.Within(group, func() {
		textX, anchor := x+vLabelGap, "start"
		if o.side == Left {
			textX, anchor = x-vLabelGap, "end"
		}
		for i := 0; i < len(ys)-1; i++ {
			y1, y2 := ys[i], ys[i+1]
			doc.Line(svgdoc.Pt(x, y1), svgdoc.Pt(x, y2))
			doc.Text(svgdoc.Pt(textX, (y1+y2)/2+vLabelShift), o.label(math.Abs(y2-y1)),
				svgdoc.StyleAttr(labelStyle(o.fontSize, anchor)))
		}
		for _, y := range ys {
			doc.Line(svgdoc.Pt(x-o.ruleLength, y), svgdoc.Pt(x+o.ruleLength, y))
		}
	})
	return group
}

// ParseSide reads a side name as written by Side.String.
func ParseSide(s string) (Side, bool) {
	for _, side := range [...]Side{Bottom, Top, Right, Left} {
		if side.String() == s {
			return side, true
		}
	}
	return 0, false
}
