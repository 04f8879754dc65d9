// Compiles SVG documents into an abstract representation,
// which can then be consumed by painting drivers.
// See for example svgraster or svgpdf.
package svgicon

import (
	"image/color"
	"io"

	"go.uber.org/zap"

	"github.com/benoitkugler/svgtricks/svgdoc"
	"github.com/benoitkugler/svgtricks/svgpath"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unparsed SVG elements
	IgnoreErrorMode ErrorMode = iota

	// WarnErrorMode outputs a warning when an unparsed SVG element is found
	WarnErrorMode

	// StrictErrorMode causes a error when an unparsed SVG element is found
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// ParseErrorMode reads an ErrorMode as written by String.
func ParseErrorMode(s string) (ErrorMode, bool) {
	for _, m := range [...]ErrorMode{IgnoreErrorMode, WarnErrorMode, StrictErrorMode} {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// PathStyle holds the state of the SVG style
type PathStyle struct {
	FillOpacity, LineOpacity float64
	LineWidth                float64 // in user space
	UseNonZeroWinding        bool

	Join                    JoinOptions
	Dash                    DashOptions
	FillerColor, LinerColor color.Color // nil disables filling or stroking
	Color                   color.Color // value of currentColor

	FontSize   float64
	TextAnchor string

	Transform svgpath.Matrix2D // current transform
}

// DefaultStyle sets the default PathStyle to fill black, winding rule,
// full opacity, no stroke, ButtCap line end and Miter line connect.
var DefaultStyle = PathStyle{
	FillOpacity:       1.0,
	LineOpacity:       1.0,
	LineWidth:         1.0,
	UseNonZeroWinding: true,
	Join: JoinOptions{
		MiterLimit: fToFixed(4),
		LineJoin:   Miter,
		LineCap:    ButtCap,
	},
	FillerColor: color.NRGBA{0x00, 0x00, 0x00, 0xff},
	Color:       color.NRGBA{0x00, 0x00, 0x00, 0xff},
	FontSize:    16,
	TextAnchor:  "start",
	Transform:   svgpath.Identity,
}

// Item is either a *SvgPath or a *TextRun.
type Item interface {
	isItem()
}

// SvgPath binds a style to a path
type SvgPath struct {
	Path  svgpath.Path
	Style PathStyle
}

// TextRun is the content of a <text> element.
type TextRun struct {
	X, Y        float64 // anchor point
	Text        string
	FontSize    float64
	Anchor      string // start, middle or end
	Fill        color.Color
	FillOpacity float64
	Transform   svgpath.Matrix2D
}

func (*SvgPath) isItem() {}
func (*TextRun) isItem() {}

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// SvgIcon holds data from compiled SVGs.
// See the `Draw` methods to use it.
type SvgIcon struct {
	ViewBox      Bounds
	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here
	Items        []Item   // in document order
	Transform    svgpath.Matrix2D

	Width, Height float64 // top level width and height attributes, 0 if missing
}

// Size returns the natural size of the icon: its width and
// height attributes, or the viewBox dimensions.
func (s *SvgIcon) Size() (w, h float64) {
	w, h = s.Width, s.Height
	if w == 0 {
		w = s.ViewBox.W
	}
	if h == 0 {
		h = s.ViewBox.H
	}
	return w, h
}

// Paths returns the path items.
func (s *SvgIcon) Paths() []*SvgPath {
	var out []*SvgPath
	for _, it := range s.Items {
		if p, ok := it.(*SvgPath); ok {
			out = append(out, p)
		}
	}
	return out
}

// Texts returns the text items.
func (s *SvgIcon) Texts() []*TextRun {
	var out []*TextRun
	for _, it := range s.Items {
		if t, ok := it.(*TextRun); ok {
			out = append(out, t)
		}
	}
	return out
}

// ContentBounds returns the extent of the paths, in the coordinates
// of the root element, including half the stroke width.
// Text runs contribute their anchor point only.
func (s *SvgIcon) ContentBounds() svgpath.Rect {
	out := svgpath.EmptyRect
	for _, it := range s.Items {
		switch it := it.(type) {
		case *SvgPath:
			b := it.Path.Transform(it.Style.Transform).Bounds()
			if it.Style.LinerColor != nil {
				b = b.Expand(it.Style.LineWidth * svgpath.ScaleFactor(it.Style.Transform) / 2)
			}
			out = out.Union(b)
		case *TextRun:
			x, y := it.Transform.Transform(it.X, it.Y)
			out = out.Union(svgpath.Rect{MinX: x, MinY: y, MaxX: x, MaxY: y})
		}
	}
	return out
}

// Compile walks the tree rooted at `root` (an <svg> element).
// errMode determines if the icon ignores, errors out, or logs a warning
// (through `logger`, which may be nil) when it does not handle an element.
func Compile(root *svgdoc.Element, errMode ErrorMode, logger *zap.Logger) (*SvgIcon, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	icon := &SvgIcon{Transform: svgpath.Identity}
	cursor := &iconCursor{
		styleStack: []PathStyle{DefaultStyle},
		icon:       icon,
		errorMode:  errMode,
		logger:     logger,
	}
	if err := cursor.compileElement(root); err != nil {
		return icon, err
	}
	return icon, nil
}

// ReadIconStream reads the Icon from the given io.Reader
// This only supports a sub-set of SVG, but
// is enough to draw the documents built with svgdoc.
func ReadIconStream(stream io.Reader, errMode ErrorMode, logger *zap.Logger) (*SvgIcon, error) {
	doc, err := svgdoc.Parse(stream)
	if err != nil {
		return nil, err
	}
	return Compile(doc.Root(), errMode, logger)
}

// ReadIcon reads the Icon from the named file
func ReadIcon(iconFile string, errMode ErrorMode, logger *zap.Logger) (*SvgIcon, error) {
	doc, err := svgdoc.ParseFile(iconFile)
	if err != nil {
		return nil, err
	}
	return Compile(doc.Root(), errMode, logger)
}
