package svgicon

import (
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgtricks/svgpath"
)

// Given a compiled SVG document, implements how to
// draw it on screen.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG kwowledge
// In particular, tranformations matrix are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line Adds a line for the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor set the color for the current path
	SetColor(color color.Color, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the filling mode
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)

	// DrawText paints a text run, whose position and
	// font size are already in device space.
	DrawText(text TextRun, opacity float64)
}

type DashOptions struct {
	Dash       []float64 // values for the dash pattern (nil or an empty slice for no dashes)
	DashOffset float64   // starting offset into the dash array
}

// JoinMode type to specify how segments join.
type JoinMode uint8

// JoinMode constants determine how stroke segments bridge the gap at a join
const (
	Arc JoinMode = iota // New in SVG2
	Round
	Bevel
	Miter
	MiterClip // New in SVG2
	ArcClip   // Like MiterClip applied to arcs, and is not part of the SVG2.0 standard.
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	case MiterClip:
		return "MiterClip"
	case Arc:
		return "Arc"
	case ArcClip:
		return "ArcClip"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	NilCap CapMode = iota // default value
	ButtCap
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case NilCap:
		return "NilCap"
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	default:
		return "<unknown CapMode>"
	}
}

type JoinOptions struct {
	MiterLimit fixed.Int26_6 // the miter cutoff value for miter, arc, miterclip and arcClip joinModes
	LineJoin   JoinMode      // JoinMode for curve segments
	LineCap    CapMode       // capping function for both line ends
}

type StrokeOptions struct {
	LineWidth fixed.Int26_6 // width of the line, in device space
	Join      JoinOptions
	Dash      DashOptions
}

// SetTarget sets the Transform matrix to draw within the bounds of the rectangle arguments
func (s *SvgIcon) SetTarget(x, y, w, h float64) {
	scaleW := w / s.ViewBox.W
	scaleH := h / s.ViewBox.H
	s.Transform = svgpath.Identity.Translate(x, y).Scale(scaleW, scaleH).Translate(-s.ViewBox.X, -s.ViewBox.Y)
}

// Draw the compiled SVG icon into the driver `d`, in the order
// of the document.
func (s *SvgIcon) Draw(d Driver, opacity float64) {
	for _, item := range s.Items {
		switch item := item.(type) {
		case *SvgPath:
			item.drawTransformed(d, opacity, s.Transform)
		case *TextRun:
			item.drawTransformed(d, opacity, s.Transform)
		}
	}
}

// drawTransformed draws the compiled SvgPath into the driver while applying transform t.
func (svgp *SvgPath) drawTransformed(d Driver, opacity float64, t svgpath.Matrix2D) {
	m := t.Mult(svgp.Style.Transform)

	filler, stroker := d.SetupDrawers(svgp.Style.FillerColor != nil, svgp.Style.LinerColor != nil)
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(svgp.Style.UseNonZeroWinding)

		svgp.Path.AddTo(&rasterx.MatrixAdder{Adder: filler, M: m})

		filler.SetColor(svgp.Style.FillerColor, svgp.Style.FillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()

		lineCap := svgp.Style.Join.LineCap
		if lineCap == NilCap {
			lineCap = DefaultStyle.Join.LineCap
		}
		scale := svgpath.ScaleFactor(m)
		dash := svgp.Style.Dash
		if len(dash.Dash) != 0 {
			scaled := make([]float64, len(dash.Dash))
			for i, v := range dash.Dash {
				scaled[i] = v * scale
			}
			dash = DashOptions{Dash: scaled, DashOffset: dash.DashOffset * scale}
		}
		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth: fixed.Int26_6(svgp.Style.LineWidth * scale * 64),
			Join: JoinOptions{
				MiterLimit: svgp.Style.Join.MiterLimit,
				LineJoin:   svgp.Style.Join.LineJoin,
				LineCap:    lineCap,
			},
			Dash: dash,
		})

		svgp.Path.AddTo(&rasterx.MatrixAdder{Adder: stroker, M: m})

		stroker.SetColor(svgp.Style.LinerColor, svgp.Style.LineOpacity*opacity)
		stroker.Draw()
	}
}

// drawTransformed sends the text run to the driver, in device space.
func (tr *TextRun) drawTransformed(d Driver, opacity float64, t svgpath.Matrix2D) {
	if tr.Fill == nil || tr.Text == "" {
		return
	}
	m := t.Mult(tr.Transform)
	x, y := m.Transform(tr.X, tr.Y)
	out := *tr
	out.X, out.Y = x, y
	out.FontSize = tr.FontSize * svgpath.ScaleFactor(m)
	out.Transform = svgpath.Identity
	d.DrawText(out, opacity)
}
