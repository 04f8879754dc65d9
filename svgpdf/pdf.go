// Implements a PDF backend to render SVG images,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"errors"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgtricks/svgdoc"
	"github.com/benoitkugler/svgtricks/svgicon"
	"github.com/benoitkugler/svgtricks/svgpath"
)

// assert interface conformance
var (
	_ svgicon.Driver  = (*Renderer)(nil)
	_ svgicon.Filler  = (*filler)(nil)
	_ svgicon.Stroker = (*stroker)(nil)
	_ rasterx.Adder   = (*pdfAdder)(nil)
)

// ErrEmptyPage is returned when the document has no size.
var ErrEmptyPage = errors.New("svgpdf: document has an empty size")

// Options controls how documents are compiled.
type Options struct {
	ErrorMode svgicon.ErrorMode
	Logger    *zap.Logger // may be nil
}

type Renderer struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string // UTF-8 to the core fonts encoding
}

// NewRenderer return a renderer which will
// write to the given `pdf`, on its current page.
func NewRenderer(pdf *gofpdf.Fpdf) *Renderer {
	return &Renderer{pdf: pdf, translate: pdf.UnicodeTranslatorFromDescriptor("")}
}

// pather accumulates the path commands, which are only
// written when painting: PDF forbids color changes
// inside a path construction.
type pather struct {
	pdf *gofpdf.Fpdf
	svgpath.Path
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation
type stroker struct {
	pather
}

// pdfAdder writes path commands to the PDF content stream.
type pdfAdder struct {
	pdf *gofpdf.Fpdf
	a   fixed.Point26_6 // current point
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p *pdfAdder) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
	p.a = a
}

func (p *pdfAdder) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
	p.a = b
}

// QuadBezier is elevated to a cubic curve, since the
// PDF "v" operator is not a quadratic curve.
func (p *pdfAdder) QuadBezier(b, c fixed.Point26_6) {
	x0, y0 := fixedTof(p.a)
	bx, by := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveBezierCubicTo(
		x0+2./3*(bx-x0), y0+2./3*(by-y0),
		x+2./3*(bx-x), y+2./3*(by-y),
		x, y,
	)
	p.a = c
}

func (p *pdfAdder) CubeBezier(b, c, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
	p.a = d
}

func (p *pdfAdder) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// paint writes the accumulated path followed by the painting operator `op`.
func (p *pather) paint(op string) {
	if len(p.Path) == 0 {
		return
	}
	p.Path.AddTo(&pdfAdder{pdf: p.pdf})
	p.pdf.DrawPath(op)
	p.Path.Clear()
}

// rgba returns the 0-255 components of c, and its alpha as a fraction.
func rgba(c color.Color) (r, g, b int, alpha float64) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(nc.R), int(nc.G), int(nc.B), float64(nc.A) / 255
}

func (f *filler) SetColor(c color.Color, opacity float64) {
	r, g, b, a := rgba(c)
	f.pdf.SetFillColor(r, g, b)
	f.pdf.SetAlpha(a*opacity, "Normal")
}

func (f *filler) Draw() {
	op := "F*"
	if f.useNonZeroWinding {
		op = "F"
	}
	f.paint(op)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (s *stroker) SetColor(c color.Color, opacity float64) {
	r, g, b, a := rgba(c)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetAlpha(a*opacity, "Normal")
}

func (s *stroker) Draw() { s.paint("D") }

var (
	capToStyle = [...]string{
		svgicon.NilCap:    "butt",
		svgicon.ButtCap:   "butt",
		svgicon.SquareCap: "square",
		svgicon.RoundCap:  "round",
	}

	// PDF has no arc joins
	joinToStyle = [...]string{
		svgicon.Arc:       "round",
		svgicon.Round:     "round",
		svgicon.Bevel:     "bevel",
		svgicon.Miter:     "miter",
		svgicon.MiterClip: "miter",
		svgicon.ArcClip:   "round",
	}
)

func (s *stroker) SetStrokeOptions(options svgicon.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capToStyle[options.Join.LineCap])
	s.pdf.SetLineJoinStyle(joinToStyle[options.Join.LineJoin])
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

// SetupDrawers implements svgicon.Driver.
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f svgicon.Filler, s svgicon.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: rd.pdf}, useNonZeroWinding: true}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: rd.pdf}}
	}
	return f, s
}

// DrawText implements svgicon.Driver, using the Helvetica core font.
func (rd *Renderer) DrawText(text svgicon.TextRun, opacity float64) {
	if text.FontSize <= 0 {
		return
	}
	s := rd.translate(text.Text)
	rd.pdf.SetFont("Helvetica", "", 0)
	rd.pdf.SetFontUnitSize(text.FontSize)
	x := text.X
	switch text.Anchor {
	case "middle":
		x -= rd.pdf.GetStringWidth(s) / 2
	case "end":
		x -= rd.pdf.GetStringWidth(s)
	}
	r, g, b, a := rgba(text.Fill)
	rd.pdf.SetTextColor(r, g, b)
	rd.pdf.SetAlpha(a*text.FillOpacity*opacity, "Normal")
	rd.pdf.Text(x, text.Y, s)
}

// RenderIcon draws the icon in the (x, y, w, h) rectangle of the current page,
// expressed in the unit of `pdf`.
// Note that the target of the icon is modified.
func RenderIcon(pdf *gofpdf.Fpdf, icon *svgicon.SvgIcon, x, y, w, h float64) {
	icon.SetTarget(x, y, w, h)
	icon.Draw(NewRenderer(pdf), 1.0)
	pdf.SetAlpha(1, "Normal")
}

// NewPage returns a one page PDF, using points as unit,
// whose size is the natural size of the icon.
func NewPage(icon *svgicon.SvgIcon) (*gofpdf.Fpdf, error) {
	w, h := icon.Size()
	if w <= 0 || h <= 0 || icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, ErrEmptyPage
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	RenderIcon(pdf, icon, 0, 0, w, h)
	return pdf, pdf.Error()
}

// WriteIcon writes icon as a one page PDF.
func WriteIcon(out io.Writer, icon *svgicon.SvgIcon) error {
	pdf, err := NewPage(icon)
	if err != nil {
		return err
	}
	return pdf.Output(out)
}

// WriteDocument compiles doc and writes it as a one page PDF.
func WriteDocument(out io.Writer, doc *svgdoc.Document, opts Options) error {
	icon, err := svgicon.Compile(doc.Root(), opts.ErrorMode, opts.Logger)
	if err != nil {
		return err
	}
	return WriteIcon(out, icon)
}

// RenderSVGIconToPDF reads an SVG document from `icon` and writes it as PDF.
func RenderSVGIconToPDF(icon io.Reader, out io.Writer, opts Options) error {
	parsed, err := svgicon.ReadIconStream(icon, opts.ErrorMode, opts.Logger)
	if err != nil {
		return err
	}
	return WriteIcon(out, parsed)
}
