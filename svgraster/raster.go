// Implements a raster backend to render SVG images,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/srwiley/rasterx"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgtricks/svgdoc"
	"github.com/benoitkugler/svgtricks/svgicon"
)

var _ svgicon.Driver = (*Renderer)(nil) // assert interface conformance

// ErrEmptyImage is returned when the icon has no size.
var ErrEmptyImage = errors.New("svgraster: icon has an empty size")

// Options controls the rasterization.
type Options struct {
	Scale      float64     // pixels per user unit, 1 if zero
	Background color.Color // nil for a transparent background
	ErrorMode  svgicon.ErrorMode
	Logger     *zap.Logger // used while compiling, may be nil
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	dst   draw.Image
	faces map[float64]font.Face
}

// NewRenderer returns a renderer drawing into dst.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// If scanner is nil, a default scanner rasterx.ScannerGV is used
func NewRenderer(dst draw.Image, scanner rasterx.Scanner) *Renderer {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if scanner == nil {
		scanner = rasterx.NewScannerGV(w, h, dst, b)
	}
	return &Renderer{
		dasher: rasterx.NewDasher(w, h, scanner),
		filler: rasterx.NewFiller(w, h, scanner),
		dst:    dst,
		faces:  make(map[float64]font.Face),
	}
}

// RasterSVGIconToImage reads an SVG document from `icon` and
// renders it into an image
func RasterSVGIconToImage(icon io.Reader, opts Options) (*image.RGBA, error) {
	parsedIcon, err := svgicon.ReadIconStream(icon, opts.ErrorMode, opts.Logger)
	if err != nil {
		return nil, err
	}
	return RasterIcon(parsedIcon, opts)
}

// RasterDocument compiles and renders doc.
func RasterDocument(doc *svgdoc.Document, opts Options) (*image.RGBA, error) {
	icon, err := svgicon.Compile(doc.Root(), opts.ErrorMode, opts.Logger)
	if err != nil {
		return nil, err
	}
	return RasterIcon(icon, opts)
}

// RasterIcon uses a ScannerGV instance to render the
// icon into a new image, whose size is the icon size times the scale.
// Note that the target of the icon is modified.
func RasterIcon(icon *svgicon.SvgIcon, opts Options) (*image.RGBA, error) {
	iw, ih := icon.Size()
	if iw <= 0 || ih <= 0 || icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, ErrEmptyImage
	}
	scale := opts.scale()
	w, h := int(math.Ceil(iw*scale)), int(math.Ceil(ih*scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}

	icon.SetTarget(0, 0, iw*scale, ih*scale)
	icon.Draw(NewRenderer(img, nil), 1.0)
	return img, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SetupDrawers implements svgicon.Driver.
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f svgicon.Filler, s svgicon.Stroker) {
	if willFill {
		f = filler{rd.filler}
	}
	if willStroke {
		s = stroker{rd.dasher}
	}
	return f, s
}

type filler struct {
	*rasterx.Filler
}

func (f filler) SetColor(c color.Color, opacity float64) {
	f.Filler.SetColor(rasterx.ApplyOpacity(c, opacity))
}

type stroker struct {
	*rasterx.Dasher
}

func (s stroker) SetColor(c color.Color, opacity float64) {
	s.Dasher.SetColor(rasterx.ApplyOpacity(c, opacity))
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgicon.Round:     rasterx.Round,
		svgicon.Bevel:     rasterx.Bevel,
		svgicon.Miter:     rasterx.Miter,
		svgicon.MiterClip: rasterx.MiterClip,
		svgicon.Arc:       rasterx.Arc,
		svgicon.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgicon.NilCap:    rasterx.ButtCap,
		svgicon.ButtCap:   rasterx.ButtCap,
		svgicon.SquareCap: rasterx.SquareCap,
		svgicon.RoundCap:  rasterx.RoundCap,
	}
)

func (s stroker) SetStrokeOptions(options svgicon.StrokeOptions) {
	capF := capToFunc[options.Join.LineCap]
	s.Dasher.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capF, capF, rasterx.FlatGap,
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}

// goRegular is parsed once, on first use, and shared by all renderers
var (
	goRegularOnce sync.Once
	goRegular     *opentype.Font
	goRegularErr  error
)

func loadGoRegular() (*opentype.Font, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = opentype.Parse(goregular.TTF)
	})
	return goRegular, goRegularErr
}

func (rd *Renderer) face(size float64) (font.Face, error) {
	if f, ok := rd.faces[size]; ok {
		return f, nil
	}
	fnt, err := loadGoRegular()
	if err != nil {
		return nil, err
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, err
	}
	rd.faces[size] = f
	return f, nil
}

// DrawText implements svgicon.Driver, using the Go Regular font.
// The anchor point is on the baseline.
func (rd *Renderer) DrawText(text svgicon.TextRun, opacity float64) {
	if text.FontSize <= 0 {
		return
	}
	face, err := rd.face(text.FontSize)
	if err != nil { // the embedded font is valid
		return
	}
	d := font.Drawer{
		Dst:  rd.dst,
		Src:  image.NewUniform(rasterx.ApplyOpacity(text.Fill, text.FillOpacity*opacity)),
		Face: face,
	}
	x := fixed.Int26_6(text.X * 64)
	switch text.Anchor {
	case "middle":
		x -= d.MeasureString(text.Text) / 2
	case "end":
		x -= d.MeasureString(text.Text)
	}
	d.Dot = fixed.Point26_6{X: x, Y: fixed.Int26_6(text.Y * 64)}
	d.DrawString(text.Text)
}
