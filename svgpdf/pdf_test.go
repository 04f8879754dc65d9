package svgpdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgtricks/svgdoc"
	"github.com/benoitkugler/svgtricks/svgicon"
	"github.com/benoitkugler/svgtricks/svgrule"
)

// renderUncompressed returns the PDF output of doc, with a
// readable content stream.
func renderUncompressed(t *testing.T, doc *svgdoc.Document) string {
	t.Helper()
	icon, err := svgicon.Compile(doc.Root(), svgicon.StrictErrorMode, nil)
	require.NoError(t, err)
	w, h := icon.Size()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: w, Ht: h}})
	pdf.SetCompression(false)
	pdf.AddPage()
	RenderIcon(pdf, icon, 0, 0, w, h)

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.String()
}

func TestFillAndStroke(t *testing.T) {
	doc := svgdoc.New()
	doc.Canvas(100, 50)
	doc.Rect(svgdoc.Pt(10, 10), 20, 20, svgdoc.A("fill", "red"), svgdoc.A("stroke", "blue"), svgdoc.A("stroke_width", 3))

	out := renderUncompressed(t, doc)
	// y axis is flipped by gofpdf
	assert.Contains(t, out, "10.00 40.00 m")
	assert.Contains(t, out, "30.00 20.00 l")
	assert.Contains(t, out, "1.000 0.000 0.000 rg")
	assert.Contains(t, out, "0.000 0.000 1.000 RG")
	assert.Contains(t, out, "3.00 w")
	assert.Contains(t, out, "\nf\n")
	assert.Contains(t, out, "\nS\n")

	// the color is set before the path starts
	assert.Less(t, strings.Index(out, "1.000 0.000 0.000 rg"), strings.Index(out, "10.00 40.00 m"))
}

func TestEvenOdd(t *testing.T) {
	doc := svgdoc.New()
	doc.Canvas(10, 10)
	doc.Polygon([]svgdoc.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 0, Y: 5}}, svgdoc.A("fill_rule", "evenodd"))

	out := renderUncompressed(t, doc)
	assert.Contains(t, out, "\nf*\n")
	assert.Contains(t, out, "\nh\n")
}

func TestDash(t *testing.T) {
	doc := svgdoc.New()
	doc.Canvas(10, 10)
	doc.Line(svgdoc.Pt(0, 5), svgdoc.Pt(10, 5), svgdoc.StyleAttr(svgdoc.Style{
		"stroke": "black", "stroke_dasharray": "2 1", "stroke_linecap": "round",
	}))

	out := renderUncompressed(t, doc)
	assert.Contains(t, out, "[2.00 1.00] 0.00 d")
	assert.Contains(t, out, "1 J")
}

func TestText(t *testing.T) {
	doc := svgdoc.New()
	doc.Canvas(200, 100)
	doc.Text(svgdoc.Pt(100, 50), "ruler", svgdoc.A("font_size", 20))

	out := renderUncompressed(t, doc)
	assert.Contains(t, out, "(ruler) Tj")
	assert.Contains(t, out, "/Helvetica")
}

func TestWriteDocument(t *testing.T) {
	doc := svgdoc.New()
	doc.Canvas(400, 200)
	svgrule.VRule(doc, 200, []float64{20, 180}, svgrule.WithSide(svgrule.Left))

	var buf bytes.Buffer
	require.NoError(t, WriteDocument(&buf, doc, Options{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "/MediaBox [0 0 400.00 200.00]")
}

func TestWriteDocumentEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDocument(&buf, svgdoc.New(), Options{})
	assert.ErrorIs(t, err, ErrEmptyPage)
}

func TestRenderSVGIconToPDF(t *testing.T) {
	const src = `<svg xmlns="http://www.w3.org/2000/svg" width="30" height="20">
	<circle cx="10" cy="10" r="5"/><path d="M0 0"/>
	</svg>`
	var buf bytes.Buffer
	require.NoError(t, RenderSVGIconToPDF(strings.NewReader(src), &buf, Options{}))
	assert.NotZero(t, buf.Len())

	err := RenderSVGIconToPDF(strings.NewReader(src), &buf, Options{ErrorMode: svgicon.StrictErrorMode})
	assert.Error(t, err)
}
