package svgpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSVGPath(t *testing.T) {
	var p Path
	p.Start(ToFixedP(0, 0))
	p.Line(ToFixedP(10, 0))
	p.QuadBezier(ToFixedP(10, 5), ToFixedP(5, 5))
	p.CubeBezier(ToFixedP(4, 5), ToFixedP(1, 2), ToFixedP(0.5, 0.25))
	p.Stop(true)

	assert.Equal(t,
		"M0.000,0.000 L10.000,0.000 Q10.000,5.000,5.000,5.000 C4.000,5.000,1.000,2.000,0.500,0.250 Z",
		p.String())

	p.Clear()
	assert.Empty(t, p)
}

func TestAddToReplaysPath(t *testing.T) {
	var src Path
	src.AddPoly([]float64{0, 0, 10, 0, 10, 10}, true)
	src.AddLine(1, 1, 2, 2)

	var dst Path
	src.AddTo(&dst)
	if diff := cmp.Diff(src, dst); diff != "" {
		t.Fatalf("replayed path differs (-want +got):\n%s", diff)
	}
}

func TestTransform(t *testing.T) {
	var p Path
	p.AddPoly([]float64{0, 0, 10, 0, 10, 10}, false)

	got := p.Transform(Identity.Translate(5, -5))
	want := Path{
		MoveTo(ToFixedP(5, -5)),
		LineTo(ToFixedP(15, -5)),
		LineTo(ToFixedP(15, 5)),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("transformed path differs (-want +got):\n%s", diff)
	}
}

func TestAddPolyTooShort(t *testing.T) {
	var p Path
	p.AddPoly([]float64{1, 2}, true)
	assert.Empty(t, p)
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		input    string
		x, y     float64 // image of (1, 2)
		expError bool
	}{
		{"matrix(1, 0, 0, -1, 10, 20)", 11, 18, false},
		{"translate(3)", 4, 2, false},
		{"translate(3 4)", 4, 6, false},
		{"scale(2)", 2, 4, false},
		{"scale(2, 3)", 2, 6, false},
		{"translate(10,0) scale(2)", 12, 4, false},
		{"rotate(90)", -2, 1, false},
		{"rotate(180, 1, 2)", 1, 2, false},
		{"skewX(0)", 1, 2, false},
		{"", 1, 2, false},
		{"scale(1, 2, 3)", 0, 0, true},
		{"shear(2)", 0, 0, true},
		{"translate(a, b)", 0, 0, true},
		{"translate", 0, 0, true},
	}
	for _, tt := range tests {
		m, err := ParseTransform(Identity, tt.input)
		if tt.expError {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		x, y := m.Transform(1, 2)
		assert.InDelta(t, tt.x, x, 1e-9, tt.input)
		assert.InDelta(t, tt.y, y, 1e-9, tt.input)
	}
}

func TestParseTransformComposesOnBase(t *testing.T) {
	base := Identity.Translate(100, 0)
	m, err := ParseTransform(base, "scale(2)")
	require.NoError(t, err)
	x, y := m.Transform(1, 1)
	assert.Equal(t, 102., x)
	assert.Equal(t, 2., y)
}

func TestParseNumbers(t *testing.T) {
	nums, err := ParseNumbers("0 0,1600\t1200px")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1600, 1200}, nums)

	_, err = ParseNumbers("1 two")
	assert.Error(t, err)
}

func TestScaleFactor(t *testing.T) {
	assert.Equal(t, 1., ScaleFactor(Identity))
	assert.InDelta(t, 3., ScaleFactor(Identity.Scale(3, 3)), 1e-9)
	assert.InDelta(t, 1., ScaleFactor(Matrix2D{A: 1, D: -1}), 1e-9)
	assert.InDelta(t, 1., ScaleFactor(Identity.Rotate(math.Pi/3)), 1e-9)
}

func TestBounds(t *testing.T) {
	var rect Path
	rect.AddRect(2, 3, 10, 20, 0, 0)
	b := rect.Bounds()
	assert.InDelta(t, 2, b.MinX, 0.05)
	assert.InDelta(t, 3, b.MinY, 0.05)
	assert.InDelta(t, 12, b.MaxX, 0.05)
	assert.InDelta(t, 23, b.MaxY, 0.05)

	var circle Path
	circle.AddEllipse(50, 50, 10, 10)
	b = circle.Bounds()
	assert.InDelta(t, 40, b.MinX, 0.1)
	assert.InDelta(t, 60, b.MaxX, 0.1)
	assert.InDelta(t, 40, b.MinY, 0.1)
	assert.InDelta(t, 60, b.MaxY, 0.1)

	assert.True(t, Path{}.Bounds().Empty())
}

func TestBoundsOfCurveExtrema(t *testing.T) {
	// the control point pulls the curve up to y = -5, which is
	// not reached by any end point
	p := Path{
		MoveTo(ToFixedP(0, 0)),
		QuadTo{ToFixedP(5, -10), ToFixedP(10, 0)},
	}
	b := p.Bounds()
	assert.InDelta(t, -5, b.MinY, 0.05)
	assert.InDelta(t, 0, b.MaxY, 0.05)

	c := Path{
		MoveTo(ToFixedP(0, 0)),
		CubicTo{ToFixedP(0, 10), ToFixedP(10, 10), ToFixedP(10, 0)},
	}
	b = c.Bounds()
	assert.InDelta(t, 7.5, b.MaxY, 0.05)
}

func TestRectUnion(t *testing.T) {
	r := EmptyRect.Union(Rect{0, 0, 1, 1}).Union(Rect{-1, 2, 0, 3})
	assert.Equal(t, Rect{-1, 0, 1, 3}, r)
	assert.Equal(t, Rect{-2, -1, 2, 4}, r.Expand(1))
	assert.True(t, EmptyRect.Expand(2).Empty())
}
