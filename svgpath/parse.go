package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/rasterx"
)

// Matrix2D is an affine transform, in the SVG (a b c d e f) order.
type Matrix2D = rasterx.Matrix2D

// Identity is the identity transform.
var Identity = rasterx.Identity

var errParamMismatch = errors.New("svgpath: param mismatch")

// ScaleFactor returns the uniform scale of m, used to map
// lengths such as stroke widths and font sizes.
func ScaleFactor(m Matrix2D) float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// SplitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func SplitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
}

// ParseNumber reads a length, ignoring a "px" or "pt" unit.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSuffix(s, "pt")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("svgpath: invalid number %q", s)
	}
	return f, nil
}

// ParseNumbers reads a list of numbers separated by commas or spaces.
func ParseNumbers(s string) ([]float64, error) {
	fields := SplitOnCommaOrSpace(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := ParseNumber(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readTransformAttr(m1 Matrix2D, k string, points []float64) (Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: points[0],
				B: points[1],
				C: points[2],
				D: points[3],
				E: points[4],
				F: points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// ParseTransform applies the transform list `v` (as found in
// a transform attribute) on top of `base`.
func ParseTransform(base Matrix2D, v string) (Matrix2D, error) {
	ts := strings.Split(v, ")")
	m1 := base
	for _, t := range ts {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return base, fmt.Errorf("invalid transform %q: %w", v, errParamMismatch) // badly formed transformation
		}
		points, err := ParseNumbers(d[1])
		if err != nil {
			return base, err
		}
		m1, err = readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])), points)
		if err != nil {
			return base, fmt.Errorf("invalid transform %q: %w", v, err)
		}
	}
	return m1, nil
}
