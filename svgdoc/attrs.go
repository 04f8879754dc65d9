package svgdoc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Point is a location in user units.
type Point struct{ X, Y float64 }

// Pt is a shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Attr is an attribute given to an element constructor.
// Value is formatted by FormatValue when the attribute is set.
type Attr struct {
	Name  string
	Value any
}

// A returns the attribute `name` = `value`.
func A(name string, value any) Attr { return Attr{Name: name, Value: value} }

// Class returns a class attribute.
func Class(class string) Attr { return Attr{Name: "class", Value: class} }

// ID returns an id attribute.
func ID(id string) Attr { return Attr{Name: "id", Value: id} }

// StyleAttr returns a style attribute.
func StyleAttr(s Style) Attr { return Attr{Name: "style", Value: s} }

// TransformAttr returns a transform attribute.
func TransformAttr(transform string) Attr { return Attr{Name: "transform", Value: transform} }

// Style is a set of CSS declarations, rendered with sorted keys
// as "key: value; key: value".
type Style map[string]any

func (s Style) String() string {
	keys := lo.Keys(s)
	sort.Strings(keys)
	chunks := make([]string, len(keys))
	for i, k := range keys {
		chunks[i] = strings.ReplaceAll(k, "_", "-") + ": " + FormatValue(s[k])
	}
	return strings.Join(chunks, "; ")
}

// NormalizeName turns a keyword-like name into an attribute name:
// one trailing underscore is dropped (class_ -> class) and the
// remaining underscores become dashes (stroke_width -> stroke-width).
func NormalizeName(name string) string {
	name = strings.TrimSuffix(name, "_")
	return strings.ReplaceAll(name, "_", "-")
}

// FormatNumber returns the shortest decimal form of f ("2", "0.5", "-150").
func FormatNumber(f float64) string {
	if f == 0 { // avoids "-0"
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatPoints renders points as "x,y x,y".
func FormatPoints(points []Point) string {
	return strings.Join(lo.Map(points, func(p Point, _ int) string {
		return FormatNumber(p.X) + "," + FormatNumber(p.Y)
	}), " ")
}

// FormatValue converts an attribute value to its textual form.
func FormatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return FormatNumber(v)
	case float32:
		return FormatNumber(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case Style:
		return v.String()
	case map[string]any:
		return Style(v).String()
	case []Point:
		return FormatPoints(v)
	case Point:
		return FormatNumber(v.X) + "," + FormatNumber(v.Y)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
