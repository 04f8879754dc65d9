package svgicon

import (
	"errors"

	"github.com/benoitkugler/svgtricks/svgdoc"
	"github.com/benoitkugler/svgtricks/svgpath"
)

// svgFunc handles one element, and reports if the children
// of the element should be compiled
type svgFunc func(c *iconCursor, e *svgdoc.Element) (bool, error)

var drawFuncs = map[string]svgFunc{
	"svg":      svgF,
	"g":        gF,
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, //circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
	"text":     textF,
	"desc":     descF,
	"title":    titleF,
}

// readNumbers reads the numeric attributes `names`,
// missing ones defaulting to 0
func readNumbers(e *svgdoc.Element, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, ok := e.Attr(name)
		if !ok {
			continue
		}
		f, err := svgpath.ParseNumber(v)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func svgF(c *iconCursor, e *svgdoc.Element) (bool, error) {
	c.icon.ViewBox = Bounds{}
	if v, ok := e.Attr("viewBox"); ok {
		points, err := svgpath.ParseNumbers(v)
		if err != nil {
			return false, err
		}
		if len(points) != 4 {
			return false, errParamMismatch
		}
		c.icon.ViewBox = Bounds{X: points[0], Y: points[1], W: points[2], H: points[3]}
	}
	size, err := readNumbers(e, "width", "height")
	if err != nil {
		return false, err
	}
	c.icon.Width, c.icon.Height = size[0], size[1]
	if c.icon.ViewBox.W == 0 {
		c.icon.ViewBox.W = size[0]
	}
	if c.icon.ViewBox.H == 0 {
		c.icon.ViewBox.H = size[1]
	}
	return true, nil
}

func gF(*iconCursor, *svgdoc.Element) (bool, error) { return true, nil } // g does nothing but push the style

func rectF(c *iconCursor, e *svgdoc.Element) (bool, error) {
	v, err := readNumbers(e, "x", "y", "width", "height", "rx", "ry")
	if err != nil {
		return false, err
	}
	x, y, w, h, rx, ry := v[0], v[1], v[2], v[3], v[4], v[5]
	if w == 0 || h == 0 { // not drawn, but not an error
		return false, nil
	}
	c.path.AddRect(x, y, w, h, rx, ry)
	return false, nil
}

func circleF(c *iconCursor, e *svgdoc.Element) (bool, error) {
	v, err := readNumbers(e, "cx", "cy", "r", "rx", "ry")
	if err != nil {
		return false, err
	}
	cx, cy, rx, ry := v[0], v[1], v[3], v[4]
	if e.Tag == "circle" {
		rx, ry = v[2], v[2]
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return false, nil
	}
	c.path.AddEllipse(cx, cy, rx, ry)
	return false, nil
}

func lineF(c *iconCursor, e *svgdoc.Element) (bool, error) {
	v, err := readNumbers(e, "x1", "y1", "x2", "y2")
	if err != nil {
		return false, err
	}
	c.path.AddLine(v[0], v[1], v[2], v[3])
	return false, nil
}

func readPoints(e *svgdoc.Element) ([]float64, error) {
	v, _ := e.Attr("points")
	points, err := svgpath.ParseNumbers(v)
	if err != nil {
		return nil, err
	}
	if len(points)%2 != 0 {
		return nil, errors.New("polygon has odd number of points")
	}
	return points, nil
}

func polylineF(c *iconCursor, e *svgdoc.Element) (bool, error) {
	points, err := readPoints(e)
	if err != nil {
		return false, err
	}
	c.path.AddPoly(points, false)
	return false, nil
}

func polygonF(c *iconCursor, e *svgdoc.Element) (bool, error) {
	points, err := readPoints(e)
	if err != nil {
		return false, err
	}
	c.path.AddPoly(points, true)
	return false, nil
}

func textF(c *iconCursor, e *svgdoc.Element) (bool, error) {
	v, err := readNumbers(e, "x", "y")
	if err != nil {
		return false, err
	}
	style := c.style()
	c.icon.Items = append(c.icon.Items, &TextRun{
		X:           v[0],
		Y:           v[1],
		Text:        e.Text,
		FontSize:    style.FontSize,
		Anchor:      style.TextAnchor,
		Fill:        style.FillerColor,
		FillOpacity: style.FillOpacity,
		Transform:   style.Transform,
	})
	return false, nil
}

func descF(c *iconCursor, e *svgdoc.Element) (bool, error) {
	c.icon.Descriptions = append(c.icon.Descriptions, e.Text)
	return false, nil
}

func titleF(c *iconCursor, e *svgdoc.Element) (bool, error) {
	c.icon.Titles = append(c.icon.Titles, e.Text)
	return false, nil
}
