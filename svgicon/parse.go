package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/svgtricks/svgdoc"
	"github.com/benoitkugler/svgtricks/svgpath"
)

var errParamMismatch = errors.New("svgicon: param mismatch")

// iconCursor is used while compiling SVG trees
type iconCursor struct {
	icon       *SvgIcon
	styleStack []PathStyle
	path       svgpath.Path
	errorMode  ErrorMode
	logger     *zap.Logger
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

func (c *iconCursor) style() *PathStyle {
	return &c.styleStack[len(c.styleStack)-1]
}

func (c *iconCursor) compileElement(e *svgdoc.Element) error {
	// Reads all recognized style attributes from the element
	// and places it on top of the styleStack
	if err := c.pushStyle(e.Attrs); err != nil {
		return fmt.Errorf("<%s>: %w", e.Tag, err)
	}
	defer func() { c.styleStack = c.styleStack[:len(c.styleStack)-1] }()

	descend, err := c.readElement(e)
	if err != nil {
		return fmt.Errorf("<%s>: %w", e.Tag, err)
	}
	if !descend {
		return nil
	}
	for _, child := range e.Children {
		if err := c.compileElement(child); err != nil {
			return err
		}
	}
	return nil
}

func (c *iconCursor) readStyleAttr(curStyle *PathStyle, k, v string) error {
	switch k {
	case "color":
		col, err := parseSVGColor(v, curStyle.Color)
		if err != nil {
			return err
		}
		curStyle.Color = col
	case "fill":
		col, err := parseSVGColor(v, curStyle.Color)
		if err != nil {
			return err
		}
		curStyle.FillerColor = col
	case "stroke":
		col, err := parseSVGColor(v, curStyle.Color)
		if err != nil {
			return err
		}
		curStyle.LinerColor = col
	case "fill-rule":
		curStyle.UseNonZeroWinding = v != "evenodd"
	case "stroke-linecap":
		switch v {
		case "butt":
			curStyle.Join.LineCap = ButtCap
		case "round":
			curStyle.Join.LineCap = RoundCap
		case "square":
			curStyle.Join.LineCap = SquareCap
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			curStyle.Join.LineJoin = Miter
		case "miter-clip":
			curStyle.Join.LineJoin = MiterClip
		case "arc-clip":
			curStyle.Join.LineJoin = ArcClip
		case "round":
			curStyle.Join.LineJoin = Round
		case "arc":
			curStyle.Join.LineJoin = Arc
		case "bevel":
			curStyle.Join.LineJoin = Bevel
		}
	case "stroke-miterlimit":
		mLimit, err := svgpath.ParseNumber(v)
		if err != nil {
			return err
		}
		curStyle.Join.MiterLimit = fToFixed(mLimit)
	case "stroke-width":
		width, err := svgpath.ParseNumber(v)
		if err != nil {
			return err
		}
		curStyle.LineWidth = width
	case "stroke-dashoffset":
		dashOffset, err := svgpath.ParseNumber(v)
		if err != nil {
			return err
		}
		curStyle.Dash.DashOffset = dashOffset
	case "stroke-dasharray":
		if v == "none" {
			curStyle.Dash.Dash = nil
			break
		}
		dList, err := svgpath.ParseNumbers(v)
		if err != nil {
			return err
		}
		curStyle.Dash.Dash = dList
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := readFraction(v)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.FillOpacity *= op
		}
		if k != "fill-opacity" {
			curStyle.LineOpacity *= op
		}
	case "font-size":
		size, err := svgpath.ParseNumber(v)
		if err != nil {
			return err
		}
		curStyle.FontSize = size
	case "text-anchor":
		curStyle.TextAnchor = v
	case "transform":
		m, err := svgpath.ParseTransform(curStyle.Transform, v)
		if err != nil {
			return err
		}
		curStyle.Transform = m
	}
	return nil
}

// pushStyle parses the style element, and push it on the style stack.
// Note that this parses both the contents of a style attribute plus
// direct presentation attributes.
func (c *iconCursor) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	// Make a copy of the top style
	curStyle := *c.style()
	// color is applied first, since fill and stroke may refer to it
	for _, colorPass := range [2]bool{true, false} {
		for _, pair := range pairs {
			kv := strings.SplitN(pair, ":", 2)
			if len(kv) != 2 {
				continue
			}
			k := strings.ToLower(strings.TrimSpace(kv[0]))
			if (k == "color") != colorPass {
				continue
			}
			if err := c.readStyleAttr(&curStyle, k, strings.TrimSpace(kv[1])); err != nil {
				return err
			}
		}
	}
	c.styleStack = append(c.styleStack, curStyle) // Push style onto stack
	return nil
}

// readElement handles the element proper, and reports
// if its children should be compiled.
func (c *iconCursor) readElement(e *svgdoc.Element) (descend bool, err error) {
	df, ok := drawFuncs[e.Tag]
	if !ok {
		errStr := "cannot process svg element " + e.Tag
		if c.errorMode == StrictErrorMode {
			return false, errors.New(errStr)
		} else if c.errorMode == WarnErrorMode {
			c.logger.Warn("unsupported svg element", zap.String("element", e.Tag))
		}
		return false, nil
	}
	descend, err = df(c, e)
	if err != nil {
		return false, err
	}

	if len(c.path) > 0 {
		//The cursor compiled a path from the element
		pathCopy := append(svgpath.Path{}, c.path...)
		c.icon.Items = append(c.icon.Items, &SvgPath{Path: pathCopy, Style: *c.style()})
		c.path = c.path[:0]
	}
	return descend, nil
}

func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = svgpath.ParseNumber(v)
	f /= d
	return
}
