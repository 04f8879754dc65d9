// Builds SVG documents from nested, declarative calls.
//
// A Document keeps a stack of context elements: every shape
// is appended to the element on top of the stack, and Within
// opens a new level for the duration of a function.
//
//	doc := svgdoc.New()
//	doc.Canvas(400, 300)
//	doc.Within(doc.Origin(svgdoc.Pt(20, 280), true), func() {
//		doc.Line(svgdoc.Pt(0, 0), svgdoc.Pt(100, 0), svgdoc.A("stroke", "black"))
//	})
//	doc.WriteTo(os.Stdout)
package svgdoc

import (
	"errors"
	"strconv"
)

const (
	// Namespace is the SVG namespace set on the root element.
	Namespace = "http://www.w3.org/2000/svg"

	// Doctype is written between the XML declaration and the root element.
	Doctype = `<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">`
)

// ErrRootContext is returned when popping the root element off the context stack.
var ErrRootContext = errors.New("svgdoc: cannot pop the root context")

// Document is an SVG tree under construction.
// It is not safe for concurrent use.
type Document struct {
	root  *Element
	stack []*Element
}

// New returns a document with an <svg> root as current context.
func New() *Document {
	root := NewElement("svg", A("xmlns", Namespace))
	return &Document{root: root, stack: []*Element{root}}
}

// Root returns the <svg> element.
func (d *Document) Root() *Element { return d.root }

// Context returns the element new shapes are appended to.
func (d *Document) Context() *Element { return d.stack[len(d.stack)-1] }

// Depth returns the size of the context stack (1 when only the root is open).
func (d *Document) Depth() int { return len(d.stack) }

// Push makes `e` the current context.
func (d *Document) Push(e *Element) { d.stack = append(d.stack, e) }

// Pop restores the previous context.
func (d *Document) Pop() error {
	if len(d.stack) <= 1 {
		return ErrRootContext
	}
	d.stack = d.stack[:len(d.stack)-1]
	return nil
}

// Within pushes `e`, runs `fn` and restores the context stack
// as it was before the call, also when `fn` panics or pops
// more than it pushes.
func (d *Document) Within(e *Element, fn func()) {
	saved := append([]*Element(nil), d.stack...)
	d.Push(e)
	defer func() { d.stack = saved }()
	fn()
}

// NewElement creates an element and appends it to the current context.
func (d *Document) NewElement(tag string, attrs ...Attr) *Element {
	e := NewElement(tag, attrs...)
	d.Context().Append(e)
	return e
}

// Canvas sets the width and height of the root element.
func (d *Document) Canvas(width, height float64) {
	d.root.SetAttr("width", width)
	d.root.SetAttr("height", height)
}

// Viewport sets the viewBox of the root element.
func (d *Document) Viewport(x, y, w, h float64) {
	d.root.SetAttr("viewBox", FormatNumber(x)+" "+FormatNumber(y)+" "+FormatNumber(w)+" "+FormatNumber(h))
}

// Group appends a <g> element.
func (d *Document) Group(attrs ...Attr) *Element { return d.NewElement("g", attrs...) }

// Line appends a <line> from p1 to p2.
func (d *Document) Line(p1, p2 Point, attrs ...Attr) *Element {
	return d.NewElement("line", prepend(attrs, A("x1", p1.X), A("y1", p1.Y), A("x2", p2.X), A("y2", p2.Y))...)
}

// Circle appends a <circle>.
func (d *Document) Circle(center Point, r float64, attrs ...Attr) *Element {
	return d.NewElement("circle", prepend(attrs, A("cx", center.X), A("cy", center.Y), A("r", r))...)
}

// Ellipse appends an <ellipse>.
func (d *Document) Ellipse(center Point, rx, ry float64, attrs ...Attr) *Element {
	return d.NewElement("ellipse", prepend(attrs, A("cx", center.X), A("cy", center.Y), A("rx", rx), A("ry", ry))...)
}

// Rect appends a <rect> whose top-left corner is `corner`.
func (d *Document) Rect(corner Point, w, h float64, attrs ...Attr) *Element {
	return d.NewElement("rect", prepend(attrs, A("x", corner.X), A("y", corner.Y), A("width", w), A("height", h))...)
}

// Polyline appends a <polyline>.
func (d *Document) Polyline(points []Point, attrs ...Attr) *Element {
	return d.NewElement("polyline", prepend(attrs, A("points", points))...)
}

// Polygon appends a <polygon>.
func (d *Document) Polygon(points []Point, attrs ...Attr) *Element {
	return d.NewElement("polygon", prepend(attrs, A("points", points))...)
}

// Text appends a <text> anchored at `p`, whose content is `value`
// formatted with FormatValue.
func (d *Document) Text(p Point, value any, attrs ...Attr) *Element {
	e := d.NewElement("text", prepend(attrs, A("x", p.X), A("y", p.Y))...)
	e.Text = FormatValue(value)
	return e
}

// Title appends a <title> element.
func (d *Document) Title(value string) *Element {
	e := d.NewElement("title")
	e.Text = value
	return e
}

// Desc appends a <desc> element.
func (d *Document) Desc(value string) *Element {
	e := d.NewElement("desc")
	e.Text = value
	return e
}

// Origin appends a group whose coordinate system starts at `p`.
// With invertY, the y axis points up.
func (d *Document) Origin(p Point, invertY bool) *Element {
	sy := 1
	if invertY {
		sy = -1
	}
	transform := "matrix(1, 0, 0, " + strconv.Itoa(sy) + ", " + FormatNumber(p.X) + ", " + FormatNumber(p.Y) + ")"
	return d.Group(TransformAttr(transform))
}

func prepend(attrs []Attr, first ...Attr) []Attr {
	return append(first, attrs...)
}
