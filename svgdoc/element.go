package svgdoc

import "encoding/xml"

// Element is a node of the SVG tree. Text, when not empty,
// is written before the children.
type Element struct {
	Tag      string
	Attrs    []xml.Attr
	Text     string
	Children []*Element
}

// NewElement returns a detached element. Use Document.NewElement
// to create one in the current context.
func NewElement(tag string, attrs ...Attr) *Element {
	e := &Element{Tag: tag}
	for _, a := range attrs {
		e.SetAttr(a.Name, a.Value)
	}
	return e
}

// Attr returns the value of the attribute `name`.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the attribute `name`, replacing an existing value in place.
// The name is normalized with NormalizeName and the value formatted with FormatValue.
func (e *Element) SetAttr(name string, value any) {
	name = NormalizeName(name)
	s := FormatValue(value)
	for i, a := range e.Attrs {
		if a.Name.Local == name {
			e.Attrs[i].Value = s
			return
		}
	}
	e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: s})
}

// RemoveAttr deletes the attribute `name`, if present.
func (e *Element) RemoveAttr(name string) {
	for i, a := range e.Attrs {
		if a.Name.Local == name {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return
		}
	}
}

// Append adds `child` as the last child of e.
func (e *Element) Append(child *Element) { e.Children = append(e.Children, child) }

// Walk calls fn for e and its descendants, depth first.
// Returning false from fn skips the children of the current element.
func (e *Element) Walk(fn func(el *Element, depth int) bool) {
	e.walk(fn, 0)
}

func (e *Element) walk(fn func(el *Element, depth int) bool, depth int) {
	if !fn(e, depth) {
		return
	}
	for _, c := range e.Children {
		c.walk(fn, depth+1)
	}
}

// FindAll returns the descendants of e (e included) with the given tag.
func (e *Element) FindAll(tag string) []*Element {
	var out []*Element
	e.Walk(func(el *Element, _ int) bool {
		if el.Tag == tag {
			out = append(out, el)
		}
		return true
	})
	return out
}
