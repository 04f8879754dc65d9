package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

var (
	// ErrNotSVG is returned by Parse when the root element is not <svg>.
	ErrNotSVG = errors.New("svgdoc: root element is not <svg>")

	errAfterRoot = errors.New("svgdoc: content after the root element")
)

const (
	xlinkNamespace = "http://www.w3.org/1999/xlink"
	xmlNamespace   = "http://www.w3.org/XML/1998/namespace"
)

// Parse reads an SVG document. The returned Document has its
// root as only context, so that new shapes are appended at the
// end of the existing drawing.
// Character data is kept verbatim, except whitespace-only runs,
// which are dropped. The runs of an element are concatenated.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *Element
		stack []*Element
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("svgdoc: parsing document: %w", err)
		}
		switch se := t.(type) {
		case xml.StartElement:
			e := &Element{Tag: se.Name.Local}
			for _, attr := range se.Attr {
				e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Local: attrName(attr.Name)}, Value: attr.Value})
			}
			switch {
			case root == nil:
				if e.Tag != "svg" {
					return nil, ErrNotSVG
				}
				root = e
			case len(stack) == 0:
				return nil, errAfterRoot
			default:
				stack[len(stack)-1].Append(e)
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if strings.TrimSpace(string(se)) == "" {
				continue
			}
			if len(stack) == 0 {
				return nil, errAfterRoot
			}
			stack[len(stack)-1].Text += string(se)
		}
	}
	if root == nil {
		return nil, errors.New("svgdoc: empty document")
	}
	return &Document{root: root, stack: []*Element{root}}, nil
}

// ParseFile reads the named SVG file.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// attrName restores the prefixed form of namespaced attributes
func attrName(name xml.Name) string {
	switch name.Space {
	case "":
		return name.Local
	case "xmlns":
		return "xmlns:" + name.Local
	case xlinkNamespace:
		return "xlink:" + name.Local
	case xmlNamespace:
		return "xml:" + name.Local
	default:
		return name.Space + ":" + name.Local
	}
}
