// Describes SVG documents in YAML or TOML files.
//
// A scene is a canvas size and a tree of nodes, each node
// being one of the svgdoc constructors or a svgrule ruler:
//
//	width: 400
//	height: 300
//	nodes:
//	  - kind: origin
//	    at: [20, 280]
//	    invert_y: true
//	    children:
//	      - kind: hrule
//	        coords: [0, 120, 300]
//	        level: 0
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/benoitkugler/svgtricks/svgdoc"
	"github.com/benoitkugler/svgtricks/svgrule"
)

// ErrInvalidNode is wrapped by the errors returned by Build.
var ErrInvalidNode = errors.New("invalid node")

// Format is the serialization of a scene file.
type Format uint8

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return "<unknown Format>"
	}
}

// FormatFromPath guesses the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("scene: unsupported file extension %q", filepath.Ext(path))
	}
}

// Scene is the root of a scene file.
type Scene struct {
	Width   float64   `yaml:"width" toml:"width"`
	Height  float64   `yaml:"height" toml:"height"`
	ViewBox []float64 `yaml:"viewbox,omitempty" toml:"viewbox"` // x, y, w, h
	Title   string    `yaml:"title,omitempty" toml:"title"`
	Nodes   []Node    `yaml:"nodes" toml:"nodes"`
}

// Node is one element of a scene. Which fields are used depends on Kind:
//
//	group                  attrs, style, children
//	origin                 at, invert_y, children
//	line                   from, to
//	circle                 at, r
//	ellipse                at, rx, ry
//	rect                   at, width, height
//	polyline, polygon      points
//	text                   at, text
//	hrule, vrule           coords, level, side, rule_length, font_size
type Node struct {
	Kind string `yaml:"kind" toml:"kind"`

	At      []float64   `yaml:"at,omitempty" toml:"at"`
	From    []float64   `yaml:"from,omitempty" toml:"from"`
	To      []float64   `yaml:"to,omitempty" toml:"to"`
	R       float64     `yaml:"r,omitempty" toml:"r"`
	RX      float64     `yaml:"rx,omitempty" toml:"rx"`
	RY      float64     `yaml:"ry,omitempty" toml:"ry"`
	Width   float64     `yaml:"width,omitempty" toml:"width"`
	Height  float64     `yaml:"height,omitempty" toml:"height"`
	Points  [][]float64 `yaml:"points,omitempty" toml:"points"`
	Text    string      `yaml:"text,omitempty" toml:"text"`
	InvertY bool        `yaml:"invert_y,omitempty" toml:"invert_y"`

	Coords     []float64 `yaml:"coords,omitempty" toml:"coords"`
	Level      float64   `yaml:"level,omitempty" toml:"level"` // y of an hrule, x of a vrule
	Side       string    `yaml:"side,omitempty" toml:"side"`
	RuleLength float64   `yaml:"rule_length,omitempty" toml:"rule_length"`
	FontSize   float64   `yaml:"font_size,omitempty" toml:"font_size"`

	Attrs    map[string]any `yaml:"attrs,omitempty" toml:"attrs"`
	Style    map[string]any `yaml:"style,omitempty" toml:"style"`
	Children []Node         `yaml:"children,omitempty" toml:"children"`
}

// Load reads the scene file at path, whose format is
// given by its extension.
func Load(path string) (*Scene, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// Decode reads a scene. Unknown fields are rejected.
func Decode(r io.Reader, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode yaml scene: %w", err)
		}
	case TOML:
		meta, err := toml.NewDecoder(r).Decode(&s)
		if err != nil {
			return nil, fmt.Errorf("decode toml scene: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) != 0 {
			return nil, fmt.Errorf("decode toml scene: unknown field %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("scene: unsupported format %s", format)
	}
	return &s, nil
}

// Build validates the scene and returns the corresponding document.
// The `defaults` options are applied to every rule, before
// the node settings.
func (s *Scene) Build(defaults ...svgrule.Option) (*svgdoc.Document, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("scene: width and height must be positive, got %gx%g", s.Width, s.Height)
	}
	doc := svgdoc.New()
	doc.Canvas(s.Width, s.Height)
	switch len(s.ViewBox) {
	case 0:
	case 4:
		doc.Viewport(s.ViewBox[0], s.ViewBox[1], s.ViewBox[2], s.ViewBox[3])
	default:
		return nil, fmt.Errorf("scene: viewbox needs 4 numbers, got %d", len(s.ViewBox))
	}
	if s.Title != "" {
		doc.Title(s.Title)
	}

	b := builder{doc: doc, defaults: defaults}
	if err := b.buildAll(s.Nodes, "nodes"); err != nil {
		return nil, err
	}
	return doc, nil
}

type builder struct {
	doc      *svgdoc.Document
	defaults []svgrule.Option
}

func (b builder) buildAll(nodes []Node, path string) error {
	for i, n := range nodes {
		if err := b.build(n, fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func invalid(path, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", path, fmt.Sprintf(format, args...), ErrInvalidNode)
}

func point(v []float64) (svgdoc.Point, bool) {
	if len(v) != 2 {
		return svgdoc.Point{}, false
	}
	return svgdoc.Pt(v[0], v[1]), true
}

func (b builder) build(n Node, path string) error {
	var (
		e   *svgdoc.Element
		doc = b.doc
	)
	switch n.Kind {
	case "group", "g":
		e = doc.Group()
	case "origin":
		at, ok := point(n.At)
		if !ok {
			return invalid(path, "origin needs \"at\"")
		}
		e = doc.Origin(at, n.InvertY)
	case "line":
		from, ok1 := point(n.From)
		to, ok2 := point(n.To)
		if !ok1 || !ok2 {
			return invalid(path, "line needs \"from\" and \"to\"")
		}
		e = doc.Line(from, to)
	case "circle":
		at, ok := point(n.At)
		if !ok || n.R <= 0 {
			return invalid(path, "circle needs \"at\" and a positive \"r\"")
		}
		e = doc.Circle(at, n.R)
	case "ellipse":
		at, ok := point(n.At)
		if !ok || n.RX <= 0 || n.RY <= 0 {
			return invalid(path, "ellipse needs \"at\" and positive \"rx\", \"ry\"")
		}
		e = doc.Ellipse(at, n.RX, n.RY)
	case "rect":
		at, ok := point(n.At)
		if !ok || n.Width < 0 || n.Height < 0 {
			return invalid(path, "rect needs \"at\" and non negative \"width\", \"height\"")
		}
		e = doc.Rect(at, n.Width, n.Height)
	case "polyline", "polygon":
		if len(n.Points) < 2 {
			return invalid(path, "%s needs at least 2 points", n.Kind)
		}
		points := make([]svgdoc.Point, len(n.Points))
		for i, v := range n.Points {
			p, ok := point(v)
			if !ok {
				return invalid(path, "points[%d] must be [x, y]", i)
			}
			points[i] = p
		}
		if n.Kind == "polyline" {
			e = doc.Polyline(points)
		} else {
			e = doc.Polygon(points)
		}
	case "text":
		at, ok := point(n.At)
		if !ok {
			return invalid(path, "text needs \"at\"")
		}
		e = doc.Text(at, n.Text)
	case "hrule", "vrule":
		opts, err := b.ruleOptions(n, path)
		if err != nil {
			return err
		}
		if n.Kind == "hrule" {
			e = svgrule.HRule(doc, n.Coords, n.Level, opts...)
		} else {
			e = svgrule.VRule(doc, n.Level, n.Coords, opts...)
		}
	case "":
		return invalid(path, "missing kind")
	default:
		return invalid(path, "unknown kind %q", n.Kind)
	}

	for _, k := range sortedKeys(n.Attrs) {
		e.SetAttr(k, n.Attrs[k])
	}
	if len(n.Style) != 0 {
		e.SetAttr("style", svgdoc.Style(n.Style))
	}

	if len(n.Children) == 0 {
		return nil
	}
	if e.Tag != "g" || n.Kind == "hrule" || n.Kind == "vrule" {
		return invalid(path, "%s cannot have children", n.Kind)
	}
	var err error
	doc.Within(e, func() { err = b.buildAll(n.Children, path+".children") })
	return err
}

func (b builder) ruleOptions(n Node, path string) ([]svgrule.Option, error) {
	opts := append([]svgrule.Option(nil), b.defaults...)
	if n.Side != "" {
		side, ok := svgrule.ParseSide(n.Side)
		if !ok {
			return nil, invalid(path, "unknown side %q", n.Side)
		}
		if n.Kind == "hrule" && side != svgrule.Top && side != svgrule.Bottom ||
			n.Kind == "vrule" && side != svgrule.Left && side != svgrule.Right {
			return nil, invalid(path, "side %s is not valid for a %s", side, n.Kind)
		}
		opts = append(opts, svgrule.WithSide(side))
	}
	if n.RuleLength < 0 || n.FontSize < 0 {
		return nil, invalid(path, "rule_length and font_size must be positive")
	}
	if n.RuleLength > 0 {
		opts = append(opts, svgrule.WithRuleLength(n.RuleLength))
	}
	if n.FontSize > 0 {
		opts = append(opts, svgrule.WithFontSize(n.FontSize))
	}
	return opts, nil
}

func sortedKeys(m map[string]any) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
