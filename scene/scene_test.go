package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgtricks/svgdoc"
	"github.com/benoitkugler/svgtricks/svgrule"
)

const yamlScene = `
width: 400
height: 300
title: demo
nodes:
  - kind: origin
    at: [20, 280]
    invert_y: true
    children:
      - kind: line
        from: [0, 0]
        to: [100, 0]
        attrs: {stroke: black, stroke_width: 2}
      - kind: hrule
        coords: [300, 0, 120]
        level: 0
        side: top
  - kind: text
    at: [10, 20]
    text: hello
    style: {font_size: 12}
`

const tomlScene = `
width = 200
height = 100
viewbox = [0, 0, 20, 10]

[[nodes]]
kind = "group"
[nodes.style]
stroke = "red"

[[nodes.children]]
kind = "circle"
at = [5, 5]
r = 2

[[nodes.children]]
kind = "polygon"
points = [[0, 0], [1, 0], [1.5, 1]]
`

func attr(t *testing.T, e *svgdoc.Element, name string) string {
	t.Helper()
	v, ok := e.Attr(name)
	require.True(t, ok, "missing attribute %s on <%s>", name, e.Tag)
	return v
}

func TestBuildYAML(t *testing.T) {
	s, err := Decode(strings.NewReader(yamlScene), YAML)
	require.NoError(t, err)
	doc, err := s.Build()
	require.NoError(t, err)

	root := doc.Root()
	assert.Equal(t, "400", attr(t, root, "width"))
	assert.Equal(t, "300", attr(t, root, "height"))
	require.Len(t, root.Children, 3)
	assert.Equal(t, "title", root.Children[0].Tag)
	assert.Equal(t, "demo", root.Children[0].Text)

	origin := root.Children[1]
	assert.Equal(t, "matrix(1, 0, 0, -1, 20, 280)", attr(t, origin, "transform"))
	require.Len(t, origin.Children, 2)

	line := origin.Children[0]
	assert.Equal(t, "100", attr(t, line, "x2"))
	assert.Equal(t, "black", attr(t, line, "stroke"))
	assert.Equal(t, "2", attr(t, line, "stroke-width"))

	rule := origin.Children[1]
	assert.Equal(t, "hrule", attr(t, rule, "class"))
	labels := rule.FindAll("text")
	require.Len(t, labels, 2)
	assert.Equal(t, "120", labels[0].Text)
	assert.Equal(t, "-20", attr(t, labels[0], "y")) // top side

	text := root.Children[2]
	assert.Equal(t, "hello", text.Text)
	assert.Equal(t, "font-size: 12", attr(t, text, "style"))

	// the document is back to the root context
	assert.Equal(t, 1, doc.Depth())
}

func TestBuildTOML(t *testing.T) {
	s, err := Decode(strings.NewReader(tomlScene), TOML)
	require.NoError(t, err)
	doc, err := s.Build()
	require.NoError(t, err)

	root := doc.Root()
	assert.Equal(t, "0 0 20 10", attr(t, root, "viewBox"))
	require.Len(t, root.Children, 1)
	group := root.Children[0]
	assert.Equal(t, "g", group.Tag)
	assert.Equal(t, "stroke: red", attr(t, group, "style"))
	require.Len(t, group.Children, 2)
	assert.Equal(t, "2", attr(t, group.Children[0], "r"))
	assert.Equal(t, "0,0 1,0 1.5,1", attr(t, group.Children[1], "points"))
}

func TestBuildRuleDefaults(t *testing.T) {
	s := Scene{Width: 100, Height: 100, Nodes: []Node{
		{Kind: "vrule", Coords: []float64{0, 50}, Level: 10},
		{Kind: "vrule", Coords: []float64{0, 50}, Level: 10, FontSize: 8, Side: "left"},
	}}
	doc, err := s.Build(svgrule.WithFontSize(12), svgrule.WithRuleLength(5))
	require.NoError(t, err)

	rules := doc.Root().Children
	require.Len(t, rules, 2)
	first := rules[0].FindAll("text")[0]
	assert.Contains(t, attr(t, first, "style"), "font-size: 12")
	assert.Equal(t, "20", attr(t, first, "x"))
	tick := rules[0].FindAll("line")[1]
	assert.Equal(t, "5", attr(t, tick, "x1"))

	second := rules[1].FindAll("text")[0]
	assert.Contains(t, attr(t, second, "style"), "font-size: 8")
	assert.Contains(t, attr(t, second, "style"), "text-anchor: end")
}

func TestBuildErrors(t *testing.T) {
	for _, test := range []struct {
		scene    Scene
		expected string
	}{
		{Scene{Width: 0, Height: 10}, "width and height"},
		{Scene{Width: 10, Height: 10, ViewBox: []float64{1, 2}}, "viewbox"},
		{Scene{Width: 10, Height: 10, Nodes: []Node{{}}}, "nodes[0]: missing kind"},
		{Scene{Width: 10, Height: 10, Nodes: []Node{{Kind: "star"}}}, `nodes[0]: unknown kind "star"`},
		{Scene{Width: 10, Height: 10, Nodes: []Node{
			{Kind: "line", From: []float64{0, 0}, To: []float64{1, 1}},
			{Kind: "group", Children: []Node{{Kind: "circle", At: []float64{1, 1}}, {Kind: "line", From: []float64{0}}}},
		}}, `nodes[1].children[0]: circle needs "at" and a positive "r"`},
		{Scene{Width: 10, Height: 10, Nodes: []Node{
			{Kind: "group", Children: []Node{{Kind: "line", From: []float64{0, 0}}}},
		}}, `nodes[0].children[0]: line needs "from" and "to"`},
		{Scene{Width: 10, Height: 10, Nodes: []Node{
			{Kind: "text", At: []float64{0, 0}, Children: []Node{{Kind: "group"}}},
		}}, "nodes[0]: text cannot have children"},
		{Scene{Width: 10, Height: 10, Nodes: []Node{
			{Kind: "hrule", Coords: []float64{0, 1}, Side: "left"},
		}}, "nodes[0]: side left is not valid for a hrule"},
		{Scene{Width: 10, Height: 10, Nodes: []Node{
			{Kind: "polygon", Points: [][]float64{{0, 0}, {1}}},
		}}, "nodes[0]: points[1] must be [x, y]"},
	} {
		_, err := test.scene.Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), test.expected)
	}

	_, err := (&Scene{Width: 1, Height: 1, Nodes: []Node{{Kind: "rect"}}}).Build()
	assert.ErrorIs(t, err, ErrInvalidNode)
}

func TestDecodeUnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader("width: 1\nheight: 1\ncolour: red\n"), YAML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("width = 1\nheight = 1\ncolour = \"red\"\n"), TOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("a/b.YML")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)
	f, err = FormatFromPath("c.toml")
	require.NoError(t, err)
	assert.Equal(t, TOML, f)
	_, err = FormatFromPath("c.json")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlScene), 0o644))
	tomlPath := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlScene), 0o644))

	s, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "demo", s.Title)
	assert.Len(t, s.Nodes, 2)

	s, err = Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 20, 10}, s.ViewBox)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
