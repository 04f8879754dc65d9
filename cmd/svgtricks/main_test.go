package main

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/benoitkugler/svgtricks/svgdoc"
	"github.com/benoitkugler/svgtricks/svgicon"
)

const testScene = `
width: 200
height: 100
nodes:
  - kind: rect
    at: [50, 20]
    width: 40
    height: 30
    attrs: {fill: red}
  - kind: hrule
    coords: [50, 90]
    level: 70
`

// setup resets the globals shared by the commands
func setup(t *testing.T) (dir string, cmd *cobra.Command, out *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	cfg = defaultConfig()
	renderOutput, renderFormat, renderFit = "", "", false
	rasterizeOutput, rasterizeFormat = "", ""
	ruleVertical, ruleCoords, ruleAt, ruleSide = false, nil, 0, ""
	ruleWidth, ruleHeight, ruleOutput, ruleFormat = 0, 0, "", ""

	cmd = &cobra.Command{}
	out = new(bytes.Buffer)
	cmd.SetOut(out)
	return t.TempDir(), cmd, out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRenderStdout(t *testing.T) {
	dir, cmd, out := setup(t)
	path := filepath.Join(dir, "scene.yaml")
	writeFile(t, path, testScene)

	require.NoError(t, runRender(cmd, []string{path}))
	s := out.String()
	assert.True(t, strings.HasPrefix(s, "<?xml"))
	assert.Contains(t, s, svgdoc.Doctype)
	assert.Contains(t, s, `<rect x="50" y="20" width="40" height="30" fill="red"></rect>`)
	assert.Contains(t, s, `class="hrule"`)
}

func TestRenderFit(t *testing.T) {
	dir, cmd, out := setup(t)
	path := filepath.Join(dir, "scene.yaml")
	writeFile(t, path, testScene)
	renderFit = true
	cfg.Margin = 0

	require.NoError(t, runRender(cmd, []string{path}))
	doc, err := svgdoc.Parse(out)
	require.NoError(t, err)
	// rect from (50, 20), tick down to 90, label anchor at y = 150
	viewBox, _ := doc.Root().Attr("viewBox")
	fields := strings.Fields(viewBox)
	require.Len(t, fields, 4)
	assert.Equal(t, "49", fields[0]) // half the rule stroke width
	assert.Equal(t, "20", fields[1])
	width, _ := doc.Root().Attr("width")
	assert.Equal(t, fields[2], width)
}

func TestRenderPNG(t *testing.T) {
	dir, cmd, _ := setup(t)
	path := filepath.Join(dir, "scene.toml")
	writeFile(t, path, "width = 30\nheight = 20\n[[nodes]]\nkind = \"circle\"\nat = [15, 10]\nr = 5\n")
	renderOutput = filepath.Join(dir, "out.png")
	cfg.Scale = 2

	require.NoError(t, runRender(cmd, []string{path}))
	f, err := os.Open(renderOutput)
	require.NoError(t, err)
	defer f.Close()
	conf, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 60, conf.Width)
	assert.Equal(t, 40, conf.Height)
}

func TestRenderPDF(t *testing.T) {
	dir, cmd, out := setup(t)
	path := filepath.Join(dir, "scene.yaml")
	writeFile(t, path, testScene)
	renderFormat = "pdf"

	require.NoError(t, runRender(cmd, []string{path}))
	assert.True(t, strings.HasPrefix(out.String(), "%PDF-"))
}

func TestRenderInvalidScene(t *testing.T) {
	dir, cmd, _ := setup(t)
	path := filepath.Join(dir, "scene.yaml")
	writeFile(t, path, "width: 10\nheight: 10\nnodes:\n  - kind: line\n")

	err := runRender(cmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nodes[0]")
}

func TestRasterize(t *testing.T) {
	dir, cmd, _ := setup(t)
	in := filepath.Join(dir, "in.svg")
	writeFile(t, in, `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><path d="M0 0"/><rect width="10" height="10"/></svg>`)
	rasterizeOutput = filepath.Join(dir, "out.png")

	require.NoError(t, runRasterize(cmd, []string{in}))
	_, err := os.Stat(rasterizeOutput)
	require.NoError(t, err)

	cfg.ErrorMode = svgicon.StrictErrorMode
	assert.Error(t, runRasterize(cmd, []string{in}))
}

func TestRule(t *testing.T) {
	_, cmd, out := setup(t)
	ruleCoords = []float64{0, 120, 300}
	ruleAt = 50
	ruleSide = "top"
	ruleWidth, ruleHeight = 400, 200

	require.NoError(t, runRule(cmd, nil))
	doc, err := svgdoc.Parse(out)
	require.NoError(t, err)
	width, _ := doc.Root().Attr("width")
	assert.Equal(t, "400", width)
	labels := doc.Root().FindAll("text")
	require.Len(t, labels, 2)
	assert.Equal(t, "120", labels[0].Text)
	y, _ := labels[0].Attr("y")
	assert.Equal(t, "30", y)
}

func TestRuleFitted(t *testing.T) {
	_, cmd, out := setup(t)
	ruleCoords = []float64{10, 20}
	ruleVertical = true

	require.NoError(t, runRule(cmd, nil))
	doc, err := svgdoc.Parse(out)
	require.NoError(t, err)
	_, ok := doc.Root().Attr("viewBox")
	assert.True(t, ok)
	assert.Len(t, doc.Root().FindAll("g"), 1)

	ruleSide = "middle"
	assert.Error(t, runRule(cmd, nil))
}

func TestRuleSideOrientation(t *testing.T) {
	_, cmd, _ := setup(t)
	ruleCoords = []float64{10, 20}

	for _, test := range []struct {
		vertical bool
		side     string
		valid    bool
	}{
		{false, "top", true},
		{false, "left", false},
		{true, "right", true},
		{true, "top", false},
		{true, "bottom", false},
	} {
		ruleVertical, ruleSide = test.vertical, test.side
		err := runRule(cmd, nil)
		if test.valid {
			assert.NoError(t, err, test.side)
		} else {
			assert.Error(t, err, test.side)
		}
	}
}

func TestEmitRemovesPartialOutput(t *testing.T) {
	dir, cmd, _ := setup(t)
	doc, err := svgdoc.Parse(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><path d="M0 0"/></svg>`))
	require.NoError(t, err)
	cfg.ErrorMode = svgicon.StrictErrorMode
	output := filepath.Join(dir, "out.png")

	require.Error(t, emit(cmd, doc, output, ""))
	_, err = os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestResolveFormat(t *testing.T) {
	for _, test := range []struct {
		format, output, expected string
	}{
		{"", "", "svg"},
		{"", "a.PNG", "png"},
		{"pdf", "a.png", "pdf"},
		{"", "noext", "svg"},
	} {
		got, err := resolveFormat(test.format, test.output)
		require.NoError(t, err)
		assert.Equal(t, test.expected, got)
	}
	_, err := resolveFormat("", "a.jpg")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svgtricks.toml")
	writeFile(t, path, `
error_mode = "strict"
scale = 2.5
background = "#ffffff"
font_size = 12
`)
	c, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, svgicon.StrictErrorMode, c.ErrorMode)
	assert.Equal(t, 2.5, c.Scale)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c.Background)
	assert.Equal(t, 12., c.FontSize)
	// not defined: defaults
	assert.Equal(t, defaultConfig().RuleLength, c.RuleLength)
	assert.Equal(t, defaultConfig().Margin, c.Margin)

	for _, content := range []string{
		`error_mode = "loud"`,
		`scale = 0`,
		`background = "ultraviolet"`,
		`unknown = 1`,
		`scale = `,
	} {
		writeFile(t, path, content)
		_, err := loadConfig(path)
		assert.Error(t, err, content)
	}
}

func TestRootCommand(t *testing.T) {
	dir, _, _ := setup(t)
	confPath := filepath.Join(dir, "svgtricks.toml")
	writeFile(t, confPath, "rule_length = 5\n")
	output := filepath.Join(dir, "rule.svg")

	rootCmd.SetArgs([]string{"rule", "--config", confPath, "--coords", "0,100", "--at", "10", "--width", "200", "--height", "100", "-o", output})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, 5., cfg.RuleLength)

	doc, err := svgdoc.ParseFile(output)
	require.NoError(t, err)
	ticks := doc.Root().FindAll("line")
	require.Len(t, ticks, 3)
	y1, _ := ticks[1].Attr("y1")
	assert.Equal(t, "5", y1)
}
