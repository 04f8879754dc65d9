package svgicon

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// parseSVGColor reads a paint value, resolving currentColor to `current`.
// It returns a nil color for "none".
func parseSVGColor(colorStr string, current color.Color) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	switch {
	case v == "none" || v == "transparent":
		return nil, nil
	case v == "currentcolor":
		return current, nil
	case strings.HasPrefix(v, "#"):
		return parseHexColor(v[1:])
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		return parseRGBColor(v[4 : len(v)-1])
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("svgicon: invalid color %q", colorStr)
}

func parseHexColor(hex string) (color.Color, error) {
	switch len(hex) {
	case 3: // #rgb is #rrggbb
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return nil, fmt.Errorf("svgicon: invalid hex color #%s", hex)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("svgicon: invalid hex color #%s", hex)
	}
	return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

func parseRGBColor(args string) (color.Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("svgicon: invalid rgb color rgb(%s)", args)
	}
	var channels [3]uint8
	for i, p := range parts {
		p = strings.TrimSpace(p)
		var (
			f   float64
			err error
		)
		if strings.HasSuffix(p, "%") {
			f, err = strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
			f = f * 255 / 100
		} else {
			f, err = strconv.ParseFloat(p, 64)
		}
		if err != nil {
			return nil, fmt.Errorf("svgicon: invalid rgb color rgb(%s)", args)
		}
		if f < 0 {
			f = 0
		} else if f > 255 {
			f = 255
		}
		channels[i] = uint8(f + 0.5)
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: 0xff}, nil
}

// ParseColor reads a color as found in a fill or stroke attribute.
// It returns a nil color for "none". Outside of a document,
// currentColor is the default black.
func ParseColor(s string) (color.Color, error) { return parseSVGColor(s, DefaultStyle.Color) }
