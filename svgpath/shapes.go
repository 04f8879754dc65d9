package svgpath

import (
	"github.com/srwiley/rasterx"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// AddLine adds the segment (x1, y1) - (x2, y2).
func (p *Path) AddLine(x1, y1, x2, y2 float64) {
	p.Start(ToFixedP(x1, y1))
	p.Line(ToFixedP(x2, y2))
	p.Stop(false)
}

// AddRect adds a rectangle, with rounded corners of radius
// rx in the x axis and ry in the y axis when they are positive.
// As in SVG, a missing radius takes the value of the other one.
func (p *Path) AddRect(x, y, w, h, rx, ry float64) {
	if rx <= 0 && ry > 0 {
		rx = ry
	} else if ry <= 0 && rx > 0 {
		ry = rx
	}
	if rx <= 0 {
		rasterx.AddRect(x, y, x+w, y+h, 0, p)
		return
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	rasterx.AddRoundRect(x, y, x+w, y+h, rx, ry, 0, rasterx.RoundGap, p)
}

// AddEllipse adds an axis aligned ellipse. A circle has rx == ry.
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	rasterx.AddEllipse(cx, cy, rx, ry, 0, p)
}

// AddPoly adds the polyline through `points` (x0, y0, x1, y1, ...),
// closed when `closed` is true.
func (p *Path) AddPoly(points []float64, closed bool) {
	if len(points) < 4 {
		return
	}
	p.Start(ToFixedP(points[0], points[1]))
	for i := 2; i < len(points)-1; i += 2 {
		p.Line(ToFixedP(points[i], points[i+1]))
	}
	p.Stop(closed)
}
