// Package term renders surfaces into a terminal through tcell.
//
// Canvas coordinates stay in surface units; each surface owns a rectangle of
// cells and points are scaled into it. Outlines are rasterised as line
// segments, filled cores become a single glyph, and text is written cell by
// cell.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/danmakanvas/engine/internal/render"
)

// Cells is the part of tcell.Screen a Canvas draws through.
type Cells interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

const (
	strokeGlyph = '·'
	coreGlyph   = '●'
	arcSteps    = 24
	curveSteps  = 8
)

type point struct{ x, y float64 }

// Canvas maps a w x h surface onto a cell rectangle at (col, row).
type Canvas struct {
	cells      Cells
	col, row   int
	cols, rows int
	w, h       float64

	fill   tcell.Style
	stroke tcell.Style
	align  render.TextAlign

	path    [][]point // subpaths
	current []point
}

func NewCanvas(cells Cells, col, row, cols, rows int, w, h float64) *Canvas {
	return &Canvas{
		cells:  cells,
		col:    col,
		row:    row,
		cols:   cols,
		rows:   rows,
		w:      w,
		h:      h,
		fill:   tcell.StyleDefault,
		stroke: tcell.StyleDefault,
	}
}

func (c *Canvas) Width() float64  { return c.w }
func (c *Canvas) Height() float64 { return c.h }

// cell converts surface units to an absolute cell; ok is false off-region.
func (c *Canvas) cell(x, y float64) (int, int, bool) {
	cx := int(math.Floor(x / c.w * float64(c.cols)))
	cy := int(math.Floor(y / c.h * float64(c.rows)))
	if cx < 0 || cy < 0 || cx >= c.cols || cy >= c.rows {
		return 0, 0, false
	}
	return c.col + cx, c.row + cy, true
}

func (c *Canvas) put(x, y float64, r rune, st tcell.Style) {
	if cx, cy, ok := c.cell(x, y); ok {
		c.cells.SetContent(cx, cy, r, nil, st)
	}
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	x0, y0 := c.clampCell(x, y, math.Floor)
	x1, y1 := c.clampCell(x+w, y+h, math.Ceil)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			c.cells.SetContent(c.col+cx, c.row+cy, ' ', nil, tcell.StyleDefault)
		}
	}
}

func (c *Canvas) clampCell(x, y float64, round func(float64) float64) (int, int) {
	cx := int(round(x / c.w * float64(c.cols)))
	cy := int(round(y / c.h * float64(c.rows)))
	return min(max(cx, 0), c.cols), min(max(cy, 0), c.rows)
}

func (c *Canvas) SetFillStyle(clr color.Color)    { c.fill = styleFor(clr) }
func (c *Canvas) SetStrokeStyle(clr color.Color)  { c.stroke = styleFor(clr) }
func (c *Canvas) SetTextAlign(a render.TextAlign) { c.align = a }

// Line width and font are meaningless at cell resolution.
func (c *Canvas) SetLineWidth(float64)    {}
func (c *Canvas) SetFont(float64, string) {}

func styleFor(clr color.Color) tcell.Style {
	r, g, b, _ := clr.RGBA()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8)))
}

func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
	c.current = nil
}

func (c *Canvas) MoveTo(x, y float64) {
	c.flush()
	c.current = []point{{x, y}}
}

func (c *Canvas) LineTo(x, y float64) {
	c.current = append(c.current, point{x, y})
}

func (c *Canvas) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	if len(c.current) == 0 {
		c.current = []point{{cp1x, cp1y}}
	}
	p0 := c.current[len(c.current)-1]
	for i := 1; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		u := 1 - t
		c.current = append(c.current, point{
			x: u*u*u*p0.x + 3*u*u*t*cp1x + 3*u*t*t*cp2x + t*t*t*x,
			y: u*u*u*p0.y + 3*u*u*t*cp1y + 3*u*t*t*cp2y + t*t*t*y,
		})
	}
}

func (c *Canvas) Arc(x, y, r, start, end float64) {
	for i := 0; i <= arcSteps; i++ {
		a := start + (end-start)*float64(i)/arcSteps
		c.current = append(c.current, point{x + r*math.Cos(a), y + r*math.Sin(a)})
	}
}

func (c *Canvas) ClosePath() {
	if len(c.current) > 1 {
		c.current = append(c.current, c.current[0])
	}
	c.flush()
}

func (c *Canvas) flush() {
	if len(c.current) > 0 {
		c.path = append(c.path, c.current)
	}
	c.current = nil
}

// Fill marks the centroid of the path with the core glyph.
func (c *Canvas) Fill() {
	c.flush()
	var sx, sy float64
	n := 0
	for _, sub := range c.path {
		for _, p := range sub {
			sx += p.x
			sy += p.y
			n++
		}
	}
	if n == 0 {
		return
	}
	c.put(sx/float64(n), sy/float64(n), coreGlyph, c.fill)
}

// Stroke rasterises every segment of the path.
func (c *Canvas) Stroke() {
	c.flush()
	for _, sub := range c.path {
		for i := 1; i < len(sub); i++ {
			c.segment(sub[i-1], sub[i])
		}
		if len(sub) == 1 {
			c.put(sub[0].x, sub[0].y, strokeGlyph, c.stroke)
		}
	}
}

// segment walks the line in half-cell steps.
func (c *Canvas) segment(a, b point) {
	cw, ch := c.w/float64(c.cols), c.h/float64(c.rows)
	dx, dy := b.x-a.x, b.y-a.y
	steps := int(math.Ceil(math.Max(math.Abs(dx)/cw, math.Abs(dy)/ch) * 2))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.put(a.x+dx*t, a.y+dy*t, strokeGlyph, c.stroke)
	}
}

// FillText writes s on the row holding y, anchored by the text alignment.
func (c *Canvas) FillText(s string, x, y float64) {
	cy := int(math.Floor(y / c.h * float64(c.rows)))
	if cy < 0 || cy >= c.rows {
		return
	}
	width := runewidth.StringWidth(s)
	px := x/c.w*float64(c.cols) - float64(width)*c.align.Anchor()
	cx := c.col + int(math.Round(px))
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if cx >= c.col && cx+rw <= c.col+c.cols {
			c.cells.SetContent(cx, c.row+cy, r, nil, c.fill)
		}
		cx += rw
	}
}
