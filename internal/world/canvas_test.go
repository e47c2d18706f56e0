package world

import (
	"fmt"
	"image/color"

	"github.com/danmakanvas/engine/internal/render"
)

// op is one recorded canvas call.
type op struct {
	name string
	args []float64
	text string
	clr  color.Color
}

// recordCanvas records every call so tests can assert draw order and geometry.
type recordCanvas struct {
	w, h float64
	ops  []op
}

func newRecordCanvas(w, h float64) *recordCanvas { return &recordCanvas{w: w, h: h} }

func (c *recordCanvas) rec(name string, args ...float64) {
	c.ops = append(c.ops, op{name: name, args: args})
}

func (c *recordCanvas) Width() float64  { return c.w }
func (c *recordCanvas) Height() float64 { return c.h }

func (c *recordCanvas) ClearRect(x, y, w, h float64) { c.rec("clear", x, y, w, h) }
func (c *recordCanvas) SetFillStyle(clr color.Color) {
	c.ops = append(c.ops, op{name: "fillStyle", clr: clr})
}
func (c *recordCanvas) SetStrokeStyle(clr color.Color) {
	c.ops = append(c.ops, op{name: "strokeStyle", clr: clr})
}
func (c *recordCanvas) SetLineWidth(w float64) { c.rec("lineWidth", w) }
func (c *recordCanvas) SetFont(size float64, family string) {
	c.ops = append(c.ops, op{name: "font", args: []float64{size}, text: family})
}
func (c *recordCanvas) SetTextAlign(a render.TextAlign) {
	c.ops = append(c.ops, op{name: "align", text: a.String()})
}
func (c *recordCanvas) BeginPath()          { c.rec("begin") }
func (c *recordCanvas) MoveTo(x, y float64) { c.rec("move", x, y) }
func (c *recordCanvas) LineTo(x, y float64) { c.rec("line", x, y) }
func (c *recordCanvas) BezierCurveTo(a, b, cc, d, x, y float64) {
	c.rec("bezier", a, b, cc, d, x, y)
}
func (c *recordCanvas) Arc(x, y, r, s, e float64) { c.rec("arc", x, y, r, s, e) }
func (c *recordCanvas) ClosePath()                { c.rec("close") }
func (c *recordCanvas) Fill()                     { c.rec("fill") }
func (c *recordCanvas) Stroke()                   { c.rec("stroke") }
func (c *recordCanvas) FillText(s string, x, y float64) {
	c.ops = append(c.ops, op{name: "text", args: []float64{x, y}, text: s})
}

func (c *recordCanvas) names() []string {
	out := make([]string, len(c.ops))
	for i, o := range c.ops {
		out[i] = o.name
	}
	return out
}

func (c *recordCanvas) count(name string) int {
	n := 0
	for _, o := range c.ops {
		if o.name == name {
			n++
		}
	}
	return n
}

func (c *recordCanvas) reset() { c.ops = c.ops[:0] }

// mapDisplay binds fixed canvases to ids.
type mapDisplay map[string]render.Canvas

func (d mapDisplay) Surface(id string) (render.Canvas, bool) {
	c, ok := d[id]
	return c, ok
}

func (o op) String() string { return fmt.Sprintf("%s%v%q", o.name, o.args, o.text) }
