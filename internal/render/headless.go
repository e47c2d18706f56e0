package render

import "image/color"

// Headless is a sized surface that discards every drawing call. It backs the
// headless loop and the dry-run tool, where only the simulation matters.
type Headless struct {
	W, H float64
}

func NewHeadless(w, h float64) *Headless { return &Headless{W: w, H: h} }

func (c *Headless) Width() float64  { return c.W }
func (c *Headless) Height() float64 { return c.H }

func (*Headless) ClearRect(x, y, w, h float64)                       {}
func (*Headless) SetFillStyle(color.Color)                           {}
func (*Headless) SetStrokeStyle(color.Color)                         {}
func (*Headless) SetLineWidth(float64)                               {}
func (*Headless) SetFont(float64, string)                            {}
func (*Headless) SetTextAlign(TextAlign)                             {}
func (*Headless) BeginPath()                                         {}
func (*Headless) MoveTo(x, y float64)                                {}
func (*Headless) LineTo(x, y float64)                                {}
func (*Headless) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {}
func (*Headless) Arc(x, y, r, start, end float64)                    {}
func (*Headless) ClosePath()                                         {}
func (*Headless) Fill()                                              {}
func (*Headless) Stroke()                                            {}
func (*Headless) FillText(string, float64, float64)                  {}

// HeadlessDisplay hands out one Headless surface per id.
type HeadlessDisplay struct {
	W, H     float64
	surfaces map[string]*Headless
}

func NewHeadlessDisplay(w, h float64) *HeadlessDisplay {
	return &HeadlessDisplay{W: w, H: h, surfaces: make(map[string]*Headless)}
}

// Surface returns the surface bound to id, creating it on first use.
func (d *HeadlessDisplay) Surface(id string) (Canvas, bool) {
	s, ok := d.surfaces[id]
	if !ok {
		s = NewHeadless(d.W, d.H)
		d.surfaces[id] = s
	}
	return s, true
}
