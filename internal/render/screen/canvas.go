// Package screen renders surfaces into an ebiten window. Each surface paints
// onto its own offscreen image so that trails survive between frames; the
// game composites the images into a grid every frame.
package screen

import (
	"bytes"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/danmakanvas/engine/internal/render"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// NewFaceSource parses the bundled Go Regular font.
func NewFaceSource() (*text.GoTextFaceSource, error) {
	return text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
}

// Canvas implements render.Canvas on an *ebiten.Image.
type Canvas struct {
	img    *ebiten.Image
	source *text.GoTextFaceSource
	face   *text.GoTextFace

	fill      color.Color
	stroke    color.Color
	lineWidth float32
	align     render.TextAlign

	path vector.Path
	vs   []ebiten.Vertex
	is   []uint16
}

func NewCanvas(w, h int, source *text.GoTextFaceSource) *Canvas {
	return &Canvas{
		img:       ebiten.NewImage(w, h),
		source:    source,
		face:      &text.GoTextFace{Source: source, Size: 10},
		fill:      color.Black,
		stroke:    color.Black,
		lineWidth: 1,
	}
}

// Image is the offscreen surface.
func (c *Canvas) Image() *ebiten.Image { return c.img }

func (c *Canvas) Width() float64  { return float64(c.img.Bounds().Dx()) }
func (c *Canvas) Height() float64 { return float64(c.img.Bounds().Dy()) }

func (c *Canvas) ClearRect(x, y, w, h float64) {
	r := image.Rect(int(x), int(y), int(x+w), int(y+h)).Intersect(c.img.Bounds())
	if r.Eq(c.img.Bounds()) {
		c.img.Clear()
		return
	}
	if !r.Empty() {
		c.img.SubImage(r).(*ebiten.Image).Clear()
	}
}

func (c *Canvas) SetFillStyle(clr color.Color)    { c.fill = clr }
func (c *Canvas) SetStrokeStyle(clr color.Color)  { c.stroke = clr }
func (c *Canvas) SetLineWidth(w float64)          { c.lineWidth = float32(w) }
func (c *Canvas) SetTextAlign(a render.TextAlign) { c.align = a }

// SetFont picks the size; every family maps onto the bundled face.
func (c *Canvas) SetFont(size float64, _ string) {
	if size > 0 && size != c.face.Size {
		c.face = &text.GoTextFace{Source: c.source, Size: size}
	}
}

func (c *Canvas) BeginPath() { c.path = vector.Path{} }

func (c *Canvas) MoveTo(x, y float64) { c.path.MoveTo(float32(x), float32(y)) }
func (c *Canvas) LineTo(x, y float64) { c.path.LineTo(float32(x), float32(y)) }
func (c *Canvas) ClosePath()          { c.path.Close() }

func (c *Canvas) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c.path.CubicTo(float32(cp1x), float32(cp1y), float32(cp2x), float32(cp2y), float32(x), float32(y))
}

func (c *Canvas) Arc(x, y, r, start, end float64) {
	c.path.Arc(float32(x), float32(y), float32(r), float32(start), float32(end), vector.Clockwise)
}

func (c *Canvas) Fill() {
	c.vs, c.is = c.path.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	c.draw(c.fill, ebiten.FillRuleNonZero)
}

func (c *Canvas) Stroke() {
	c.vs, c.is = c.path.AppendVerticesAndIndicesForStroke(c.vs[:0], c.is[:0], &vector.StrokeOptions{
		Width:    c.lineWidth,
		LineJoin: vector.LineJoinRound,
	})
	c.draw(c.stroke, ebiten.FillRuleFillAll)
}

func (c *Canvas) draw(clr color.Color, rule ebiten.FillRule) {
	if len(c.is) == 0 {
		return
	}
	r, g, b, a := clr.RGBA()
	for i := range c.vs {
		c.vs[i].SrcX, c.vs[i].SrcY = 1, 1
		c.vs[i].ColorR = float32(r) / 0xffff
		c.vs[i].ColorG = float32(g) / 0xffff
		c.vs[i].ColorB = float32(b) / 0xffff
		c.vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		FillRule:       rule,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	}
	c.img.DrawTriangles(c.vs, c.is, whiteSubImage, op)
}

// FillText draws s with its alphabetic baseline on y.
func (c *Canvas) FillText(s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-c.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c.fill)
	op.PrimaryAlign = primaryAlign(c.align)
	text.Draw(c.img, s, c.face, op)
}

func primaryAlign(a render.TextAlign) text.Align {
	switch a.Anchor() {
	case 0.5:
		return text.AlignCenter
	case 1:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}
