package world

import (
	"image/color"

	"github.com/danmakanvas/engine/internal/render"
)

// Text is an on-surface annotation: HUD lines and script-owned labels.
// It never moves on its own; Content may be rewritten at any time.
type Text struct {
	X, Y    float64
	Color   color.Color
	Size    float64
	Font    string
	Align   render.TextAlign
	Content string

	CreateTime int
	ExistTime  int
}

// TextSpec describes a text to create.
type TextSpec struct {
	X, Y    float64
	Color   color.Color
	Size    float64
	Font    string
	Align   render.TextAlign
	Content string
}

func newText(p TextSpec, frame int) *Text {
	c := p.Color
	if c == nil {
		c = color.White
	}
	size := p.Size
	if size <= 0 {
		size = 12
	}
	return &Text{
		X:          p.X,
		Y:          p.Y,
		Color:      c,
		Size:       size,
		Font:       p.Font,
		Align:      p.Align,
		Content:    p.Content,
		CreateTime: frame,
	}
}

// Update only ages the text.
func (t *Text) Update() { t.ExistTime++ }

func (t *Text) Draw(c render.Canvas) {
	c.SetFillStyle(t.Color)
	c.SetFont(t.Size, t.Font)
	c.SetTextAlign(t.Align)
	c.FillText(t.Content, t.X, t.Y)
}
