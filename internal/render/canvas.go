// Package render defines the drawing surface the simulation paints on.
// Backends (ebiten window, terminal, headless) implement Canvas; the engine
// expresses every shot and annotation purely in these primitives.
package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Canvas is a 2D path-based drawing surface. Angles are radians, y grows down.
type Canvas interface {
	Width() float64
	Height() float64

	ClearRect(x, y, w, h float64)

	SetFillStyle(c color.Color)
	SetStrokeStyle(c color.Color)
	SetLineWidth(w float64)
	SetFont(size float64, family string)
	SetTextAlign(a TextAlign)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
	Arc(x, y, r, start, end float64)
	ClosePath()
	Fill()
	Stroke()

	FillText(s string, x, y float64)
}

// TextAlign is the horizontal anchor of FillText relative to x.
type TextAlign int

const (
	AlignStart TextAlign = iota
	AlignEnd
	AlignLeft
	AlignCenter
	AlignRight
)

var alignNames = map[TextAlign]string{
	AlignStart:  "start",
	AlignEnd:    "end",
	AlignLeft:   "left",
	AlignCenter: "center",
	AlignRight:  "right",
}

func (a TextAlign) String() string {
	if n, ok := alignNames[a]; ok {
		return n
	}
	return fmt.Sprintf("TextAlign(%d)", int(a))
}

// ParseTextAlign accepts the canvas alignment keywords.
func ParseTextAlign(s string) (TextAlign, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, n := range alignNames {
		if n == s {
			return a, nil
		}
	}
	return AlignStart, fmt.Errorf("unknown text align %q", s)
}

// Anchor returns where, as a fraction of the rendered text width, the x
// coordinate sits: 0 for left-anchored, 0.5 centred, 1 right-anchored.
// Start/end assume left-to-right text.
func (a TextAlign) Anchor() float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignEnd, AlignRight:
		return 1
	default:
		return 0
	}
}
