package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor understands the colour strings pattern authors write:
// "#RGB", "#RRGGBB", "rgb(r, g, b)", "rgba(r, g, b, a)" and CSS names.
// rgb components may be fractional or out of range; they are clamped.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}
	lower := strings.ToLower(s)

	if strings.HasPrefix(lower, "#") {
		c, err := colorful.Hex(lower)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	}

	if strings.HasPrefix(lower, "rgb") {
		return parseFunctional(s, lower)
	}

	if c, ok := colornames.Map[lower]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

// MustColor is ParseColor for constants; it panics on malformed input.
func MustColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseFunctional(orig, lower string) (color.RGBA, error) {
	open := strings.IndexByte(lower, '(')
	if open < 0 || !strings.HasSuffix(lower, ")") {
		return color.RGBA{}, fmt.Errorf("malformed color %q", orig)
	}
	fn := lower[:open]
	parts := strings.Split(lower[open+1:len(lower)-1], ",")
	want := 3
	if fn == "rgba" {
		want = 4
	} else if fn != "rgb" {
		return color.RGBA{}, fmt.Errorf("unknown color function %q", orig)
	}
	if len(parts) != want {
		return color.RGBA{}, fmt.Errorf("color %q: want %d components, got %d", orig, want, len(parts))
	}

	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", orig, err)
		}
		v[i] = f
	}
	// Premultiplied, as image/color expects.
	a := clamp(v[3], 0, 1)
	return color.RGBA{
		R: uint8(math.Round(clamp(v[0], 0, 255) * a)),
		G: uint8(math.Round(clamp(v[1], 0, 255) * a)),
		B: uint8(math.Round(clamp(v[2], 0, 255) * a)),
		A: uint8(math.Round(a * 255)),
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
