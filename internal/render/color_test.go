package render

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#FF0000", color.RGBA{R: 255, A: 255}},
		{"#00ffff", color.RGBA{G: 255, B: 255, A: 255}},
		{"#FF8800", color.RGBA{R: 255, G: 0x88, A: 255}},
		{"white", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"White", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"rgb(10, 20, 30)", color.RGBA{R: 10, G: 20, B: 30, A: 255}},
		{"rgb(-40.5,300,127.6)", color.RGBA{R: 0, G: 255, B: 128, A: 255}},
		{"rgba(255,255,255,0)", color.RGBA{}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorRejects(t *testing.T) {
	for _, in := range []string{"", "#zzzzzz", "rgb(1,2)", "hsl(1,2,3)", "notacolor", "rgb(1,2,x)"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) succeeded", in)
		}
	}
}

func TestParseTextAlign(t *testing.T) {
	for _, a := range []TextAlign{AlignStart, AlignEnd, AlignLeft, AlignCenter, AlignRight} {
		got, err := ParseTextAlign(a.String())
		if err != nil || got != a {
			t.Errorf("ParseTextAlign(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseTextAlign("justify"); err == nil {
		t.Error("justify accepted")
	}
}
