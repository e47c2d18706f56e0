package pattern

import (
	"math"

	"github.com/danmakanvas/engine/internal/render"
	"github.com/danmakanvas/engine/internal/script"
	"github.com/danmakanvas/engine/internal/world"
)

// galleryStageTicks is how long each outline is shown before moving on.
const galleryStageTicks = 300

// Gallery steps through every shot outline, one Single per graphic, moving
// to the next stage every galleryStageTicks and wrapping at the end.
func Gallery(inst *world.Instance) script.Controller {
	styles := []world.GraphicStyle{
		{Graphic: world.GraphicCircle, Color: cyan, BRad: 2, SRad: 5, SWid: 1},
		{Graphic: world.GraphicDiamond, Color: magenta, BRad: 1, SRad: 6, SRad2: 3, SWid: 1, Directed: true},
		{Graphic: world.GraphicTriangle, Color: yellow, BRad: 1, SRad: 7, SRad2: 4, SWid: 1, Rotation: 0.1},
		{Graphic: world.GraphicOval, Color: orange, BRad: 1, SRad: 3, SRad2: 7, SWid: 1, Directed: true},
		{Graphic: world.GraphicArrowhead, Color: azure, BRad: 1, SRad: 6, SRad2: 6, SWid: 1.5, Directed: true},
	}
	label, _ := inst.CreateText(world.TextSpec{
		X: inst.Canvas().Width() - 4, Y: 12, Color: white, Size: 12, Font: "Arial", Align: render.AlignRight,
	})

	var plural *script.Plural
	build := func(style world.GraphicStyle) script.Controller {
		started := -1
		return script.NewSingle(func(*script.Single) {
			if started < 0 {
				started = inst.Frame()
			}
			label.Content = style.Graphic.String()
			if inst.Every(8) {
				c := inst.Center()
				shots, _ := inst.SpreadSimple(7, math.Pi/14, world.ShotSpec{
					X: c.X, Y: c.Y, Speed: 2.5, Angle: float64(inst.Frame()) * 0.05, Color: style.Color,
				})
				Restyle(shots, style)
				Steer(shots, AngularVelocity(0.004))
			}
			if inst.Frame()-started >= galleryStageTicks {
				plural.Next()
			}
		})
	}

	rebuild := func() *script.Plural {
		stages := make([]script.Controller, len(styles))
		for i, st := range styles {
			stages[i] = build(st)
		}
		plural = script.NewPlural(stages...)
		return plural
	}
	return &looping{Plural: rebuild(), rebuild: rebuild}
}

// looping restarts a Plural from its first stage once it runs out.
type looping struct {
	*script.Plural
	rebuild func() *script.Plural
}

func (l *looping) Update() {
	if l.Plural.Current() == nil {
		l.Plural = l.rebuild()
	}
	l.Plural.Update()
}
