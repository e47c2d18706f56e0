package pattern

import (
	"fmt"
	"math"

	"github.com/danmakanvas/engine/internal/render"
	"github.com/danmakanvas/engine/internal/script"
	"github.com/danmakanvas/engine/internal/world"
)

// Aimed orbits a marker shot around the centre on a 160x120 ellipse and every
// ten ticks fires an 8-way, 5-layer ring stack from the centre aimed at it.
func Aimed(inst *world.Instance) script.Controller {
	var t float64
	orbit := func() (float64, float64) {
		return inst.CenterX() + 160*math.Cos(t), inst.CenterY() + 120*math.Sin(t)
	}

	x, y := orbit()
	marker, _ := inst.ShotSimple(world.ShotSpec{X: x, Y: y, Color: red, BRad: 8, SRad: 12, SWid: 2})
	label, _ := inst.CreateText(world.TextSpec{
		X: 4, Y: 40, Color: white, Size: 12, Font: "Arial", Align: render.AlignLeft,
	})

	single := script.NewSingle(func(*script.Single) {
		marker.X, marker.Y = orbit()
		center := inst.Center()
		label.Content = fmt.Sprintf("Distance: %.2f", world.Distance(center, marker))
		if inst.Every(10) {
			inst.RingStackSimple(8, 5, 0.2, world.ShotSpec{
				X: center.X, Y: center.Y, Speed: 6, Angle: world.Angle(center, marker),
				Color: cyan, BRad: 4, SRad: 6, SWid: 1,
			})
		}
		t += 0.02
	})
	return script.NewPlural(single)
}
