package pattern

import (
	"fmt"
	"image/color"
	"math"

	"github.com/danmakanvas/engine/internal/render"
	"github.com/danmakanvas/engine/internal/script"
	"github.com/danmakanvas/engine/internal/world"
)

// intervalColumns is the number of emitters spread across the top edge.
const intervalColumns = 49

// Interval runs one never-ending task per column. Column j drops a shot every
// j ticks, so the fast columns on the left rain densely and the right side
// thins out into a visible beat pattern.
func Interval(inst *world.Instance) script.Controller {
	single := script.NewSingle(nil)
	step := inst.Canvas().Width() / (intervalColumns + 2)
	for j := 1; j <= intervalColumns; j++ {
		single.Add(intervalTask(inst, j, step/2+step*float64(j)))
	}
	return script.NewPlural(single)
}

func intervalTask(inst *world.Instance, interval int, x float64) *script.FuncTask {
	c := columnColor(interval)
	return script.NewTask(0, func(*script.FuncTask) {
		if !inst.Every(interval) {
			return
		}
		inst.Shot(world.ShotSpec{
			X: x, Y: 32, Speed: 3, Angle: math.Pi / 2, MaxSpeed: 5,
			Color: c, BRad: 3, SRad: 5, SWid: 0.75, Hitbox: 4, VanishTime: -1,
		})
	})
}

// columnColor cycles hue with the column index; negative channels clamp to 0.
func columnColor(j int) color.RGBA {
	f := float64(j)
	c, err := render.ParseColor(fmt.Sprintf("rgb(%.3f,%.3f,%.3f)",
		math.Sin(f)*255, math.Cos(f)*255, math.Sin(f*2)*255))
	if err != nil {
		return white
	}
	return c
}
