package pattern

import (
	"math"

	"github.com/danmakanvas/engine/internal/script"
	"github.com/danmakanvas/engine/internal/world"
)

// Graphics fires four accelerating diamond ring stacks every 50 ticks. Each
// volley curls the opposite way to the one before it.
func Graphics(inst *world.Instance) script.Controller {
	dir := 1.0
	single := script.NewSingle(func(*script.Single) {
		if !inst.Every(50) {
			return
		}
		c := inst.Center()
		base := world.ShotSpec{
			X: c.X, Y: c.Y, Angle: inst.Rand().Float64() * 2 * math.Pi,
			Accel: 0.01, MaxSpeed: 12, BRad: 2, SRad: 3, SWid: 1, Hitbox: 1, VanishTime: -1,
		}

		volley := func(n, m int, speedOffset, speed float64, style world.GraphicStyle, w float64) {
			p := base
			p.Speed, p.Color = speed, style.Color
			shots, _ := inst.RingStack(n, m, speedOffset, p)
			Restyle(shots, style)
			Steer(shots, AngularVelocity(w))
		}

		volley(20, 3, 0.2, 0, world.GraphicStyle{Graphic: world.GraphicDiamond, Color: magenta, BRad: 1, SRad: 4, SRad2: 8, SWid: 1, Directed: true}, 0.05*dir)
		volley(20, 2, 0.2, 0.1, world.GraphicStyle{Graphic: world.GraphicDiamond, Color: cyan, BRad: 1, SRad: 6, SRad2: 6, SWid: 1, Directed: true}, 0.05*dir)
		volley(3, 12, 0.1, 2, world.GraphicStyle{Graphic: world.GraphicDiamond, Color: yellow, BRad: 1, SRad: 6, SRad2: 6, SWid: 1, Rotation: 0.05}, 0.015*dir)
		volley(3, 12, 0.1, 2, world.GraphicStyle{Graphic: world.GraphicDiamond, Color: orange, BRad: 1, SRad: 6, SRad2: 6, SWid: 1, Rotation: -0.05}, -0.015*dir)
		dir = -dir
	})
	return script.NewPlural(single)
}
