package pattern

import (
	"math"

	"github.com/danmakanvas/engine/internal/script"
	"github.com/danmakanvas/engine/internal/world"
)

// Override demonstrates replacing a shot's per-tick behaviour. A permanent
// task alternates clockwise and anticlockwise curling rings; every 50 ticks a
// short-lived task adds zigzagging arrows for 25 ticks.
func Override(inst *world.Instance) script.Controller {
	single := script.NewSingle(func(s *script.Single) {
		if inst.Every(50) {
			s.Add(arrowsTask(inst))
		}
	}, curlTask(inst))
	return script.NewPlural(single)
}

func curlTask(inst *world.Instance) *script.FuncTask {
	volleys := 0
	return script.NewTask(0, func(*script.FuncTask) {
		if !inst.Every(4) {
			return
		}
		c := inst.Center()
		p := world.ShotSpec{
			X: c.X, Y: c.Y, Speed: 3, MaxSpeed: 5,
			Color: cyan, BRad: 2, SRad: 4, SWid: 0.5, Hitbox: 4, VanishTime: -1,
		}
		w := 0.01
		if volleys%2 == 1 {
			p.Color, w = magenta, -0.01
		}
		shots, _ := inst.Ring(30, p)
		Steer(shots, AngularVelocity(w))
		volleys++
	})
}

// arrowsTask fires an 8-way zigzagging ring from a random heading every tick
// of its 25-tick life.
func arrowsTask(inst *world.Instance) *script.FuncTask {
	heading := inst.Rand().Float64() * 2 * math.Pi
	return script.NewTask(25, func(*script.FuncTask) {
		c := inst.Center()
		shots, _ := inst.Ring(8, world.ShotSpec{
			X: c.X, Y: c.Y, Speed: 3, Angle: heading, MaxSpeed: 5,
			Color: yellow, BRad: 2, SRad: 4, SWid: 0.5, Hitbox: 4, VanishTime: -1,
		})
		Steer(shots, ZigZag(15, math.Pi/3))
	})
}
