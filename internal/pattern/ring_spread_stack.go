package pattern

import (
	"math"

	"github.com/danmakanvas/engine/internal/script"
	"github.com/danmakanvas/engine/internal/world"
)

// RingSpreadStack combines every generator family. A rotating emitter pair
// throws spread stacks and stacks every 12 ticks, stepping 2π/7 each time so
// volleys take a long time to line up again; every 50 ticks a curling ring
// stack bursts from the centre, alternating direction.
func RingSpreadStack(inst *world.Instance) script.Controller {
	dir := 1.0
	single := script.NewSingle(func(*script.Single) {
		if !inst.Every(50) {
			return
		}
		c := inst.Center()
		shots, _ := inst.RingStack(20, 5, 0.1, world.ShotSpec{
			X: c.X, Y: c.Y, Angle: inst.Rand().Float64() * 2 * math.Pi,
			Accel: 0.01, MaxSpeed: 12, Color: magenta,
			BRad: 2, SRad: 3, SWid: 0.5, Hitbox: 1, VanishTime: -1,
		})
		Steer(shots, AngularVelocity(0.01*dir))
		dir = -dir
	}, spreadShotTask(inst))
	return script.NewPlural(single)
}

func spreadShotTask(inst *world.Instance) *script.FuncTask {
	var heading float64
	return script.NewTask(0, func(*script.FuncTask) {
		if !inst.Every(12) {
			return
		}
		c := inst.Center()
		dx, dy := 60*math.Cos(heading), 60*math.Sin(heading)

		spread := world.ShotSpec{Speed: 2, Color: azure, BRad: 4, SRad: 6, SWid: 1, Hitbox: 1}
		stack := world.ShotSpec{X: c.X, Y: c.Y, Speed: 3, Color: yellow, BRad: 5, SRad: 7, SWid: 1, Hitbox: 1}

		spread.X, spread.Y, spread.Angle = c.X+dx, c.Y+dy, heading
		inst.SpreadStackSimple(3, 5, math.Pi/12, 0.5, spread)
		stack.Angle = heading + math.Pi/2
		inst.StackSimple(5, 0.25, stack)

		spread.X, spread.Y, spread.Angle = c.X-dx, c.Y-dy, heading+math.Pi
		inst.SpreadStackSimple(3, 5, math.Pi/12, 0.5, spread)
		stack.Angle = heading - math.Pi/2
		inst.StackSimple(5, 0.25, stack)

		heading += math.Pi * 2 / 7
	})
}
