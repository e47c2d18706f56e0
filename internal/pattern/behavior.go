package pattern

import "github.com/danmakanvas/engine/internal/world"

// AngularVelocity turns a shot by w radians every tick.
func AngularVelocity(w float64) world.Behavior {
	return func(s *world.Shot) { s.Angle += w }
}

// ZigZag swings a shot's heading by dt at age 0 mod 2f and back at age f mod
// 2f, so it alternates course every f ticks. f <= 0 yields no behaviour.
func ZigZag(f int, dt float64) world.Behavior {
	if f <= 0 {
		return nil
	}
	period := 2 * f
	return func(s *world.Shot) {
		switch s.ExistTime % period {
		case 0:
			s.Angle += dt
		case f:
			s.Angle -= dt
		}
	}
}

// Steer applies b to every shot.
func Steer(shots []*world.Shot, b world.Behavior) {
	for _, s := range shots {
		s.SetBehavior(b)
	}
}

// Restyle applies g to every shot.
func Restyle(shots []*world.Shot, g world.GraphicStyle) {
	for _, s := range shots {
		s.SetGraphic(g)
	}
}
