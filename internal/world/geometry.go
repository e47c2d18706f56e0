package world

import "math"

// Positioner is anything with a location on the surface.
type Positioner interface {
	Pos() (x, y float64)
}

// Point is a bare coordinate.
type Point struct{ X, Y float64 }

func (p Point) Pos() (float64, float64) { return p.X, p.Y }

// Player is the data shape of a player-controlled entity. The engine stores
// it so patterns can aim; input handling and hit resolution live elsewhere.
type Player struct {
	X, Y   float64
	Hitbox float64
}

func (p *Player) Pos() (float64, float64) { return p.X, p.Y }

// DistanceXY is the Euclidean distance between two coordinates.
func DistanceXY(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// AngleXY is the heading, in radians, from (x1, y1) toward (x2, y2).
func AngleXY(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// Distance between two positioned things.
func Distance(a, b Positioner) float64 {
	ax, ay := a.Pos()
	bx, by := b.Pos()
	return DistanceXY(ax, ay, bx, by)
}

// Angle is the heading from a toward b.
func Angle(from, to Positioner) float64 {
	fx, fy := from.Pos()
	tx, ty := to.Pos()
	return AngleXY(fx, fy, tx, ty)
}
