package world

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/danmakanvas/engine/internal/render"
)

// Graphic selects the outline drawn around a shot's core.
type Graphic int

const (
	GraphicCircle Graphic = iota
	GraphicDiamond
	GraphicTriangle
	GraphicOval
	GraphicArrowhead
)

var graphicNames = [...]string{"CIRCLE", "DIAMOND", "TRIANGLE", "OVAL", "ARROWHEAD"}

func (g Graphic) String() string {
	if g >= 0 && int(g) < len(graphicNames) {
		return graphicNames[g]
	}
	return fmt.Sprintf("Graphic(%d)", int(g))
}

// ParseGraphic is case-insensitive.
func ParseGraphic(s string) (Graphic, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range graphicNames {
		if n == up {
			return Graphic(i), nil
		}
	}
	return GraphicCircle, fmt.Errorf("unknown graphic %q", s)
}

// shotCore is the fill painted under every outline so overlapping shots
// stay readable.
var shotCore = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Behavior is a per-shot hook run after base kinematics every tick.
// It mutates the shot it is given; parameters must be captured by value
// when the hook is built.
type Behavior func(s *Shot)

func noBehavior(*Shot) {}

// Shot is one enemy projectile. Fields are exported so attack code can steer
// shots directly from behaviours.
type Shot struct {
	X, Y     float64
	Speed    float64
	Angle    float64 // heading, radians
	Accel    float64
	MaxSpeed float64

	Graphic      Graphic
	Color        color.Color
	BRad         float64 // core fill radius
	SRad         float64 // outline radius
	SRad2        float64 // second outline radius, non-circular graphics only
	SWid         float64 // outline width
	Directed     bool    // face the heading
	Rotation     float64 // radians per tick; overrides Directed when non-zero
	GraphicAngle float64

	Hitbox float64 // collision radius, evaluated by collaborators only

	CreateTime int // instance frame at creation
	ExistTime  int // ticks survived
	VanishTime int // > 0: removed once more than this many frames old

	behavior Behavior
	deleted  bool
}

func newShot(p ShotSpec, frame int) *Shot {
	c := p.Color
	if c == nil {
		c = color.White
	}
	return &Shot{
		X:          p.X,
		Y:          p.Y,
		Speed:      p.Speed,
		Angle:      p.Angle,
		Accel:      p.Accel,
		MaxSpeed:   p.MaxSpeed,
		Graphic:    GraphicCircle,
		Color:      c,
		BRad:       p.BRad,
		SRad:       p.SRad,
		SWid:       p.SWid,
		Hitbox:     p.Hitbox,
		CreateTime: frame,
		VanishTime: p.VanishTime,
		behavior:   noBehavior,
	}
}

// Pos implements Positioner.
func (s *Shot) Pos() (float64, float64) { return s.X, s.Y }

// SetBehavior replaces the custom hook; nil restores the no-op default.
func (s *Shot) SetBehavior(b Behavior) {
	if b == nil {
		b = noBehavior
	}
	s.behavior = b
}

// Deleted reports whether the shot was removed through DeleteShot.
func (s *Shot) Deleted() bool { return s.deleted }

// GraphicStyle is the full visual description applied by SetGraphic.
type GraphicStyle struct {
	Graphic  Graphic
	Color    color.Color
	BRad     float64
	SRad     float64
	SRad2    float64
	SWid     float64
	Directed bool
	Rotation float64
}

// SetGraphic overwrites every visual attribute of the shot.
func (s *Shot) SetGraphic(g GraphicStyle) {
	s.Graphic = g.Graphic
	if g.Color != nil {
		s.Color = g.Color
	}
	s.BRad = g.BRad
	s.SRad = g.SRad
	s.SRad2 = g.SRad2
	s.SWid = g.SWid
	s.Directed = g.Directed
	s.Rotation = g.Rotation
}

// Update advances the shot one tick: displacement from the pre-update speed
// and heading, acceleration clamped at MaxSpeed, facing, age, then the hook.
func (s *Shot) Update() {
	s.X += s.Speed * math.Cos(s.Angle)
	s.Y += s.Speed * math.Sin(s.Angle)
	if s.Accel != 0 {
		s.Speed = math.Min(s.MaxSpeed, s.Speed+s.Accel)
	}
	if s.Directed {
		s.GraphicAngle = s.Angle
	}
	if s.Rotation != 0 {
		s.GraphicAngle += s.Rotation
	}
	s.ExistTime++
	s.behavior(s)
}

// Draw paints the core disc then the outline selected by Graphic.
func (s *Shot) Draw(c render.Canvas) {
	c.SetFillStyle(shotCore)
	c.BeginPath()
	c.Arc(s.X, s.Y, s.BRad, 0, 2*math.Pi)
	c.Fill()

	c.SetStrokeStyle(s.Color)
	c.BeginPath()
	switch s.Graphic {
	case GraphicDiamond:
		s.polygon(c, []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2}, []float64{s.SRad, s.SRad2, s.SRad, s.SRad2})
		c.ClosePath()
	case GraphicTriangle:
		s.polygon(c, []float64{0, math.Pi * 2 / 3, math.Pi * 4 / 3}, []float64{s.SRad, s.SRad2, s.SRad2})
		c.ClosePath()
	case GraphicOval:
		s.ellipseHalves(c, 0, true)
		c.ClosePath()
	case GraphicArrowhead:
		// Half an ellipse, pulled back a third of the outline radius.
		s.ellipseHalves(c, s.SRad/3, false)
	default:
		c.Arc(s.X, s.Y, s.SRad, 0, 2*math.Pi)
	}
	c.SetLineWidth(s.SWid)
	c.Stroke()
}

func (s *Shot) polygon(c render.Canvas, offsets, radii []float64) {
	for i, off := range offsets {
		a := s.GraphicAngle + off
		x := s.X + radii[i]*math.Cos(a)
		y := s.Y + radii[i]*math.Sin(a)
		if i == 0 {
			c.MoveTo(x, y)
		} else {
			c.LineTo(x, y)
		}
	}
}

// ellipseHalves approximates an ellipse with two cubic Beziers whose control
// points sit 4/3 of the outline radius along the facing axis.
func (s *Shot) ellipseHalves(c render.Canvas, pullBack float64, both bool) {
	a := s.GraphicAngle
	widthTwoThirds := s.SRad * 4 / 3

	dx1 := math.Sin(a) * s.SRad2
	dy1 := math.Cos(a) * s.SRad2
	dx2 := math.Cos(a) * widthTwoThirds
	dy2 := math.Sin(a) * widthTwoThirds

	backX := pullBack * math.Cos(a+math.Pi)
	backY := pullBack * math.Sin(a+math.Pi)

	topCX, topCY := s.X-dx1+backX, s.Y+dy1+backY
	botCX, botCY := s.X+dx1+backX, s.Y-dy1+backY

	c.MoveTo(botCX, botCY)
	c.BezierCurveTo(botCX+dx2, botCY+dy2, topCX+dx2, topCY+dy2, topCX, topCY)
	if both {
		c.BezierCurveTo(topCX-dx2, topCY-dy2, botCX-dx2, botCY-dy2, botCX, botCY)
	}
}
