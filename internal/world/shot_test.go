package world

import (
	"image/color"
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestShotUpdateDisplacement(t *testing.T) {
	tests := []struct {
		name         string
		speed, angle float64
		accel, max   float64
		wantSpeed    float64
	}{
		{"east", 3, 0, 0, 0, 3},
		{"south", 2, math.Pi / 2, 0, 0, 2},
		{"diagonal accel", 1, math.Pi / 4, 0.5, 10, 1.5},
		{"accel capped", 4.8, math.Pi, 0.5, 5, 5},
		{"decel", 4, 1, -1, 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newShot(ShotSpec{X: 10, Y: 20, Speed: tt.speed, Angle: tt.angle, Accel: tt.accel, MaxSpeed: tt.max}, 0)
			s.Update()
			wantX := 10 + tt.speed*math.Cos(tt.angle)
			wantY := 20 + tt.speed*math.Sin(tt.angle)
			if !near(s.X, wantX) || !near(s.Y, wantY) {
				t.Fatalf("pos = (%v, %v), want (%v, %v)", s.X, s.Y, wantX, wantY)
			}
			if !near(s.Speed, tt.wantSpeed) {
				t.Fatalf("speed = %v, want %v", s.Speed, tt.wantSpeed)
			}
			if s.ExistTime != 1 {
				t.Fatalf("exist time = %d, want 1", s.ExistTime)
			}
		})
	}
}

func TestShotSpeedNeverExceedsCap(t *testing.T) {
	s := newShot(ShotSpec{Speed: 0, Accel: 0.37, MaxSpeed: 4}, 0)
	for i := 0; i < 200; i++ {
		s.Update()
		if s.Speed > s.MaxSpeed {
			t.Fatalf("tick %d: speed %v exceeds cap %v", i, s.Speed, s.MaxSpeed)
		}
	}
	if s.Speed != 4 {
		t.Fatalf("speed settled at %v, want 4", s.Speed)
	}
}

func TestShotZeroAccelKeepsSpeedAboveZeroCap(t *testing.T) {
	// Short-form shots carry MaxSpeed 0; without acceleration the cap is inert.
	s := newShot(ShotSpec{Speed: 3}.Simple(), 0)
	s.Update()
	if s.Speed != 3 {
		t.Fatalf("speed = %v, want 3", s.Speed)
	}
}

func TestShotGraphicAngle(t *testing.T) {
	directed := newShot(ShotSpec{Speed: 1, Angle: 1.25}, 0)
	directed.Directed = true
	directed.Update()
	if directed.GraphicAngle != 1.25 {
		t.Fatalf("directed graphic angle = %v, want heading", directed.GraphicAngle)
	}

	spinning := newShot(ShotSpec{Speed: 1, Angle: 1.25}, 0)
	spinning.Rotation = 0.1
	for i := 0; i < 3; i++ {
		spinning.Update()
	}
	if !near(spinning.GraphicAngle, 0.3) {
		t.Fatalf("rotating graphic angle = %v, want 0.3", spinning.GraphicAngle)
	}

	both := newShot(ShotSpec{Speed: 1, Angle: 0.5}, 0)
	both.Directed = true
	both.Rotation = 0.2
	both.Update()
	both.Update()
	if !near(both.GraphicAngle, 0.7) {
		t.Fatalf("directed+rotating graphic angle = %v, want 0.7", both.GraphicAngle)
	}
}

func TestShotBehaviorRunsAfterKinematics(t *testing.T) {
	s := newShot(ShotSpec{X: 0, Y: 0, Speed: 2}, 0)
	var sawX float64
	var sawAge int
	s.SetBehavior(func(s *Shot) {
		sawX, sawAge = s.X, s.ExistTime
		s.Angle += 0.5
	})
	s.Update()
	if sawX != 2 || sawAge != 1 {
		t.Fatalf("behavior saw x=%v age=%d, want 2 and 1", sawX, sawAge)
	}
	if s.Angle != 0.5 {
		t.Fatalf("behavior mutation lost: angle=%v", s.Angle)
	}

	s.SetBehavior(nil)
	s.Update()
	if s.Angle != 0.5 {
		t.Fatal("reset behavior still steering")
	}
}

func TestShotDrawCircle(t *testing.T) {
	c := newRecordCanvas(640, 480)
	red := color.RGBA{R: 255, A: 255}
	s := newShot(ShotSpec{X: 5, Y: 6, Color: red, BRad: 2, SRad: 4, SWid: 1.5}, 0)
	s.Draw(c)

	want := []string{"fillStyle", "begin", "arc", "fill", "strokeStyle", "begin", "arc", "lineWidth", "stroke"}
	got := c.names()
	if len(got) != len(want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ops = %v, want %v", got, want)
		}
	}
	if c.ops[0].clr != shotCore {
		t.Fatalf("core fill = %v, want white", c.ops[0].clr)
	}
	if c.ops[2].args[2] != 2 || c.ops[6].args[2] != 4 {
		t.Fatalf("radii = %v / %v, want 2 / 4", c.ops[2].args[2], c.ops[6].args[2])
	}
	if c.ops[4].clr != red || c.ops[7].args[0] != 1.5 {
		t.Fatal("stroke style not applied")
	}
}

func TestShotDrawDiamond(t *testing.T) {
	c := newRecordCanvas(640, 480)
	s := newShot(ShotSpec{}, 0)
	s.SetGraphic(GraphicStyle{Graphic: GraphicDiamond, BRad: 1, SRad: 4, SRad2: 2, SWid: 1})
	s.Draw(c)

	var pts [][]float64
	for _, o := range c.ops {
		if o.name == "move" || o.name == "line" {
			pts = append(pts, o.args)
		}
	}
	want := [][]float64{{4, 0}, {0, 2}, {-4, 0}, {0, -2}}
	if len(pts) != len(want) {
		t.Fatalf("points = %v", pts)
	}
	for i := range want {
		if !near(pts[i][0], want[i][0]) || !near(pts[i][1], want[i][1]) {
			t.Fatalf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
	if c.count("close") != 1 {
		t.Fatal("diamond not closed")
	}
}

func TestShotDrawTriangleFacesGraphicAngle(t *testing.T) {
	c := newRecordCanvas(640, 480)
	s := newShot(ShotSpec{X: 10, Y: 10}, 0)
	s.SetGraphic(GraphicStyle{Graphic: GraphicTriangle, SRad: 6, SRad2: 3})
	s.GraphicAngle = math.Pi / 2
	s.Draw(c)
	for _, o := range c.ops {
		if o.name == "move" {
			if !near(o.args[0], 10) || !near(o.args[1], 16) {
				t.Fatalf("tip at %v, want (10, 16)", o.args)
			}
			return
		}
	}
	t.Fatal("no move recorded")
}

func TestShotDrawOvalAndArrowhead(t *testing.T) {
	oval := newRecordCanvas(640, 480)
	s := newShot(ShotSpec{X: 0, Y: 0}, 0)
	s.SetGraphic(GraphicStyle{Graphic: GraphicOval, SRad: 3, SRad2: 6})
	s.Draw(oval)
	if oval.count("bezier") != 2 || oval.count("close") != 1 {
		t.Fatalf("oval ops = %v", oval.names())
	}
	// Facing 0: bottom centre is (0, -SRad2), control points 4/3*SRad along x.
	for _, o := range oval.ops {
		if o.name == "move" {
			if !near(o.args[0], 0) || !near(o.args[1], -6) {
				t.Fatalf("oval start %v, want (0, -6)", o.args)
			}
		}
		if o.name == "bezier" {
			if !near(o.args[0], 4) {
				t.Fatalf("first control x = %v, want 4", o.args[0])
			}
			break
		}
	}

	arrow := newRecordCanvas(640, 480)
	s.Graphic = GraphicArrowhead
	s.Draw(arrow)
	if arrow.count("bezier") != 1 || arrow.count("close") != 0 {
		t.Fatalf("arrowhead ops = %v", arrow.names())
	}
	for _, o := range arrow.ops {
		if o.name == "move" {
			// Pulled back SRad/3 opposite the facing direction.
			if !near(o.args[0], -1) || !near(o.args[1], -6) {
				t.Fatalf("arrowhead start %v, want (-1, -6)", o.args)
			}
		}
	}
}

func TestParseGraphic(t *testing.T) {
	for _, g := range []Graphic{GraphicCircle, GraphicDiamond, GraphicTriangle, GraphicOval, GraphicArrowhead} {
		got, err := ParseGraphic(g.String())
		if err != nil || got != g {
			t.Errorf("ParseGraphic(%q) = %v, %v", g.String(), got, err)
		}
	}
	if got, err := ParseGraphic("diamond"); err != nil || got != GraphicDiamond {
		t.Errorf("lower-case parse = %v, %v", got, err)
	}
	if _, err := ParseGraphic("STAR"); err == nil {
		t.Error("STAR accepted")
	}
}
