package world

import (
	"fmt"
	"image/color"
	"math"
)

// ShotSpec is the parameter set every generator expands into shots.
type ShotSpec struct {
	X, Y       float64
	Speed      float64
	Angle      float64
	Accel      float64
	MaxSpeed   float64
	Color      color.Color
	BRad       float64
	SRad       float64
	SWid       float64
	Hitbox     float64
	VanishTime int
}

// Simple returns the short form of p: constant speed, no speed cap and no
// vanish timer, so shots leave only through the bounds check.
func (p ShotSpec) Simple() ShotSpec {
	p.Accel = 0
	p.MaxSpeed = 0
	p.VanishTime = -1
	return p
}

// add registers a shot with the instance immediately.
func (inst *Instance) add(p ShotSpec) *Shot {
	s := newShot(p, inst.frame)
	inst.shots = append(inst.shots, s)
	return s
}

func (inst *Instance) checkSpawn(kind string, counts ...int) error {
	if inst.state == StateTornDown {
		return ErrInstanceClosed
	}
	for _, n := range counts {
		if n <= 0 {
			return fmt.Errorf("%s: %w (got %d)", kind, ErrInvalidCount, n)
		}
	}
	return nil
}

// Shot creates a single shot using every field of p.
func (inst *Instance) Shot(p ShotSpec) (*Shot, error) {
	if err := inst.checkSpawn("shot"); err != nil {
		return nil, err
	}
	return inst.add(p), nil
}

// ShotSimple creates a single shot from the short form of p.
func (inst *Instance) ShotSimple(p ShotSpec) (*Shot, error) {
	return inst.Shot(p.Simple())
}

// Ring creates n shots with headings evenly spaced over a full turn,
// starting at p.Angle.
func (inst *Instance) Ring(n int, p ShotSpec) ([]*Shot, error) {
	if err := inst.checkSpawn("ring", n); err != nil {
		return nil, err
	}
	out := make([]*Shot, 0, n)
	base := p.Angle
	for i := 0; i < n; i++ {
		p.Angle = base + math.Pi*2/float64(n)*float64(i)
		out = append(out, inst.add(p))
	}
	return out, nil
}

func (inst *Instance) RingSimple(n int, p ShotSpec) ([]*Shot, error) {
	return inst.Ring(n, p.Simple())
}

// Spread creates an n-way fan centred on p.Angle, angleOffset apart. For even
// n the centre falls between the two middle shots.
func (inst *Instance) Spread(n int, angleOffset float64, p ShotSpec) ([]*Shot, error) {
	if err := inst.checkSpawn("spread", n); err != nil {
		return nil, err
	}
	out := make([]*Shot, 0, n)
	base := p.Angle
	half := float64(n-1) / 2
	for k := -half; k < half+1; k++ {
		p.Angle = base + angleOffset*k
		out = append(out, inst.add(p))
	}
	return out, nil
}

func (inst *Instance) SpreadSimple(n int, angleOffset float64, p ShotSpec) ([]*Shot, error) {
	return inst.Spread(n, angleOffset, p.Simple())
}

// Stack creates n shots on one heading, speeds speedOffset apart starting at p.Speed.
func (inst *Instance) Stack(n int, speedOffset float64, p ShotSpec) ([]*Shot, error) {
	if err := inst.checkSpawn("stack", n); err != nil {
		return nil, err
	}
	out := make([]*Shot, 0, n)
	base := p.Speed
	for i := 0; i < n; i++ {
		p.Speed = base + speedOffset*float64(i)
		out = append(out, inst.add(p))
	}
	return out, nil
}

func (inst *Instance) StackSimple(n int, speedOffset float64, p ShotSpec) ([]*Shot, error) {
	return inst.Stack(n, speedOffset, p.Simple())
}

// RingStack is the product of an n-way ring and an m-layer stack. The result
// is heading-major: the m speed layers of heading 0, then of heading 1, ...
func (inst *Instance) RingStack(n, m int, speedOffset float64, p ShotSpec) ([]*Shot, error) {
	if err := inst.checkSpawn("ring stack", n, m); err != nil {
		return nil, err
	}
	out := make([]*Shot, 0, n*m)
	baseAngle, baseSpeed := p.Angle, p.Speed
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			p.Speed = baseSpeed + speedOffset*float64(j)
			p.Angle = baseAngle + math.Pi*2/float64(n)*float64(i)
			out = append(out, inst.add(p))
		}
	}
	return out, nil
}

func (inst *Instance) RingStackSimple(n, m int, speedOffset float64, p ShotSpec) ([]*Shot, error) {
	return inst.RingStack(n, m, speedOffset, p.Simple())
}

// SpreadStack is the product of an n-way spread and an m-layer stack,
// heading-major like RingStack.
func (inst *Instance) SpreadStack(n, m int, angleOffset, speedOffset float64, p ShotSpec) ([]*Shot, error) {
	if err := inst.checkSpawn("spread stack", n, m); err != nil {
		return nil, err
	}
	out := make([]*Shot, 0, n*m)
	baseAngle, baseSpeed := p.Angle, p.Speed
	half := float64(n-1) / 2
	for k := -half; k < half+1; k++ {
		for j := 0; j < m; j++ {
			p.Speed = baseSpeed + speedOffset*float64(j)
			p.Angle = baseAngle + angleOffset*k
			out = append(out, inst.add(p))
		}
	}
	return out, nil
}

func (inst *Instance) SpreadStackSimple(n, m int, angleOffset, speedOffset float64, p ShotSpec) ([]*Shot, error) {
	return inst.SpreadStack(n, m, angleOffset, speedOffset, p.Simple())
}

// CreateText registers an annotation drawn above every shot.
func (inst *Instance) CreateText(p TextSpec) (*Text, error) {
	if inst.state == StateTornDown {
		return nil, ErrInstanceClosed
	}
	t := newText(p, inst.frame)
	inst.texts = append(inst.texts, t)
	return t, nil
}

// DeleteShot removes s from the instance. During the motion phase removal is
// deferred to the cull phase of the same tick. It reports whether s was live.
func (inst *Instance) DeleteShot(s *Shot) bool {
	if s == nil || s.deleted {
		return false
	}
	for i, live := range inst.shots {
		if live != s {
			continue
		}
		s.deleted = true
		if !inst.inMotion {
			inst.shots = append(inst.shots[:i], inst.shots[i+1:]...)
		}
		return true
	}
	return false
}
