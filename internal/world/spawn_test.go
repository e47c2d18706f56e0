package world

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/danmakanvas/engine/internal/core/timer"
)

// newTestInstance returns a running instance on a 640x480 recording canvas,
// driven by a manual scheduler.
func newTestInstance(t *testing.T, resolver ControllerResolver) (*Instance, *recordCanvas, *timer.Scheduler) {
	t.Helper()
	c := newRecordCanvas(640, 480)
	sched := timer.NewScheduler()
	opts := DefaultOptions()
	opts.Seed = 1
	inst := NewInstance("test", "Test Pattern", c, opts, zap.NewNop())
	if err := inst.Start(resolver, sched); err != nil {
		t.Fatalf("start: %v", err)
	}
	return inst, c, sched
}

func headings(shots []*Shot) []float64 {
	out := make([]float64, len(shots))
	for i, s := range shots {
		out[i] = s.Angle
	}
	return out
}

func assertFloats(t *testing.T, what string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d values %v, want %v", what, len(got), got, want)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("%s[%d] = %v, want %v (all %v)", what, i, got[i], want[i], got)
		}
	}
}

func TestRingHeadings(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	shots, err := inst.RingSimple(8, ShotSpec{X: 100, Y: 100, Speed: 2})
	if err != nil {
		t.Fatal(err)
	}
	want := make([]float64, 8)
	for i := range want {
		want[i] = float64(i) * math.Pi / 4
	}
	assertFloats(t, "ring headings", headings(shots), want)
	for _, s := range shots {
		if s.Speed != 2 || s.X != 100 || s.Y != 100 {
			t.Fatalf("ring shot drifted from base: %+v", s)
		}
	}
}

func TestRingOffsetFromBaseAngle(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	shots, _ := inst.Ring(4, ShotSpec{Angle: 0.25})
	assertFloats(t, "ring headings", headings(shots), []float64{0.25, 0.25 + math.Pi/2, 0.25 + math.Pi, 0.25 + 3*math.Pi/2})
}

func TestSpreadHeadings(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		offset float64
		base   float64
		want   []float64
	}{
		{"odd", 5, math.Pi / 6, 0, []float64{-math.Pi / 3, -math.Pi / 6, 0, math.Pi / 6, math.Pi / 3}},
		{"even", 4, 0.2, 1, []float64{0.7, 0.9, 1.1, 1.3}},
		{"single", 1, 0.5, 2, []float64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, _, _ := newTestInstance(t, nil)
			shots, err := inst.SpreadSimple(tt.n, tt.offset, ShotSpec{Angle: tt.base, Speed: 1})
			if err != nil {
				t.Fatal(err)
			}
			assertFloats(t, "spread headings", headings(shots), tt.want)
		})
	}
}

func TestStackSpeeds(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	shots, _ := inst.StackSimple(3, 0.5, ShotSpec{Speed: 2, Angle: 1})
	var speeds []float64
	for _, s := range shots {
		speeds = append(speeds, s.Speed)
		if s.Angle != 1 {
			t.Fatalf("stack heading changed: %v", s.Angle)
		}
	}
	assertFloats(t, "stack speeds", speeds, []float64{2, 2.5, 3})
}

func TestRingStackIsHeadingMajor(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	shots, err := inst.RingStackSimple(4, 2, 1.0, ShotSpec{X: 50, Y: 50, Speed: 5})
	if err != nil {
		t.Fatal(err)
	}
	h := math.Pi / 2
	assertFloats(t, "headings", headings(shots), []float64{0, 0, h, h, 2 * h, 2 * h, 3 * h, 3 * h})
	var speeds []float64
	for _, s := range shots {
		speeds = append(speeds, s.Speed)
	}
	assertFloats(t, "speeds", speeds, []float64{5, 6, 5, 6, 5, 6, 5, 6})
}

func TestSpreadStackIsHeadingMajor(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	shots, _ := inst.SpreadStack(3, 2, 0.1, 2, ShotSpec{Speed: 1})
	assertFloats(t, "headings", headings(shots), []float64{-0.1, -0.1, 0, 0, 0.1, 0.1})
	var speeds []float64
	for _, s := range shots {
		speeds = append(speeds, s.Speed)
	}
	assertFloats(t, "speeds", speeds, []float64{1, 3, 1, 3, 1, 3})
}

func TestSimpleFormForcesNoTimers(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	s, _ := inst.ShotSimple(ShotSpec{Speed: 1, Accel: 0.5, MaxSpeed: 9, VanishTime: 3})
	if s.Accel != 0 || s.MaxSpeed != 0 || s.VanishTime != -1 {
		t.Fatalf("short form kept timers: accel=%v max=%v vanish=%d", s.Accel, s.MaxSpeed, s.VanishTime)
	}
	full, _ := inst.Shot(ShotSpec{Speed: 1, Accel: 0.5, MaxSpeed: 9, VanishTime: 3})
	if full.Accel != 0.5 || full.MaxSpeed != 9 || full.VanishTime != 3 {
		t.Fatalf("full form lost fields: %+v", full)
	}
}

func TestGeneratorsRejectNonPositiveCounts(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	calls := map[string]func() error{
		"ring":         func() error { _, err := inst.Ring(0, ShotSpec{}); return err },
		"spread":       func() error { _, err := inst.Spread(-1, 0.1, ShotSpec{}); return err },
		"stack":        func() error { _, err := inst.Stack(0, 1, ShotSpec{}); return err },
		"ring stack":   func() error { _, err := inst.RingStack(3, 0, 1, ShotSpec{}); return err },
		"spread stack": func() error { _, err := inst.SpreadStack(0, 2, 0.1, 1, ShotSpec{}); return err },
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("%s: err = %v, want ErrInvalidCount", name, err)
		}
	}
	if n := inst.ShotCount(); n != 0 {
		t.Fatalf("rejected calls still added %d shots", n)
	}
}

func TestGeneratorsAppendImmediately(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	inst.RingSimple(6, ShotSpec{})
	if inst.ShotCount() != 6 {
		t.Fatalf("shot count = %d, want 6", inst.ShotCount())
	}
	inst.SpreadSimple(3, 0.1, ShotSpec{})
	if inst.ShotCount() != 9 {
		t.Fatalf("shot count = %d, want 9", inst.ShotCount())
	}
}

func TestPerShotBehaviorsCaptureTheirOwnParameters(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	shots, _ := inst.SpreadSimple(5, 0.2, ShotSpec{X: 320, Y: 240, Speed: 1})
	before := headings(shots)
	for i, s := range shots {
		w := 0.01 * float64(i+1)
		s.SetBehavior(func(s *Shot) { s.Angle += w })
	}
	if err := inst.Tick(); err != nil {
		t.Fatal(err)
	}
	for i, s := range shots {
		want := before[i] + 0.01*float64(i+1)
		if math.Abs(s.Angle-want) > eps {
			t.Fatalf("shot %d angle = %v, want %v", i, s.Angle, want)
		}
	}
}

func TestSpawnAfterTeardownFails(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	inst.Teardown()
	if _, err := inst.ShotSimple(ShotSpec{}); !errors.Is(err, ErrInstanceClosed) {
		t.Fatalf("err = %v, want ErrInstanceClosed", err)
	}
	if _, err := inst.CreateText(TextSpec{Content: "x"}); !errors.Is(err, ErrInstanceClosed) {
		t.Fatalf("text err = %v, want ErrInstanceClosed", err)
	}
}

func TestDeleteShot(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	shots, _ := inst.StackSimple(3, 1, ShotSpec{X: 10, Y: 10})
	if !inst.DeleteShot(shots[1]) {
		t.Fatal("live shot not deleted")
	}
	if inst.ShotCount() != 2 || inst.Shots()[0] != shots[0] || inst.Shots()[1] != shots[2] {
		t.Fatal("delete outside a tick did not remove in place")
	}
	if inst.DeleteShot(shots[1]) {
		t.Fatal("second delete reported success")
	}
	if inst.DeleteShot(nil) {
		t.Fatal("nil delete reported success")
	}
}

func TestDeleteShotDuringMotionIsDeferred(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	shots, _ := inst.StackSimple(3, 1, ShotSpec{X: 100, Y: 100})
	victim := shots[2]
	updated := false
	victim.SetBehavior(func(*Shot) { updated = true })
	shots[0].SetBehavior(func(*Shot) {
		if inst.ShotCount() != 3 {
			t.Error("collection shrank mid-pass")
		}
		inst.DeleteShot(victim)
	})
	inst.Tick()
	if updated {
		t.Fatal("deleted shot still updated in the same pass")
	}
	if inst.ShotCount() != 2 {
		t.Fatalf("shot count = %d after cull, want 2", inst.ShotCount())
	}
}

func TestShotsSpawnedDuringMotionAreUpdated(t *testing.T) {
	inst, _, _ := newTestInstance(t, nil)
	parent, _ := inst.ShotSimple(ShotSpec{X: 100, Y: 100, Speed: 1})
	var child *Shot
	parent.SetBehavior(func(s *Shot) {
		if child == nil {
			child, _ = inst.ShotSimple(ShotSpec{X: s.X, Y: s.Y, Speed: 2})
		}
	})
	inst.Tick()
	if child == nil || child.ExistTime != 1 {
		t.Fatalf("child not updated in the spawning pass: %+v", child)
	}
}
