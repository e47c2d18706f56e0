package world

import (
	"time"

	coresys "github.com/danmakanvas/engine/internal/core/system"
)

// registerPipeline wires one system per tick phase.
func (inst *Instance) registerPipeline() {
	inst.runner.Register(&clearSystem{inst})
	inst.runner.Register(&scriptSystem{inst})
	inst.runner.Register(&motionSystem{inst})
	inst.runner.Register(&cullSystem{inst})
	inst.runner.Register(&telemetrySystem{inst})
	inst.runner.Register(&drawSystem{inst})
}

// clearSystem wipes the surface unless trails are enabled.
type clearSystem struct{ inst *Instance }

func (s *clearSystem) Phase() coresys.Phase { return coresys.PhaseClear }

func (s *clearSystem) Update(_ time.Duration) {
	if !s.inst.clearEveryTick {
		return
	}
	c := s.inst.canvas
	c.ClearRect(0, 0, c.Width(), c.Height())
}

// scriptSystem advances the frame counter and runs the attack controller.
// The counter moves first so EveryInterval sees this tick's frame.
type scriptSystem struct{ inst *Instance }

func (s *scriptSystem) Phase() coresys.Phase { return coresys.PhaseScript }

func (s *scriptSystem) Update(_ time.Duration) {
	s.inst.frame++
	if c := s.inst.controller; c != nil {
		c.Update()
	}
}

// motionSystem updates every live shot in collection order. Shots spawned by
// behaviours during the pass are appended and updated in the same pass.
type motionSystem struct{ inst *Instance }

func (s *motionSystem) Phase() coresys.Phase { return coresys.PhaseMotion }

func (s *motionSystem) Update(_ time.Duration) {
	inst := s.inst
	inst.inMotion = true
	for i := 0; i < len(inst.shots); i++ {
		if sh := inst.shots[i]; !sh.deleted {
			sh.Update()
		}
		if inst.state != StateRunning {
			break
		}
	}
	inst.inMotion = false
	for _, t := range inst.texts {
		t.Update()
	}
}

// cullSystem drops deleted, out-of-bounds and vanished shots, keeping the
// survivors' relative order.
type cullSystem struct{ inst *Instance }

func (s *cullSystem) Phase() coresys.Phase { return coresys.PhaseCull }

func (s *cullSystem) Update(_ time.Duration) {
	inst := s.inst
	kept := inst.shots[:0]
	for _, sh := range inst.shots {
		if sh.deleted || !inst.inBounds(sh) || inst.expired(sh) {
			continue
		}
		kept = append(kept, sh)
	}
	for i := len(kept); i < len(inst.shots); i++ {
		inst.shots[i] = nil
	}
	inst.shots = kept
}

// telemetrySystem refreshes the live bullet counter.
type telemetrySystem struct{ inst *Instance }

func (s *telemetrySystem) Phase() coresys.Phase { return coresys.PhaseTelemetry }

func (s *telemetrySystem) Update(_ time.Duration) {
	if t := s.inst.countText; t != nil {
		t.Content = s.inst.bulletCountLabel()
	}
}

// drawSystem paints shots first so annotations land on top.
type drawSystem struct{ inst *Instance }

func (s *drawSystem) Phase() coresys.Phase { return coresys.PhaseDraw }

func (s *drawSystem) Update(_ time.Duration) {
	c := s.inst.canvas
	for _, sh := range s.inst.shots {
		sh.Draw(c)
	}
	for _, t := range s.inst.texts {
		t.Draw(c)
	}
}
