package system

import "time"

// Phase defines execution ordering within a single instance tick.
type Phase int

const (
	PhaseClear     Phase = iota // 0: wipe the surface (unless trails are on)
	PhaseScript                 // 1: advance frame counter, run attack controller
	PhaseMotion                 // 2: shot kinematics + custom behaviours
	PhaseCull                   // 3: drop out-of-bounds / vanished shots
	PhaseTelemetry              // 4: refresh HUD text
	PhaseDraw                   // 5: shots, then annotations
)

// System is the interface every pipeline stage implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
