package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order each tick.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(dt)
	}
}

// Len reports the number of registered systems.
func (r *Runner) Len() int { return len(r.systems) }

// Reset drops every registered system. Used on instance teardown so that a
// stray timer firing has nothing left to run.
func (r *Runner) Reset() {
	r.systems = r.systems[:0]
	r.sorted = true
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		// Stable: systems sharing a phase keep registration order.
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
