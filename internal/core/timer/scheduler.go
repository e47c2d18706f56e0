// Package timer provides the repeating-timer facility that drives instance
// ticks. It is a manual clock: the host loop (ebiten Update, a time.Ticker,
// or a test) advances it, and due callbacks run synchronously on the
// caller's goroutine.
package timer

import (
	"sort"
	"time"
)

// Handle identifies an armed repeating timer. The zero Handle is never issued.
type Handle uint64

type entry struct {
	handle   Handle
	period   time.Duration
	elapsed  time.Duration
	callback func()
}

// Scheduler is not safe for concurrent use; it belongs to the loop goroutine.
type Scheduler struct {
	next    Handle
	entries map[Handle]*entry
	now     time.Duration
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		entries: make(map[Handle]*entry, 4),
	}
}

// Every arms fn to run once per period of advanced time.
// A non-positive period is clamped to one nanosecond.
func (s *Scheduler) Every(period time.Duration, fn func()) Handle {
	if period <= 0 {
		period = time.Nanosecond
	}
	s.next++
	s.entries[s.next] = &entry{handle: s.next, period: period, callback: fn}
	return s.next
}

// Cancel disarms h. It reports whether h was armed; cancelling twice is a no-op.
func (s *Scheduler) Cancel(h Handle) bool {
	if _, ok := s.entries[h]; !ok {
		return false
	}
	delete(s.entries, h)
	return true
}

// Active reports whether h is still armed.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.entries[h]
	return ok
}

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int { return len(s.entries) }

// Now returns the total time advanced so far.
func (s *Scheduler) Now() time.Duration { return s.now }

// Advance moves the clock forward by d and runs every callback that came due,
// in arming order. A timer whose period elapsed k times fires k times.
// Callbacks may arm or cancel timers; a timer cancelled mid-advance does not
// fire again, and a timer armed mid-advance starts counting next Advance.
func (s *Scheduler) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	s.now += d

	due := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		e.elapsed += d
		due = append(due, e)
	}
	sort.Slice(due, func(i, j int) bool { return due[i].handle < due[j].handle })

	for {
		fired := false
		for _, e := range due {
			if e.elapsed < e.period {
				continue
			}
			if _, armed := s.entries[e.handle]; !armed {
				continue
			}
			e.elapsed -= e.period
			e.callback()
			fired = true
		}
		if !fired {
			return
		}
	}
}
