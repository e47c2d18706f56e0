package script

// Lifetime is the counter/limit bookkeeping shared by tasks. Embed it and call
// Advance once at the end of each Update.
type Lifetime struct {
	counter  int
	max      int
	finished bool
}

// NewLifetime returns a lifetime capped at max ticks; max <= 0 is unlimited.
func NewLifetime(max int) Lifetime { return Lifetime{max: max} }

func (l *Lifetime) Counter() int   { return l.counter }
func (l *Lifetime) Max() int       { return l.max }
func (l *Lifetime) Finished() bool { return l.finished }

// Advance counts one tick and finishes the task when a finite limit is hit.
func (l *Lifetime) Advance() {
	l.counter++
	if l.max > 0 && l.counter >= l.max {
		l.finished = true
	}
}

// Finish ends the task early; the owning Single drops it on its next pass.
func (l *Lifetime) Finish() { l.finished = true }

// FuncTask is a Task backed by closures.
type FuncTask struct {
	Lifetime
	body     func(t *FuncTask)
	teardown func(t *FuncTask)
}

// NewTask builds a task that runs body each tick for at most max ticks
// (max <= 0 never expires on its own).
func NewTask(max int, body func(t *FuncTask)) *FuncTask {
	return &FuncTask{Lifetime: NewLifetime(max), body: body}
}

// OnRemove sets the teardown hook and returns the task for chaining.
func (t *FuncTask) OnRemove(fn func(t *FuncTask)) *FuncTask {
	t.teardown = fn
	return t
}

func (t *FuncTask) Update() {
	if t.finished {
		return
	}
	if t.body != nil {
		t.body(t)
	}
	t.Advance()
}

func (t *FuncTask) Remove() {
	if t.teardown != nil {
		t.teardown(t)
	}
}
