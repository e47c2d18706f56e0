package script

// Single is one attack phase: an optional per-tick body followed by its tasks.
type Single struct {
	body    func(s *Single)
	tasks   []Task
	removed bool
}

// NewSingle creates a single with the given body (may be nil) and initial tasks.
func NewSingle(body func(s *Single), tasks ...Task) *Single {
	s := &Single{body: body}
	s.tasks = append(s.tasks, tasks...)
	return s
}

// Add appends a task. Tasks added during Update are ticked in the same pass.
func (s *Single) Add(t Task) {
	if s.removed || t == nil {
		return
	}
	s.tasks = append(s.tasks, t)
}

// Tasks returns the live tasks in order. The slice must not be modified.
func (s *Single) Tasks() []Task { return s.tasks }

func (s *Single) Update() {
	if s.removed {
		return
	}
	if s.body != nil {
		s.body(s)
	}

	done := 0
	for i := 0; i < len(s.tasks); i++ {
		t := s.tasks[i]
		t.Update()
		if t.Finished() {
			t.Remove()
			s.tasks[i] = nil
			done++
		}
		if s.removed {
			return
		}
	}
	if done == 0 {
		return
	}
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t != nil {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}

// Remove tears down every remaining task exactly once.
func (s *Single) Remove() {
	if s.removed {
		return
	}
	s.removed = true
	for _, t := range s.tasks {
		if t != nil {
			t.Remove()
		}
	}
	s.tasks = nil
}
