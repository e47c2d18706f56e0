package script

import "testing"

type fakeTask struct {
	Lifetime
	name    string
	updates int
	removes int
	log     *[]string
}

func newFakeTask(name string, max int, log *[]string) *fakeTask {
	return &fakeTask{Lifetime: NewLifetime(max), name: name, log: log}
}

func (f *fakeTask) Update() {
	f.updates++
	if f.log != nil {
		*f.log = append(*f.log, f.name)
	}
	f.Advance()
}

func (f *fakeTask) Remove() { f.removes++ }

func TestLifetime(t *testing.T) {
	l := NewLifetime(3)
	for i := 0; i < 2; i++ {
		l.Advance()
		if l.Finished() {
			t.Fatalf("finished after %d ticks", i+1)
		}
	}
	l.Advance()
	if !l.Finished() || l.Counter() != 3 {
		t.Fatalf("counter=%d finished=%v, want 3 true", l.Counter(), l.Finished())
	}

	unlimited := NewLifetime(-1)
	for i := 0; i < 1000; i++ {
		unlimited.Advance()
	}
	if unlimited.Finished() {
		t.Fatal("unlimited lifetime finished")
	}
}

func TestSingleRemovesFinishedTasksInOrder(t *testing.T) {
	var log []string
	a := newFakeTask("a", -1, &log)
	b := newFakeTask("b", 2, &log)
	c := newFakeTask("c", -1, &log)
	s := NewSingle(nil, a, b, c)

	s.Update()
	s.Update()
	if b.removes != 1 {
		t.Fatalf("finished task removed %d times, want 1", b.removes)
	}
	if got := len(s.Tasks()); got != 2 {
		t.Fatalf("tasks = %d, want 2", got)
	}
	if s.Tasks()[0] != Task(a) || s.Tasks()[1] != Task(c) {
		t.Fatal("survivor order not preserved")
	}

	s.Update()
	if b.updates != 2 || b.removes != 1 {
		t.Fatalf("removed task still ticked: updates=%d removes=%d", b.updates, b.removes)
	}
	want := []string{"a", "b", "c", "a", "b", "c", "a", "c"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
}

func TestSingleBodyAddsTaskTickedSamePass(t *testing.T) {
	var added *FuncTask
	ran := 0
	s := NewSingle(func(s *Single) {
		if added == nil {
			added = NewTask(1, func(*FuncTask) { ran++ })
			s.Add(added)
		}
	})
	s.Update()
	if ran != 1 {
		t.Fatalf("task added by body ran %d times on first pass", ran)
	}
	if len(s.Tasks()) != 0 {
		t.Fatal("one-tick task not dropped")
	}
}

func TestSingleRemovePropagates(t *testing.T) {
	a := newFakeTask("a", -1, nil)
	b := newFakeTask("b", -1, nil)
	s := NewSingle(nil, a, b)
	s.Remove()
	s.Remove()
	if a.removes != 1 || b.removes != 1 {
		t.Fatalf("removes a=%d b=%d, want 1 each", a.removes, b.removes)
	}
	s.Update()
	if a.updates != 0 {
		t.Fatal("removed single still ticks tasks")
	}
	s.Add(newFakeTask("late", -1, nil))
	if len(s.Tasks()) != 0 {
		t.Fatal("removed single accepted a task")
	}
}

func TestFuncTaskTeardown(t *testing.T) {
	torn := 0
	task := NewTask(2, nil).OnRemove(func(*FuncTask) { torn++ })
	s := NewSingle(nil, task)
	s.Update()
	s.Update()
	s.Update()
	if torn != 1 {
		t.Fatalf("teardown ran %d times, want 1", torn)
	}
}

func TestFuncTaskFinishEarly(t *testing.T) {
	task := NewTask(-1, func(t *FuncTask) {
		if t.Counter() == 4 {
			t.Finish()
		}
	})
	s := NewSingle(nil, task)
	for i := 0; i < 10; i++ {
		s.Update()
	}
	if len(s.Tasks()) != 0 || task.Counter() != 5 {
		t.Fatalf("tasks=%d counter=%d", len(s.Tasks()), task.Counter())
	}
}

func TestPluralStepping(t *testing.T) {
	a := newFakeTask("a", -1, nil)
	b := newFakeTask("b", -1, nil)
	first := NewSingle(nil, a)
	second := NewSingle(nil, b)
	p := NewPlural(first, second)

	p.Update()
	if a.updates != 1 || b.updates != 0 {
		t.Fatalf("updates a=%d b=%d", a.updates, b.updates)
	}
	if !p.Next() {
		t.Fatal("Next reported exhausted with a single left")
	}
	if a.removes != 1 {
		t.Fatal("departing single not torn down")
	}
	p.Update()
	if b.updates != 1 || a.updates != 1 {
		t.Fatalf("updates a=%d b=%d", a.updates, b.updates)
	}
	if p.Next() {
		t.Fatal("Next reported active past the last single")
	}
	p.Update()
	if p.Next() {
		t.Fatal("Next past the end")
	}
}

func TestPluralRemovePropagates(t *testing.T) {
	a := newFakeTask("a", -1, nil)
	b := newFakeTask("b", -1, nil)
	p := NewPlural(NewSingle(nil, a), NewSingle(nil, b))
	p.Remove()
	p.Remove()
	if a.removes != 1 || b.removes != 1 {
		t.Fatalf("removes a=%d b=%d, want 1 each", a.removes, b.removes)
	}
	if p.Len() != 0 || p.Current() != nil {
		t.Fatal("plural still holds singles")
	}
	p.Update()
}
