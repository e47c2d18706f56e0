package script

// Plural is the top-level controller bound to an instance. Exactly one Single
// (the current step) is updated per tick.
type Plural struct {
	singles []Controller
	step    int
	removed bool
}

func NewPlural(singles ...Controller) *Plural {
	return &Plural{singles: singles}
}

// Step returns the index of the active single.
func (p *Plural) Step() int { return p.step }

// Len returns the number of singles still held.
func (p *Plural) Len() int { return len(p.singles) }

// Current returns the active single, or nil once the plural is exhausted.
func (p *Plural) Current() Controller {
	if p.step < 0 || p.step >= len(p.singles) {
		return nil
	}
	return p.singles[p.step]
}

func (p *Plural) Update() {
	if c := p.Current(); c != nil {
		c.Update()
	}
}

// Next tears down the active single and moves to the following one.
// It reports whether a single remains active.
func (p *Plural) Next() bool {
	if c := p.Current(); c != nil {
		c.Remove()
		p.singles[p.step] = nil
	}
	if p.step < len(p.singles) {
		p.step++
	}
	return p.Current() != nil
}

// Remove propagates teardown to every single not yet torn down.
func (p *Plural) Remove() {
	if p.removed {
		return
	}
	p.removed = true
	for _, s := range p.singles {
		if s != nil {
			s.Remove()
		}
	}
	p.singles = nil
	p.step = 0
}
