package world

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/danmakanvas/engine/internal/core/event"
)

type createSpec struct {
	title string
	opts  Options
}

// Registry maps display-surface ids to at most one live Instance. Creating an
// instance for an id that already has one tears the old one down first, so
// two timers never drive the same surface.
// Accessed only from the loop goroutine.
type Registry struct {
	display  Display
	sched    Scheduler
	resolver ControllerResolver
	opts     Options
	log      *zap.Logger
	bus      *event.Bus

	instances map[string]*Instance
	specs     map[string]createSpec
}

func NewRegistry(display Display, sched Scheduler, resolver ControllerResolver, opts Options, log *zap.Logger) *Registry {
	return &Registry{
		display:   display,
		sched:     sched,
		resolver:  resolver,
		opts:      opts,
		log:       log,
		instances: make(map[string]*Instance),
		specs:     make(map[string]createSpec),
	}
}

// SetBus makes the registry emit InstanceStarted and InstanceStopped events.
// A nil bus disables them.
func (r *Registry) SetBus(b *event.Bus) { r.bus = b }

// Options returns the defaults applied by Create.
func (r *Registry) Options() Options { return r.opts }

// Create starts a fresh instance on surface id with the registry defaults.
func (r *Registry) Create(id, title string) (*Instance, error) {
	return r.CreateWith(id, title, r.opts)
}

// CreateWith starts a fresh instance on surface id with explicit options.
// Any running instance on id is torn down synchronously first.
func (r *Registry) CreateWith(id, title string, opts Options) (*Instance, error) {
	if old, ok := r.instances[id]; ok {
		r.log.Info("replacing running instance", zap.String("surface", id))
		old.Teardown()
	}

	canvas, ok := r.display.Surface(id)
	if !ok {
		return nil, fmt.Errorf("create %s: %w", id, ErrUnknownSurface)
	}

	inst := newInstance(id, title, canvas, opts, r.log)
	inst.unregister = func(shots int) {
		if cur, ok := r.instances[id]; ok && cur == inst {
			delete(r.instances, id)
		}
		event.Emit(r.bus, event.InstanceStopped{Surface: id, Frame: inst.frame, Shots: shots})
	}
	r.instances[id] = inst
	r.specs[id] = createSpec{title: title, opts: opts}

	if err := inst.Start(r.resolver, r.sched); err != nil {
		inst.Teardown()
		return nil, fmt.Errorf("create %s: %w", id, err)
	}
	event.Emit(r.bus, event.InstanceStarted{Surface: id, Title: title, Controlled: inst.controller != nil})
	return inst, nil
}

// Stop tears down the instance on id, optionally wiping its surface.
// It reports whether an instance was running; stopping an idle id is a no-op.
func (r *Registry) Stop(id string, clearSurface bool) bool {
	inst, ok := r.instances[id]
	if !ok {
		return false
	}
	inst.Teardown()
	if clearSurface {
		c := inst.Canvas()
		c.ClearRect(0, 0, c.Width(), c.Height())
	}
	return true
}

// StopAll tears down every live instance.
func (r *Registry) StopAll(clearSurface bool) {
	for _, id := range r.IDs() {
		r.Stop(id, clearSurface)
	}
}

// Restart recreates the instance on id with the title and options it was
// last created with.
func (r *Registry) Restart(id string) (*Instance, error) {
	spec, ok := r.specs[id]
	if !ok {
		return nil, fmt.Errorf("restart %s: %w", id, ErrUnknownSurface)
	}
	return r.CreateWith(id, spec.title, spec.opts)
}

// RestartAll recreates every live instance from a clean state.
func (r *Registry) RestartAll() error {
	for _, id := range r.IDs() {
		if _, err := r.Restart(id); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the live instance on id.
func (r *Registry) Get(id string) (*Instance, bool) {
	inst, ok := r.instances[id]
	return inst, ok
}

// IDs lists the surfaces with a live instance, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.instances))
	for id := range r.instances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len is the number of live instances.
func (r *Registry) Len() int { return len(r.instances) }

// Each visits live instances in id order.
func (r *Registry) Each(fn func(*Instance)) {
	for _, id := range r.IDs() {
		fn(r.instances[id])
	}
}

// ToggleTrails flips clear-every-tick on every live instance. Restart
// returns an instance to the setting it was created with.
func (r *Registry) ToggleTrails() {
	r.Each(func(inst *Instance) {
		inst.SetClearEveryTick(!inst.ClearEveryTick())
	})
}
