package world

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	coresys "github.com/danmakanvas/engine/internal/core/system"
	"github.com/danmakanvas/engine/internal/core/timer"
	"github.com/danmakanvas/engine/internal/render"
	"github.com/danmakanvas/engine/internal/script"
)

// State is an instance's lifecycle position.
type State int

const (
	StateUnstarted State = iota
	StateRunning
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateRunning:
		return "running"
	case StateTornDown:
		return "torn down"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configure every instance a Registry creates.
type Options struct {
	Label          string        // engine/version HUD line
	TickRate       time.Duration // timer period
	BoundsSlack    float64       // margin outside the surface before a shot is culled
	ClearEveryTick bool          // false leaves trails
	Seed           int64         // 0 seeds from the clock
	Language       language.Tag  // bullet counter number formatting
}

// DefaultOptions: 20ms ticks (50 per second), 32 units of slack, clearing on.
func DefaultOptions() Options {
	return Options{
		Label:          "Danmakanvas",
		TickRate:       20 * time.Millisecond,
		BoundsSlack:    32,
		ClearEveryTick: true,
		Language:       language.English,
	}
}

// Instance is one running simulation bound to one display surface.
// It is driven from a single goroutine: the timer callback, controller code
// and teardown all run there, so nothing here is locked.
type Instance struct {
	id     string
	title  string
	canvas render.Canvas
	opts   Options
	log    *zap.Logger

	shots      []*Shot
	texts      []*Text
	controller script.Controller // nil when no pattern recognized the surface
	player     *Player

	frame          int
	clearEveryTick bool
	inMotion       bool
	state          State

	sched      Scheduler
	handle     timer.Handle
	runner     *coresys.Runner
	rng        *rand.Rand
	printer    *message.Printer
	countText  *Text
	unregister func(shots int) // called once on teardown with the live shot count
}

func newInstance(id, title string, canvas render.Canvas, opts Options, log *zap.Logger) *Instance {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultOptions().TickRate
	}
	inst := &Instance{
		id:             id,
		title:          title,
		canvas:         canvas,
		opts:           opts,
		log:            log.With(zap.String("surface", id)),
		clearEveryTick: opts.ClearEveryTick,
		runner:         coresys.NewRunner(),
		rng:            rand.New(rand.NewSource(seed)),
		printer:        message.NewPrinter(opts.Language),
	}
	inst.registerPipeline()
	return inst
}

// NewInstance builds an unstarted, unregistered instance. Registry.Create is
// the normal entry point; this exists for tools and tests that drive ticks
// by hand.
func NewInstance(id, title string, canvas render.Canvas, opts Options, log *zap.Logger) *Instance {
	return newInstance(id, title, canvas, opts, log)
}

// Start resolves the attack controller, arms the tick timer and creates the
// HUD annotations. An unresolved controller is not an error: the instance
// ticks without one.
func (inst *Instance) Start(resolver ControllerResolver, sched Scheduler) error {
	if inst.state != StateUnstarted {
		return fmt.Errorf("start %s: instance is %s", inst.id, inst.state)
	}
	inst.log.Info("starting instance", zap.String("title", inst.title))

	if resolver != nil {
		inst.controller = resolver.Resolve(inst, inst.id)
	}
	if inst.controller == nil {
		inst.log.Info("no attack controller bound; ticking without one")
	}

	if sched != nil {
		inst.sched = sched
		inst.handle = sched.Every(inst.opts.TickRate, inst.onTimer)
	}
	inst.state = StateRunning

	inst.addHUD()
	return nil
}

func (inst *Instance) addHUD() {
	white := render.MustColor("#FFFFFF")
	hud := TextSpec{Color: white, Size: 12, Font: "Arial", Align: render.AlignLeft}

	hud.X, hud.Y, hud.Content = 4, 12, inst.opts.Label
	inst.CreateText(hud)

	hud.Y, hud.Content = 24, inst.title
	inst.CreateText(hud)

	hud.Y, hud.Content = inst.canvas.Height()-4, inst.bulletCountLabel()
	inst.countText, _ = inst.CreateText(hud)
}

func (inst *Instance) onTimer() {
	if err := inst.Tick(); err != nil {
		inst.log.Debug("timer fired on idle instance", zap.Error(err))
	}
}

// Tick runs one clear → script → motion → cull → telemetry → draw pass.
func (inst *Instance) Tick() error {
	if inst.state != StateRunning {
		return ErrNotRunning
	}
	inst.runner.Tick(inst.opts.TickRate)
	return nil
}

// Teardown cancels the timer, releases the controller tree, shots and texts,
// and unregisters the instance. Calling it again is a no-op.
func (inst *Instance) Teardown() {
	if inst.state == StateTornDown {
		return
	}
	if inst.sched != nil && inst.handle != 0 {
		inst.sched.Cancel(inst.handle)
	}
	inst.handle = 0
	inst.state = StateTornDown
	shots := len(inst.shots)

	if inst.controller != nil {
		inst.controller.Remove()
		inst.controller = nil
	}
	inst.shots = nil
	inst.texts = nil
	inst.countText = nil
	inst.runner.Reset()

	if inst.unregister != nil {
		inst.unregister(shots)
		inst.unregister = nil
	}
	inst.log.Info("instance torn down", zap.Int("frame", inst.frame))
}

// EveryInterval reports whether the current frame is a multiple of n.
func (inst *Instance) EveryInterval(n int) (bool, error) {
	if n <= 0 {
		return false, fmt.Errorf("every %d: %w", n, ErrInvalidInterval)
	}
	return inst.frame%n == 0, nil
}

// Every is EveryInterval for constant divisors; it panics when n <= 0.
func (inst *Instance) Every(n int) bool {
	ok, err := inst.EveryInterval(n)
	if err != nil {
		panic(err)
	}
	return ok
}

func (inst *Instance) ID() string { return inst.id }
func (inst *Instance) Title() string { return inst.title }
func (inst *Instance) Frame() int { return inst.frame }
func (inst *Instance) State() State { return inst.state }
func (inst *Instance) Canvas() render.Canvas { return inst.canvas }
func (inst *Instance) Controller() script.Controller { return inst.controller }
func (inst *Instance) Rand() *rand.Rand { return inst.rng }
func (inst *Instance) Logger() *zap.Logger { return inst.log }
func (inst *Instance) Shots() []*Shot { return inst.shots }
func (inst *Instance) Texts() []*Text { return inst.texts }
func (inst *Instance) ShotCount() int { return len(inst.shots) }
func (inst *Instance) ClearEveryTick() bool { return inst.clearEveryTick }
func (inst *Instance) SetClearEveryTick(clear bool) { inst.clearEveryTick = clear }
func (inst *Instance) Player() *Player { return inst.player }
func (inst *Instance) SetPlayer(p *Player) { inst.player = p }
func (inst *Instance) TimerHandle() timer.Handle { return inst.handle }

// CenterX is the horizontal middle of the bound surface.
func (inst *Instance) CenterX() float64 { return inst.canvas.Width() / 2 }

// CenterY is the vertical middle of the bound surface.
func (inst *Instance) CenterY() float64 { return inst.canvas.Height() / 2 }

// Center returns the surface middle as a Point.
func (inst *Instance) Center() Point { return Point{X: inst.CenterX(), Y: inst.CenterY()} }

func (inst *Instance) inBounds(s *Shot) bool {
	slack := inst.opts.BoundsSlack
	w, h := inst.canvas.Width(), inst.canvas.Height()
	return !(s.X < -slack || s.X > w+slack || s.Y < -slack || s.Y > h+slack)
}

// expired measures age in frames since creation so a shot spawned by the
// controller mid-tick lives exactly as long as one spawned between ticks.
func (inst *Instance) expired(s *Shot) bool {
	return s.VanishTime > 0 && inst.frame-s.CreateTime > s.VanishTime
}

func (inst *Instance) bulletCountLabel() string {
	return inst.printer.Sprintf("Bullet Count: %d", len(inst.shots))
}
