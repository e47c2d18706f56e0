package screen

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/danmakanvas/engine/internal/core/timer"
	"github.com/danmakanvas/engine/internal/render"
	"github.com/danmakanvas/engine/internal/world"
)

// gap is the border between surfaces, in pixels.
const gap = 8

var background = color.RGBA{0x10, 0x10, 0x18, 0xff}

// Display tiles one offscreen Canvas per surface id.
type Display struct {
	ids    []string
	canvas map[string]*Canvas
	grid   render.Grid
	w, h   int
}

func NewDisplay(ids []string, w, h, columns int) (*Display, error) {
	source, err := NewFaceSource()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	d := &Display{
		ids:    ids,
		canvas: make(map[string]*Canvas, len(ids)),
		grid:   render.NewGrid(len(ids), columns),
		w:      w,
		h:      h,
	}
	for _, id := range ids {
		d.canvas[id] = NewCanvas(w, h, source)
	}
	return d, nil
}

// Surface implements world.Display.
func (d *Display) Surface(id string) (render.Canvas, bool) {
	c, ok := d.canvas[id]
	if !ok {
		return nil, false
	}
	return c, true
}

// Size is the window size holding every surface plus borders.
func (d *Display) Size() (int, int) {
	return d.grid.Columns*(d.w+gap) + gap, d.grid.Rows*(d.h+gap) + gap
}

func (d *Display) origin(i int) (float64, float64) {
	col, row := d.grid.Slot(i)
	return float64(gap + col*(d.w+gap)), float64(gap + row*(d.h+gap))
}

// Game adapts the scheduler and registry to ebiten's loop. Each Update
// advances the scheduler by one TPS step. Keys: Esc quits, R restarts every
// surface, T toggles trails.
type Game struct {
	display  *Display
	sched    *timer.Scheduler
	registry *world.Registry
	step     time.Duration
	log      *zap.Logger
}

func NewGame(display *Display, sched *timer.Scheduler, registry *world.Registry, step time.Duration, log *zap.Logger) *Game {
	return &Game{display: display, sched: sched, registry: registry, step: step, log: log}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.registry.RestartAll(); err != nil {
			g.log.Error("restart failed", zap.Error(err))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.registry.ToggleTrails()
	}
	g.sched.Advance(g.step)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	for i, id := range g.display.ids {
		x, y := g.display.origin(i)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x, y)
		screen.DrawImage(g.display.canvas[id].Image(), op)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.display.Size()
}

// Run opens the window and blocks until it closes.
func Run(g *Game, title string) error {
	w, h := g.display.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(max(int(time.Second/g.step), 1))
	return ebiten.RunGame(g)
}
