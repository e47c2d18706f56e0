package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/danmakanvas/engine/internal/core/timer"
	"github.com/danmakanvas/engine/internal/render"
	"github.com/danmakanvas/engine/internal/world"
)

// Display tiles one Canvas per surface id across the terminal, filling rows
// left to right.
type Display struct {
	cells  Cells
	ids    []string
	canvas map[string]*Canvas
	grid   render.Grid
}

func NewDisplay(cells Cells, ids []string, w, h float64, columns int) *Display {
	d := &Display{
		cells:  cells,
		ids:    ids,
		canvas: make(map[string]*Canvas, len(ids)),
		grid:   render.NewGrid(len(ids), columns),
	}
	for _, id := range ids {
		d.canvas[id] = NewCanvas(cells, 0, 0, 1, 1, w, h)
	}
	d.Relayout()
	return d
}

// Surface implements world.Display.
func (d *Display) Surface(id string) (render.Canvas, bool) {
	c, ok := d.canvas[id]
	if !ok {
		return nil, false
	}
	return c, true
}

// Relayout recomputes every surface's cell rectangle from the current
// terminal size.
func (d *Display) Relayout() {
	if d.grid.Rows == 0 {
		return
	}
	sw, sh := d.cells.Size()
	cw, ch := max(sw/d.grid.Columns, 1), max(sh/d.grid.Rows, 1)
	for i, id := range d.ids {
		c := d.canvas[id]
		col, row := d.grid.Slot(i)
		c.col, c.row = col*cw, row*ch
		c.cols, c.rows = cw, ch
	}
}

// Loop drives the scheduler from a ticker and redraws the terminal after
// every step. Keys: Esc or Ctrl-C quits, r restarts every surface, t toggles
// trails.
type Loop struct {
	Screen   tcell.Screen
	Display  *Display
	Sched    *timer.Scheduler
	Registry *world.Registry
	Step     time.Duration
	Log      *zap.Logger
}

func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.Step)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := l.Screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-eventChan:
			if !ok || !l.handle(ev) {
				return nil
			}
		case <-ticker.C:
			l.Sched.Advance(l.Step)
			l.Screen.Show()
		}
	}
}

// handle reports false when the loop should stop.
func (l *Loop) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'r', 'R':
			l.Screen.Clear()
			if err := l.Registry.RestartAll(); err != nil {
				l.Log.Error("restart failed", zap.Error(err))
			}
		case 't', 'T':
			l.Registry.ToggleTrails()
		}
	case *tcell.EventResize:
		l.Display.Relayout()
		l.Screen.Clear()
		l.Screen.Sync()
	}
	return true
}
