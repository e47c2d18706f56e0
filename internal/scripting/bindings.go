package scripting

import (
	"image/color"
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/danmakanvas/engine/internal/render"
	"github.com/danmakanvas/engine/internal/script"
	"github.com/danmakanvas/engine/internal/world"
)

// ── instance handle (g) ──

func checkInstance(L *lua.LState) *world.Instance {
	ud := L.CheckUserData(1)
	if inst, ok := ud.Value.(*world.Instance); ok {
		return inst
	}
	L.ArgError(1, "instance expected")
	return nil
}

func instanceMethods(e *Engine) map[string]lua.LGFunction {
	num := func(f func(*world.Instance) float64) lua.LGFunction {
		return func(L *lua.LState) int {
			L.Push(lua.LNumber(f(checkInstance(L))))
			return 1
		}
	}
	return map[string]lua.LGFunction{
		"every": func(L *lua.LState) int {
			inst := checkInstance(L)
			ok, err := inst.EveryInterval(L.CheckInt(2))
			if err != nil {
				L.ArgError(2, err.Error())
			}
			L.Push(lua.LBool(ok))
			return 1
		},
		"frame":    num(func(i *world.Instance) float64 { return float64(i.Frame()) }),
		"center_x": num((*world.Instance).CenterX),
		"center_y": num((*world.Instance).CenterY),
		"width":    num(func(i *world.Instance) float64 { return i.Canvas().Width() }),
		"height":   num(func(i *world.Instance) float64 { return i.Canvas().Height() }),
		"count":    num(func(i *world.Instance) float64 { return float64(i.ShotCount()) }),
		// random() is uniform in [0, 1); random(a, b) is uniform in [a, b).
		"random": func(L *lua.LState) int {
			inst := checkInstance(L)
			r := inst.Rand().Float64()
			if L.GetTop() >= 3 {
				lo, hi := float64(L.CheckNumber(2)), float64(L.CheckNumber(3))
				r = lo + r*(hi-lo)
			}
			L.Push(lua.LNumber(r))
			return 1
		},
		"shot": func(L *lua.LState) int {
			inst := checkInstance(L)
			p, simple := e.checkShotSpec(L, 2)
			if simple {
				p = p.Simple()
			}
			s, err := inst.Shot(p)
			if err != nil {
				L.RaiseError("shot: %s", err)
			}
			L.Push(e.newUserData(typeShot, s))
			return 1
		},
		"ring": e.generator(func(inst *world.Instance, t *lua.LTable, p world.ShotSpec) ([]*world.Shot, error) {
			return inst.Ring(lInt(t, "n", 0), p)
		}),
		"spread": e.generator(func(inst *world.Instance, t *lua.LTable, p world.ShotSpec) ([]*world.Shot, error) {
			return inst.Spread(lInt(t, "n", 0), lNum(t, "angle_offset", 0), p)
		}),
		"stack": e.generator(func(inst *world.Instance, t *lua.LTable, p world.ShotSpec) ([]*world.Shot, error) {
			return inst.Stack(lInt(t, "n", 0), lNum(t, "speed_offset", 0), p)
		}),
		"ring_stack": e.generator(func(inst *world.Instance, t *lua.LTable, p world.ShotSpec) ([]*world.Shot, error) {
			return inst.RingStack(lInt(t, "n", 0), lInt(t, "m", 0), lNum(t, "speed_offset", 0), p)
		}),
		"spread_stack": e.generator(func(inst *world.Instance, t *lua.LTable, p world.ShotSpec) ([]*world.Shot, error) {
			return inst.SpreadStack(lInt(t, "n", 0), lInt(t, "m", 0),
				lNum(t, "angle_offset", 0), lNum(t, "speed_offset", 0), p)
		}),
		"text": func(L *lua.LState) int {
			inst := checkInstance(L)
			t := L.CheckTable(2)
			spec := world.TextSpec{
				X:       lNum(t, "x", 0),
				Y:       lNum(t, "y", 0),
				Color:   checkColor(L, t, "color"),
				Size:    lNum(t, "size", 12),
				Font:    lStr(t, "font"),
				Content: lStr(t, "content"),
			}
			if a := lStr(t, "align"); a != "" {
				align, err := render.ParseTextAlign(a)
				if err != nil {
					L.RaiseError("text: %s", err)
				}
				spec.Align = align
			}
			txt, err := inst.CreateText(spec)
			if err != nil {
				L.RaiseError("text: %s", err)
			}
			L.Push(e.newUserData(typeText, txt))
			return 1
		},
		"delete": func(L *lua.LState) int {
			inst := checkInstance(L)
			L.Push(lua.LBool(inst.DeleteShot(checkShot(L, 2))))
			return 1
		},
		"set_trails": func(L *lua.LState) int {
			inst := checkInstance(L)
			inst.SetClearEveryTick(!L.ToBool(2))
			return 0
		},
	}
}

// generator wraps a multi-shot generator: g:ring{n = 8, speed = 2, ...}.
// The created shots are returned as a list in generator order.
func (e *Engine) generator(gen func(*world.Instance, *lua.LTable, world.ShotSpec) ([]*world.Shot, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		inst := checkInstance(L)
		p, simple := e.checkShotSpec(L, 2)
		if simple {
			p = p.Simple()
		}
		shots, err := gen(inst, L.CheckTable(2), p)
		if err != nil {
			L.RaiseError("%s", err)
		}
		out := L.CreateTable(len(shots), 0)
		for _, s := range shots {
			out.Append(e.newUserData(typeShot, s))
		}
		L.Push(out)
		return 1
	}
}

// checkShotSpec reads the shared shot parameters. simple = true selects the
// short form (no acceleration, no speed cap, no vanish timer).
func (e *Engine) checkShotSpec(L *lua.LState, n int) (world.ShotSpec, bool) {
	t := L.CheckTable(n)
	return world.ShotSpec{
		X:          lNum(t, "x", 0),
		Y:          lNum(t, "y", 0),
		Speed:      lNum(t, "speed", 0),
		Angle:      lNum(t, "angle", 0),
		Accel:      lNum(t, "accel", 0),
		MaxSpeed:   lNum(t, "max_speed", 0),
		Color:      checkColor(L, t, "color"),
		BRad:       lNum(t, "brad", 2),
		SRad:       lNum(t, "srad", 4),
		SWid:       lNum(t, "swid", 1),
		Hitbox:     lNum(t, "hitbox", 0),
		VanishTime: lInt(t, "vanish", -1),
	}, lBool(t, "simple")
}

func checkColor(L *lua.LState, t *lua.LTable, key string) color.Color {
	s := lStr(t, key)
	if s == "" {
		return nil
	}
	c, err := render.ParseColor(s)
	if err != nil {
		L.RaiseError("%s: %s", key, err)
	}
	return c
}

// ── shots ──

func checkShot(L *lua.LState, n int) *world.Shot {
	ud := L.CheckUserData(n)
	if s, ok := ud.Value.(*world.Shot); ok {
		return s
	}
	L.ArgError(n, "shot expected")
	return nil
}

func shotMethods(e *Engine) map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		// s:set_graphic{graphic = "DIAMOND", color = "#FF00FF", brad = 1, srad = 4,
		//               srad2 = 8, swid = 1, directed = true, rotation = 0}
		"set_graphic": func(L *lua.LState) int {
			s := checkShot(L, 1)
			t := L.CheckTable(2)
			g, err := world.ParseGraphic(lStr(t, "graphic"))
			if err != nil {
				L.ArgError(2, err.Error())
			}
			s.SetGraphic(world.GraphicStyle{
				Graphic:  g,
				Color:    checkColor(L, t, "color"),
				BRad:     lNum(t, "brad", s.BRad),
				SRad:     lNum(t, "srad", s.SRad),
				SRad2:    lNum(t, "srad2", s.SRad2),
				SWid:     lNum(t, "swid", s.SWid),
				Directed: lBool(t, "directed"),
				Rotation: lNum(t, "rotation", 0),
			})
			return 0
		},
		// s:on_update(function(s) ... end) replaces the per-tick behaviour;
		// nil restores the default. A behaviour that raises is dropped.
		"on_update": func(L *lua.LState) int {
			ud := L.CheckUserData(1)
			s := checkShot(L, 1)
			fn := L.OptFunction(2, nil)
			if fn == nil {
				s.SetBehavior(nil)
				return 0
			}
			s.SetBehavior(func(s *world.Shot) {
				if !e.call("shot behaviour", fn, ud) {
					s.SetBehavior(nil)
				}
			})
			return 0
		},
		"pos": func(L *lua.LState) int {
			s := checkShot(L, 1)
			L.Push(lua.LNumber(s.X))
			L.Push(lua.LNumber(s.Y))
			return 2
		},
	}
}

func shotGet(_ *lua.LState, v any, key string) (lua.LValue, bool) {
	s, ok := v.(*world.Shot)
	if !ok {
		return nil, false
	}
	switch key {
	case "x":
		return lua.LNumber(s.X), true
	case "y":
		return lua.LNumber(s.Y), true
	case "speed":
		return lua.LNumber(s.Speed), true
	case "angle":
		return lua.LNumber(s.Angle), true
	case "accel":
		return lua.LNumber(s.Accel), true
	case "max_speed":
		return lua.LNumber(s.MaxSpeed), true
	case "graphic":
		return lua.LString(s.Graphic.String()), true
	case "graphic_angle":
		return lua.LNumber(s.GraphicAngle), true
	case "rotation":
		return lua.LNumber(s.Rotation), true
	case "directed":
		return lua.LBool(s.Directed), true
	case "hitbox":
		return lua.LNumber(s.Hitbox), true
	case "exist_time":
		return lua.LNumber(s.ExistTime), true
	case "create_time":
		return lua.LNumber(s.CreateTime), true
	case "vanish":
		return lua.LNumber(s.VanishTime), true
	case "deleted":
		return lua.LBool(s.Deleted()), true
	}
	return nil, false
}

func shotSet(L *lua.LState, v any, key string, val lua.LValue) bool {
	s, ok := v.(*world.Shot)
	if !ok {
		return false
	}
	num := func() float64 {
		n, ok := val.(lua.LNumber)
		if !ok {
			L.RaiseError("shot.%s: number expected, got %s", key, val.Type())
		}
		return float64(n)
	}
	switch key {
	case "x":
		s.X = num()
	case "y":
		s.Y = num()
	case "speed":
		s.Speed = num()
	case "angle":
		s.Angle = num()
	case "accel":
		s.Accel = num()
	case "max_speed":
		s.MaxSpeed = num()
	case "graphic_angle":
		s.GraphicAngle = num()
	case "rotation":
		s.Rotation = num()
	case "hitbox":
		s.Hitbox = num()
	case "vanish":
		s.VanishTime = int(math.Round(num()))
	case "directed":
		s.Directed = lua.LVAsBool(val)
	default:
		return false
	}
	return true
}

// ── texts ──

func textGet(_ *lua.LState, v any, key string) (lua.LValue, bool) {
	t, ok := v.(*world.Text)
	if !ok {
		return nil, false
	}
	switch key {
	case "content":
		return lua.LString(t.Content), true
	case "x":
		return lua.LNumber(t.X), true
	case "y":
		return lua.LNumber(t.Y), true
	case "size":
		return lua.LNumber(t.Size), true
	}
	return nil, false
}

func textSet(L *lua.LState, v any, key string, val lua.LValue) bool {
	t, ok := v.(*world.Text)
	if !ok {
		return false
	}
	switch key {
	case "content":
		t.Content = val.String()
	case "x":
		t.X = float64(lua.LVAsNumber(val))
	case "y":
		t.Y = float64(lua.LVAsNumber(val))
	case "color":
		c, err := render.ParseColor(lua.LVAsString(val))
		if err != nil {
			L.RaiseError("text.color: %s", err)
		}
		t.Color = c
	default:
		return false
	}
	return true
}

// ── controller tree ──

func singleMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"add": func(L *lua.LState) int {
			s, ok := L.CheckUserData(1).Value.(*script.Single)
			if !ok {
				L.ArgError(1, "single expected")
			}
			s.Add(checkTaskValue(L, L.CheckUserData(2)))
			return 0
		},
		"task_count": func(L *lua.LState) int {
			s, ok := L.CheckUserData(1).Value.(*script.Single)
			if !ok {
				L.ArgError(1, "single expected")
			}
			L.Push(lua.LNumber(len(s.Tasks())))
			return 1
		},
	}
}

func checkTask(L *lua.LState) *script.FuncTask {
	return checkTaskValue(L, L.CheckUserData(1))
}

func taskMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"counter": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkTask(L).Counter()))
			return 1
		},
		"max": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkTask(L).Max()))
			return 1
		},
		"finished": func(L *lua.LState) int {
			L.Push(lua.LBool(checkTask(L).Finished()))
			return 1
		},
		"finish": func(L *lua.LState) int {
			checkTask(L).Finish()
			return 0
		},
	}
}

func checkPlural(L *lua.LState) *script.Plural {
	if p, ok := L.CheckUserData(1).Value.(*script.Plural); ok {
		return p
	}
	L.ArgError(1, "plural expected")
	return nil
}

func pluralMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		// p:next() tears down the active single and advances; it returns
		// whether a single remains.
		"next": func(L *lua.LState) int {
			L.Push(lua.LBool(checkPlural(L).Next()))
			return 1
		},
		// p:step() is 1-based like Lua lists.
		"step": func(L *lua.LState) int {
			L.Push(lua.LNumber(checkPlural(L).Step() + 1))
			return 1
		},
	}
}
