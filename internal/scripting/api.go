package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/danmakanvas/engine/internal/script"
	"github.com/danmakanvas/engine/internal/world"
)

// Userdata type names.
const (
	typeInstance = "danmakanvas.instance"
	typeShot     = "danmakanvas.shot"
	typeText     = "danmakanvas.text"
	typeSingle   = "danmakanvas.single"
	typeTask     = "danmakanvas.task"
	typePlural   = "danmakanvas.plural"
)

// openAPI installs the globals and the userdata metatables.
//
//	register_plural(name, function(g) return plural{...} end)
//	single{update = function(self) end, tasks = {...}}
//	task{max = n, update = function(self) end, remove = function(self) end}
//	plural{single1, single2, ...}
//	distance(a, b) / distance(x1, y1, x2, y2), angle(...) likewise
func (e *Engine) openAPI() {
	L := e.vm
	L.SetGlobal("VERSION", lua.LString(Version))
	L.SetGlobal("register_plural", L.NewFunction(e.luaRegisterPlural))
	L.SetGlobal("single", L.NewFunction(e.luaSingle))
	L.SetGlobal("task", L.NewFunction(e.luaTask))
	L.SetGlobal("plural", L.NewFunction(e.luaPlural))
	L.SetGlobal("distance", L.NewFunction(luaDistance))
	L.SetGlobal("angle", L.NewFunction(luaAngle))

	e.registerType(typeInstance, instanceMethods(e), nil, nil)
	e.registerType(typeShot, shotMethods(e), shotGet, shotSet)
	e.registerType(typeText, nil, textGet, textSet)
	e.registerType(typeSingle, singleMethods(), nil, nil)
	e.registerType(typeTask, taskMethods(), nil, nil)
	e.registerType(typePlural, pluralMethods(), nil, nil)
}

// registerType builds the metatable for name. Method lookups win over field
// getters; setters handle assignment.
func (e *Engine) registerType(name string, methods map[string]lua.LGFunction,
	get func(L *lua.LState, v any, key string) (lua.LValue, bool),
	set func(L *lua.LState, v any, key string, val lua.LValue) bool,
) {
	L := e.vm
	mt := L.NewTypeMetatable(name)
	mtab := L.SetFuncs(L.NewTable(), methods)
	e.methods[name] = mtab

	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		ud := L.CheckUserData(1)
		key := L.CheckString(2)
		if m := mtab.RawGetString(key); m != lua.LNil {
			L.Push(m)
			return 1
		}
		if get != nil {
			if v, ok := get(L, ud.Value, key); ok {
				L.Push(v)
				return 1
			}
		}
		L.Push(lua.LNil)
		return 1
	}))
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		ud := L.CheckUserData(1)
		key := L.CheckString(2)
		if set == nil || !set(L, ud.Value, key, L.CheckAny(3)) {
			L.RaiseError("%s has no writable field %q", name, key)
		}
		return 0
	}))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(name))
		return 1
	}))
}

func (e *Engine) newUserData(typ string, v any) *lua.LUserData {
	ud := e.vm.NewUserData()
	ud.Value = v
	e.vm.SetMetatable(ud, e.vm.GetTypeMetatable(typ))
	return ud
}

func (e *Engine) luaRegisterPlural(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if _, dup := e.patterns[name]; dup {
		e.log.Warn("lua pattern redefined; last definition wins", zap.String("pattern", name))
	}
	e.patterns[name] = fn
	return 0
}

// luaSingle: single{update = fn, tasks = {...}}. Both fields are optional.
func (e *Engine) luaSingle(L *lua.LState) int {
	opts := L.OptTable(1, L.NewTable())
	update := lFunc(opts, "update")

	var ud *lua.LUserData
	var body func(*script.Single)
	if update != nil {
		body = func(*script.Single) { e.call("single update", update, ud) }
	}
	s := script.NewSingle(body)
	ud = e.newUserData(typeSingle, s)

	if tasks, ok := opts.RawGetString("tasks").(*lua.LTable); ok {
		for i := 1; i <= tasks.Len(); i++ {
			s.Add(checkTaskValue(L, tasks.RawGetInt(i)))
		}
	}
	L.Push(ud)
	return 1
}

// luaTask: task{max = n, update = fn, remove = fn}. max <= 0 runs forever.
func (e *Engine) luaTask(L *lua.LState) int {
	opts := L.CheckTable(1)
	update := lFunc(opts, "update")
	remove := lFunc(opts, "remove")

	var ud *lua.LUserData
	t := script.NewTask(lInt(opts, "max", 0), func(*script.FuncTask) {
		if update != nil {
			e.call("task update", update, ud)
		}
	})
	if remove != nil {
		t.OnRemove(func(*script.FuncTask) { e.call("task remove", remove, ud) })
	}
	ud = e.newUserData(typeTask, t)
	L.Push(ud)
	return 1
}

// luaPlural: plural{s1, s2, ...} in stage order.
func (e *Engine) luaPlural(L *lua.LState) int {
	list := L.CheckTable(1)
	singles := make([]script.Controller, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		ud, ok := list.RawGetInt(i).(*lua.LUserData)
		if !ok {
			L.ArgError(1, "plural expects a list of singles")
		}
		s, ok := ud.Value.(*script.Single)
		if !ok {
			L.ArgError(1, "plural expects a list of singles")
		}
		singles = append(singles, s)
	}
	L.Push(e.newUserData(typePlural, script.NewPlural(singles...)))
	return 1
}

func checkTaskValue(L *lua.LState, v lua.LValue) *script.FuncTask {
	if ud, ok := v.(*lua.LUserData); ok {
		if t, ok := ud.Value.(*script.FuncTask); ok {
			return t
		}
	}
	L.RaiseError("expected task, got %s", v.Type())
	return nil
}

// positions reads either two positioned values or four coordinates.
func positions(L *lua.LState) (x1, y1, x2, y2 float64) {
	if L.GetTop() >= 4 {
		return float64(L.CheckNumber(1)), float64(L.CheckNumber(2)),
			float64(L.CheckNumber(3)), float64(L.CheckNumber(4))
	}
	x1, y1 = checkPos(L, 1)
	x2, y2 = checkPos(L, 2)
	return
}

func checkPos(L *lua.LState, n int) (float64, float64) {
	switch v := L.Get(n).(type) {
	case *lua.LUserData:
		if p, ok := v.Value.(world.Positioner); ok {
			return p.Pos()
		}
		if inst, ok := v.Value.(*world.Instance); ok {
			return inst.CenterX(), inst.CenterY()
		}
	case *lua.LTable:
		return lNum(v, "x", 0), lNum(v, "y", 0)
	}
	L.ArgError(n, "shot, instance or {x=, y=} expected")
	return 0, 0
}

func luaDistance(L *lua.LState) int {
	x1, y1, x2, y2 := positions(L)
	L.Push(lua.LNumber(world.DistanceXY(x1, y1, x2, y2)))
	return 1
}

func luaAngle(L *lua.LState) int {
	x1, y1, x2, y2 := positions(L)
	L.Push(lua.LNumber(world.AngleXY(x1, y1, x2, y2)))
	return 1
}
