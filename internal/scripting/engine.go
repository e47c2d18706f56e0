package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/danmakanvas/engine/internal/data"
	"github.com/danmakanvas/engine/internal/script"
	"github.com/danmakanvas/engine/internal/world"
)

// Version is exposed to scripts as the VERSION global.
const Version = "0.3"

// Engine wraps a single gopher-lua VM holding every Lua attack pattern.
// Single-goroutine access only (the tick loop): controllers, tasks and shot
// behaviours built here call back into the same VM.
type Engine struct {
	vm      *lua.LState
	log     *zap.Logger
	catalog *data.SurfaceCatalog

	patterns map[string]*lua.LFunction
	methods  map[string]*lua.LTable // per userdata type
}

// NewEngine creates a Lua engine and loads every pattern script from the given
// directory. Helpers under lib/ load first so patterns may use them.
func NewEngine(scriptsDir string, catalog *data.SurfaceCatalog, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	e := &Engine{
		vm:       vm,
		log:      log,
		catalog:  catalog,
		patterns: make(map[string]*lua.LFunction),
		methods:  make(map[string]*lua.LTable),
	}
	e.openAPI()

	if scriptsDir == "" {
		return e, nil
	}
	if err := e.loadDir(filepath.Join(scriptsDir, "lib")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load lib scripts: %w", err)
	}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load pattern scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory, in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source, typically register_plural calls.
func (e *Engine) LoadString(name, src string) error {
	fn, err := e.vm.LoadString(src)
	if err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// Patterns lists the registered pattern names, sorted.
func (e *Engine) Patterns() []string {
	out := make([]string, 0, len(e.patterns))
	for name := range e.patterns {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Has reports whether a pattern called name has been registered.
func (e *Engine) Has(name string) bool {
	_, ok := e.patterns[name]
	return ok
}

// Resolve implements world.ControllerResolver. It runs the registered factory
// for the surface's pattern with the instance handle and converts what it
// returns (a plural, a single, or a list of singles) into a controller.
func (e *Engine) Resolve(inst *world.Instance, surfaceID string) script.Controller {
	name := e.catalog.PatternFor(surfaceID)
	factory, ok := e.patterns[name]
	if !ok {
		return nil
	}

	g := e.newUserData(typeInstance, inst)
	if err := e.vm.CallByParam(lua.P{
		Fn:      factory,
		NRet:    1,
		Protect: true,
	}, g); err != nil {
		e.log.Error("lua pattern factory error",
			zap.String("pattern", name),
			zap.String("surface", surfaceID),
			zap.Error(err),
		)
		return nil
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)

	ctl, err := e.toController(result)
	if err != nil {
		e.log.Error("lua pattern factory returned no controller",
			zap.String("pattern", name),
			zap.Error(err),
		)
		return nil
	}
	e.log.Debug("bound lua pattern",
		zap.String("surface", surfaceID),
		zap.String("pattern", name),
	)
	return ctl
}

func (e *Engine) toController(v lua.LValue) (script.Controller, error) {
	switch v := v.(type) {
	case *lua.LUserData:
		if ctl, ok := v.Value.(script.Controller); ok {
			if _, isTask := v.Value.(*script.FuncTask); !isTask {
				return ctl, nil
			}
		}
		return nil, fmt.Errorf("userdata %T is not a plural or single", v.Value)
	case *lua.LTable:
		var singles []script.Controller
		var bad error
		v.ForEach(func(_, item lua.LValue) {
			ud, ok := item.(*lua.LUserData)
			if !ok {
				bad = fmt.Errorf("list item %s is not a single", item.Type())
				return
			}
			s, ok := ud.Value.(*script.Single)
			if !ok {
				bad = fmt.Errorf("list item %T is not a single", ud.Value)
				return
			}
			singles = append(singles, s)
		})
		if bad != nil {
			return nil, bad
		}
		if len(singles) == 0 {
			return nil, fmt.Errorf("empty single list")
		}
		return script.NewPlural(singles...), nil
	}
	return nil, fmt.Errorf("factory returned %s", v.Type())
}

// call invokes a Lua callback in protected mode. An error is logged and
// reported as false; the rest of the callback is skipped.
func (e *Engine) call(what string, fn *lua.LFunction, args ...lua.LValue) bool {
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua "+what+" error", zap.Error(err))
		return false
	}
	return true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// --- Lua helpers ---

// lNum reads a number field from a Lua table, falling back to def.
func lNum(t *lua.LTable, key string, def float64) float64 {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return def
}

// lInt reads an integer field from a Lua table.
func lInt(t *lua.LTable, key string, def int) int {
	if n, ok := t.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return def
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return ""
	}
	return lua.LVAsString(v)
}

// lBool reads a boolean field from a Lua table; nil and false are false.
func lBool(t *lua.LTable, key string) bool {
	return lua.LVAsBool(t.RawGetString(key))
}

// lFunc reads a function field from a Lua table, or nil.
func lFunc(t *lua.LTable, key string) *lua.LFunction {
	fn, _ := t.RawGetString(key).(*lua.LFunction)
	return fn
}
