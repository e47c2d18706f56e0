// Package pattern holds the attack patterns compiled into the engine.
//
// A pattern is a Factory: given the instance it will drive, it builds the
// Plural → Single → Task tree and returns it as the instance's controller.
// Shots are created through the instance's generators and steered with
// Behaviors built by the helpers in this package.
package pattern

import (
	"sort"

	"go.uber.org/zap"

	"github.com/danmakanvas/engine/internal/data"
	"github.com/danmakanvas/engine/internal/render"
	"github.com/danmakanvas/engine/internal/script"
	"github.com/danmakanvas/engine/internal/world"
)

// Factory builds a fresh controller tree for inst.
type Factory func(inst *world.Instance) script.Controller

var builtins = map[string]Factory{
	"aimed":             Aimed,
	"graphics":          Graphics,
	"interval":          Interval,
	"override":          Override,
	"ring_spread_stack": RingSpreadStack,
	"gallery":           Gallery,
}

// Names lists the built-in patterns, sorted.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the built-in pattern called name.
func Lookup(name string) (Factory, bool) {
	f, ok := builtins[name]
	return f, ok
}

// Resolver binds surfaces to built-in patterns through the surface catalog.
// It implements world.ControllerResolver.
type Resolver struct {
	catalog *data.SurfaceCatalog
	log     *zap.Logger
}

func NewResolver(catalog *data.SurfaceCatalog, log *zap.Logger) *Resolver {
	return &Resolver{catalog: catalog, log: log}
}

func (r *Resolver) Resolve(inst *world.Instance, surfaceID string) script.Controller {
	name := r.catalog.PatternFor(surfaceID)
	f, ok := builtins[name]
	if !ok {
		return nil
	}
	r.log.Debug("bound built-in pattern",
		zap.String("surface", surfaceID),
		zap.String("pattern", name),
	)
	return f(inst)
}

var (
	white   = render.MustColor("#FFFFFF")
	red     = render.MustColor("#FF0000")
	cyan    = render.MustColor("#00FFFF")
	magenta = render.MustColor("#FF00FF")
	yellow  = render.MustColor("#FFFF00")
	orange  = render.MustColor("#FF8800")
	azure   = render.MustColor("#0066FF")
)
