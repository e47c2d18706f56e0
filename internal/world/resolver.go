package world

import (
	"time"

	"go.uber.org/zap"

	"github.com/danmakanvas/engine/internal/core/timer"
	"github.com/danmakanvas/engine/internal/render"
	"github.com/danmakanvas/engine/internal/script"
)

// ControllerResolver picks the attack controller for a surface. It returns
// nil when it does not recognize surfaceID.
type ControllerResolver interface {
	Resolve(inst *Instance, surfaceID string) script.Controller
}

// ResolverFunc adapts a function to ControllerResolver.
type ResolverFunc func(inst *Instance, surfaceID string) script.Controller

func (f ResolverFunc) Resolve(inst *Instance, surfaceID string) script.Controller {
	return f(inst, surfaceID)
}

// ChainResolver asks each resolver in turn; the first non-nil answer wins.
type ChainResolver struct {
	resolvers []ControllerResolver
	log       *zap.Logger
}

func NewChainResolver(log *zap.Logger, resolvers ...ControllerResolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers, log: log}
}

func (c *ChainResolver) Resolve(inst *Instance, surfaceID string) script.Controller {
	for _, r := range c.resolvers {
		if r == nil {
			continue
		}
		if ctl := r.Resolve(inst, surfaceID); ctl != nil {
			return ctl
		}
	}
	c.log.Warn("surface id not recognized by any pattern; check the surface catalog and scripts",
		zap.String("surface", surfaceID))
	return nil
}

// Display hands out the drawing surface bound to a surface id.
type Display interface {
	Surface(id string) (render.Canvas, bool)
}

// Scheduler is the host repeating-timer facility.
type Scheduler interface {
	Every(period time.Duration, fn func()) timer.Handle
	Cancel(h timer.Handle) bool
}
