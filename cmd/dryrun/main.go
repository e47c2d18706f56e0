// dryrun runs every catalog surface headless for a fixed number of ticks and
// reports bullet counts and tick timings per surface.
//
// Usage: dryrun [ticks]
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/danmakanvas/engine/internal/config"
	"github.com/danmakanvas/engine/internal/core/timer"
	"github.com/danmakanvas/engine/internal/data"
	"github.com/danmakanvas/engine/internal/pattern"
	"github.com/danmakanvas/engine/internal/render"
	"github.com/danmakanvas/engine/internal/scripting"
	"github.com/danmakanvas/engine/internal/world"
)

const defaultTicks = 500

type result struct {
	id, pattern string
	shots       int
	peak        int
	total, slow time.Duration
}

func main() {
	ticks := defaultTicks
	if len(os.Args) >= 2 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			fmt.Fprintln(os.Stderr, "Usage: dryrun [ticks]")
			os.Exit(1)
		}
		ticks = n
	}

	failed, err := run(ticks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d surface(s) failed\n", failed)
		os.Exit(1)
	}
}

func run(ticks int) (int, error) {
	cfgPath := "config/engine.toml"
	if p := os.Getenv("DANMAKANVAS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return 0, fmt.Errorf("load config: %w", err)
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zapCfg.DisableCaller = true
	zapCfg.DisableStacktrace = true
	log, err := zapCfg.Build()
	if err != nil {
		return 0, fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	catalog, err := data.LoadSurfaceCatalog(cfg.Scripts.Catalog)
	if err != nil {
		return 0, fmt.Errorf("load surface catalog: %w", err)
	}
	engine, err := scripting.NewEngine(cfg.Scripts.Dir, catalog, log)
	if err != nil {
		return 0, fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	resolver := world.NewChainResolver(log, engine, pattern.NewResolver(catalog, log))

	opts := world.DefaultOptions()
	opts.Label = cfg.Engine.Label()
	opts.TickRate = cfg.Engine.TickRate
	opts.BoundsSlack = cfg.Engine.BoundsSlack
	opts.Seed = cfg.Engine.Seed
	if opts.Seed == 0 {
		opts.Seed = 1
	}

	fmt.Printf("%-16s %-20s %8s %8s %12s %12s\n", "SURFACE", "PATTERN", "SHOTS", "PEAK", "AVG TICK", "SLOWEST")
	failed := 0
	for _, e := range catalog.Entries() {
		r, err := dryRun(e, catalog, resolver, opts, cfg, ticks, log)
		if err != nil {
			fmt.Printf("%-16s %-20s %s\n", e.ID, catalog.PatternFor(e.ID), err)
			failed++
			continue
		}
		fmt.Printf("%-16s %-20s %8d %8d %12s %12s\n",
			r.id, r.pattern, r.shots, r.peak, r.total/time.Duration(ticks), r.slow)
	}
	return failed, nil
}

// dryRun gives each surface its own scheduler so timings are not shared.
func dryRun(e data.SurfaceEntry, catalog *data.SurfaceCatalog, resolver world.ControllerResolver,
	opts world.Options, cfg *config.Config, ticks int, log *zap.Logger) (result, error) {
	sched := timer.NewScheduler()
	display := render.NewHeadlessDisplay(cfg.Display.Width, cfg.Display.Height)
	reg := world.NewRegistry(display, sched, resolver, opts, log)
	defer reg.StopAll(false)

	inst, err := reg.Create(e.ID, e.Title)
	if err != nil {
		return result{}, err
	}
	if inst.Controller() == nil {
		return result{}, fmt.Errorf("no controller for pattern %q", catalog.PatternFor(e.ID))
	}

	r := result{id: e.ID, pattern: catalog.PatternFor(e.ID)}
	for i := 0; i < ticks; i++ {
		start := time.Now()
		sched.Advance(opts.TickRate)
		d := time.Since(start)
		r.total += d
		r.slow = max(r.slow, d)
		r.peak = max(r.peak, inst.ShotCount())
	}
	r.shots = inst.ShotCount()
	return r, nil
}
