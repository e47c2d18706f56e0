package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"github.com/danmakanvas/engine/internal/config"
	"github.com/danmakanvas/engine/internal/core/event"
	"github.com/danmakanvas/engine/internal/core/timer"
	"github.com/danmakanvas/engine/internal/data"
	"github.com/danmakanvas/engine/internal/pattern"
	"github.com/danmakanvas/engine/internal/render"
	"github.com/danmakanvas/engine/internal/render/screen"
	"github.com/danmakanvas/engine/internal/render/term"
	"github.com/danmakanvas/engine/internal/scripting"
	"github.com/danmakanvas/engine/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

// quiet is set for the terminal backend, which owns stdout once running.
var quiet bool

func printBanner(label string) {
	if quiet {
		return
	}
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m %-41s \033[36;1m│\033[0m\n", centre(label, 41))
	fmt.Println("\033[36;1m  │\033[0m       bullet-hell pattern simulator       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func centre(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s
}

func printSection(title string) {
	if quiet {
		return
	}
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	if quiet {
		return
	}
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	if quiet {
		return
	}
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	if quiet {
		return
	}
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main engine logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("DANMAKANVAS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	quiet = cfg.Display.Backend == "term"
	if quiet && cfg.Logging.File == "" {
		cfg.Logging.File = "danmakanvas.log"
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Engine.Label())

	// 3. Surface catalog and patterns
	printSection("Patterns")

	catalog, err := data.LoadSurfaceCatalog(cfg.Scripts.Catalog)
	if err != nil {
		return fmt.Errorf("load surface catalog: %w", err)
	}
	printStat("Surfaces", catalog.Count())
	printStat("Built-in patterns", len(pattern.Names()))

	engine, err := scripting.NewEngine(cfg.Scripts.Dir, catalog, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	printStat("Lua patterns", len(engine.Patterns()))
	for _, id := range catalog.IDs() {
		name := catalog.PatternFor(id)
		if _, ok := pattern.Lookup(name); !ok && !engine.Has(name) {
			log.Warn("surface pattern not found", zap.String("surface", id), zap.String("pattern", name))
		}
	}
	printBlank()

	// 4. Options shared by every instance
	lang, err := language.Parse(cfg.Telemetry.Language)
	if err != nil {
		log.Warn("bad telemetry language, using en", zap.String("language", cfg.Telemetry.Language))
		lang = language.English
	}
	opts := world.Options{
		Label:          cfg.Engine.Label(),
		TickRate:       cfg.Engine.TickRate,
		BoundsSlack:    cfg.Engine.BoundsSlack,
		ClearEveryTick: cfg.Engine.ClearEveryTick,
		Seed:           cfg.Engine.Seed,
		Language:       lang,
	}

	// Lua plurals shadow built-ins of the same name.
	resolver := world.NewChainResolver(log, engine, pattern.NewResolver(catalog, log))
	sched := timer.NewScheduler()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Display.Backend {
	case "ebiten":
		return runEbiten(cfg, catalog, resolver, sched, opts, log)
	case "term":
		return runTerm(ctx, cfg, catalog, resolver, sched, opts, log)
	default:
		return runHeadless(ctx, cfg, catalog, resolver, sched, opts, log)
	}
}

func printBlank() {
	if !quiet {
		fmt.Println()
	}
}

// newRegistry builds the registry and routes its lifecycle events to the
// log. The bus is flushed on the simulation clock.
func newRegistry(display world.Display, sched *timer.Scheduler, resolver world.ControllerResolver,
	opts world.Options, log *zap.Logger) *world.Registry {
	bus := event.NewBus()
	event.Subscribe(bus, func(e event.InstanceStarted) {
		log.Info("surface started",
			zap.String("surface", e.Surface),
			zap.String("title", e.Title),
			zap.Bool("controlled", e.Controlled),
		)
	})
	event.Subscribe(bus, func(e event.InstanceStopped) {
		log.Info("surface stopped",
			zap.String("surface", e.Surface),
			zap.Int("frame", e.Frame),
			zap.Int("shots", e.Shots),
		)
	})
	sched.Every(opts.TickRate, bus.Flush)

	reg := world.NewRegistry(display, sched, resolver, opts, log)
	reg.SetBus(bus)
	return reg
}

// createAll brings up one instance per catalog entry.
func createAll(reg *world.Registry, catalog *data.SurfaceCatalog, log *zap.Logger) error {
	printSection("Surfaces")
	for _, e := range catalog.Entries() {
		opts := reg.Options()
		if e.ClearEveryTick != nil {
			opts.ClearEveryTick = *e.ClearEveryTick
		}
		inst, err := reg.CreateWith(e.ID, e.Title, opts)
		if err != nil {
			return fmt.Errorf("create %s: %w", e.ID, err)
		}
		if inst.Controller() == nil {
			log.Warn("surface has no controller", zap.String("surface", e.ID))
		}
		printOK(fmt.Sprintf("%s (%s)", e.Title, catalog.PatternFor(e.ID)))
	}
	printBlank()
	return nil
}

func runEbiten(cfg *config.Config, catalog *data.SurfaceCatalog, resolver world.ControllerResolver,
	sched *timer.Scheduler, opts world.Options, log *zap.Logger) error {
	display, err := screen.NewDisplay(catalog.IDs(), int(cfg.Display.Width), int(cfg.Display.Height), cfg.Display.Columns)
	if err != nil {
		return fmt.Errorf("display: %w", err)
	}
	reg := newRegistry(display, sched, resolver, opts, log)
	defer reg.StopAll(false)
	if err := createAll(reg, catalog, log); err != nil {
		return err
	}

	printReady("Window open · Esc quit · R restart · T trails")
	game := screen.NewGame(display, sched, reg, cfg.Engine.TickRate, log)
	return screen.Run(game, cfg.Display.WindowTitle)
}

func runTerm(ctx context.Context, cfg *config.Config, catalog *data.SurfaceCatalog, resolver world.ControllerResolver,
	sched *timer.Scheduler, opts world.Options, log *zap.Logger) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer scr.Fini()

	display := term.NewDisplay(scr, catalog.IDs(), cfg.Display.Width, cfg.Display.Height, cfg.Display.Columns)
	reg := newRegistry(display, sched, resolver, opts, log)
	defer reg.StopAll(false)
	if err := createAll(reg, catalog, log); err != nil {
		return err
	}

	loop := &term.Loop{
		Screen:   scr,
		Display:  display,
		Sched:    sched,
		Registry: reg,
		Step:     cfg.Engine.TickRate,
		Log:      log,
	}
	return loop.Run(ctx)
}

// runHeadless ticks every surface on a wall-clock ticker with no output
// until interrupted. Useful for soak-testing scripts.
func runHeadless(ctx context.Context, cfg *config.Config, catalog *data.SurfaceCatalog, resolver world.ControllerResolver,
	sched *timer.Scheduler, opts world.Options, log *zap.Logger) error {
	display := render.NewHeadlessDisplay(cfg.Display.Width, cfg.Display.Height)
	reg := newRegistry(display, sched, resolver, opts, log)
	defer reg.StopAll(false)
	if err := createAll(reg, catalog, log); err != nil {
		return err
	}

	printReady("Headless loop running · Ctrl-C to stop")
	ticker := time.NewTicker(cfg.Engine.TickRate)
	defer ticker.Stop()
	report := time.NewTicker(10 * time.Second)
	defer report.Stop()

	for {
		select {
		case <-ticker.C:
			sched.Advance(cfg.Engine.TickRate)
		case <-report.C:
			reg.Each(func(inst *world.Instance) {
				log.Info("surface status",
					zap.String("surface", inst.ID()),
					zap.Int("frame", inst.Frame()),
					zap.Int("shots", inst.ShotCount()),
				)
			})
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
