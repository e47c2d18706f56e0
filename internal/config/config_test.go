package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[engine]
tick_rate = "16ms"
clear_every_tick = false

[display]
backend = "headless"
columns = 3

[telemetry]
language = "de"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.TickRate != 16*time.Millisecond {
		t.Errorf("tick rate = %s", cfg.Engine.TickRate)
	}
	if cfg.Engine.ClearEveryTick {
		t.Error("clear_every_tick not overridden")
	}
	if cfg.Engine.BoundsSlack != 32 {
		t.Errorf("bounds slack default lost: %v", cfg.Engine.BoundsSlack)
	}
	if cfg.Display.Backend != "headless" || cfg.Display.Columns != 3 {
		t.Errorf("display = %+v", cfg.Display)
	}
	if cfg.Display.Width != 640 || cfg.Display.Height != 480 {
		t.Errorf("display size default lost: %vx%v", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Telemetry.Language != "de" {
		t.Errorf("language = %q", cfg.Telemetry.Language)
	}
	if cfg.Scripts.Dir != "scripts" || cfg.Logging.Format != "console" {
		t.Error("untouched sections lost their defaults")
	}
	if cfg.Engine.StartTime == 0 {
		t.Error("start time not stamped")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"syntax", "[engine\n", "parse config"},
		{"tick", "[engine]\ntick_rate = \"0s\"\n", "tick_rate"},
		{"backend", "[display]\nbackend = \"opengl\"\n", "backend"},
		{"size", "[display]\nwidth = -1.0\n", "display size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestLabel(t *testing.T) {
	e := Default().Engine
	if got := e.Label(); got != "Danmakanvas v0.3" {
		t.Fatalf("label = %q", got)
	}
	e.Version = ""
	if got := e.Label(); got != "Danmakanvas" {
		t.Fatalf("label without version = %q", got)
	}
}

func TestZeroColumnsFallsBackToOne(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[display]\ncolumns = 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Display.Columns != 1 {
		t.Fatalf("columns = %d", cfg.Display.Columns)
	}
}
