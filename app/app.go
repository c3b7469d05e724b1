// Package app drives the simulation and its telemetry, headless or behind
// the preview window.
package app

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fftocean/config"
	"github.com/pthm-cable/fftocean/fft"
	"github.com/pthm-cable/fftocean/ocean"
	"github.com/pthm-cable/fftocean/renderer"
	"github.com/pthm-cable/fftocean/telemetry"
	"github.com/pthm-cable/fftocean/ui"
)

const controlsWidth = 360

// Options configures an App beyond the simulation config.
type Options struct {
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
}

// App owns the simulation and everything around it.
type App struct {
	cfg  *config.Config
	sim  *ocean.Simulation
	perf *telemetry.PerfCollector

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	headless       bool
	stepsPerUpdate int
	paused         bool

	// Field sampling scratch
	heights   []float64
	foam      []float64
	lastField telemetry.FieldStats

	// Preview window (nil when headless)
	panels    *renderer.Panels
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
	view      *renderer.SurfaceView
	show3D    bool
	edit      *config.Config
}

// New builds the simulation from cfg. In graphical mode the window must
// already be open.
func New(cfg *config.Config, opts Options) (*App, error) {
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	sim, err := ocean.New(cfg, perf)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		sim.Close()
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		sim.Close()
		output.Close()
		return nil, err
	}
	if output != nil {
		slog.Info("writing run output", "dir", output.Dir())
	}

	window := opts.StatsWindowSec
	if window <= 0 {
		window = cfg.Telemetry.StatsWindow
	}

	a := &App{
		cfg:            sim.Config(),
		sim:            sim,
		perf:           perf,
		collector:      telemetry.NewCollector(window, cfg.Time.DT),
		output:         output,
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: max(1, opts.StepsPerUpdate),
	}

	if !a.headless {
		a.panels = renderer.NewPanels(sim.N())
		a.hud = ui.NewHUD()
		a.perfPanel = ui.NewPerfPanel(0, 0, controlsWidth)
		a.controls = ui.NewControlsPanel(0, 0, controlsWidth)
		a.view = renderer.NewSurfaceView(800, 600, float32(cfg.Mesh.Length))
		a.edit = sim.Config()
	}

	return a, nil
}

// Tick returns the number of simulation ticks run.
func (a *App) Tick() int32 {
	return a.sim.Ticks()
}

// UpdateHeadless advances the simulation by fixed steps of time.dt.
func (a *App) UpdateHeadless() {
	for i := 0; i < a.stepsPerUpdate; i++ {
		a.step(a.cfg.Time.DT)
	}
}

// Update handles input and advances the simulation by the frame time.
func (a *App) Update() {
	a.handleInput()
	if a.paused {
		return
	}
	dt := float64(rl.GetFrameTime())
	for i := 0; i < a.stepsPerUpdate; i++ {
		a.step(dt)
	}
}

func (a *App) step(dt float64) {
	frame := a.sim.Tick(dt)
	if a.sampling() && frame.Mode == ocean.FullSimulation {
		a.lastField = a.sampleField(frame)
		a.collector.Record(a.lastField)
	}
	a.flushTelemetry()
}

// sampling reports whether per-frame field statistics are consumed.
func (a *App) sampling() bool {
	return a.logStats || a.output != nil || !a.headless
}

func (a *App) sampleField(f *ocean.Frame) telemetry.FieldStats {
	a.heights = f.Displacement.Channel(a.heights, 1)
	a.foam = f.Foam.Channel(a.foam, 0)
	return telemetry.ComputeFieldStats(a.heights, a.foam)
}

// applyConfig hands the edited config to the simulation, reverting the
// edit if it is rejected.
func (a *App) applyConfig() {
	if err := a.sim.Configure(a.edit); err != nil {
		slog.Warn("config change rejected", "error", err)
		a.edit = a.sim.Config()
		return
	}
	a.cfg = a.sim.Config()
	if a.panels != nil && a.panels.N() != a.sim.N() {
		a.panels.Unload()
		a.panels = renderer.NewPanels(a.sim.N())
	}
}

// Draw renders the preview window.
func (a *App) Draw() {
	a.perf.RecordFrame()
	frame := a.sim.Frame()
	a.panels.Update(frame)

	if a.show3D {
		a.view.Render(frame, a.cfg.Mesh.Size, float32(a.cfg.Mesh.Length))
	}

	sw := int32(rl.GetScreenWidth())
	sh := int32(rl.GetScreenHeight())

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 16, B: 22, A: 255})

	area := rl.Rectangle{
		X:      10,
		Y:      120,
		Width:  float32(sw - controlsWidth - 30),
		Height: float32(sh - 160),
	}
	if a.show3D {
		vw, vh := a.view.Size()
		s := min(area.Width/float32(vw), area.Height/float32(vh))
		a.view.Draw(rl.Rectangle{X: area.X, Y: area.Y, Width: float32(vw) * s, Height: float32(vh) * s})
	} else {
		a.panels.Draw(area, 3)
	}

	axis, passes := frame.Axis, frame.Passes
	a.hud.Draw(ui.HUDData{
		Title:    "FFT Ocean",
		N:        a.sim.N(),
		Tick:     frame.Tick,
		SimTime:  frame.Time,
		Mode:     frame.Mode.String(),
		Progress: progressLabel(axis, passes),
		FPS:      rl.GetFPS(),
		Paused:   a.paused,
		Field:    a.lastField,
	})

	px := sw - controlsWidth - 10
	a.perfPanel.SetPosition(px, 10)
	y := a.perfPanel.Draw(a.perf.Stats())
	a.controls.SetPosition(px, y+10)
	if a.controls.Draw(a.edit) {
		a.applyConfig()
	}

	a.hud.DrawControls(sh, "SPACE pause | V 3D view | D debug | LEFT/RIGHT stage | H axis | C controls | S save config | F11 fullscreen")
	rl.EndDrawing()
}

func progressLabel(axis fft.Axis, passes int) string {
	return fmt.Sprintf("%s %d", axis, passes)
}

// Unload releases the simulation, output files and GPU resources.
func (a *App) Unload() {
	if a.panels != nil {
		a.panels.Unload()
		a.view.Unload()
	}
	if err := a.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
	a.sim.Close()
}
