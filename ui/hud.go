package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fftocean/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	N        int
	Tick     int32
	SimTime  float64
	Mode     string
	Progress string // FFT axis and pass count of the frame
	FPS      int32
	Paused   bool
	Field    telemetry.FieldStats
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD at the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("N: %d | Tick: %d | t: %.2fs | FPS: %d", data.N, data.Tick, data.SimTime, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Mode: %s | FFT: %s", data.Mode, data.Progress),
		10, 55, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Hs: %.3f | Crest: %.3f | Trough: %.3f | Foam: %.1f%%",
			data.Field.Hs, data.Field.HeightMax, data.Field.HeightMin, data.Field.FoamCoverage*100),
		10, 75, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 95, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel and returns the Y below it.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) int32 {
	r := p.renderer
	pad := r.Theme.Padding
	height := r.Theme.LineHeight*int32(len(telemetry.Phases)+2) + 2*int32(len(telemetry.Phases)) + pad*2
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + pad
	y := r.DrawSectionHeader(x, p.y+pad, "Tick Performance")
	y = r.DrawLabelValue(x, y, "Avg tick",
		fmt.Sprintf("%s (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond))

	for _, phase := range telemetry.Phases {
		y = r.DrawBar(x, y, phase, float32(stats.PhasePct[phase]/100), p.width-pad*2)
	}
	return y + pad
}
