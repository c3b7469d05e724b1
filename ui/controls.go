package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/fftocean/config"
)

// MaxPreviewPow caps the grid exponent reachable from the sliders; larger
// grids are for headless runs.
const MaxPreviewPow = 11

// slider describes one float parameter bound to a config field.
type slider struct {
	label    string
	min, max float32
	format   string
	value    func(c *config.Config) *float64
}

var sliders = []slider{
	{"Amplitude", 0, 50, "%.2f", func(c *config.Config) *float64 { return &c.Spectrum.Amplitude }},
	{"Wind speed", 0.1, 30, "%.2f", func(c *config.Config) *float64 { return &c.Spectrum.WindSpeed }},
	{"Wind X", -1, 1, "%.2f", func(c *config.Config) *float64 { return &c.Spectrum.Wind.X }},
	{"Wind Z", -1, 1, "%.2f", func(c *config.Config) *float64 { return &c.Spectrum.Wind.Z }},
	{"Lambda", -3, 3, "%.2f", func(c *config.Config) *float64 { return &c.Surface.Lambda }},
	{"Height scale", 0, 5, "%.2f", func(c *config.Config) *float64 { return &c.Surface.HeightScale }},
	{"Bubbles scale", 0, 10, "%.2f", func(c *config.Config) *float64 { return &c.Surface.BubblesScale }},
	{"Bubbles threshold", 0, 1, "%.2f", func(c *config.Config) *float64 { return &c.Surface.BubblesThreshold }},
	{"Time scale", 0, 5, "%.2f", func(c *config.Config) *float64 { return &c.Time.TimeScale }},
	{"Patch length", 1, 200, "%.1f", func(c *config.Config) *float64 { return &c.Mesh.Length }},
}

// ControlsPanel renders the right-side parameter panel with raygui sliders.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the controls over cfg and edits it in place. It reports
// whether any value changed; the caller applies the edited config.
func (c *ControlsPanel) Draw(cfg *config.Config) bool {
	if !c.visible {
		return false
	}

	r := c.renderer
	pad := float32(r.Theme.Padding)
	rowH := float32(34)
	height := int32(rowH*float32(len(sliders)+4) + pad*4 + 60)
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x) + pad
	y := float32(c.y) + pad
	barW := float32(c.width) - pad*2 - 60
	changed := false

	y = float32(r.DrawSectionHeader(int32(x), int32(y), "Spectrum & Surface")) + 4

	for _, s := range sliders {
		v := s.value(cfg)
		rl.DrawText(s.label, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		next := gui.SliderBar(rl.Rectangle{X: x, Y: y + 14, Width: barW, Height: 14}, "", "", float32(*v), s.min, s.max)
		rl.DrawText(fmt.Sprintf(s.format, *v), int32(x+barW+8), int32(y+14), r.Theme.FontSize, r.Theme.ValueColor)
		if next != float32(*v) {
			*v = float64(next)
			changed = true
		}
		y += rowH
	}

	// Grid exponent
	rl.DrawText("FFT pow", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	pow := gui.SliderBar(rl.Rectangle{X: x, Y: y + 14, Width: barW, Height: 14}, "", "",
		float32(cfg.FFT.Pow), config.MinPow, MaxPreviewPow)
	rl.DrawText(fmt.Sprintf("%d", 1<<cfg.FFT.Pow), int32(x+barW+8), int32(y+14), r.Theme.FontSize, r.Theme.ValueColor)
	if p := int(math.Round(float64(pow))); p != cfg.FFT.Pow {
		cfg.FFT.Pow = p
		cfg.Debug.Stage = min(cfg.Debug.Stage, p)
		changed = true
	}
	y += rowH + 6

	y = float32(r.DrawSectionHeader(int32(x), int32(y), "FFT Debug")) + 4

	enabled := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, "Stop after stage", cfg.Debug.Enabled)
	horizontal := gui.CheckBox(rl.Rectangle{X: x + barW/2 + 20, Y: y, Width: 14, Height: 14}, "Horizontal", cfg.Debug.Horizontal)
	if enabled != cfg.Debug.Enabled || horizontal != cfg.Debug.Horizontal {
		cfg.Debug.Enabled = enabled
		cfg.Debug.Horizontal = horizontal
		changed = true
	}
	y += 24

	stage := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: barW, Height: 14}, "", "",
		float32(cfg.Debug.Stage), 0, float32(cfg.FFT.Pow))
	rl.DrawText(fmt.Sprintf("%d", cfg.Debug.Stage), int32(x+barW+8), int32(y), r.Theme.FontSize, r.Theme.ValueColor)
	if s := int(math.Round(float64(stage))); s != cfg.Debug.Stage {
		cfg.Debug.Stage = s
		changed = true
	}
	y += rowH

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 26}, "Reseed") {
		cfg.Spectrum.SeedA++
		cfg.Spectrum.SeedB = cfg.Spectrum.SeedB*1664525 + 1013904223
		changed = true
	}

	return changed
}
