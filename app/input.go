package app

import (
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard input.
func (a *App) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}

	if rl.IsKeyPressed(rl.KeyV) {
		a.show3D = !a.show3D
	}

	if rl.IsKeyPressed(rl.KeyC) {
		a.controls.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyS) {
		a.saveConfig()
	}

	// Debug stepping through the FFT passes
	changed := false
	if rl.IsKeyPressed(rl.KeyD) {
		a.edit.Debug.Enabled = !a.edit.Debug.Enabled
		changed = true
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.edit.Debug.Horizontal = !a.edit.Debug.Horizontal
		changed = true
	}
	if rl.IsKeyPressed(rl.KeyRight) && a.edit.Debug.Stage < a.edit.FFT.Pow {
		a.edit.Debug.Stage++
		changed = true
	}
	if rl.IsKeyPressed(rl.KeyLeft) && a.edit.Debug.Stage > 0 {
		a.edit.Debug.Stage--
		changed = true
	}
	if changed {
		a.applyConfig()
	}
}

// saveConfig writes the config in effect next to the run output, or to the
// working directory when output is disabled.
func (a *App) saveConfig() {
	path := filepath.Join(a.output.Dir(), "ocean_config.yaml")
	if err := a.cfg.WriteYAML(path); err != nil {
		slog.Error("saving config", "error", err)
		return
	}
	slog.Info("config saved", "path", path)
}
