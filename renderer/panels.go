// Package renderer uploads the published ocean textures to the GPU and draws
// them as flat labelled panels.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fftocean/field"
	"github.com/pthm-cable/fftocean/ocean"
)

// Panel is one GPU texture mirroring a field texture.
type Panel struct {
	Name    string
	texture rl.Texture2D
	pixels  []color.RGBA
	n       int
}

func newPanel(name string, n int) *Panel {
	img := rl.GenImageColor(n, n, rl.Black)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterPoint)

	return &Panel{
		Name:    name,
		texture: tex,
		pixels:  make([]color.RGBA, n*n),
		n:       n,
	}
}

// update converts src and copies it to the GPU.
func (p *Panel) update(src *field.Texture, cm field.Colormap, scale float32) {
	p.pixels = src.ToRGBA(p.pixels, cm, scale)
	rl.UpdateTexture(p.texture, p.pixels)
}

func (p *Panel) unload() {
	rl.UnloadTexture(p.texture)
}

// Panels displays the six frame textures in a grid.
type Panels struct {
	panels []*Panel
	n      int
}

// NewPanels allocates GPU textures for an n×n grid.
// Must be called after the window is open.
func NewPanels(n int) *Panels {
	ps := &Panels{n: n}
	for _, name := range []string{"DisplaceX", "Height", "DisplaceZ", "Displace", "Normal", "Bubbles"} {
		ps.panels = append(ps.panels, newPanel(name, n))
	}
	return ps
}

// N returns the texture side the panels were created for.
func (ps *Panels) N() int { return ps.n }

// Update uploads the frame. Debug frames show complex spectra, full frames
// show the scaled spatial fields.
func (ps *Panels) Update(f *ocean.Frame) {
	for i, nt := range f.Textures() {
		ps.panels[i].update(nt.Texture, colormapFor(f.Mode, nt.Name), scaleFor(f.Mode, nt))
	}
}

func colormapFor(mode ocean.Mode, name string) field.Colormap {
	switch name {
	case "Normal":
		return field.Vector
	case "Bubbles":
		return field.Unit
	case "Displace":
		return field.Vector
	}
	if mode == ocean.DebugSpectrumView {
		return field.Complex
	}
	return field.Signed
}

func scaleFor(mode ocean.Mode, nt ocean.NamedTexture) float32 {
	switch nt.Name {
	case "Normal", "Bubbles":
		return 1
	case "Displace":
		return nt.Texture.MaxAbs(0, 1, 2)
	}
	if mode == ocean.DebugSpectrumView {
		return nt.Texture.MaxAbs(0, 1)
	}
	return nt.Texture.MaxAbs(0)
}

// Draw lays the panels out in columns inside the given rectangle.
func (ps *Panels) Draw(bounds rl.Rectangle, columns int) {
	rows := (len(ps.panels) + columns - 1) / columns
	gap := float32(8)
	label := float32(18)
	cellW := (bounds.Width - gap*float32(columns-1)) / float32(columns)
	cellH := (bounds.Height-gap*float32(rows-1))/float32(rows) - label
	size := min(cellW, cellH)

	src := rl.Rectangle{X: 0, Y: 0, Width: float32(ps.n), Height: float32(ps.n)}
	for i, p := range ps.panels {
		x := bounds.X + float32(i%columns)*(size+gap)
		y := bounds.Y + float32(i/columns)*(size+gap+label)

		rl.DrawText(p.Name, int32(x), int32(y), 14, rl.LightGray)
		dst := rl.Rectangle{X: x, Y: y + label, Width: size, Height: size}
		rl.DrawTexturePro(p.texture, src, dst, rl.Vector2{}, 0, rl.White)
		rl.DrawRectangleLinesEx(dst, 1, rl.DarkGray)
	}
}

// Unload releases GPU resources.
func (ps *Panels) Unload() {
	for _, p := range ps.panels {
		p.unload()
	}
}
