package ocean

import (
	"github.com/pthm-cable/fftocean/fft"
	"github.com/pthm-cable/fftocean/field"
)

// Mode is the publication mode of a frame, chosen fresh every tick from
// debug.enabled.
type Mode int

const (
	FullSimulation Mode = iota
	DebugSpectrumView
)

func (m Mode) String() string {
	switch m {
	case FullSimulation:
		return "full"
	case DebugSpectrumView:
		return "debug"
	default:
		return "unknown"
	}
}

// Frame is what one tick publishes.
//
// In FullSimulation mode Displacement, Normal and Foam are fresh and Height,
// DisplaceX and DisplaceZ hold the scaled spatial fields as (v, v, v, 0).
// In DebugSpectrumView mode Height, DisplaceX and DisplaceZ hold the
// partially transformed complex fields as (re, im, 0, 0), and the other
// three keep their values from the last full tick.
type Frame struct {
	Mode Mode
	Tick int32
	Time float64

	// Debug progress: the axis of the last FFT pass and passes run on it
	Axis   fft.Axis
	Passes int

	Displacement *field.Texture
	Normal       *field.Texture
	Foam         *field.Texture

	Height    *field.Texture
	DisplaceX *field.Texture
	DisplaceZ *field.Texture
}

func newFrame(n int) Frame {
	return Frame{
		Displacement: field.NewTexture(n),
		Normal:       field.NewTexture(n),
		Foam:         field.NewTexture(n),
		Height:       field.NewTexture(n),
		DisplaceX:    field.NewTexture(n),
		DisplaceZ:    field.NewTexture(n),
	}
}

// Textures returns the six textures in display order with their names.
func (f *Frame) Textures() []NamedTexture {
	return []NamedTexture{
		{"DisplaceX", f.DisplaceX},
		{"Height", f.Height},
		{"DisplaceZ", f.DisplaceZ},
		{"Displace", f.Displacement},
		{"Normal", f.Normal},
		{"Bubbles", f.Foam},
	}
}

// NamedTexture pairs a texture with its display label.
type NamedTexture struct {
	Name    string
	Texture *field.Texture
}
