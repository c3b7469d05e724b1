package field

import (
	"image/color"
	"math"
)

// Colormap selects how texture channels become display colors.
type Colormap int

const (
	// Signed maps channel 0 from [-scale, scale] to a dark-to-light ramp.
	Signed Colormap = iota
	// Complex maps the real part to red and the imaginary part to green.
	Complex
	// Vector maps channels 0..2 from [-scale, scale] to red, green, blue.
	Vector
	// Unit maps channel 0 from [0, 1] to grey.
	Unit
)

// MaxAbs returns the largest magnitude over the given channels, or 1 for an
// all-zero texture so it can be used directly as a display scale.
func (t *Texture) MaxAbs(channels ...int) float32 {
	var m float32
	for i := 0; i < len(t.Pix); i += Channels {
		for _, c := range channels {
			if v := float32(math.Abs(float64(t.Pix[i+c]))); v > m {
				m = v
			}
		}
	}
	if m == 0 {
		return 1
	}
	return m
}

// ToRGBA converts the texture for display, growing dst as needed.
func (t *Texture) ToRGBA(dst []color.RGBA, cm Colormap, scale float32) []color.RGBA {
	n := t.N * t.N
	if cap(dst) < n {
		dst = make([]color.RGBA, n)
	}
	dst = dst[:n]
	if scale <= 0 {
		scale = 1
	}

	for i := range dst {
		p := t.Pix[i*Channels : i*Channels+Channels]
		switch cm {
		case Signed:
			dst[i] = seaRamp(signedByte(p[0], scale))
		case Complex:
			dst[i] = color.RGBA{R: signedByte(p[0], scale), G: signedByte(p[1], scale), B: 128, A: 255}
		case Vector:
			dst[i] = color.RGBA{R: signedByte(p[0], scale), G: signedByte(p[1], scale), B: signedByte(p[2], scale), A: 255}
		case Unit:
			v := unitByte(p[0])
			dst[i] = color.RGBA{R: v, G: v, B: v, A: 255}
		}
	}
	return dst
}

// signedByte maps [-scale, scale] to [0, 255].
func signedByte(v, scale float32) uint8 {
	return unitByte(0.5 + 0.5*v/scale)
}

func unitByte(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// seaRamp shades a level from deep blue through cyan to white.
func seaRamp(v uint8) color.RGBA {
	t := float32(v) / 255
	if t < 0.5 {
		s := t / 0.5
		return color.RGBA{R: uint8(10 + s*30), G: uint8(30 + s*150), B: uint8(80 + s*120), A: 255}
	}
	s := (t - 0.5) / 0.5
	return color.RGBA{R: uint8(40 + s*215), G: uint8(180 + s*75), B: uint8(200 + s*55), A: 255}
}
