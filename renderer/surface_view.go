package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fftocean/ocean"
)

// MaxViewRes caps the vertices per side drawn by the 3D view.
const MaxViewRes = 96

// LightState is a directional sun.
type LightState struct {
	DirX, DirY, DirZ float32 // Points towards the sun
	Ambient          float32
	Intensity        float32
}

// DefaultLight is a low sun over the wind-facing side.
var DefaultLight = LightState{DirX: 0.4, DirY: 0.8, DirZ: 0.45, Ambient: 0.25, Intensity: 0.9}

// SurfaceVertex is one displaced, shaded sample of the surface.
type SurfaceVertex struct {
	Pos   rl.Vector3
	Color rl.Color
}

var (
	deepSea = rl.Color{R: 14, G: 62, B: 104, A: 255}
	foamTop = rl.Color{R: 235, G: 242, B: 245, A: 255}
)

// BuildSurface samples res×res cells of a full-simulation frame over a patch
// of the given side length centred on the origin, into dst.
func BuildSurface(dst []SurfaceVertex, f *ocean.Frame, res int, length float32, light LightState) []SurfaceVertex {
	n := f.Displacement.N
	res = min(res, n)
	if cap(dst) < res*res {
		dst = make([]SurfaceVertex, res*res)
	}
	dst = dst[:res*res]

	lx, ly, lz := normalize3(light.DirX, light.DirY, light.DirZ)
	step := float32(n) / float32(res)

	for j := 0; j < res; j++ {
		z := int(float32(j) * step)
		for i := 0; i < res; i++ {
			x := int(float32(i) * step)
			d := f.Displacement.At(x, z)
			nm := f.Normal.At(x, z)
			foam := clampUnit(f.Foam.At(x, z)[0])

			diffuse := max(0, nm[0]*lx+nm[1]*ly+nm[2]*lz)
			shade := clampUnit(light.Ambient + light.Intensity*diffuse)

			dst[j*res+i] = SurfaceVertex{
				Pos: rl.Vector3{
					X: (float32(i)/float32(res)-0.5)*length + d[0],
					Y: d[1],
					Z: (float32(j)/float32(res)-0.5)*length + d[2],
				},
				Color: mix(scale(deepSea, shade), foamTop, foam),
			}
		}
	}
	return dst
}

// SurfaceView renders the displaced surface in 3D into an offscreen target.
type SurfaceView struct {
	target rl.RenderTexture2D
	camera rl.Camera3D
	light  LightState
	verts  []SurfaceVertex
	width  int32
	height int32
}

// NewSurfaceView creates a view of the given pixel size looking at a patch
// of side length. Must be called after the window is open.
func NewSurfaceView(width, height int32, length float32) *SurfaceView {
	return &SurfaceView{
		target: rl.LoadRenderTexture(width, height),
		camera: rl.Camera3D{
			Position:   rl.Vector3{X: length * 0.9, Y: length * 0.6, Z: length * 0.9},
			Target:     rl.Vector3{},
			Up:         rl.Vector3{Y: 1},
			Fovy:       45,
			Projection: rl.CameraPerspective,
		},
		light:  DefaultLight,
		width:  width,
		height: height,
	}
}

// Size returns the target size in pixels.
func (v *SurfaceView) Size() (int32, int32) { return v.width, v.height }

// Render draws the frame into the offscreen target. Debug frames hold
// spectra, not a surface, so the target is only cleared for them.
func (v *SurfaceView) Render(f *ocean.Frame, res int, length float32) {
	rl.UpdateCamera(&v.camera, rl.CameraOrbital)

	rl.BeginTextureMode(v.target)
	rl.ClearBackground(rl.Color{R: 170, G: 196, B: 214, A: 255})

	if f.Mode == ocean.FullSimulation {
		v.verts = BuildSurface(v.verts, f, min(res, MaxViewRes), length, v.light)
		rl.BeginMode3D(v.camera)
		rl.DisableBackfaceCulling()
		drawGrid(v.verts, int(math.Sqrt(float64(len(v.verts)))))
		rl.EnableBackfaceCulling()
		rl.EndMode3D()
	} else {
		rl.DrawText("spectrum view: surface paused", 10, 10, 16, rl.DarkGray)
	}

	rl.EndTextureMode()
}

func drawGrid(verts []SurfaceVertex, res int) {
	for j := 0; j < res-1; j++ {
		for i := 0; i < res-1; i++ {
			a := verts[j*res+i]
			b := verts[j*res+i+1]
			c := verts[(j+1)*res+i]
			d := verts[(j+1)*res+i+1]
			rl.DrawTriangle3D(a.Pos, c.Pos, b.Pos, a.Color)
			rl.DrawTriangle3D(b.Pos, c.Pos, d.Pos, d.Color)
		}
	}
}

// Draw blits the last rendered image into bounds.
func (v *SurfaceView) Draw(bounds rl.Rectangle) {
	// Render textures are stored upside down.
	src := rl.Rectangle{Width: float32(v.width), Height: -float32(v.height)}
	rl.DrawTexturePro(v.target.Texture, src, bounds, rl.Vector2{}, 0, rl.White)
	rl.DrawRectangleLinesEx(bounds, 1, rl.DarkGray)
}

// Unload releases GPU resources.
func (v *SurfaceView) Unload() {
	rl.UnloadRenderTexture(v.target)
}

func normalize3(x, y, z float32) (float32, float32, float32) {
	l := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if l == 0 {
		return 0, 1, 0
	}
	return x / l, y / l, z / l
}

func clampUnit(v float32) float32 {
	return min(max(v, 0), 1)
}

func scale(c rl.Color, s float32) rl.Color {
	return rl.Color{R: uint8(float32(c.R) * s), G: uint8(float32(c.G) * s), B: uint8(float32(c.B) * s), A: c.A}
}

func mix(a, b rl.Color, t float32) rl.Color {
	lerp := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*t) }
	return rl.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

