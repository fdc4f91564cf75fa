package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// BackgroundRenderer renders a slowly drifting haze behind the trails.
type BackgroundRenderer struct {
	shader        rl.Shader
	timeLoc       int32
	resolutionLoc int32

	width, height float32
	initialized   bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(width, height int32) *BackgroundRenderer {
	return &BackgroundRenderer{
		width:  float32(width),
		height: float32(height),
	}
}

// Init initializes the renderer (must be called after the raylib window is
// created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShader("", "shaders/background.fs")
	b.timeLoc = rl.GetShaderLocation(b.shader, "time")
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")

	resolution := []float32{b.width, b.height}
	rl.SetShaderValue(b.shader, b.resolutionLoc, resolution, rl.ShaderUniformVec2)

	b.initialized = true
}

// Resize updates the fullscreen quad and the resolution uniform.
func (b *BackgroundRenderer) Resize(width, height float32) {
	b.width = width
	b.height = height
	if b.initialized {
		resolution := []float32{b.width, b.height}
		rl.SetShaderValue(b.shader, b.resolutionLoc, resolution, rl.ShaderUniformVec2)
	}
}

// Draw renders the animated background as a fullscreen quad.
func (b *BackgroundRenderer) Draw(time float32) {
	if !b.initialized {
		b.Init()
	}

	rl.SetShaderValue(b.shader, b.timeLoc, []float32{time}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(b.shader)
	rl.DrawRectangle(0, 0, int32(b.width), int32(b.height), rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}
