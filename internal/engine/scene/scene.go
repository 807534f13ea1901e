package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/rtin-terrain/internal/engine/camera"
	"github.com/Faultbox/rtin-terrain/internal/engine/lighting"
	"github.com/Faultbox/rtin-terrain/internal/terrain"
)

// Scene renders a single terrain mesh into the default framebuffer.
type Scene struct {
	terrain *TerrainRenderer

	Background mgl32.Vec4
	Bounds     terrain.Bounds

	width, height int32
}

// New initializes OpenGL function pointers and creates the renderers.
// A GL context must be current.
func New(width, height int) (*Scene, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	tr, err := NewTerrainRenderer()
	if err != nil {
		return nil, err
	}

	s := &Scene{
		terrain:    tr,
		Background: mgl32.Vec4{0.15, 0.15, 0.2, 1},
	}
	s.Resize(width, height)
	return s, nil
}

// GLVersion returns the driver version string.
func GLVersion() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// SetMesh uploads a new mesh.
func (s *Scene) SetMesh(m *terrain.RenderMesh) {
	s.terrain.Upload(m)
	s.Bounds = m.Bounds
}

// SetSun replaces the terrain light.
func (s *Scene) SetSun(sun lighting.Sun) {
	s.terrain.Sun = sun
}

// Resize updates the viewport.
func (s *Scene) Resize(width, height int) {
	s.width, s.height = int32(width), int32(height)
	gl.Viewport(0, 0, s.width, s.height)
}

// Render clears the framebuffer and draws the terrain seen from cam.
func (s *Scene) Render(cam *camera.OrbitCamera) {
	gl.ClearColor(s.Background[0], s.Background[1], s.Background[2], s.Background[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)

	aspect := float32(1)
	if s.height > 0 {
		aspect = float32(s.width) / float32(s.height)
	}
	s.terrain.Render(cam.ViewProj(aspect))
}

// ReadPixels returns the framebuffer as bottom-up RGBA rows.
func (s *Scene) ReadPixels() ([]byte, int, int) {
	w, h := int(s.width), int(s.height)
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, s.width, s.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels, w, h
}

// Destroy releases all GPU resources.
func (s *Scene) Destroy() {
	if s.terrain != nil {
		s.terrain.Destroy()
	}
}
