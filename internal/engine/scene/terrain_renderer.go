// Package scene draws terrain meshes with OpenGL.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/rtin-terrain/internal/engine/lighting"
	"github.com/Faultbox/rtin-terrain/internal/engine/scene/shaders"
	"github.com/Faultbox/rtin-terrain/internal/engine/shader"
	"github.com/Faultbox/rtin-terrain/internal/terrain"
)

// TerrainRenderer uploads and draws a terrain.RenderMesh.
type TerrainRenderer struct {
	program *shader.Program

	locViewProj int32
	locLightDir int32
	locAmbient  int32
	locLines    int32

	vao, vbo, ebo uint32
	indexCount    int32
	lines         bool

	Sun lighting.Sun
}

// NewTerrainRenderer compiles the terrain shader. A GL context must be current.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	program, err := shader.Compile(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}

	tr := &TerrainRenderer{
		program: program,
		Sun:     lighting.DefaultSun(),
	}
	tr.locViewProj = program.MustUniform("uViewProj")
	tr.locLightDir = program.Uniform("uLightDir")
	tr.locAmbient = program.Uniform("uAmbient")
	tr.locLines = program.Uniform("uLines")

	gl.GenVertexArrays(1, &tr.vao)
	gl.GenBuffers(1, &tr.vbo)
	gl.GenBuffers(1, &tr.ebo)

	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)

	stride := int32(unsafe.Sizeof(terrain.Vertex{}))
	offsets := []struct {
		loc    uint32
		offset uintptr
	}{
		{0, unsafe.Offsetof(terrain.Vertex{}.Position)},
		{1, unsafe.Offsetof(terrain.Vertex{}.Normal)},
		{2, unsafe.Offsetof(terrain.Vertex{}.TexCoord)},
		{3, unsafe.Offsetof(terrain.Vertex{}.Color)},
	}
	for _, a := range offsets {
		gl.VertexAttribPointerWithOffset(a.loc, 3, gl.FLOAT, false, stride, a.offset)
		gl.EnableVertexAttribArray(a.loc)
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BindVertexArray(0)

	return tr, nil
}

// Upload replaces the GPU buffers with m.
func (tr *TerrainRenderer) Upload(m *terrain.RenderMesh) {
	tr.lines = m.Lines
	tr.indexCount = int32(len(m.Indices))
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		tr.indexCount = 0
		return
	}

	gl.BindVertexArray(tr.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.DYNAMIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.DYNAMIC_DRAW)

	gl.BindVertexArray(0)
}

// Render draws the uploaded mesh.
func (tr *TerrainRenderer) Render(viewProj mgl32.Mat4) {
	if tr.indexCount == 0 {
		return
	}

	tr.program.Use()
	gl.UniformMatrix4fv(tr.locViewProj, 1, false, &viewProj[0])
	dir := tr.Sun.Direction()
	gl.Uniform3f(tr.locLightDir, dir[0], dir[1], dir[2])
	gl.Uniform1f(tr.locAmbient, tr.Sun.Ambient)

	mode := uint32(gl.TRIANGLES)
	var lines int32
	if tr.lines {
		mode = gl.LINES
		lines = 1
	}
	gl.Uniform1i(tr.locLines, lines)

	gl.BindVertexArray(tr.vao)
	gl.DrawElementsWithOffset(mode, tr.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (tr *TerrainRenderer) Destroy() {
	gl.DeleteBuffers(1, &tr.ebo)
	gl.DeleteBuffers(1, &tr.vbo)
	gl.DeleteVertexArrays(1, &tr.vao)
	tr.program.Delete()
}
