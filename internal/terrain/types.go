// Package terrain turns heightmaps into render-ready RTIN meshes.
package terrain

import "github.com/Faultbox/rtin-terrain/internal/config"

// Vertex represents a render mesh vertex with all attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [3]float32
	Color    [3]float32
}

// RenderMesh holds mesh data ready for GPU upload or export.
type RenderMesh struct {
	Vertices []Vertex
	Indices  []uint32
	// Lines is set when Indices is a line list (two per edge) rather than a
	// triangle list.
	Lines     bool
	Triangles int
	Threshold float32
	Bounds    Bounds
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() [3]float32 {
	return [3]float32{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// Params controls triangle selection and the world transform of the mesh.
type Params struct {
	ErrorThreshold float32
	YScale         float32
	PixelSize      float32
	Wireframe      bool
}

// ParamsFromConfig copies the terrain section of a config.
func ParamsFromConfig(c config.TerrainConfig) Params {
	return Params{
		ErrorThreshold: c.ErrorThreshold,
		YScale:         c.YScale,
		PixelSize:      c.PixelSize,
		Wireframe:      c.Wireframe,
	}
}
