package terrain

import (
	"math"

	"github.com/Faultbox/rtin-terrain/pkg/rtin"
)

// BuildRenderMesh scales an assembled RTIN mesh into world space and fills in
// the per-vertex attributes.
//
// Heights are multiplied by YScale and x/z by PixelSize. Vertex colors encode
// the height divided by the highest vertex as (cos h, sin h, h).
func BuildRenderMesh(data *rtin.MeshData, p Params) *RenderMesh {
	hi := maxHeight(data)

	vertices := make([]Vertex, len(data.Vertices))
	bounds := emptyBounds()

	for i, v := range data.Vertices {
		pos := [3]float32{v.X * p.PixelSize, v.Y * p.YScale, v.Z * p.PixelSize}
		updateBounds(&bounds, pos)

		// All-zero terrain has no scale; it stays at h = 0.
		var h float32
		if hi > 0 {
			h = v.Y / hi
		}

		vertices[i] = Vertex{
			Position: pos,
			Normal:   [3]float32{0, 1, 0},
			Color:    HeightColor(h),
		}
	}
	if len(vertices) == 0 {
		bounds = Bounds{}
	}

	indices := data.Indices
	if p.Wireframe {
		indices = rtin.WireframeIndices(data.Indices)
	}

	return &RenderMesh{
		Vertices:  vertices,
		Indices:   indices,
		Lines:     p.Wireframe,
		Triangles: data.TriangleCount(),
		Threshold: p.ErrorThreshold,
		Bounds:    bounds,
	}
}

// HeightColor maps a normalized height to the debug color (cos h, sin h, h).
func HeightColor(h float32) [3]float32 {
	return [3]float32{
		float32(math.Cos(float64(h))),
		float32(math.Sin(float64(h))),
		h,
	}
}

// maxHeight returns the highest vertex, or 0 for an empty mesh. Heights are
// never negative, so 0 is the floor of the color scale.
func maxHeight(data *rtin.MeshData) float32 {
	var hi float32
	for _, v := range data.Vertices {
		hi = max(hi, v.Y)
	}
	return hi
}

func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}
