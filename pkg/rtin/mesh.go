package rtin

import (
	"github.com/Faultbox/rtin-terrain/pkg/heightmap"
	"github.com/Faultbox/rtin-terrain/pkg/math"
)

// MeshData is an indexed triangle mesh with heights in [0,1].
type MeshData struct {
	Vertices []math.Vec3 // (x, height, y) in lattice units
	Indices  []uint32    // three per triangle
}

// TriangleCount returns the number of triangles in the mesh.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// Assemble converts selected triangles into an indexed mesh.
//
// Vertices are shared between triangles by lattice position and appear in
// first-use order. Each triangle keeps the corner order of its BinID.
func Assemble(hm *heightmap.Heightmap, ids []BinID) *MeshData {
	gridSize := hm.GridSize()

	mesh := &MeshData{
		Indices: make([]uint32, 0, len(ids)*3),
	}
	seen := make(map[int]uint32, len(ids))

	for _, id := range ids {
		for _, corner := range Corners(id, gridSize).Corners() {
			key := corner.Index(gridSize)
			index, ok := seen[key]
			if !ok {
				index = uint32(len(mesh.Vertices))
				seen[key] = index
				mesh.Vertices = append(mesh.Vertices, corner.XZ(hm.Sample(corner)))
			}
			mesh.Indices = append(mesh.Indices, index)
		}
	}

	return mesh
}

// WireframeIndices expands a triangle list into a line list holding the three
// edges of every triangle.
func WireframeIndices(indices []uint32) []uint32 {
	out := make([]uint32, 0, len(indices)*2)
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		out = append(out, a, b, b, c, c, a)
	}
	return out
}
