package rtin

import (
	"github.com/Faultbox/rtin-terrain/pkg/heightmap"
)

// Terrain pairs a heightmap with its error vector so that meshes for several
// thresholds can be produced without rebuilding the errors.
type Terrain struct {
	Heightmap *heightmap.Heightmap
	Errors    *Errors
}

// NewTerrain builds the error vector for hm.
func NewTerrain(hm *heightmap.Heightmap) (*Terrain, error) {
	errs, err := BuildErrors(hm)
	if err != nil {
		return nil, err
	}
	return &Terrain{Heightmap: hm, Errors: errs}, nil
}

// Select returns the triangles kept at threshold.
func (t *Terrain) Select(threshold float32) []BinID {
	return Select(t.Errors, threshold)
}

// Mesh selects and assembles the mesh for threshold.
func (t *Terrain) Mesh(threshold float32) *MeshData {
	return Assemble(t.Heightmap, t.Select(threshold))
}
