package export

import (
	"io"

	"github.com/Faultbox/rtin-terrain/internal/terrain"
	"github.com/Faultbox/rtin-terrain/pkg/formats"
)

// ToBinary converts m into the binary mesh representation.
func ToBinary(m *terrain.RenderMesh) *formats.Mesh {
	positions := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Position
	}
	return &formats.Mesh{
		Version:   formats.MeshVersion,
		Lines:     m.Lines,
		Threshold: m.Threshold,
		Positions: positions,
		Indices:   m.Indices,
	}
}

// WriteBinary writes m in the little-endian RTIN mesh format.
func WriteBinary(w io.Writer, m *terrain.RenderMesh) error {
	return ToBinary(m).Encode(w)
}
