// Package export writes terrain render meshes to files.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/rtin-terrain/internal/terrain"
)

// WriteOBJ writes m as a Wavefront OBJ file.
//
// Triangle meshes produce "f v//vn" faces and wireframe meshes produce "l"
// lines. Indices are 1-based as the format requires.
func WriteOBJ(w io.Writer, m *terrain.RenderMesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# rtin terrain mesh\n")
	fmt.Fprintf(bw, "# threshold %g, %d vertices, %d triangles\n", m.Threshold, len(m.Vertices), m.Triangles)
	fmt.Fprintf(bw, "o terrain\n")

	for _, v := range m.Vertices {
		p := v.Position
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, v := range m.Vertices {
		n := v.Normal
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}

	if m.Lines {
		for i := 0; i+1 < len(m.Indices); i += 2 {
			fmt.Fprintf(bw, "l %d %d\n", m.Indices[i]+1, m.Indices[i+1]+1)
		}
	} else {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		}
	}

	return bw.Flush()
}
