package export

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/Faultbox/rtin-terrain/internal/terrain"
)

// Number of height bands the preview fill is quantized to. Each band is one
// rasterizer pass.
const previewBands = 32

var (
	previewBackground = color.RGBA{R: 24, G: 24, B: 28, A: 255}
	previewEdge       = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	previewLine       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
)

// ErrEmptyMesh is returned when there is nothing to draw.
var ErrEmptyMesh = errors.New("mesh has no vertices")

// Preview draws the top-down view of m into a size x size image.
//
// Triangles are filled with their height color and outlined so the
// triangulation is visible. Wireframe meshes only draw their lines.
func Preview(m *terrain.RenderMesh, size int) (*image.RGBA, error) {
	if len(m.Vertices) == 0 {
		return nil, ErrEmptyMesh
	}
	if size <= 0 {
		return nil, errors.New("preview size must be positive")
	}

	ext := m.Bounds.Size()
	scale := float32(size) / max(ext[0], ext[2], 1e-6)
	project := func(idx uint32) (float32, float32) {
		p := m.Vertices[idx].Position
		return (p[0] - m.Bounds.Min[0]) * scale, (p[2] - m.Bounds.Min[2]) * scale
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(previewBackground), image.Point{}, draw.Src)

	r := vector.NewRasterizer(size, size)
	r.DrawOp = draw.Over

	if m.Lines {
		for i := 0; i+1 < len(m.Indices); i += 2 {
			ax, ay := project(m.Indices[i])
			bx, by := project(m.Indices[i+1])
			strokeLine(r, ax, ay, bx, by, 0.5)
		}
		r.Draw(img, img.Bounds(), image.NewUniform(previewLine), image.Point{})
		return img, nil
	}

	// Group triangles by band so every band is rasterized once.
	var bands [previewBands][]int
	for i := 0; i+2 < len(m.Indices); i += 3 {
		h := (m.Vertices[m.Indices[i]].Color[2] +
			m.Vertices[m.Indices[i+1]].Color[2] +
			m.Vertices[m.Indices[i+2]].Color[2]) / 3
		b := min(int(h*previewBands), previewBands-1)
		bands[b] = append(bands[b], i)
	}

	for b, tris := range bands {
		if len(tris) == 0 {
			continue
		}
		r.Reset(size, size)
		for _, i := range tris {
			ax, ay := project(m.Indices[i])
			bx, by := project(m.Indices[i+1])
			cx, cy := project(m.Indices[i+2])
			r.MoveTo(ax, ay)
			r.LineTo(bx, by)
			r.LineTo(cx, cy)
			r.ClosePath()
		}
		h := (float32(b) + 0.5) / previewBands
		r.Draw(img, img.Bounds(), image.NewUniform(toRGBA(terrain.HeightColor(h))), image.Point{})
	}

	r.Reset(size, size)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ax, ay := project(m.Indices[i])
		bx, by := project(m.Indices[i+1])
		cx, cy := project(m.Indices[i+2])
		strokeLine(r, ax, ay, bx, by, 0.35)
		strokeLine(r, bx, by, cx, cy, 0.35)
		strokeLine(r, cx, cy, ax, ay, 0.35)
	}
	r.Draw(img, img.Bounds(), image.NewUniform(previewEdge), image.Point{})

	return img, nil
}

// WritePreview encodes the preview of m as PNG.
func WritePreview(w io.Writer, m *terrain.RenderMesh, size int) error {
	img, err := Preview(m, size)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// strokeLine adds a quad of half-width hw around segment a-b. Every quad has
// the same orientation so overlapping strokes do not cancel.
func strokeLine(r *vector.Rasterizer, ax, ay, bx, by, hw float32) {
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	r.MoveTo(ax+nx, ay+ny)
	r.LineTo(bx+nx, by+ny)
	r.LineTo(bx-nx, by-ny)
	r.LineTo(ax-nx, ay-ny)
	r.ClosePath()
}

func toRGBA(c [3]float32) color.RGBA {
	ch := func(v float32) uint8 {
		return uint8(min(max(v, 0), 1)*255 + 0.5)
	}
	return color.RGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: 255}
}
