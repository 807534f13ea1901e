package terrain

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/rtin-terrain/internal/logger"
	"github.com/Faultbox/rtin-terrain/pkg/heightmap"
	"github.com/Faultbox/rtin-terrain/pkg/rtin"
)

// Source is a loaded heightmap with its error vector cached, ready to be
// meshed at any threshold.
type Source struct {
	Name    string
	Terrain *rtin.Terrain
}

// Stats summarizes a source for display.
type Stats struct {
	Side          uint32
	MaxSample     uint16
	Low, High     uint16
	Levels        int
	TriangleCount uint32
	MaxError      float32
}

// Open decodes the heightmap at path and builds its error vector.
func Open(path string) (*Source, error) {
	start := time.Now()
	hm, err := heightmap.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading heightmap: %w", err)
	}
	logger.Timed("decoded heightmap", start,
		zap.String("path", path),
		zap.Uint32("side", hm.Side),
		zap.Uint16("max", hm.Max))

	return New(path, hm)
}

// New builds the error vector for an already decoded heightmap.
func New(name string, hm *heightmap.Heightmap) (*Source, error) {
	start := time.Now()
	t, err := rtin.NewTerrain(hm)
	if err != nil {
		return nil, fmt.Errorf("building errors for %s: %w", name, err)
	}
	logger.Timed("built error vector", start,
		zap.String("source", name),
		zap.Float32("max_error", t.Errors.Max()))

	return &Source{Name: name, Terrain: t}, nil
}

// Heightmap returns the underlying heightmap.
func (s *Source) Heightmap() *heightmap.Heightmap {
	return s.Terrain.Heightmap
}

// Stats reports size and error figures of the source.
func (s *Source) Stats() Stats {
	hm := s.Terrain.Heightmap
	lo, hi := hm.Range()
	return Stats{
		Side:          hm.Side,
		MaxSample:     hm.Max,
		Low:           lo,
		High:          hi,
		Levels:        rtin.LevelCount(hm.Side),
		TriangleCount: rtin.TriangleCount(hm.Side),
		MaxError:      s.Terrain.Errors.Max(),
	}
}

// Select returns the triangles kept at threshold, walking both roots
// concurrently.
func (s *Source) Select(ctx context.Context, threshold float32) ([]rtin.BinID, error) {
	return rtin.SelectConcurrent(ctx, s.Terrain.Errors, threshold)
}

// Mesh selects triangles for threshold and assembles the indexed mesh.
func (s *Source) Mesh(ctx context.Context, threshold float32) (*rtin.MeshData, error) {
	ids, err := s.Select(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return rtin.Assemble(s.Terrain.Heightmap, ids), nil
}

// Build produces the render mesh for p.
func (s *Source) Build(ctx context.Context, p Params) (*RenderMesh, error) {
	start := time.Now()
	data, err := s.Mesh(ctx, p.ErrorThreshold)
	if err != nil {
		return nil, err
	}
	mesh := BuildRenderMesh(data, p)

	logger.Timed("built render mesh", start,
		zap.Float32("threshold", p.ErrorThreshold),
		zap.Int("triangles", mesh.Triangles),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Bool("wireframe", p.Wireframe))
	return mesh, nil
}
