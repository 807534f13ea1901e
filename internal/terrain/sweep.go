package terrain

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/rtin-terrain/internal/logger"
	"github.com/Faultbox/rtin-terrain/pkg/rtin"
)

// SweepResult is the mesh size produced by one threshold.
type SweepResult struct {
	Threshold float32
	Triangles int
	Vertices  int
}

// Sweep meshes the source at every threshold, running at most workers
// selections at a time against the shared error vector. Results keep the
// order of thresholds.
func (s *Source) Sweep(ctx context.Context, thresholds []float32, workers int) ([]SweepResult, error) {
	results := make([]SweepResult, len(thresholds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, threshold := range thresholds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ids := rtin.Select(s.Terrain.Errors, threshold)
			mesh := rtin.Assemble(s.Terrain.Heightmap, ids)
			results[i] = SweepResult{
				Threshold: threshold,
				Triangles: mesh.TriangleCount(),
				Vertices:  len(mesh.Vertices),
			}
			logger.Debug("sweep step",
				zap.Float32("threshold", threshold),
				zap.Int("triangles", results[i].Triangles))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
