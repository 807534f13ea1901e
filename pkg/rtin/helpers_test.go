package rtin

import (
	"math/rand/v2"
	"testing"

	"github.com/Faultbox/rtin-terrain/pkg/heightmap"
	"github.com/Faultbox/rtin-terrain/pkg/math"
)

// createTestHeightmap builds a side x side heightmap from fn.
func createTestHeightmap(t *testing.T, side uint32, fn func(x, y uint32) uint16) *heightmap.Heightmap {
	t.Helper()
	pix := make([]uint16, side*side)
	for y := range side {
		for x := range side {
			pix[y*side+x] = fn(x, y)
		}
	}
	hm, err := heightmap.New(side, heightmap.Max16, pix)
	if err != nil {
		t.Fatalf("heightmap.New failed: %v", err)
	}
	return hm
}

// createRandomHeightmap returns a reproducible rough heightmap.
func createRandomHeightmap(t *testing.T, side uint32, seed uint64) *heightmap.Heightmap {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed*31+7))
	return createTestHeightmap(t, side, func(x, y uint32) uint16 {
		base := (x + y) * 256
		return uint16(base) + uint16(rng.IntN(4096))
	})
}

// createScenarioHeightmap returns the 2x2 heightmap used by the end-to-end
// scenario: (0,0)=0, (1,0)=256, (0,1)=256, (1,1)=1024.
func createScenarioHeightmap(t *testing.T) *heightmap.Heightmap {
	t.Helper()
	hm, err := heightmap.New(2, heightmap.Max16, []uint16{0, 256, 256, 1024})
	if err != nil {
		t.Fatalf("heightmap.New failed: %v", err)
	}
	return hm
}

// allTriangles returns every BinID of a heightmap side in traversal order.
func allTriangles(side uint32) []BinID {
	count := TriangleCount(side)
	ids := make([]BinID, count)
	for i := range count {
		ids[i] = IndexToBinID(i)
	}
	return ids
}

func isLeaf(id BinID, side uint32) bool {
	right, _ := id.ChildIndices()
	return right >= TriangleCount(side)
}

func approxEqual(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}

// cross2 returns the z component of (a-o) x (b-o) on the lattice.
func cross2(o, a, b math.Vec2u) int64 {
	ax, ay := int64(a.X)-int64(o.X), int64(a.Y)-int64(o.Y)
	bx, by := int64(b.X)-int64(o.X), int64(b.Y)-int64(o.Y)
	return ax*by - ay*bx
}

// normalY returns the y component of (b-a) x (c-a).
func normalY(a, b, c math.Vec3) float32 {
	ux, uz := b.X-a.X, b.Z-a.Z
	vx, vz := c.X-a.X, c.Z-a.Z
	return uz*vx - ux*vz
}
