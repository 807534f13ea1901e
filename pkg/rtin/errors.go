package rtin

import (
	"fmt"

	"github.com/Faultbox/rtin-terrain/pkg/heightmap"
)

// Errors holds the worst-case interpolation error of every triangle subtree,
// stored at the triangle's hypotenuse midpoint.
//
// Slots are laid out like the corner lattice: Values[y*(Side+1)+x].
type Errors struct {
	Side   uint32
	Values []float32
}

// BuildErrors computes the error vector for hm.
//
// Triangles are visited in decreasing traversal index, so every level is
// finished before the level above reads it. Triangles on one level that share
// a midpoint fold their errors into the same slot with max.
func BuildErrors(hm *heightmap.Heightmap) (*Errors, error) {
	if hm == nil {
		return nil, fmt.Errorf("rtin: nil heightmap")
	}
	if err := heightmap.Validate(hm.Side, hm.Side); err != nil {
		return nil, err
	}
	if hm.Max == 0 {
		return nil, heightmap.ErrZeroMax
	}
	if uint64(len(hm.Pix)) != uint64(hm.Side)*uint64(hm.Side) {
		return nil, fmt.Errorf("%w: got %d, want %d", heightmap.ErrSampleCount, len(hm.Pix), hm.Side*hm.Side)
	}

	side := hm.Side
	gridSize := side + 1
	count := TriangleCount(side)
	lastLevelStart := LevelStart(LevelCount(side) - 1)

	values := make([]float32, gridSize*gridSize)

	for i := int64(count) - 1; i >= 0; i-- {
		index := uint32(i)
		id := IndexToBinID(index)
		tri := decode(id, side)
		local := localError(hm, tri)

		slot := tri.Midpoint().Index(gridSize)
		checkSlot(slot, len(values), id)

		if index >= lastLevelStart {
			values[slot] = max(values[slot], local)
			continue
		}

		right, left := id.Children()
		rightSlot := ErrorIndex(right, side)
		leftSlot := ErrorIndex(left, side)
		checkSlot(rightSlot, len(values), right)
		checkSlot(leftSlot, len(values), left)

		values[slot] = max(values[slot], local, values[rightSlot], values[leftSlot])
	}

	return &Errors{Side: side, Values: values}, nil
}

// At returns the stored error of id.
func (e *Errors) At(id BinID) float32 {
	return e.Values[ErrorIndex(id, e.Side)]
}

// Local returns the interpolation error of id alone, without its subtree.
func Local(hm *heightmap.Heightmap, id BinID) float32 {
	return localError(hm, decode(id, hm.Side))
}

// localError compares the linear interpolation along the hypotenuse with the
// sampled height at its midpoint.
func localError(hm *heightmap.Heightmap, tri Triangle) float32 {
	interpolated := (hm.Sample(tri.A) + hm.Sample(tri.B)) / 2
	return absf(interpolated - hm.Sample(tri.Midpoint()))
}

// Max returns the largest stored error, which is the error of the roots.
func (e *Errors) Max() float32 {
	var m float32
	for _, v := range e.Values {
		m = max(m, v)
	}
	return m
}

func checkSlot(slot, n int, id BinID) {
	if slot < 0 || slot >= n {
		panic(fmt.Sprintf("rtin: error slot %d out of range [0,%d) for triangle %s", slot, n, id))
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
