// Package heightmap provides the square elevation grid consumed by the RTIN mesher.
package heightmap

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/Faultbox/rtin-terrain/pkg/math"
)

// Heightmap geometry errors.
var (
	ErrNotSquare     = errors.New("heightmap is not square")
	ErrNotPowerOfTwo = errors.New("heightmap side is not a power of two")
	ErrTooSmall      = errors.New("heightmap side must be at least 2")
	ErrSampleCount   = errors.New("sample count does not match side")
	ErrZeroMax       = errors.New("maximum sample value must be positive")
)

// Sample depths for common image formats.
const (
	Max16 uint16 = 0xFFFF
	Max8  uint16 = 0xFF
)

// Heightmap is an immutable square grid of elevation samples.
//
// Pixels are addressed (x, y) with row-major storage. Triangle corners live
// on the (Side+1)x(Side+1) lattice laid over the pixel grid.
type Heightmap struct {
	Side uint32
	Max  uint16
	Pix  []uint16
}

// IsPowerOfTwo reports whether w has exactly one bit set.
func IsPowerOfTwo(w uint32) bool {
	return bits.OnesCount32(w) == 1
}

// Validate checks that a width x height grid can be meshed.
func Validate(width, height uint32) error {
	if width != height {
		return fmt.Errorf("%w: %dx%d", ErrNotSquare, width, height)
	}
	if !IsPowerOfTwo(width) {
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, width)
	}
	if width < 2 {
		return fmt.Errorf("%w: %d", ErrTooSmall, width)
	}
	return nil
}

// New creates a heightmap from row-major samples.
// The slice is retained, callers must not modify it afterwards.
func New(side uint32, maxValue uint16, pix []uint16) (*Heightmap, error) {
	if err := Validate(side, side); err != nil {
		return nil, err
	}
	if maxValue == 0 {
		return nil, ErrZeroMax
	}
	if uint64(len(pix)) != uint64(side)*uint64(side) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSampleCount, len(pix), side*side)
	}
	return &Heightmap{Side: side, Max: maxValue, Pix: pix}, nil
}

// GridSize returns the side of the corner lattice.
func (h *Heightmap) GridSize() uint32 {
	return h.Side + 1
}

// At returns the raw sample at pixel (x, y).
func (h *Heightmap) At(x, y uint32) uint16 {
	return h.Pix[y*h.Side+x]
}

// Sample returns the normalized height at a lattice corner.
//
// Corners on the far edges of the lattice fall outside the pixel grid and are
// clamped to the last row/column. No interpolation is done.
func (h *Heightmap) Sample(corner math.Vec2u) float32 {
	c := corner.Clamp(h.Side - 1)
	return float32(h.At(c.X, c.Y)) / float32(h.Max)
}

// Range returns the smallest and largest raw sample.
func (h *Heightmap) Range() (lo, hi uint16) {
	lo = h.Pix[0]
	hi = h.Pix[0]
	for _, p := range h.Pix[1:] {
		lo = min(lo, p)
		hi = max(hi, p)
	}
	return lo, hi
}
