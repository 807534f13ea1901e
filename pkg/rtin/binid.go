// Package rtin builds adaptive terrain meshes with Right-Triangulated
// Irregular Networks.
//
// The square heightmap is covered by a complete binary tree of right
// isosceles triangles. The tree is never materialized: every triangle is
// named by a BinID and all geometry is derived from that integer.
package rtin

import (
	"fmt"
	"math/bits"

	"github.com/Faultbox/rtin-terrain/pkg/math"
)

// BinID names one triangle of the bintree.
//
// The leading one bit marks the length of the path. The bit right after it
// selects one of the two roots, and every following bit selects the right (0)
// or left (1) child. A triangle at level L therefore has a bit length of L+2.
type BinID uint32

// Root triangles covering the two halves of the grid split along its
// (0,0)-(S,S) diagonal.
const (
	RootA BinID = 0b10
	RootB BinID = 0b11
)

// Triangle holds the lattice corners of one bintree triangle.
type Triangle struct {
	Apex math.Vec2u // right-angle corner
	A    math.Vec2u // first hypotenuse end
	B    math.Vec2u // second hypotenuse end
}

// Corners returns the triangle corners in emission order.
func (t Triangle) Corners() [3]math.Vec2u {
	return [3]math.Vec2u{t.Apex, t.A, t.B}
}

// Midpoint returns the midpoint of the hypotenuse.
func (t Triangle) Midpoint() math.Vec2u {
	return t.A.Mid(t.B)
}

// IndexToBinID converts a breadth-first traversal index to a BinID.
func IndexToBinID(index uint32) BinID {
	return BinID(index + 2)
}

// Index returns the breadth-first traversal index of the triangle.
func (id BinID) Index() uint32 {
	return uint32(id) - 2
}

// Level returns the depth of the triangle, 0 for the roots.
func (id BinID) Level() int {
	return bits.Len32(uint32(id)) - 2
}

// Children returns the right and left child ids.
func (id BinID) Children() (right, left BinID) {
	return id << 1, id<<1 | 1
}

// ChildIndices returns the traversal indices of both children.
// Callers compare them against TriangleCount to detect leaves.
func (id BinID) ChildIndices() (right, left uint32) {
	r, l := id.Children()
	return r.Index(), l.Index()
}

// String formats the id as its binary path.
func (id BinID) String() string {
	return fmt.Sprintf("%b", uint32(id))
}

// LevelStart returns the first traversal index on the given level.
func LevelStart(level int) uint32 {
	return 1<<(level+1) - 2
}

// LevelCount returns the number of bintree levels for a heightmap side.
// The finest level is LevelCount(side)-1.
func LevelCount(side uint32) int {
	return 2 * (bits.Len32(side) - 1)
}

// TriangleCount returns the number of triangles on all levels.
func TriangleCount(side uint32) uint32 {
	return 2*side*side - 2
}

// Corners returns the triangle for id on a corner lattice of gridSize points
// per side (heightmap side + 1).
func Corners(id BinID, gridSize uint32) Triangle {
	return decode(id, gridSize-1)
}

// Midpoint returns the hypotenuse midpoint of id for a heightmap side.
func Midpoint(id BinID, side uint32) math.Vec2u {
	return decode(id, side).Midpoint()
}

// ErrorIndex returns the error vector slot of id for a heightmap side.
func ErrorIndex(id BinID, side uint32) int {
	return Midpoint(id, side).Index(side + 1)
}

// decode walks the path bits of id from the root down.
//
// Every triangle keeps the winding of its root: a negative 2D cross product
// of (A-Apex, B-Apex), which is counter-clockwise seen from +Y once lattice
// points are lifted to (x, h, y).
func decode(id BinID, size uint32) Triangle {
	n := bits.Len32(uint32(id))
	if n < 2 {
		panic(fmt.Sprintf("rtin: invalid bin id %d", uint32(id)))
	}

	var t Triangle
	if id>>(n-2)&1 == 0 {
		t = Triangle{
			Apex: math.Vec2u{X: size, Y: 0},
			A:    math.Vec2u{X: 0, Y: 0},
			B:    math.Vec2u{X: size, Y: size},
		}
	} else {
		t = Triangle{
			Apex: math.Vec2u{X: 0, Y: size},
			A:    math.Vec2u{X: size, Y: size},
			B:    math.Vec2u{X: 0, Y: 0},
		}
	}

	for bit := n - 3; bit >= 0; bit-- {
		m := t.Midpoint()
		if id>>bit&1 == 0 {
			t = Triangle{Apex: m, A: t.Apex, B: t.A}
		} else {
			t = Triangle{Apex: m, A: t.B, B: t.Apex}
		}
	}
	return t
}
