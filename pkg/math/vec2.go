// Package math provides small vector types shared by the terrain packages.
package math

// Vec2u is an integer coordinate on the heightmap corner lattice.
type Vec2u struct {
	X, Y uint32
}

// Mid returns the midpoint between v and other, rounded down.
func (v Vec2u) Mid(other Vec2u) Vec2u {
	return Vec2u{(v.X + other.X) >> 1, (v.Y + other.Y) >> 1}
}

// Clamp limits both components to max.
func (v Vec2u) Clamp(max uint32) Vec2u {
	if v.X > max {
		v.X = max
	}
	if v.Y > max {
		v.Y = max
	}
	return v
}

// Index returns the row-major index of v in a square grid of the given side.
func (v Vec2u) Index(side uint32) int {
	return int(v.Y)*int(side) + int(v.X)
}

// XZ lifts the lattice point into 3D at the given height.
// The lattice Y axis maps to world Z.
func (v Vec2u) XZ(height float32) Vec3 {
	return Vec3{X: float32(v.X), Y: height, Z: float32(v.Y)}
}
