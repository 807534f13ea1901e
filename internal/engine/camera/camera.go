// Package camera provides the orbit camera used by the terrain viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/rtin-terrain/internal/terrain"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates around Center.
	Distance float32
	Pitch    float32 // radians above the horizon
	Yaw      float32 // radians around +Y

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32

	FOV       float32 // vertical field of view, degrees
	Near, Far float32

	home *view
}

// view is the part of the camera state restored by Reset.
type view struct {
	center     mgl32.Vec3
	distance   float32
	pitch, yaw float32
}

// NewOrbitCamera creates an orbit camera with default settings.
func NewOrbitCamera(fov float32) *OrbitCamera {
	return &OrbitCamera{
		Distance:        100,
		Pitch:           0.6,
		MinDistance:     1,
		MaxDistance:     10000,
		MinPitch:        0.05,
		MaxPitch:        1.55,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             fov,
		Near:            0.1,
		Far:             20000,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	cp, sp := math.Cos(float64(c.Pitch)), math.Sin(float64(c.Pitch))
	cy, sy := math.Cos(float64(c.Yaw)), math.Sin(float64(c.Yaw))
	offset := mgl32.Vec3{
		c.Distance * float32(cp*sy),
		c.Distance * float32(sp),
		c.Distance * float32(cp*cy),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProj returns projection * view.
func (c *OrbitCamera) ViewProj(aspect float32) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
}

// HandleDrag updates rotation from a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance from a scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on b and backs off far enough to see all of
// it. The resulting view is remembered for Reset.
func (c *OrbitCamera) FitToBounds(b terrain.Bounds) {
	center := b.Center()
	size := b.Size()
	c.Center = mgl32.Vec3{center[0], center[1], center[2]}

	extent := max(size[0], size[1], size[2], 1)
	halfFOV := float64(mgl32.DegToRad(c.FOV)) / 2
	c.Distance = mgl32.Clamp(extent/float32(math.Tan(halfFOV)), c.MinDistance, c.MaxDistance)
	c.Far = max(c.Far, c.Distance*4)
	c.Pitch = 0.6
	c.Yaw = 0.6

	c.home = &view{center: c.Center, distance: c.Distance, pitch: c.Pitch, yaw: c.Yaw}
}

// Reset restores the view set by the last FitToBounds.
func (c *OrbitCamera) Reset() {
	if c.home == nil {
		return
	}
	c.Center = c.home.center
	c.Distance = c.home.distance
	c.Pitch = c.home.pitch
	c.Yaw = c.home.yaw
}
