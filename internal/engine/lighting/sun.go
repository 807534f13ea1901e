// Package lighting provides the directional light used to shade terrain.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sun is a directional light placed by compass angles.
type Sun struct {
	Azimuth   float32 // degrees around +Y, 0 along +Z
	Elevation float32 // degrees above the horizon
	Ambient   float32 // light level of faces turned away, 0..1
}

// DefaultSun returns a low afternoon sun that brings out relief.
func DefaultSun() Sun {
	return Sun{Azimuth: 225, Elevation: 45, Ambient: 0.35}
}

// ToSun returns the normalized vector pointing from the scene towards the sun.
func (s Sun) ToSun() mgl32.Vec3 {
	az := float64(mgl32.DegToRad(s.Azimuth))
	el := float64(mgl32.DegToRad(s.Elevation))
	return mgl32.Vec3{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
}

// Direction returns the direction the light travels, as used by the shader.
func (s Sun) Direction() mgl32.Vec3 {
	return s.ToSun().Mul(-1)
}

// Diffuse is the light factor for a surface with unit normal n.
func (s Sun) Diffuse(n mgl32.Vec3) float32 {
	d := max(n.Dot(s.ToSun()), 0)
	return s.Ambient + (1-s.Ambient)*d
}
