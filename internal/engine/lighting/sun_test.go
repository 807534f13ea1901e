package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// closeTo compares with an absolute tolerance; float32 trig leaves ~4e-8
// where exact zeros are expected.
func closeTo(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-5
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name      string
		azimuth   float32
		elevation float32
		want      mgl32.Vec3
	}{
		{"zenith", 0, 90, mgl32.Vec3{0, 1, 0}},
		{"horizon +Z", 0, 0, mgl32.Vec3{0, 0, 1}},
		{"horizon +X", 90, 0, mgl32.Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Sun{Azimuth: tt.azimuth, Elevation: tt.elevation}
			got := s.ToSun()
			if !closeTo(got, tt.want) {
				t.Errorf("ToSun() = %v, want %v", got, tt.want)
			}
			if dir := s.Direction(); !closeTo(dir, tt.want.Mul(-1)) {
				t.Errorf("Direction() = %v, want %v", dir, tt.want.Mul(-1))
			}
		})
	}
}

func TestSunDiffuse(t *testing.T) {
	s := Sun{Azimuth: 0, Elevation: 90, Ambient: 0.25}
	up := mgl32.Vec3{0, 1, 0}

	if d := s.Diffuse(up); mgl32.Abs(d-1) > 1e-5 {
		t.Errorf("facing the sun: got %v, want 1", d)
	}
	if d := s.Diffuse(up.Mul(-1)); mgl32.Abs(d-0.25) > 1e-5 {
		t.Errorf("facing away: got %v, want ambient 0.25", d)
	}

	l := DefaultSun().ToSun().Len()
	if mgl32.Abs(l-1) > 1e-5 {
		t.Errorf("ToSun should be unit length, got %v", l)
	}
}
