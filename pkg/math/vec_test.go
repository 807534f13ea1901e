package math

import (
	"testing"
)

func TestVec2uMid(t *testing.T) {
	a := Vec2u{0, 0}
	b := Vec2u{4, 2}
	got := a.Mid(b)
	want := Vec2u{2, 1}
	if got != want {
		t.Errorf("Vec2u.Mid() = %v, want %v", got, want)
	}
}

func TestVec2uClamp(t *testing.T) {
	tests := []struct {
		in   Vec2u
		max  uint32
		want Vec2u
	}{
		{Vec2u{0, 0}, 3, Vec2u{0, 0}},
		{Vec2u{4, 1}, 3, Vec2u{3, 1}},
		{Vec2u{2, 4}, 3, Vec2u{2, 3}},
		{Vec2u{4, 4}, 3, Vec2u{3, 3}},
	}

	for _, tc := range tests {
		if got := tc.in.Clamp(tc.max); got != tc.want {
			t.Errorf("%v.Clamp(%d) = %v, want %v", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestVec2uIndex(t *testing.T) {
	v := Vec2u{2, 1}
	if got := v.Index(3); got != 5 {
		t.Errorf("Vec2u.Index() = %d, want 5", got)
	}
}

func TestVec2uXZ(t *testing.T) {
	got := Vec2u{3, 7}.XZ(0.5)
	if want := (Vec3{3, 0.5, 7}); got != want {
		t.Errorf("Vec2u.XZ() = %v, want %v", got, want)
	}
}
