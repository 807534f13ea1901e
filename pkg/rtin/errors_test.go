package rtin

import (
	"errors"
	"testing"

	"github.com/Faultbox/rtin-terrain/pkg/heightmap"
)

func TestBuildErrors_Scenario(t *testing.T) {
	hm := createScenarioHeightmap(t)

	errs, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}

	if len(errs.Values) != 9 {
		t.Fatalf("expected (2+1)^2 = 9 slots, got %d", len(errs.Values))
	}

	// Derived by hand from the bottom-up pass, in raw sample units:
	//   (1,0): |(256+0)/2 - 256|      = 128
	//   (2,1): |(1024+256)/2 - 1024|  = 384
	//   (1,2): |(256+1024)/2 - 1024|  = 384
	//   (0,1): |(0+256)/2 - 256|      = 128
	//   (1,1): max(|(0+1024)/2 - 1024|, children) = 512
	raw := []float32{
		0, 128, 0,
		128, 512, 384,
		0, 384, 0,
	}
	for i, r := range raw {
		want := r / float32(heightmap.Max16)
		if !approxEqual(errs.Values[i], want) {
			t.Errorf("slot %d: got %v, want %v", i, errs.Values[i], want)
		}
	}

	if !approxEqual(errs.At(RootA), 512/float32(heightmap.Max16)) {
		t.Errorf("root error = %v", errs.At(RootA))
	}
	if errs.Max() != errs.At(RootA) {
		t.Errorf("Max() = %v, want root error %v", errs.Max(), errs.At(RootA))
	}
}

func TestBuildErrors_Reproducible(t *testing.T) {
	hm := createRandomHeightmap(t, 16, 3)

	a, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}
	b, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}

	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			t.Fatalf("slot %d differs between runs: %v vs %v", i, a.Values[i], b.Values[i])
		}
	}
}

func TestBuildErrors_Propagation(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3} {
		const side = 16
		hm := createRandomHeightmap(t, side, seed)

		errs, err := BuildErrors(hm)
		if err != nil {
			t.Fatalf("BuildErrors failed: %v", err)
		}

		// Every triangle sharing a slot contributes to it.
		expected := make(map[int]float32)
		for _, id := range allTriangles(side) {
			v := Local(hm, id)
			if !isLeaf(id, side) {
				right, left := id.Children()
				v = max(v, errs.At(right), errs.At(left))

				if errs.At(id) < v {
					t.Fatalf("seed %d: triangle %s error %v below subtree bound %v", seed, id, errs.At(id), v)
				}
			}
			slot := ErrorIndex(id, side)
			expected[slot] = max(expected[slot], v)
		}

		for slot, want := range expected {
			if errs.Values[slot] != want {
				t.Fatalf("seed %d: slot %d = %v, want %v", seed, slot, errs.Values[slot], want)
			}
		}
	}
}

func TestBuildErrors_Flat(t *testing.T) {
	hm := createTestHeightmap(t, 8, func(x, y uint32) uint16 { return 5000 })

	errs, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}
	for i, v := range errs.Values {
		if v != 0 {
			t.Fatalf("slot %d: expected 0 on flat terrain, got %v", i, v)
		}
	}
}

func TestBuildErrors_NonNegative(t *testing.T) {
	hm := createRandomHeightmap(t, 32, 9)
	errs, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}
	for i, v := range errs.Values {
		if v < 0 || v > 1 {
			t.Fatalf("slot %d: error %v outside [0,1]", i, v)
		}
	}
}

func TestBuildErrors_Invalid(t *testing.T) {
	if _, err := BuildErrors(nil); err == nil {
		t.Error("expected error for nil heightmap")
	}

	tests := []struct {
		name string
		hm   *heightmap.Heightmap
		want error
	}{
		{"side 3", &heightmap.Heightmap{Side: 3, Max: heightmap.Max16, Pix: make([]uint16, 9)}, heightmap.ErrNotPowerOfTwo},
		{"zero max", &heightmap.Heightmap{Side: 4, Max: 0, Pix: make([]uint16, 16)}, heightmap.ErrZeroMax},
		{"short pix", &heightmap.Heightmap{Side: 4, Max: heightmap.Max16, Pix: make([]uint16, 15)}, heightmap.ErrSampleCount},
		{"long pix", &heightmap.Heightmap{Side: 2, Max: heightmap.Max8, Pix: make([]uint16, 5)}, heightmap.ErrSampleCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := BuildErrors(tt.hm)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if errs != nil {
				t.Error("expected no error vector on invalid input")
			}
		})
	}
}
