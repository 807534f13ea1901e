package rtin

import (
	"context"
	"math"
	"slices"
	"testing"
)

func TestSelect_Scenario(t *testing.T) {
	hm := createScenarioHeightmap(t)
	errs, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}

	tests := []struct {
		name      string
		threshold float32
		want      []BinID
	}{
		{"permissive", 1, []BinID{RootA, RootB}},
		{"at root error", 512.0 / 65535, []BinID{RootA, RootB}},
		{"below root error", 511.0 / 65535, []BinID{0b100, 0b101, 0b110, 0b111}},
		{"zero", 0, []BinID{0b100, 0b101, 0b110, 0b111}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Select(errs, tc.threshold)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Select(%v) = %v, want %v", tc.threshold, got, tc.want)
			}
		})
	}
}

func TestSelect_Extremes(t *testing.T) {
	const side = 16
	hm := createRandomHeightmap(t, side, 11)
	errs, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}

	coarse := Select(errs, float32(math.Inf(1)))
	if !slices.Equal(coarse, []BinID{RootA, RootB}) {
		t.Errorf("+Inf selected %v, want both roots", coarse)
	}

	fine := Select(errs, float32(math.Inf(-1)))
	if len(fine) != side*side {
		t.Fatalf("-Inf selected %d triangles, want %d", len(fine), side*side)
	}
	for _, id := range fine {
		if !isLeaf(id, side) {
			t.Fatalf("-Inf selected non-leaf %s", id)
		}
	}
}

func TestSelect_CoversGrid(t *testing.T) {
	const side = 32
	hm := createRandomHeightmap(t, side, 5)
	errs, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}

	for _, threshold := range []float32{0, 0.001, 0.01, 0.05, 0.2, 1} {
		var area int64
		seen := make(map[BinID]bool)
		for _, id := range Select(errs, threshold) {
			if seen[id] {
				t.Fatalf("threshold %v: %s selected twice", threshold, id)
			}
			seen[id] = true

			tri := Corners(id, side+1)
			area += abs64(cross2(tri.Apex, tri.A, tri.B))
		}
		if area != 2*side*side {
			t.Errorf("threshold %v: doubled area %d, want %d", threshold, area, 2*side*side)
		}
	}
}

func TestSelect_RespectsThreshold(t *testing.T) {
	const side = 16
	hm := createRandomHeightmap(t, side, 8)
	errs, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}

	const threshold = 0.02
	for _, id := range Select(errs, threshold) {
		if !isLeaf(id, side) && errs.At(id) > threshold {
			t.Fatalf("%s kept with error %v above %v", id, errs.At(id), threshold)
		}
	}
}

func TestSelect_Monotonic(t *testing.T) {
	hm := createRandomHeightmap(t, 32, 21)
	errs, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}

	prev := len(Select(errs, 0))
	for _, threshold := range []float32{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.5, 1} {
		n := len(Select(errs, threshold))
		if n > prev {
			t.Fatalf("threshold %v selected %d triangles, more than %d at a lower threshold", threshold, n, prev)
		}
		prev = n
	}
}

func TestSelect_Deterministic(t *testing.T) {
	hm := createRandomHeightmap(t, 16, 4)
	errs, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}

	first := Select(errs, 0.01)
	for range 5 {
		if got := Select(errs, 0.01); !slices.Equal(got, first) {
			t.Fatal("selection order changed between runs")
		}
	}
}

func TestSelectConcurrent(t *testing.T) {
	hm := createRandomHeightmap(t, 64, 13)
	errs, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}

	for _, threshold := range []float32{0, 0.01, 0.1, 1} {
		got, err := SelectConcurrent(context.Background(), errs, threshold)
		if err != nil {
			t.Fatalf("SelectConcurrent failed: %v", err)
		}
		if want := Select(errs, threshold); !slices.Equal(got, want) {
			t.Errorf("threshold %v: concurrent selection differs from sequential", threshold)
		}
	}
}

func TestSelectConcurrent_Cancelled(t *testing.T) {
	hm := createScenarioHeightmap(t)
	errs, err := BuildErrors(hm)
	if err != nil {
		t.Fatalf("BuildErrors failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := SelectConcurrent(ctx, errs, 0); err == nil {
		t.Error("expected error from cancelled context")
	}
}
