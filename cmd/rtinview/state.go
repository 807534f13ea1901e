package main

import "fmt"

// minThreshold is the smallest nonzero threshold the +/- keys reach. Refining
// below it snaps to zero, the full-resolution mesh.
const minThreshold = 1e-4

// viewState is the part of the viewer that reacts to keys and decides when
// the mesh must be rebuilt.
type viewState struct {
	name      string
	threshold float32
	step      float32
	wireframe bool
	triangles int
	dirty     bool
}

func newViewState(name string, threshold, step float32, wireframe bool) *viewState {
	return &viewState{
		name:      name,
		threshold: threshold,
		step:      step,
		wireframe: wireframe,
		dirty:     true,
	}
}

// coarsen raises the threshold by one step.
func (s *viewState) coarsen() {
	if s.threshold < minThreshold {
		s.threshold = minThreshold
	} else {
		s.threshold *= s.step
	}
	s.dirty = true
}

// refine lowers the threshold by one step. Reports false when already at zero.
func (s *viewState) refine() bool {
	if s.threshold == 0 {
		return false
	}
	s.threshold /= s.step
	if s.threshold < minThreshold {
		s.threshold = 0
	}
	s.dirty = true
	return true
}

func (s *viewState) toggleWireframe() {
	s.wireframe = !s.wireframe
	s.dirty = true
}

func (s *viewState) title() string {
	mode := "solid"
	if s.wireframe {
		mode = "wireframe"
	}
	return fmt.Sprintf("rtinview - %s - threshold %.4f - %d triangles (%s)",
		s.name, s.threshold, s.triangles, mode)
}
