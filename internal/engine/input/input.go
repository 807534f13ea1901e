// Package input translates SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is something the viewer should do in response to input.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
	ActionCoarsen // raise the error threshold
	ActionRefine  // lower the error threshold
	ActionToggleWireframe
	ActionResetCamera
	ActionScreenshot
	ActionDrag
	ActionZoom
)

// Event is a translated input event.
type Event struct {
	Action Action
	DX, DY float32 // drag delta in pixels, or wheel delta in DY
	Width  int
	Height int
}

// Input tracks mouse state across polls.
type Input struct {
	events   []Event
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Poll drains the SDL event queue. The returned slice is reused by the next
// call.
func (i *Input) Poll() []Event {
	i.events = i.events[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := i.Translate(event); ok {
			i.events = append(i.events, ev)
		}
	}
	return i.events
}

// Translate maps one SDL event to a viewer event.
func (i *Input) Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Action: ActionQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Action: ActionResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_LEFT || e.Button == sdl.BUTTON_RIGHT {
			i.dragging = e.State == sdl.PRESSED
		}

	case *sdl.MouseMotionEvent:
		if i.dragging {
			return Event{Action: ActionDrag, DX: float32(e.XRel), DY: float32(e.YRel)}, true
		}

	case *sdl.MouseWheelEvent:
		dy := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			dy = -dy
		}
		if dy != 0 {
			return Event{Action: ActionZoom, DY: dy}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			break
		}
		if a := keyAction(e.Keysym.Sym); a != ActionNone {
			return Event{Action: a}, true
		}
	}
	return Event{}, false
}

func keyAction(key sdl.Keycode) Action {
	switch key {
	case sdl.K_ESCAPE, sdl.K_q:
		return ActionQuit
	case sdl.K_PLUS, sdl.K_EQUALS, sdl.K_KP_PLUS:
		return ActionCoarsen
	case sdl.K_MINUS, sdl.K_KP_MINUS:
		return ActionRefine
	case sdl.K_w:
		return ActionToggleWireframe
	case sdl.K_r:
		return ActionResetCamera
	case sdl.K_p, sdl.K_F12:
		return ActionScreenshot
	}
	return ActionNone
}
