package playground

import (
	"sync"

	"github.com/oliverbestmann/shaderplay/glimpse"
	"github.com/oliverbestmann/shaderplay/glm"
	"github.com/oliverbestmann/shaderplay/gui"
)

// InputAdapter collects window events per window and converts them
// into gui input. Events are buffered until the next frame takes them.
type InputAdapter struct {
	mu     sync.Mutex
	scale  float32
	states map[glimpse.WindowID]*windowInput
}

type windowInput struct {
	events  []gui.Event
	pointer glm.Vec2f
	focused bool
}

func NewInputAdapter(scale float32) *InputAdapter {
	return &InputAdapter{
		scale:  max(scale, 0.1),
		states: map[glimpse.WindowID]*windowInput{},
	}
}

func (a *InputAdapter) state(id glimpse.WindowID) *windowInput {
	state, ok := a.states[id]
	if !ok {
		state = &windowInput{focused: true}
		a.states[id] = state
	}

	return state
}

// OnEvent records the event. It reports false if the
// event carries nothing the gui is interested in.
func (a *InputAdapter) OnEvent(event glimpse.WindowEvent) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := a.state(event.WindowID())

	switch ev := event.(type) {
	case glimpse.CursorMoved:
		state.pointer = glm.Vec2f{ev.X, ev.Y}.MulScalar(1 / a.scale)
		state.events = append(state.events, gui.PointerMovedEvent{Pos: state.pointer})

	case glimpse.CursorLeft:
		state.events = append(state.events, gui.PointerGoneEvent{})

	case glimpse.MouseInput:
		button, ok := pointerButtonOf(ev.Button)
		if !ok {
			return false
		}

		state.events = append(state.events, gui.PointerButtonEvent{
			Pos:     state.pointer,
			Button:  button,
			Pressed: ev.Pressed,
		})

	case glimpse.MouseWheel:
		state.events = append(state.events, gui.ScrollEvent{Delta: glm.Vec2f{ev.DeltaX, ev.DeltaY}})

	case glimpse.KeyboardInput:
		key, ok := keyOf(ev.Key)
		if !ok {
			return false
		}

		state.events = append(state.events, gui.KeyEvent{Key: key, Pressed: ev.Pressed})

	case glimpse.ReceivedCharacter:
		state.events = append(state.events, gui.TextEvent{Text: string(ev.Char)})

	case glimpse.Focused:
		state.focused = ev.Focused

	default:
		return false
	}

	return true
}

// TakeInput returns the input collected for the window since the previous
// call. width and height are the framebuffer size in pixels.
func (a *InputAdapter) TakeInput(id glimpse.WindowID, width, height uint32) gui.RawInput {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := a.state(id)

	events := state.events
	state.events = nil

	return gui.RawInput{
		ScreenRect: glm.RectangleFromSize(glm.Vec2f{}, a.ScreenSize(width, height)),
		Focused:    state.focused,
		Events:     events,
	}
}

// ScreenSize converts a framebuffer size into gui points.
func (a *InputAdapter) ScreenSize(width, height uint32) glm.Vec2f {
	return glm.Vec2f{float32(width), float32(height)}.MulScalar(1 / a.scale)
}

func pointerButtonOf(button glimpse.MouseButton) (gui.PointerButton, bool) {
	switch button {
	case glimpse.MouseButtonLeft:
		return gui.PointerPrimary, true
	case glimpse.MouseButtonRight:
		return gui.PointerSecondary, true
	case glimpse.MouseButtonMiddle:
		return gui.PointerMiddle, true
	default:
		return 0, false
	}
}

func keyOf(key glimpse.Key) (gui.Key, bool) {
	switch key {
	case glimpse.KeyEscape:
		return gui.KeyEscape, true
	case glimpse.KeyEnter:
		return gui.KeyEnter, true
	case glimpse.KeyLeft:
		return gui.KeyArrowLeft, true
	case glimpse.KeyRight:
		return gui.KeyArrowRight, true
	case glimpse.KeyUp:
		return gui.KeyArrowUp, true
	case glimpse.KeyDown:
		return gui.KeyArrowDown, true
	default:
		return 0, false
	}
}
