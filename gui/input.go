package gui

import "github.com/oliverbestmann/shaderplay/glm"

type PointerButton int

const (
	PointerPrimary PointerButton = iota
	PointerSecondary
	PointerMiddle

	numPointerButtons
)

type Key int

const (
	KeyEscape Key = iota + 1
	KeyEnter
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
)

// Event is an input event collected by the platform integration.
type Event interface {
	isEvent()
}

type PointerMovedEvent struct {
	Pos glm.Vec2f
}

type PointerButtonEvent struct {
	Pos     glm.Vec2f
	Button  PointerButton
	Pressed bool
}

// PointerGoneEvent is sent when the pointer left the window.
type PointerGoneEvent struct{}

type ScrollEvent struct {
	Delta glm.Vec2f
}

type KeyEvent struct {
	Key     Key
	Pressed bool
}

type TextEvent struct {
	Text string
}

func (PointerMovedEvent) isEvent()  {}
func (PointerButtonEvent) isEvent() {}
func (PointerGoneEvent) isEvent()   {}
func (ScrollEvent) isEvent()        {}
func (KeyEvent) isEvent()           {}
func (TextEvent) isEvent()          {}

// RawInput is everything the platform collected since the previous frame.
type RawInput struct {
	// area available to the gui, in points
	ScreenRect glm.Rectf

	Focused bool

	Events []Event
}

// PointerState is the state of the mouse pointer in the current frame.
type PointerState struct {
	Pos    glm.Vec2f
	HasPos bool

	// movement since the previous frame
	Delta glm.Vec2f

	down     [numPointerButtons]bool
	pressed  [numPointerButtons]bool
	released [numPointerButtons]bool
}

func (p *PointerState) Down(button PointerButton) bool {
	return p.down[button]
}

// Pressed reports if the button went down during this frame.
func (p *PointerState) Pressed(button PointerButton) bool {
	return p.pressed[button]
}

// Released reports if the button went up during this frame.
func (p *PointerState) Released(button PointerButton) bool {
	return p.released[button]
}

// InputState is the processed input for the current frame.
type InputState struct {
	ScreenRect glm.Rectf
	Focused    bool

	Pointer PointerState

	ScrollDelta glm.Vec2f
	Text        string

	keysDown    map[Key]bool
	keysPressed map[Key]bool
}

func (s *InputState) KeyPressed(key Key) bool {
	return s.keysPressed[key]
}

func (s *InputState) KeyDown(key Key) bool {
	return s.keysDown[key]
}

func (s *InputState) begin(raw RawInput) {
	prevPos, prevHasPos := s.Pointer.Pos, s.Pointer.HasPos

	s.ScreenRect = raw.ScreenRect
	s.Focused = raw.Focused
	s.ScrollDelta = glm.Vec2f{}
	s.Text = ""

	s.Pointer.Delta = glm.Vec2f{}
	clear(s.Pointer.pressed[:])
	clear(s.Pointer.released[:])

	if s.keysDown == nil {
		s.keysDown = map[Key]bool{}
		s.keysPressed = map[Key]bool{}
	}

	clear(s.keysPressed)

	for _, ev := range raw.Events {
		switch ev := ev.(type) {
		case PointerMovedEvent:
			s.Pointer.Pos = ev.Pos
			s.Pointer.HasPos = true

		case PointerButtonEvent:
			s.Pointer.Pos = ev.Pos
			s.Pointer.HasPos = true

			if ev.Pressed {
				s.Pointer.pressed[ev.Button] = true
			} else {
				s.Pointer.released[ev.Button] = true
			}

			s.Pointer.down[ev.Button] = ev.Pressed

		case PointerGoneEvent:
			s.Pointer.HasPos = false

		case ScrollEvent:
			s.ScrollDelta = s.ScrollDelta.Add(ev.Delta)

		case KeyEvent:
			if ev.Pressed && !s.keysDown[ev.Key] {
				s.keysPressed[ev.Key] = true
			}

			s.keysDown[ev.Key] = ev.Pressed

		case TextEvent:
			s.Text += ev.Text
		}
	}

	if prevHasPos && s.Pointer.HasPos {
		s.Pointer.Delta = s.Pointer.Pos.Sub(prevPos)
	}
}
