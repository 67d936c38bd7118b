package glimpse

// WindowID identifies a window created by an EventLoop.
type WindowID uint64

type MouseButton uint32

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

// Event is one of the event types defined in this package.
type Event interface {
	isEvent()
}

// WindowEvent is an Event targeted at a single window.
type WindowEvent interface {
	Event
	WindowID() WindowID
}

// WindowTarget is embedded in every window event and names the window.
type WindowTarget struct {
	Window WindowID
}

func (w WindowTarget) isEvent() {}

func (w WindowTarget) WindowID() WindowID {
	return w.Window
}

// MainEventsCleared is emitted after all pending platform events were delivered.
type MainEventsCleared struct{}

func (MainEventsCleared) isEvent() {}

// RedrawRequested is emitted once per call to Window.RequestRedraw,
// after MainEventsCleared.
type RedrawRequested struct {
	WindowTarget
}

type CloseRequested struct {
	WindowTarget
}

// Resized reports the new framebuffer size in pixels.
type Resized struct {
	WindowTarget
	Width, Height uint32
}

// CursorMoved reports the cursor position in framebuffer pixels.
type CursorMoved struct {
	WindowTarget
	X, Y float32
}

type CursorLeft struct {
	WindowTarget
}

type MouseInput struct {
	WindowTarget
	Button  MouseButton
	Pressed bool
}

type MouseWheel struct {
	WindowTarget
	DeltaX, DeltaY float32
}

type KeyboardInput struct {
	WindowTarget
	Key     Key
	Pressed bool
}

type ReceivedCharacter struct {
	WindowTarget
	Char rune
}

type Focused struct {
	WindowTarget
	Focused bool
}

func NewWindowTarget(id WindowID) WindowTarget {
	return WindowTarget{Window: id}
}
