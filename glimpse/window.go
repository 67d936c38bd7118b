package glimpse

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/webgpu/wgpuglfw"
)

func init() {
	// glfw and the webgpu surface must be driven from the main thread
	runtime.LockOSThread()
}

// EventLoop owns all windows and delivers their platform events.
type EventLoop struct {
	queue   eventQueue
	windows map[WindowID]*Window
	nextID  WindowID
}

func NewEventLoop() (*EventLoop, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	return &EventLoop{windows: map[WindowID]*Window{}}, nil
}

// Window is a native window without a client api. Render to it by creating a
// webgpu surface from SurfaceDescriptor.
type Window struct {
	id    WindowID
	win   *glfw.Window
	queue *eventQueue
}

func (l *EventLoop) CreateWindow(width, height int, title string) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	l.nextID += 1

	w := &Window{
		id:    l.nextID,
		win:   win,
		queue: &l.queue,
	}

	configureCallbacks(w)

	l.windows[w.id] = w

	return w, nil
}

// Windows returns all windows that are still open.
func (l *EventLoop) Windows() []*Window {
	windows := make([]*Window, 0, len(l.windows))
	for id := WindowID(1); id <= l.nextID; id++ {
		if w, ok := l.windows[id]; ok {
			windows = append(windows, w)
		}
	}

	return windows
}

// Run pumps platform events and hands them to the handler, one at a time,
// until the handler asks to exit or fails.
func (l *EventLoop) Run(handler Handler) error {
	for {
		glfw.PollEvents()

		l.queue.push(MainEventsCleared{})

		stop, err := l.queue.drain(handler)
		if stop {
			return err
		}
	}
}

func (l *EventLoop) Terminate() {
	for id, w := range l.windows {
		w.win.Destroy()
		delete(l.windows, id)
	}

	glfw.Terminate()
}

func (w *Window) ID() WindowID {
	return w.id
}

// InnerSize returns the size of the framebuffer in pixels.
func (w *Window) InnerSize() (uint32, uint32) {
	width, height := w.win.GetFramebufferSize()
	return uint32(max(0, width)), uint32(max(0, height))
}

// RequestRedraw enqueues a RedrawRequested event for this window. Multiple
// requests before the event is delivered are merged.
func (w *Window) RequestRedraw() {
	w.queue.requestRedraw(w.id)
}

func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.win)
}

func configureCallbacks(w *Window) {
	event := NewWindowTarget(w.id)

	w.win.SetCloseCallback(func(_ *glfw.Window) {
		w.queue.push(CloseRequested{event})
	})

	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.queue.push(Resized{
			WindowTarget: event,
			Width:       uint32(max(0, width)),
			Height:      uint32(max(0, height)),
		})
	})

	w.win.SetCursorPosCallback(func(win *glfw.Window, xpos, ypos float64) {
		// cursor positions are reported in screen coordinates,
		// scale them to framebuffer pixels.
		scaleX, scaleY := framebufferScale(win)

		w.queue.push(CursorMoved{
			WindowTarget: event,
			X:           float32(xpos * scaleX),
			Y:           float32(ypos * scaleY),
		})
	})

	w.win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			w.queue.push(CursorLeft{event})
		}
	})

	w.win.SetMouseButtonCallback(func(_ *glfw.Window, btn glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		w.queue.push(MouseInput{
			WindowTarget: event,
			Button:      MouseButton(btn),
			Pressed:     action == glfw.Press,
		})
	})

	w.win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.queue.push(MouseWheel{
			WindowTarget: event,
			DeltaX:      float32(xoff),
			DeltaY:      float32(yoff),
		})
	})

	w.win.SetKeyCallback(func(_ *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}

		w.queue.push(KeyboardInput{
			WindowTarget: event,
			Key:         keyOf(glfwKey),
			Pressed:     action == glfw.Press,
		})
	})

	w.win.SetCharCallback(func(_ *glfw.Window, char rune) {
		w.queue.push(ReceivedCharacter{WindowTarget: event, Char: char})
	})

	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.queue.push(Focused{WindowTarget: event, Focused: focused})
	})
}

func framebufferScale(win *glfw.Window) (float64, float64) {
	winWidth, winHeight := win.GetSize()
	fbWidth, fbHeight := win.GetFramebufferSize()

	if winWidth == 0 || winHeight == 0 {
		return 1, 1
	}

	return float64(fbWidth) / float64(winWidth), float64(fbHeight) / float64(winHeight)
}

var glfwToKey = map[glfw.Key]Key{
	glfw.KeyEscape:    KeyEscape,
	glfw.KeyEnter:     KeyEnter,
	glfw.KeyTab:       KeyTab,
	glfw.KeyBackspace: KeyBackspace,
	glfw.KeyDelete:    KeyDelete,
	glfw.KeyLeft:      KeyLeft,
	glfw.KeyRight:     KeyRight,
	glfw.KeyUp:        KeyUp,
	glfw.KeyDown:      KeyDown,
	glfw.KeyHome:      KeyHome,
	glfw.KeyEnd:       KeyEnd,
}

func keyOf(glfwKey glfw.Key) Key {
	key, ok := glfwToKey[glfwKey]
	if !ok {
		return KeyUnknown
	}

	return key
}
