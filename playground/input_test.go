package playground

import (
	"testing"

	"github.com/oliverbestmann/shaderplay/glimpse"
	"github.com/oliverbestmann/shaderplay/glm"
	"github.com/oliverbestmann/shaderplay/gui"
)

func TestInputAdapter_MapsEvents(t *testing.T) {
	target := glimpse.NewWindowTarget(1)

	tests := []struct {
		name  string
		event glimpse.WindowEvent
		want  gui.Event
	}{
		{"cursor", glimpse.CursorMoved{WindowTarget: target, X: 10, Y: 20}, gui.PointerMovedEvent{Pos: glm.Vec2f{10, 20}}},
		{"cursor left", glimpse.CursorLeft{WindowTarget: target}, gui.PointerGoneEvent{}},
		{"right button", glimpse.MouseInput{WindowTarget: target, Button: glimpse.MouseButtonRight, Pressed: true}, gui.PointerButtonEvent{Button: gui.PointerSecondary, Pressed: true}},
		{"wheel", glimpse.MouseWheel{WindowTarget: target, DeltaY: -1}, gui.ScrollEvent{Delta: glm.Vec2f{0, -1}}},
		{"escape", glimpse.KeyboardInput{WindowTarget: target, Key: glimpse.KeyEscape, Pressed: true}, gui.KeyEvent{Key: gui.KeyEscape, Pressed: true}},
		{"character", glimpse.ReceivedCharacter{WindowTarget: target, Char: 'x'}, gui.TextEvent{Text: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewInputAdapter(1)

			if !adapter.OnEvent(tt.event) {
				t.Fatalf("OnEvent(%T) = false", tt.event)
			}

			input := adapter.TakeInput(1, 100, 100)
			if len(input.Events) != 1 {
				t.Fatalf("got %d events, want 1", len(input.Events))
			}

			if input.Events[0] != tt.want {
				t.Errorf("event = %#v, want %#v", input.Events[0], tt.want)
			}
		})
	}
}

func TestInputAdapter_IgnoresUnknown(t *testing.T) {
	adapter := NewInputAdapter(1)
	target := glimpse.NewWindowTarget(1)

	if adapter.OnEvent(glimpse.MouseInput{WindowTarget: target, Button: 7, Pressed: true}) {
		t.Error("unknown mouse button was accepted")
	}

	if adapter.OnEvent(glimpse.KeyboardInput{WindowTarget: target, Key: glimpse.KeyTab, Pressed: true}) {
		t.Error("unmapped key was accepted")
	}

	if adapter.OnEvent(glimpse.Resized{WindowTarget: target, Width: 1, Height: 1}) {
		t.Error("resize was accepted")
	}
}

func TestInputAdapter_ScaleAndPress(t *testing.T) {
	adapter := NewInputAdapter(2)
	target := glimpse.NewWindowTarget(3)

	adapter.OnEvent(glimpse.CursorMoved{WindowTarget: target, X: 40, Y: 60})
	adapter.OnEvent(glimpse.MouseInput{WindowTarget: target, Button: glimpse.MouseButtonLeft, Pressed: true})

	input := adapter.TakeInput(3, 800, 600)

	if size := input.ScreenRect.Size(); size != (glm.Vec2f{400, 300}) {
		t.Errorf("screen size = %v, want [400 300]", size)
	}

	want := gui.PointerButtonEvent{Pos: glm.Vec2f{20, 30}, Button: gui.PointerPrimary, Pressed: true}
	if input.Events[1] != want {
		t.Errorf("press = %#v, want %#v", input.Events[1], want)
	}

	if again := adapter.TakeInput(3, 800, 600); len(again.Events) != 0 {
		t.Errorf("events were delivered twice: %v", again.Events)
	}
}

func TestInputAdapter_PerWindowFocus(t *testing.T) {
	adapter := NewInputAdapter(1)

	adapter.OnEvent(glimpse.Focused{WindowTarget: glimpse.NewWindowTarget(1), Focused: false})

	if adapter.TakeInput(1, 10, 10).Focused {
		t.Error("window 1 still focused")
	}

	if !adapter.TakeInput(2, 10, 10).Focused {
		t.Error("window 2 lost focus")
	}
}

func TestContexts_Get(t *testing.T) {
	contexts := NewContexts(4, 5)

	first, ok := contexts.Get(4)
	if !ok || first == nil {
		t.Fatal("no context for window 4")
	}

	second, _ := contexts.Get(5)
	if first == second {
		t.Error("windows share a context")
	}

	if _, ok := contexts.Get(6); ok {
		t.Error("context for unknown window")
	}
}

func TestHandle(t *testing.T) {
	Handle(nil, "nothing")

	defer func() {
		if recover() == nil {
			t.Error("Handle did not panic")
		}
	}()

	Handle(errTest, "frame %d", 1)
}
