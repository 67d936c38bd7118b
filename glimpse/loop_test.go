package glimpse

import (
	"errors"
	"testing"
)

func TestEventQueue_DrainDeliversInOrder(t *testing.T) {
	var q eventQueue
	q.push(CursorMoved{WindowTarget: NewWindowTarget(1), X: 1, Y: 2})
	q.push(MainEventsCleared{})

	var seen []Event
	stop, err := q.drain(func(ev Event) (ControlFlow, error) {
		seen = append(seen, ev)
		return ControlFlowContinue, nil
	})

	if stop || err != nil {
		t.Fatalf("drain() = %v, %v", stop, err)
	}

	if len(seen) != 2 {
		t.Fatalf("got %d events, want 2", len(seen))
	}

	if _, ok := seen[1].(MainEventsCleared); !ok {
		t.Errorf("second event = %T, want MainEventsCleared", seen[1])
	}
}

func TestEventQueue_RedrawRequestedDuringDrain(t *testing.T) {
	var q eventQueue
	w := &Window{id: 7, queue: &q}

	q.push(MainEventsCleared{})

	var redraws int
	_, err := q.drain(func(ev Event) (ControlFlow, error) {
		switch ev := ev.(type) {
		case MainEventsCleared:
			w.RequestRedraw()
			w.RequestRedraw()

		case RedrawRequested:
			if ev.WindowID() != 7 {
				t.Errorf("redraw for window %d, want 7", ev.WindowID())
			}

			redraws++
		}

		return ControlFlowContinue, nil
	})

	if err != nil {
		t.Fatal(err)
	}

	if redraws != 1 {
		t.Errorf("got %d redraws, want requests to be merged into 1", redraws)
	}

	// a new request after delivery is delivered again
	w.RequestRedraw()
	if _, ok := q.pop(); !ok {
		t.Error("expected a new redraw event")
	}
}

func TestEventQueue_Exit(t *testing.T) {
	var q eventQueue
	q.push(CloseRequested{NewWindowTarget(1)})
	q.push(MainEventsCleared{})

	var calls int
	stop, err := q.drain(func(ev Event) (ControlFlow, error) {
		calls++
		if _, ok := ev.(CloseRequested); ok {
			return ControlFlowExit, nil
		}

		return ControlFlowContinue, nil
	})

	if !stop || err != nil {
		t.Errorf("drain() = %v, %v, want stop without error", stop, err)
	}

	if calls != 1 {
		t.Errorf("handler called %d times after exit, want 1", calls)
	}
}

func TestEventQueue_ErrorStops(t *testing.T) {
	var q eventQueue
	q.push(MainEventsCleared{})

	errFatal := errors.New("fatal")

	stop, err := q.drain(func(ev Event) (ControlFlow, error) {
		return ControlFlowContinue, errFatal
	})

	if !stop || !errors.Is(err, errFatal) {
		t.Errorf("drain() = %v, %v", stop, err)
	}
}

func TestKey_String(t *testing.T) {
	if KeyEscape.String() != "Escape" {
		t.Errorf("KeyEscape.String() = %q", KeyEscape.String())
	}

	if Key(999).String() != "Unknown" {
		t.Errorf("Key(999).String() = %q", Key(999).String())
	}
}
