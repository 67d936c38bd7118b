package glimpse

import "log/slog"

type ControlFlow int

const (
	ControlFlowContinue ControlFlow = iota
	ControlFlowExit
)

// Handler is called for every event. Returning an error or ControlFlowExit
// stops the event loop.
type Handler func(ev Event) (ControlFlow, error)

// eventQueue buffers events produced by platform callbacks until the
// loop delivers them.
type eventQueue struct {
	events []Event

	// windows with a RedrawRequested event in the queue
	pendingRedraw map[WindowID]bool
}

func (q *eventQueue) push(ev Event) {
	q.events = append(q.events, ev)
}

func (q *eventQueue) requestRedraw(id WindowID) {
	if q.pendingRedraw[id] {
		return
	}

	if q.pendingRedraw == nil {
		q.pendingRedraw = map[WindowID]bool{}
	}

	q.pendingRedraw[id] = true
	q.push(RedrawRequested{NewWindowTarget(id)})
}

func (q *eventQueue) pop() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}

	ev := q.events[0]

	q.events[0] = nil
	q.events = q.events[1:]

	if redraw, ok := ev.(RedrawRequested); ok {
		delete(q.pendingRedraw, redraw.Window)
	}

	return ev, true
}

// drain delivers all queued events, including events queued by the handler
// while draining. Returns true if the loop should stop.
func (q *eventQueue) drain(handler Handler) (bool, error) {
	for {
		ev, ok := q.pop()
		if !ok {
			return false, nil
		}

		flow, err := handler(ev)
		if err != nil {
			return true, err
		}

		if flow == ControlFlowExit {
			slog.Debug("Event loop exit requested")
			return true, nil
		}
	}
}
