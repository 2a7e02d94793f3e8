package traykit

import "sync"

// Event is an outcome of a completed user interaction with the tray menu,
// produced by presentation-layer callbacks and consumed by the application
// thread via [TrayIcon.DrainEvents].
//
// The set of implementations is closed: [Activated], [CheckmarkToggled], and
// [RadioSelected].
type Event interface {
	trayEvent()
}

// Activated reports that a standard menu item was clicked.
type Activated struct {
	// ID of the activated item.
	ID string
}

// CheckmarkToggled reports that a checkmark item was toggled.
type CheckmarkToggled struct {
	// ID of the checkmark item.
	ID string

	// New checked state after the toggle.
	Checked bool
}

// RadioSelected reports that a radio option was selected.
type RadioSelected struct {
	// ID of the radio group.
	GroupID string

	// Index of the selected option within the group.
	Index int

	// ID of the selected option.
	OptionID string
}

func (Activated) trayEvent()        {}
func (CheckmarkToggled) trayEvent() {}
func (RadioSelected) trayEvent()    {}

// eventQueue is an unbounded FIFO queue carrying events from
// presentation-layer callbacks to the application thread.
//
// Both sides must never block: callbacks run on the presentation thread and a
// slow consumer must not stall it, while draining happens on the application
// polling cycle. A mutex-guarded slice satisfies both, unlike a Go channel,
// which blocks the sender once its buffer fills.
type eventQueue struct {
	mu     sync.Mutex
	events []Event
}

func newEventQueue() *eventQueue {
	return &eventQueue{}
}

// send appends an event to the queue. It never blocks.
func (q *eventQueue) send(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// drain removes and returns all pending events in insertion order. It never
// blocks and returns nil when the queue is empty.
func (q *eventQueue) drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil
	}

	events := q.events
	q.events = nil

	return events
}
