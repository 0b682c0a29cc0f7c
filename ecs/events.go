package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventDeadEnd is pushed when the generator escapes a dead end.
	EventDeadEnd = "dead_end"
	// EventSaturated is pushed when no free cell was left to escape to.
	EventSaturated = "saturated"
	// EventReset is pushed after the scene is rebuilt.
	EventReset = "reset"
)

// EventQueue is a FIFO queue that lives for one frame.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Peek returns queued events without consuming them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
