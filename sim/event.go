package sim

// VTimeInSec is a time in the simulated space, in seconds.
type VTimeInSec float64

// An Event is something that will happen at a future virtual time.
type Event interface {
	// Time returns the virtual time at which the event should happen.
	Time() VTimeInSec

	// Handler returns the handler that handles the event.
	Handler() Handler
}

// A Handler owns a set of events. An event can only be scheduled by its
// handler and, when triggered, only mutates that handler. The one exception is
// the kick-start of a simulation, where a session may schedule the first event
// on behalf of a component.
type Handler interface {
	Handle(e Event) error
}

// EventBase provides the fields and getters shared by all events.
type EventBase struct {
	ID      string
	time    VTimeInSec
	handler Handler
}

// NewEventBase creates an EventBase that happens at time t and is handled by
// handler.
func NewEventBase(t VTimeInSec, handler Handler) *EventBase {
	return &EventBase{
		ID:      GetIDGenerator().Generate(),
		time:    t,
		handler: handler,
	}
}

// Time returns the virtual time at which the event happens.
func (e EventBase) Time() VTimeInSec {
	return e.time
}

// Handler returns the handler that handles the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// SetHandler changes the handler that handles the event.
func (e *EventBase) SetHandler(h Handler) {
	e.handler = h
}
