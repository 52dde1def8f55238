package accrual

import "context"

// Event is a notification emitted by an extension when its state changes,
// for example a rate change or a deposit. Events are not persisted. They are
// returned to the caller together with the result of a transaction.
type Event interface {
	// EventName returns a short and stable name of the event kind.
	EventName() string
}

// EventSink is implemented by anything that can collect events.
type EventSink interface {
	Emit(Event)
}

// EventBuffer is an EventSink that keeps events in memory in the order they
// were emitted.
type EventBuffer struct {
	events []Event
}

var _ EventSink = (*EventBuffer)(nil)

// Emit appends given event to the buffer.
func (b *EventBuffer) Emit(e Event) {
	b.events = append(b.events, e)
}

// Events returns all collected events.
func (b *EventBuffer) Events() []Event {
	return b.events
}

// Reset drops all collected events.
func (b *EventBuffer) Reset() {
	b.events = nil
}

// WithEventSink returns a context that routes all events emitted with the
// Emit function to given sink.
func WithEventSink(ctx Context, sink EventSink) Context {
	return context.WithValue(ctx, contextKeyEvents, sink)
}

// Emit passes given event to the sink declared in the context. If no sink was
// declared the event is dropped.
func Emit(ctx Context, e Event) {
	if sink, ok := ctx.Value(contextKeyEvents).(EventSink); ok {
		sink.Emit(e)
	}
}
