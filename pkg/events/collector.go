package events

import "slices"

// EventCollector buffers the events an aggregate raises until they are
// published. The zero value is ready to use.
type EventCollector struct {
	pending []DomainEvent
}

// Record queues events in the order given.
func (c *EventCollector) Record(events ...DomainEvent) {
	c.pending = append(c.pending, events...)
}

// Events returns a copy of the queued events.
func (c *EventCollector) Events() []DomainEvent {
	return slices.Clone(c.pending)
}

// ClearEvents returns the queued events and empties the queue.
func (c *EventCollector) ClearEvents() []DomainEvent {
	drained := c.pending
	c.pending = nil
	return drained
}

// Len reports how many events are queued.
func (c *EventCollector) Len() int {
	return len(c.pending)
}
