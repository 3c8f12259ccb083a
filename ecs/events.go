package ecs

import "github.com/milk9111/customrp/ecs/component"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventEntityCreated    = "entity_created"
	EventEntityDestroyed  = "entity_destroyed"
	EventComponentAdded   = "component_added"
	EventComponentRemoved = "component_removed"
)

type EntityEvent struct {
	Entity Entity
}

type ComponentEvent struct {
	Entity    Entity
	Component component.ComponentID
}

// EventQueue collects events raised during a frame. The scheduler flushes
// it after the last system runs.
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

// Pending returns the queued events without removing them.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
