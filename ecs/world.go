package ecs

import (
	"fmt"
	"slices"

	"github.com/milk9111/customrp/ecs/component"
)

// World owns entities and their components. It enforces the attachment
// contract each component kind declares: unique kinds reject a second
// instance and required kinds must be attached first, or are attached
// automatically when they declare a default.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*sparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*sparseSet)}
}

func CreateEntity(w *World) Entity {
	e := w.entities.create()
	w.events.Push(Event{Type: EventEntityCreated, Data: EntityEvent{Entity: e}})
	return e
}

// DestroyEntity detaches every component, dependents before the kinds they
// require, and retires the handle. It reports whether e was alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for {
		attached := w.attached(e)
		if len(attached) == 0 {
			break
		}
		removed := false
		for _, id := range attached {
			if w.RemoveComponent(e, id) {
				removed = true
			}
		}
		if !removed {
			// Only a dependency cycle gets here; break it.
			for _, id := range attached {
				w.detach(e, id)
			}
		}
	}
	w.entities.destroy(e)
	w.events.Push(Event{Type: EventEntityDestroyed, Data: EntityEvent{Entity: e}})
	return true
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns live entities in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// AddComponent attaches value to e under id, replacing any value already
// attached unless the kind is unique. On error, requirements attached on
// the way are detached again.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	var before []component.ComponentID
	if IsAlive(w, e) {
		before = w.attached(e)
	}
	err := w.addComponent(e, id, value, nil)
	if err != nil && IsAlive(w, e) {
		after := w.attached(e)
		for i := len(after) - 1; i >= 0; i-- {
			if !slices.Contains(before, after[i]) {
				w.detach(e, after[i])
			}
		}
	}
	return err
}

func (w *World) addComponent(e Entity, id component.ComponentID, value any, attaching map[component.ComponentID]bool) error {
	if w == nil || !w.entities.isAlive(e) {
		return fmt.Errorf("ecs: add %s to %s: %w", component.Name(id), e, component.ErrEntityNotAlive)
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("ecs: add %s to %s: %w", component.Name(id), e, component.ErrNilComponent)
	}

	desc, _ := component.Describe(id)
	store := w.store(id)
	if existing, ok := store.get(e.id()); ok && desc.Unique && existing != value {
		return fmt.Errorf("ecs: add %s to %s: %w", desc.Name, e, component.ErrDuplicateComponent)
	}

	var missing []component.Requirement
	for _, req := range desc.Requires {
		if w.HasComponent(e, req.ID) {
			continue
		}
		if req.New == nil {
			return fmt.Errorf("ecs: add %s to %s: needs %s: %w", desc.Name, e, component.Name(req.ID), component.ErrMissingRequirement)
		}
		missing = append(missing, req)
	}

	if len(missing) > 0 {
		if attaching == nil {
			attaching = make(map[component.ComponentID]bool)
		}
		attaching[id] = true
		for _, req := range missing {
			if attaching[req.ID] {
				return fmt.Errorf("ecs: add %s to %s: requirement cycle through %s: %w", desc.Name, e, component.Name(req.ID), component.ErrMissingRequirement)
			}
			if err := w.addComponent(e, req.ID, req.New(), attaching); err != nil {
				return fmt.Errorf("ecs: add %s to %s: attach %s: %w", desc.Name, e, component.Name(req.ID), err)
			}
		}
	}

	_, replaced := store.get(e.id())
	store.set(e.id(), value)
	if !replaced {
		w.events.Push(Event{Type: EventComponentAdded, Data: ComponentEvent{Entity: e, Component: id}})
	}
	return nil
}

// RemoveComponent detaches id from e. It refuses while another component on
// e requires id.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if !w.HasComponent(e, id) {
		return false
	}
	if len(w.dependents(e, id)) > 0 {
		return false
	}
	return w.detach(e, id)
}

func (w *World) detach(e Entity, id component.ComponentID) bool {
	if !w.stores[id].remove(e.id()) {
		return false
	}
	w.events.Push(Event{Type: EventComponentRemoved, Data: ComponentEvent{Entity: e, Component: id}})
	return true
}

// Dependents lists the components on e that require id.
func (w *World) Dependents(e Entity, id component.ComponentID) []component.ComponentID {
	if !IsAlive(w, e) {
		return nil
	}
	return w.dependents(e, id)
}

func (w *World) dependents(e Entity, id component.ComponentID) []component.ComponentID {
	var out []component.ComponentID
	for _, other := range w.attached(e) {
		if other == id {
			continue
		}
		desc, ok := component.Describe(other)
		if !ok {
			continue
		}
		for _, req := range desc.Requires {
			if req.ID == id {
				out = append(out, other)
				break
			}
		}
	}
	return out
}

func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.stores[id].has(e.id())
}

func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	return w.stores[id].get(e.id())
}

// attached lists the kinds attached to e in ascending id order.
func (w *World) attached(e Entity) []component.ComponentID {
	var out []component.ComponentID
	for id, store := range w.stores {
		if store.has(e.id()) {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

func (w *World) store(id component.ComponentID) *sparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*sparseSet)
	}
	s, ok := w.stores[id]
	if !ok {
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}
