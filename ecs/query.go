package ecs

import (
	"slices"

	"github.com/milk9111/customrp/ecs/component"
)

// KindID is satisfied by every component.ComponentKind.
type KindID interface {
	ID() component.ComponentID
}

// Query returns live entities carrying every kind, in id order.
func (w *World) Query(kinds ...KindID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}

	sets := make([]*sparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.stores[k.ID()]
		if s.len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate smallest set
	slices.SortFunc(sets, func(a, b *sparseSet) int { return a.len() - b.len() })

	ids := sets[0].ids()
	slices.Sort(ids)
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		matched := true
		for _, s := range sets[1:] {
			if !s.has(id) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if e, ok := w.entities.byID(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the lowest-id entity carrying kind.
func (w *World) First(kind KindID) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
