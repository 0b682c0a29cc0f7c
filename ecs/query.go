package ecs

import (
	"sort"

	"github.com/milk9111/pipes/ecs/component"
)

// KindID is satisfied by every component.ComponentKind.
type KindID interface {
	ID() component.ComponentID
}

// Query returns live entities that have every listed kind, in slot order.
func (w *World) Query(kinds ...KindID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	ids := intersect(sets...)
	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := w.entities.current(id); ok {
			out = append(out, e)
		}
	}
	sortEntities(out)
	return out
}

// intersect returns ids present in every set, iterating the smallest.
func intersect(sets ...*SparseSet) []entityID {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]entityID, 0, smallest.Len())
outer:
	for _, id := range smallest.ids() {
		for _, s := range sets {
			if !s.Has(id) {
				continue outer
			}
		}
		out = append(out, id)
	}
	return out
}

func snapshot(s *SparseSet) []entityID {
	return append([]entityID(nil), s.ids()...)
}

func sortEntities(es []Entity) {
	sort.Slice(es, func(i, j int) bool { return es[i].id() < es[j].id() })
}
