package ecs

import (
	"testing"

	"github.com/milk9111/pipes/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"no_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("second DestroyEntity should return false")
			}
			if w.Count() != c.create-1 {
				t.Fatalf("expected count %d, got %d", c.create-1, w.Count())
			}
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("recycled entity must differ from the destroyed handle")
	}
	if Has(w, fresh, h.Kind()) {
		t.Fatalf("recycled entity must not inherit components")
	}
	if _, ok := Get(w, old, h.Kind()); ok {
		t.Fatalf("stale handle must not resolve")
	}
}

func TestComponentTable(t *testing.T) {
	w := NewWorld()

	hInt := component.NewComponent[int]()
	hStr := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, hInt.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, hInt.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, hInt.Kind()) },
		},
		{
			name: "add_str_to_both",
			setup: func() error {
				if err := Add(w, e1, hStr.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, hStr.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, hStr.Kind()) || !Has(w, e2, hStr.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, hStr.Kind()) },
		},
		{
			name:  "mutate_in_place",
			setup: func() error { return Add(w, e2, hInt.Kind(), intPtr(1)) },
			check: func(t *testing.T) {
				v, _ := Get(w, e2, hInt.Kind())
				*v = 42
				again, _ := Get(w, e2, hInt.Kind())
				if *again != 42 {
					t.Fatalf("expected pointer storage, got %d", *again)
				}
			},
			teardown: func() bool { return Remove(w, e2, hInt.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := CreateEntity(w)

	if err := Add(w, e, h.Kind(), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	DestroyEntity(w, e)
	if err := Add(w, e, h.Kind(), intPtr(1)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var ents []Entity
	ForEach(w, h.Kind(), func(e Entity, _ *int) {
		ents = append(ents, e)
		// Entities created mid-walk are not visited.
		extra := CreateEntity(w)
		_ = Add(w, extra, h.Kind(), intPtr(99))
	})
	set := toSet(ents)

	if len(ents) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(ents))
	}
	if _, ok := set[e1]; !ok {
		t.Fatalf("expected e1 in ForEach result")
	}
	if _, ok := set[e3]; !ok {
		t.Fatalf("expected e3 in ForEach result")
	}
	if _, ok := set[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
}

func TestMultiKindIteration(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "foreach3_intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1, e2, e3 := CreateEntity(w), CreateEntity(w), CreateEntity(w)
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[string]()
				kc := component.NewComponentKind[float64]()

				f := 1.5
				_ = Add(w, e1, ka, intPtr(1))
				_ = Add(w, e2, ka, intPtr(2))
				_ = Add(w, e2, kb, stringPtr("x"))
				_ = Add(w, e2, kc, &f)
				_ = Add(w, e3, kb, stringPtr("y"))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *string, _ *float64) { res = append(res, e) })
				if len(res) != 1 || res[0].id() != e2.id() {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "foreach4_ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				kd := component.NewComponentKind[int]()
				for _, k := range []component.ComponentKind[int]{ka, kb, kc, kd} {
					if err := Add(w, e, k, intPtr(1)); err != nil {
						t.Fatal(err)
					}
				}
				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_visits_nothing",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				called := false
				ForEach2(w, ka, kb, func(Entity, *int, *int) { called = true })
				if called {
					t.Fatalf("expected no visits when a store is missing")
				}
			},
		},
		{
			name: "query_and_first",
			run: func(t *testing.T) {
				w := NewWorld()
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[string]()
				var ents []Entity
				for i := 0; i < 5; i++ {
					e := CreateEntity(w)
					ents = append(ents, e)
					_ = Add(w, e, ka, intPtr(i))
					if i%2 == 1 {
						_ = Add(w, e, kb, stringPtr("odd"))
					}
				}

				got := w.Query(ka, kb)
				if len(got) != 2 || got[0] != ents[1] || got[1] != ents[3] {
					t.Fatalf("expected [e1 e3] in slot order, got %v", got)
				}

				first, ok := First(w, kb)
				if !ok || first != ents[1] {
					t.Fatalf("expected First to return e1, got %v ok=%v", first, ok)
				}
				DestroyEntity(w, ents[1])
				first, ok = First(w, kb)
				if !ok || first != ents[3] {
					t.Fatalf("expected First to skip destroyed entity, got %v ok=%v", first, ok)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestSchedulerRunsInOrderAndFlushesEvents(t *testing.T) {
	w := NewWorld()
	var order []string
	var drained []Event

	s := NewScheduler(
		SystemFunc(func(w *World) {
			order = append(order, "producer")
			w.Events().Push(Event{Type: EventDeadEnd})
			w.Events().Push(Event{Type: EventReset})
		}),
		nil,
		SystemFunc(func(w *World) {
			order = append(order, "consumer")
			drained = w.Events().Drain()
		}),
		SystemFunc(func(w *World) {
			w.Events().Push(Event{Type: "late"})
		}),
	)

	s.Update(w)

	if len(order) != 2 || order[0] != "producer" || order[1] != "consumer" {
		t.Fatalf("unexpected order %v", order)
	}
	if len(drained) != 2 || drained[0].Type != EventDeadEnd {
		t.Fatalf("unexpected drained events %v", drained)
	}
	if len(w.Events().Peek()) != 0 {
		t.Fatalf("expected undrained events to be flushed at end of frame")
	}
	if len(s.Systems()) != 3 {
		t.Fatalf("nil systems must be skipped, got %d", len(s.Systems()))
	}
}
